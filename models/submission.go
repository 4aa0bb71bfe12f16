package models

import "time"

// Submission represents the submissions table: one evaluation attempt for
// an article. An article accumulates one row per submit/resubmit cycle but
// holds at most one non-completed row at a time.
type Submission struct {
	SubmissionID       int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber   string     `gorm:"column:submission_number;unique" json:"submission_number"`
	ArticleID          int        `gorm:"column:article_id" json:"article_id"`
	SubmitterID        int        `gorm:"column:submitter_id" json:"submitter_id"`
	Status             string     `gorm:"column:status" json:"status"`
	CoverLetter        string     `gorm:"column:cover_letter" json:"cover_letter"`
	EthicsStatement    string     `gorm:"column:ethics_statement" json:"ethics_statement"`
	ConflictOfInterest string     `gorm:"column:conflict_of_interest" json:"conflict_of_interest"`
	SubmittedAt        time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Article   *Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	Submitter *User    `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	Reviews   []Review `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
}

// SubmissionStatusHistory tracks historical status changes for submissions.
type SubmissionStatusHistory struct {
	HistoryID    int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	OldStatus    *string   `gorm:"column:old_status" json:"old_status"`
	NewStatus    string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy    int       `gorm:"column:changed_by" json:"changed_by"`
	Reason       *string   `gorm:"column:reason" json:"reason"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (SubmissionStatusHistory) TableName() string {
	return "submission_status_history"
}
