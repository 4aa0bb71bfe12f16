package models

import "time"

// Review represents the reviews table: one reviewer's scored evaluation of
// a submission. Keyed by (submission_id, reviewer_id) with upsert
// semantics; only completed rows count toward the decision threshold.
type Review struct {
	ReviewID             int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID         int        `gorm:"column:submission_id;uniqueIndex:idx_submission_reviewer" json:"submission_id"`
	ArticleID            int        `gorm:"column:article_id" json:"article_id"`
	ReviewerID           int        `gorm:"column:reviewer_id;uniqueIndex:idx_submission_reviewer" json:"reviewer_id"`
	Recommendation       string     `gorm:"column:recommendation" json:"recommendation"`
	TechnicalQuality     int        `gorm:"column:technical_quality" json:"technical_quality"`
	Novelty              int        `gorm:"column:novelty" json:"novelty"`
	Significance         int        `gorm:"column:significance" json:"significance"`
	Clarity              int        `gorm:"column:clarity" json:"clarity"`
	OverallScore         int        `gorm:"column:overall_score" json:"overall_score"`
	Comments             string     `gorm:"column:comments" json:"comments"`
	ConfidentialComments *string    `gorm:"column:confidential_comments" json:"confidential_comments,omitempty"`
	IsCompleted          bool       `gorm:"column:is_completed" json:"is_completed"`
	SubmittedAt          *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	UpdatedAt            *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}
