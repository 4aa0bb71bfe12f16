package models

import "time"

// EditorAssignment represents the editor_assignments table: one reviewer's
// mandate over a submission. Rows are deactivated, never deleted.
type EditorAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int        `gorm:"column:submission_id;uniqueIndex:idx_submission_editor" json:"submission_id"`
	EditorID     int        `gorm:"column:editor_id;uniqueIndex:idx_submission_editor" json:"editor_id"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	AssignedBy   int        `gorm:"column:assigned_by" json:"assigned_by"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	Editor *User `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

// TableName specifies the table for EditorAssignment.
func (EditorAssignment) TableName() string {
	return "editor_assignments"
}
