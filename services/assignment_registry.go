package services

import (
	"time"

	"manuscript-review-api/models"

	"gorm.io/gorm"
)

// AssignmentRegistry owns the reviewer-to-submission mapping. Assignments
// are deactivated, never deleted, so reviewer history survives.
type AssignmentRegistry struct {
	db *gorm.DB
}

func NewAssignmentRegistry(db *gorm.DB) *AssignmentRegistry {
	return &AssignmentRegistry{db: db}
}

// Assign creates active assignments for the given reviewers. Reviewers who
// already hold an active assignment are skipped without error; a
// previously deactivated assignment is reactivated instead of duplicated.
// Returns the number of assignments that became active in this call.
func (r *AssignmentRegistry) Assign(submissionID int, reviewerIDs []int, assignedBy int) (int, error) {
	created := 0
	now := time.Now()

	for _, reviewerID := range reviewerIDs {
		var existing models.EditorAssignment
		err := r.db.Where("submission_id = ? AND editor_id = ?", submissionID, reviewerID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.IsActive {
				continue // already assigned, UI resubmitted the same set
			}
			res := r.db.Model(&models.EditorAssignment{}).
				Where("assignment_id = ?", existing.AssignmentID).
				Updates(map[string]interface{}{
					"is_active":  true,
					"updated_at": now,
				})
			if res.Error != nil {
				return created, res.Error
			}
			created++
		case err == gorm.ErrRecordNotFound:
			assignment := models.EditorAssignment{
				SubmissionID: submissionID,
				EditorID:     reviewerID,
				IsActive:     true,
				AssignedBy:   assignedBy,
				CreatedAt:    now,
			}
			if err := r.db.Create(&assignment).Error; err != nil {
				return created, err
			}
			created++
		default:
			return created, err
		}
	}

	return created, nil
}

func (r *AssignmentRegistry) ListActive(submissionID int) ([]models.EditorAssignment, error) {
	var assignments []models.EditorAssignment
	err := r.db.Where("submission_id = ? AND is_active = ?", submissionID, true).
		Preload("Editor").
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRegistry) CountActive(submissionID int) (int64, error) {
	var count int64
	err := r.db.Model(&models.EditorAssignment{}).
		Where("submission_id = ? AND is_active = ?", submissionID, true).
		Count(&count).Error
	return count, err
}

// IsAssigned reports whether the reviewer holds an active assignment on
// the submission.
func (r *AssignmentRegistry) IsAssigned(submissionID, reviewerID int) (bool, error) {
	var count int64
	err := r.db.Model(&models.EditorAssignment{}).
		Where("submission_id = ? AND editor_id = ? AND is_active = ?", submissionID, reviewerID, true).
		Count(&count).Error
	return count > 0, err
}

// Deactivate retires a reviewer's assignment without deleting history.
func (r *AssignmentRegistry) Deactivate(submissionID, reviewerID int) error {
	now := time.Now()
	return r.db.Model(&models.EditorAssignment{}).
		Where("submission_id = ? AND editor_id = ? AND is_active = ?", submissionID, reviewerID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		}).Error
}
