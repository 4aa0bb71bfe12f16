package services

import (
	"errors"
	"time"

	"manuscript-review-api/models"

	"gorm.io/gorm"
)

// ReviewBoard owns per-reviewer review rows. Explicit find-or-create by
// (submission_id, reviewer_id) keeps the completion-count logic in the
// engine visible instead of hiding it behind a store upsert primitive.
type ReviewBoard struct {
	db *gorm.DB
}

func NewReviewBoard(db *gorm.DB) *ReviewBoard {
	return &ReviewBoard{db: db}
}

// ReviewPayload is the validated content of one review.
type ReviewPayload struct {
	Recommendation       string
	TechnicalQuality     int
	Novelty              int
	Significance         int
	Clarity              int
	OverallScore         int
	Comments             string
	ConfidentialComments *string
}

// Upsert creates or overwrites the reviewer's review and marks it
// completed. Repeated calls from one reviewer update the same row.
func (b *ReviewBoard) Upsert(submissionID, articleID, reviewerID int, payload ReviewPayload) (*models.Review, error) {
	now := time.Now()

	var review models.Review
	err := b.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		First(&review).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		review = models.Review{
			SubmissionID: submissionID,
			ArticleID:    articleID,
			ReviewerID:   reviewerID,
		}
	}

	review.Recommendation = payload.Recommendation
	review.TechnicalQuality = payload.TechnicalQuality
	review.Novelty = payload.Novelty
	review.Significance = payload.Significance
	review.Clarity = payload.Clarity
	review.OverallScore = payload.OverallScore
	review.Comments = payload.Comments
	review.ConfidentialComments = payload.ConfidentialComments
	review.IsCompleted = true
	review.SubmittedAt = &now
	review.UpdatedAt = &now

	if err := b.db.Save(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (b *ReviewBoard) Get(submissionID, reviewerID int) (*models.Review, error) {
	var review models.Review
	err := b.db.Where("submission_id = ? AND reviewer_id = ?", submissionID, reviewerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// CountCompleted is the sole input to the decision-made transition; it
// counts only completed rows.
func (b *ReviewBoard) CountCompleted(submissionID int) (int64, error) {
	var count int64
	err := b.db.Model(&models.Review{}).
		Where("submission_id = ? AND is_completed = ?", submissionID, true).
		Count(&count).Error
	return count, err
}

func (b *ReviewBoard) ListBySubmission(submissionID int) ([]models.Review, error) {
	var reviews []models.Review
	err := b.db.Where("submission_id = ?", submissionID).
		Preload("Reviewer").
		Order("submitted_at ASC").
		Find(&reviews).Error
	return reviews, err
}
