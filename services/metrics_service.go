package services

import (
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"gorm.io/gorm"
)

// MetricsService derives read-only editorial metrics from stored
// timestamps. All values are deterministic projections over historical
// submission and review rows.
type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

type ReviewTurnaround struct {
	SubmissionsCompleted int     `json:"submissions_completed"`
	ReviewsCompleted     int     `json:"reviews_completed"`
	AvgDaysToFirstReview float64 `json:"avg_days_to_first_review"`
	AvgDaysToDecision    float64 `json:"avg_days_to_decision"`
}

// ReviewTurnaround computes average review turnaround over completed
// submissions: submission time to first completed review, and submission
// time to the final status-history entry that closed the submission.
func (s *MetricsService) ReviewTurnaround() (*ReviewTurnaround, error) {
	var submissions []models.Submission
	if err := s.db.Where("status = ?", utils.SubmissionStatusCompleted).
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	result := &ReviewTurnaround{SubmissionsCompleted: len(submissions)}
	if len(submissions) == 0 {
		return result, nil
	}

	var (
		firstReviewDays []float64
		decisionDays    []float64
		reviewTotal     int
	)

	for _, submission := range submissions {
		var reviews []models.Review
		if err := s.db.Where("submission_id = ? AND is_completed = ?", submission.SubmissionID, true).
			Order("submitted_at ASC").
			Find(&reviews).Error; err != nil {
			return nil, err
		}
		reviewTotal += len(reviews)

		if len(reviews) > 0 && reviews[0].SubmittedAt != nil {
			firstReviewDays = append(firstReviewDays,
				daysBetween(submission.SubmittedAt, *reviews[0].SubmittedAt))
		}

		var closing models.SubmissionStatusHistory
		err := s.db.Where("submission_id = ? AND new_status = ?",
			submission.SubmissionID, utils.SubmissionStatusCompleted).
			Order("created_at DESC").
			First(&closing).Error
		if err == nil {
			decisionDays = append(decisionDays,
				daysBetween(submission.SubmittedAt, closing.CreatedAt))
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	result.ReviewsCompleted = reviewTotal
	result.AvgDaysToFirstReview = average(firstReviewDays)
	result.AvgDaysToDecision = average(decisionDays)
	return result, nil
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
