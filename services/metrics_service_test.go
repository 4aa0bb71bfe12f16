package services

import (
	"math"
	"testing"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"
)

func TestReviewTurnaroundAveragesFromTimestamps(t *testing.T) {
	db := openTestDB(t)

	submittedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	firstReviewAt := submittedAt.Add(4 * 24 * time.Hour)
	decidedAt := submittedAt.Add(10 * 24 * time.Hour)

	submission := models.Submission{
		SubmissionNumber: "MS-TEST0001",
		ArticleID:        1,
		SubmitterID:      1,
		Status:           utils.SubmissionStatusCompleted,
		SubmittedAt:      submittedAt,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}

	review := models.Review{
		SubmissionID:   submission.SubmissionID,
		ArticleID:      1,
		ReviewerID:     2,
		Recommendation: utils.RecommendationAccept,
		IsCompleted:    true,
		SubmittedAt:    &firstReviewAt,
	}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}

	old := utils.SubmissionStatusDecisionMade
	history := models.SubmissionStatusHistory{
		SubmissionID: submission.SubmissionID,
		OldStatus:    &old,
		NewStatus:    utils.SubmissionStatusCompleted,
		ChangedBy:    4,
		CreatedAt:    decidedAt,
	}
	if err := db.Create(&history).Error; err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	metrics := NewMetricsService(db)
	result, err := metrics.ReviewTurnaround()
	if err != nil {
		t.Fatalf("ReviewTurnaround returned error: %v", err)
	}

	if result.SubmissionsCompleted != 1 {
		t.Fatalf("expected 1 completed submission, got %d", result.SubmissionsCompleted)
	}
	if result.ReviewsCompleted != 1 {
		t.Fatalf("expected 1 completed review, got %d", result.ReviewsCompleted)
	}
	if math.Abs(result.AvgDaysToFirstReview-4) > 0.01 {
		t.Fatalf("expected 4 days to first review, got %f", result.AvgDaysToFirstReview)
	}
	if math.Abs(result.AvgDaysToDecision-10) > 0.01 {
		t.Fatalf("expected 10 days to decision, got %f", result.AvgDaysToDecision)
	}
}

func TestReviewTurnaroundEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	metrics := NewMetricsService(db)
	result, err := metrics.ReviewTurnaround()
	if err != nil {
		t.Fatalf("ReviewTurnaround returned error: %v", err)
	}

	if result.SubmissionsCompleted != 0 || result.AvgDaysToDecision != 0 {
		t.Fatalf("expected zero metrics, got %+v", result)
	}
}
