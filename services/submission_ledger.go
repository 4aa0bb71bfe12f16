package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionLedger owns submission rows. One article may accumulate many
// rows over resubmission cycles; the engine keeps at most one of them
// active by checking ActiveByArticle inside the submit transaction.
type SubmissionLedger struct {
	db *gorm.DB
}

func NewSubmissionLedger(db *gorm.DB) *SubmissionLedger {
	return &SubmissionLedger{db: db}
}

// Declarations carries the statements an author files with a submission.
type Declarations struct {
	CoverLetter        string
	EthicsStatement    string
	ConflictOfInterest string
}

func (l *SubmissionLedger) Create(articleID, submitterID int, decl Declarations) (*models.Submission, error) {
	submission := models.Submission{
		SubmissionNumber:   generateSubmissionNumber(),
		ArticleID:          articleID,
		SubmitterID:        submitterID,
		Status:             utils.SubmissionStatusPending,
		CoverLetter:        utils.SanitizeInput(decl.CoverLetter),
		EthicsStatement:    utils.SanitizeInput(decl.EthicsStatement),
		ConflictOfInterest: utils.SanitizeInput(decl.ConflictOfInterest),
		SubmittedAt:        time.Now(),
	}
	if err := l.db.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (l *SubmissionLedger) ByID(submissionID int) (*models.Submission, error) {
	var submission models.Submission
	err := l.db.Where("submission_id = ?", submissionID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// ByIDLocked loads the submission under a row lock so concurrent workflow
// operations on the same submission serialize. Must be the transaction's
// first read: on InnoDB the consistent snapshot is taken at the first plain
// SELECT, so reads after the lock is granted see the other writer's commit.
// SQLite has no FOR UPDATE; its single-writer transaction lock already
// serializes, so the clause is only applied on MySQL.
func (l *SubmissionLedger) ByIDLocked(submissionID int) (*models.Submission, error) {
	db := l.db
	if db.Dialector.Name() == "mysql" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var submission models.Submission
	err := db.Where("submission_id = ?", submissionID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// ActiveByArticle returns the article's non-completed submission, or nil.
func (l *SubmissionLedger) ActiveByArticle(articleID int) (*models.Submission, error) {
	var submission models.Submission
	err := l.db.Where("article_id = ? AND status <> ?", articleID, utils.SubmissionStatusCompleted).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (l *SubmissionLedger) ListByArticle(articleID int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := l.db.Where("article_id = ?", articleID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// TransitionStatus flips a submission from one status to another with a
// guarded UPDATE. Every from status is validated against the transition
// table first; the guard then returns false when the row was no longer in
// any of the expected statuses, which is how concurrent callers lose the
// race without double-transitioning.
func (l *SubmissionLedger) TransitionStatus(submissionID int, from []string, to string) (bool, error) {
	allowed := make([]string, 0, len(from))
	for _, status := range from {
		if utils.CanTransitionSubmission(status, to) {
			allowed = append(allowed, status)
		}
	}
	if len(allowed) == 0 {
		return false, fmt.Errorf("submission cannot move to %s from any of %v", to, from)
	}

	now := time.Now()
	res := l.db.Model(&models.Submission{}).
		Where("submission_id = ? AND status IN ?", submissionID, allowed).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RecordHistory appends a status-history row for the change.
func (l *SubmissionLedger) RecordHistory(submissionID int, oldStatus *string, newStatus string, changedBy int, reason string) error {
	history := models.SubmissionStatusHistory{
		SubmissionID: submissionID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		ChangedBy:    changedBy,
		CreatedAt:    time.Now(),
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		history.Reason = &reason
	}
	return l.db.Create(&history).Error
}

func generateSubmissionNumber() string {
	return fmt.Sprintf("MS-%s", strings.ToUpper(uuid.NewString()[:8]))
}
