package services

import (
	"testing"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"
)

func TestAssignmentRegistryDeduplicatesActiveAssignments(t *testing.T) {
	db := openTestDB(t)
	registry := NewAssignmentRegistry(db)

	created, err := registry.Assign(1, []int{10, 10, 11}, 99)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 assignments created, got %d", created)
	}

	// Re-assigning the same set is a no-op, not a conflict.
	created, err = registry.Assign(1, []int{10, 11}, 99)
	if err != nil {
		t.Fatalf("Assign returned error on re-assign: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 assignments created on re-assign, got %d", created)
	}

	count, err := registry.CountActive(1)
	if err != nil {
		t.Fatalf("CountActive returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 active assignments, got %d", count)
	}
}

func TestAssignmentRegistryReactivatesDeactivatedAssignment(t *testing.T) {
	db := openTestDB(t)
	registry := NewAssignmentRegistry(db)

	if _, err := registry.Assign(1, []int{10}, 99); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if err := registry.Deactivate(1, 10); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	assigned, err := registry.IsAssigned(1, 10)
	if err != nil {
		t.Fatalf("IsAssigned returned error: %v", err)
	}
	if assigned {
		t.Fatal("expected assignment to be inactive after Deactivate")
	}

	created, err := registry.Assign(1, []int{10}, 99)
	if err != nil {
		t.Fatalf("Assign returned error on reactivation: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 reactivated assignment, got %d", created)
	}

	// History is preserved: still a single row for the pair.
	var rows int64
	db.Model(&models.EditorAssignment{}).
		Where("submission_id = ? AND editor_id = ?", 1, 10).
		Count(&rows)
	if rows != 1 {
		t.Fatalf("expected 1 assignment row, got %d", rows)
	}
}

func TestSubmissionLedgerSingleActivePerArticle(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSubmissionLedger(db)

	first, err := ledger.Create(7, 1, Declarations{CoverLetter: "hello"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	active, err := ledger.ActiveByArticle(7)
	if err != nil {
		t.Fatalf("ActiveByArticle returned error: %v", err)
	}
	if active == nil || active.SubmissionID != first.SubmissionID {
		t.Fatalf("expected submission %d active, got %+v", first.SubmissionID, active)
	}

	flipped, err := ledger.TransitionStatus(first.SubmissionID,
		[]string{utils.SubmissionStatusPending}, utils.SubmissionStatusCompleted)
	if err != nil {
		t.Fatalf("TransitionStatus returned error: %v", err)
	}
	if !flipped {
		t.Fatal("expected status transition to apply")
	}

	active, err = ledger.ActiveByArticle(7)
	if err != nil {
		t.Fatalf("ActiveByArticle returned error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active submission after completion, got %+v", active)
	}

	second, err := ledger.Create(7, 1, Declarations{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	all, err := ledger.ListByArticle(7)
	if err != nil {
		t.Fatalf("ListByArticle returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 historical submissions, got %d", len(all))
	}
	if second.SubmissionNumber == first.SubmissionNumber {
		t.Fatal("expected distinct submission numbers")
	}
}

func TestSubmissionLedgerGuardedTransitionLosesWhenStatusMoved(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSubmissionLedger(db)

	submission, err := ledger.Create(1, 1, Declarations{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	flipped, err := ledger.TransitionStatus(submission.SubmissionID,
		[]string{utils.SubmissionStatusPending}, utils.SubmissionStatusReviewing)
	if err != nil || !flipped {
		t.Fatalf("first transition: flipped=%v err=%v", flipped, err)
	}

	// Second caller expected pending; the guard must reject it.
	flipped, err = ledger.TransitionStatus(submission.SubmissionID,
		[]string{utils.SubmissionStatusPending}, utils.SubmissionStatusReviewing)
	if err != nil {
		t.Fatalf("second transition returned error: %v", err)
	}
	if flipped {
		t.Fatal("expected guarded transition to lose when status already moved")
	}
}

func TestSubmissionLedgerRejectsTransitionOutsideTable(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSubmissionLedger(db)

	submission, err := ledger.Create(1, 1, Declarations{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// completed -> pending is not a row of the transition table.
	_, err = ledger.TransitionStatus(submission.SubmissionID,
		[]string{utils.SubmissionStatusCompleted}, utils.SubmissionStatusPending)
	if err == nil {
		t.Fatal("expected error for a transition outside the table")
	}

	reloaded, err := ledger.ByID(submission.SubmissionID)
	if err != nil {
		t.Fatalf("ByID returned error: %v", err)
	}
	if reloaded.Status != utils.SubmissionStatusPending {
		t.Fatalf("expected status unchanged, got %s", reloaded.Status)
	}

	// Illegal entries in the from list are stripped; the legal one applies.
	flipped, err := ledger.TransitionStatus(submission.SubmissionID,
		[]string{utils.SubmissionStatusCompleted, utils.SubmissionStatusPending},
		utils.SubmissionStatusReviewing)
	if err != nil {
		t.Fatalf("TransitionStatus returned error: %v", err)
	}
	if !flipped {
		t.Fatal("expected the legal from status to apply")
	}
}

func TestSubmissionLedgerLockedLoad(t *testing.T) {
	db := openTestDB(t)
	ledger := NewSubmissionLedger(db)

	submission, err := ledger.Create(1, 1, Declarations{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	locked, err := ledger.ByIDLocked(submission.SubmissionID)
	if err != nil {
		t.Fatalf("ByIDLocked returned error: %v", err)
	}
	if locked == nil || locked.SubmissionID != submission.SubmissionID {
		t.Fatalf("expected submission %d, got %+v", submission.SubmissionID, locked)
	}

	missing, err := ledger.ByIDLocked(99999)
	if err != nil {
		t.Fatalf("ByIDLocked returned error for missing row: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing submission, got %+v", missing)
	}
}

func TestReviewBoardCountsOnlyCompleted(t *testing.T) {
	db := openTestDB(t)
	board := NewReviewBoard(db)

	if _, err := board.Upsert(1, 1, 10, ReviewPayload{
		Recommendation: utils.RecommendationAccept,
		OverallScore:   5,
	}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	// An incomplete row (e.g. a draft imported from elsewhere) must not count.
	incomplete := models.Review{
		SubmissionID:   1,
		ArticleID:      1,
		ReviewerID:     11,
		Recommendation: utils.RecommendationReject,
		IsCompleted:    false,
	}
	if err := db.Create(&incomplete).Error; err != nil {
		t.Fatalf("failed to seed incomplete review: %v", err)
	}

	count, err := board.CountCompleted(1)
	if err != nil {
		t.Fatalf("CountCompleted returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 completed review, got %d", count)
	}
}

func TestReviewBoardUpsertOverwritesExistingRow(t *testing.T) {
	db := openTestDB(t)
	board := NewReviewBoard(db)

	first, err := board.Upsert(1, 1, 10, ReviewPayload{
		Recommendation: utils.RecommendationMajorRevision,
		OverallScore:   2,
		Comments:       "needs work",
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	time.Sleep(time.Millisecond)

	second, err := board.Upsert(1, 1, 10, ReviewPayload{
		Recommendation: utils.RecommendationAccept,
		OverallScore:   4,
		Comments:       "much improved",
	})
	if err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	if first.ReviewID != second.ReviewID {
		t.Fatalf("expected same review row, got %d then %d", first.ReviewID, second.ReviewID)
	}
	if second.Recommendation != utils.RecommendationAccept {
		t.Fatalf("expected updated recommendation, got %s", second.Recommendation)
	}

	reviews, err := board.ListBySubmission(1)
	if err != nil {
		t.Fatalf("ListBySubmission returned error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review row, got %d", len(reviews))
	}
}

func TestArticleStoreDeleteGuards(t *testing.T) {
	db := openTestDB(t)
	store := NewArticleStore(db)
	ledger := NewSubmissionLedger(db)

	article := seedArticle(t, db, 1, true)

	hasHistory, err := store.HasSubmissionHistory(article.ArticleID)
	if err != nil {
		t.Fatalf("HasSubmissionHistory returned error: %v", err)
	}
	if hasHistory {
		t.Fatal("fresh draft should have no submission history")
	}

	if _, err := ledger.Create(article.ArticleID, 1, Declarations{}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	hasHistory, err = store.HasSubmissionHistory(article.ArticleID)
	if err != nil {
		t.Fatalf("HasSubmissionHistory returned error: %v", err)
	}
	if !hasHistory {
		t.Fatal("expected submission history after ledger create")
	}
}
