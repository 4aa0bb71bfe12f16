package services

import (
	"fmt"
	"strings"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated caller as resolved by the auth middleware.
type Actor struct {
	UserID int
	RoleID int
}

func (a Actor) isEditorial() bool {
	return a.RoleID == models.RoleEditor || a.RoleID == models.RoleAdmin
}

func (a Actor) isAdmin() bool {
	return a.RoleID == models.RoleAdmin
}

// DecisionNotifier receives the best-effort author notification after a
// decision commits. Implementations must swallow their own failures.
type DecisionNotifier interface {
	NotifyDecision(authorID int, article models.Article, submission models.Submission, decision string, editorComments string)
}

// WorkflowEngine is the only component that writes article and submission
// statuses. Every operation validates its preconditions against the
// stores, then applies its mutations in a single transaction.
type WorkflowEngine struct {
	db       *gorm.DB
	notifier DecisionNotifier
}

func NewWorkflowEngine(db *gorm.DB, notifier DecisionNotifier) *WorkflowEngine {
	return &WorkflowEngine{db: db, notifier: notifier}
}

type SubmitRequest struct {
	CoverLetter        string `json:"cover_letter"`
	EthicsStatement    string `json:"ethics_statement"`
	ConflictOfInterest string `json:"conflict_of_interest"`
}

type AssignRequest struct {
	ReviewerIDs []int `json:"reviewer_ids"`
}

type ReviewRequest struct {
	Recommendation       string  `json:"recommendation"`
	TechnicalQuality     int     `json:"technical_quality"`
	Novelty              int     `json:"novelty"`
	Significance         int     `json:"significance"`
	Clarity              int     `json:"clarity"`
	OverallScore         int     `json:"overall_score"`
	Comments             string  `json:"comments"`
	ConfidentialComments *string `json:"confidential_comments"`
}

type DecideRequest struct {
	Decision       string `json:"decision"`
	EditorComments string `json:"editor_comments"`
}

// transitionArticle is the single code path that writes articles.status.
// The guarded UPDATE keyed on the previously read status makes concurrent
// writers lose with RowsAffected == 0 instead of double-transitioning.
func (e *WorkflowEngine) transitionArticle(tx *gorm.DB, article *models.Article, to string, extra map[string]interface{}) error {
	if !utils.CanTransitionArticle(article.Status, to) {
		return newPreconditionError(
			fmt.Sprintf("Article cannot move from %s to %s", article.Status, to), nil)
	}

	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for column, value := range extra {
		updates[column] = value
	}

	res := tx.Model(&models.Article{}).
		Where("article_id = ? AND status = ?", article.ArticleID, article.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newConflictError("Article was modified concurrently")
	}

	article.Status = to
	return nil
}

// Submit creates a new submission for a draft or revision-required
// article. Owner only; the manuscript must pass the completeness rules
// and no other active submission may exist.
func (e *WorkflowEngine) Submit(actor Actor, articleID int, req SubmitRequest) (*models.Submission, error) {
	var submission *models.Submission

	err := e.db.Transaction(func(tx *gorm.DB) error {
		articles := NewArticleStore(tx)
		ledger := NewSubmissionLedger(tx)

		article, err := articles.ByID(articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		if article.AuthorID != actor.UserID {
			return newAuthorizationError("Only the owning author can submit this article")
		}

		if article.Status != utils.ArticleStatusDraft && article.Status != utils.ArticleStatusRevisionRequired {
			return newPreconditionError(
				fmt.Sprintf("Article in status %s cannot be submitted", article.Status), nil)
		}

		if issues := articles.CheckComplete(article); issues.HasIssues() {
			return newPreconditionError("Article is incomplete", issues)
		}

		active, err := ledger.ActiveByArticle(articleID)
		if err != nil {
			return err
		}
		if active != nil {
			return newPreconditionError("Article already has an active submission", nil)
		}

		created, err := ledger.Create(articleID, actor.UserID, Declarations{
			CoverLetter:        req.CoverLetter,
			EthicsStatement:    req.EthicsStatement,
			ConflictOfInterest: req.ConflictOfInterest,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		if err := e.transitionArticle(tx, article, utils.ArticleStatusSubmitted, map[string]interface{}{
			"submitted_at": &now,
		}); err != nil {
			return err
		}

		if err := ledger.RecordHistory(created.SubmissionID, nil, utils.SubmissionStatusPending, actor.UserID, "manuscript submitted"); err != nil {
			return err
		}

		submission = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// Assign gives reviewers an active mandate over a pending submission and
// moves it into review. Editors and admins only. Assigning a reviewer who
// is already assigned is a no-op; assigning to a submission that is
// already under review fails.
func (e *WorkflowEngine) Assign(actor Actor, submissionID int, req AssignRequest) ([]models.EditorAssignment, error) {
	if !actor.isEditorial() {
		return nil, newAuthorizationError("Only editors can assign reviewers")
	}

	if len(req.ReviewerIDs) == 0 {
		issues := utils.FieldIssues{}
		issues.Add("reviewer_ids", "at least one reviewer is required")
		return nil, newValidationError("No reviewers supplied", issues)
	}

	var assignments []models.EditorAssignment

	err := e.db.Transaction(func(tx *gorm.DB) error {
		ledger := NewSubmissionLedger(tx)
		registry := NewAssignmentRegistry(tx)
		articles := NewArticleStore(tx)

		submission, err := ledger.ByID(submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return newNotFoundError("Submission not found")
		}

		if submission.Status != utils.SubmissionStatusPending {
			return newConflictError("Submission is not awaiting reviewer assignment")
		}

		article, err := articles.ByID(submission.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		issues := utils.FieldIssues{}
		for _, reviewerID := range req.ReviewerIDs {
			var reviewer models.User
			if err := tx.Where("user_id = ? AND delete_at IS NULL", reviewerID).First(&reviewer).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					issues.Add("reviewer_ids", fmt.Sprintf("user %d not found", reviewerID))
					continue
				}
				return err
			}
			if reviewer.RoleID != models.RoleReviewer && reviewer.RoleID != models.RoleEditor {
				issues.Add("reviewer_ids", fmt.Sprintf("user %d does not hold the reviewer role", reviewerID))
				continue
			}
			isAuthor, err := articles.IsAuthor(article, reviewerID)
			if err != nil {
				return err
			}
			if isAuthor {
				issues.Add("reviewer_ids", fmt.Sprintf("user %d is an author of the manuscript", reviewerID))
			}
		}
		if issues.HasIssues() {
			return newValidationError("Invalid reviewer list", issues)
		}

		if _, err := registry.Assign(submissionID, req.ReviewerIDs, actor.UserID); err != nil {
			return err
		}

		flipped, err := ledger.TransitionStatus(submissionID,
			[]string{utils.SubmissionStatusPending}, utils.SubmissionStatusReviewing)
		if err != nil {
			return err
		}
		if !flipped {
			return newConflictError("Submission status changed concurrently")
		}

		if err := e.transitionArticle(tx, article, utils.ArticleStatusUnderReview, nil); err != nil {
			return err
		}

		oldStatus := utils.SubmissionStatusPending
		if err := ledger.RecordHistory(submissionID, &oldStatus, utils.SubmissionStatusReviewing, actor.UserID, "reviewers assigned"); err != nil {
			return err
		}

		assignments, err = registry.ListActive(submissionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Review upserts the caller's review and, when it is the last outstanding
// one, flips the submission to decision-made. The count-and-compare runs
// inside the same transaction as the upsert; the guarded status UPDATE
// ensures exactly one of two concurrent last reviewers performs the flip.
func (e *WorkflowEngine) Review(actor Actor, submissionID int, req ReviewRequest) (*models.Review, bool, error) {
	recommendation, issues := utils.ValidateRecommendation(req.Recommendation)
	for field, problems := range utils.ValidateReviewScores(
		req.TechnicalQuality, req.Novelty, req.Significance, req.Clarity, req.OverallScore) {
		issues[field] = append(issues[field], problems...)
	}
	if issues.HasIssues() {
		return nil, false, newValidationError("Invalid review payload", issues)
	}

	var (
		review        *models.Review
		decisionReady bool
	)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		ledger := NewSubmissionLedger(tx)
		registry := NewAssignmentRegistry(tx)
		board := NewReviewBoard(tx)

		// Locked read: two reviewers finishing the last two reviews must
		// serialize here, or both completion counts miss the other's
		// uncommitted row and the decision_made flip never happens.
		submission, err := ledger.ByIDLocked(submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return newNotFoundError("Submission not found")
		}

		switch submission.Status {
		case utils.SubmissionStatusAssigned, utils.SubmissionStatusReviewing:
			// review window open
		case utils.SubmissionStatusDecisionMade, utils.SubmissionStatusCompleted:
			return newPreconditionError("Review window is closed for this submission", nil)
		default:
			return newPreconditionError("Submission has no reviewers assigned yet", nil)
		}

		if !actor.isEditorial() {
			assigned, err := registry.IsAssigned(submissionID, actor.UserID)
			if err != nil {
				return err
			}
			if !assigned {
				return newAuthorizationError("You are not assigned to review this submission")
			}
		}

		review, err = board.Upsert(submissionID, submission.ArticleID, actor.UserID, ReviewPayload{
			Recommendation:       recommendation,
			TechnicalQuality:     req.TechnicalQuality,
			Novelty:              req.Novelty,
			Significance:         req.Significance,
			Clarity:              req.Clarity,
			OverallScore:         req.OverallScore,
			Comments:             utils.SanitizeInput(req.Comments),
			ConfidentialComments: req.ConfidentialComments,
		})
		if err != nil {
			return err
		}

		completed, err := board.CountCompleted(submissionID)
		if err != nil {
			return err
		}
		total, err := registry.CountActive(submissionID)
		if err != nil {
			return err
		}

		if total == 0 || completed < total {
			return nil
		}

		flipped, err := ledger.TransitionStatus(submissionID,
			[]string{utils.SubmissionStatusAssigned, utils.SubmissionStatusReviewing},
			utils.SubmissionStatusDecisionMade)
		if err != nil {
			return err
		}
		if flipped {
			decisionReady = true
			oldStatus := submission.Status
			if err := ledger.RecordHistory(submissionID, &oldStatus, utils.SubmissionStatusDecisionMade, actor.UserID, "all reviews completed"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return review, decisionReady, nil
}

// Decide records the editor's terminal judgment, closes the submission and
// moves the article accordingly. The author notification runs after the
// transaction commits and never affects the outcome.
func (e *WorkflowEngine) Decide(actor Actor, submissionID int, req DecideRequest) (*models.Article, *models.Submission, error) {
	if !actor.isEditorial() {
		return nil, nil, newAuthorizationError("Only editors can decide on a submission")
	}

	decision, issues := utils.ValidateDecision(req.Decision)
	if issues.HasIssues() {
		return nil, nil, newValidationError("Invalid decision", issues)
	}

	var (
		article    *models.Article
		submission *models.Submission
	)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		ledger := NewSubmissionLedger(tx)
		articles := NewArticleStore(tx)

		var err error
		submission, err = ledger.ByID(submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return newNotFoundError("Submission not found")
		}

		if submission.Status != utils.SubmissionStatusDecisionMade {
			return newConflictError("Submission is not awaiting an editorial decision")
		}

		article, err = articles.ByID(submission.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		targetStatus, ok := utils.ArticleStatusForDecision(decision)
		if !ok {
			return newValidationError("Invalid decision", nil)
		}

		if err := e.transitionArticle(tx, article, targetStatus, nil); err != nil {
			return err
		}

		flipped, err := ledger.TransitionStatus(submissionID,
			[]string{utils.SubmissionStatusDecisionMade}, utils.SubmissionStatusCompleted)
		if err != nil {
			return err
		}
		if !flipped {
			return newConflictError("Submission was decided concurrently")
		}

		oldStatus := utils.SubmissionStatusDecisionMade
		return ledger.RecordHistory(submissionID, &oldStatus, utils.SubmissionStatusCompleted, actor.UserID,
			fmt.Sprintf("editorial decision: %s", decision))
	})
	if err != nil {
		return nil, nil, err
	}

	if e.notifier != nil {
		e.notifier.NotifyDecision(article.AuthorID, *article, *submission, decision, strings.TrimSpace(req.EditorComments))
	}

	submission.Status = utils.SubmissionStatusCompleted
	return article, submission, nil
}

// Publish moves an accepted article to published, minting a DOI if the
// article does not carry one yet.
func (e *WorkflowEngine) Publish(actor Actor, articleID int) (*models.Article, error) {
	if !actor.isEditorial() {
		return nil, newAuthorizationError("Only editors can publish an article")
	}

	var article *models.Article

	err := e.db.Transaction(func(tx *gorm.DB) error {
		articles := NewArticleStore(tx)

		var err error
		article, err = articles.ByID(articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		now := time.Now()
		extra := map[string]interface{}{
			"published_at": &now,
		}
		if article.DOI == nil || strings.TrimSpace(*article.DOI) == "" {
			doi := generateDOI()
			extra["doi"] = doi
			article.DOI = &doi
		}

		if err := e.transitionArticle(tx, article, utils.ArticleStatusPublished, extra); err != nil {
			return err
		}
		article.PublishedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Withdraw retires a non-terminal article. The owning author or an
// editor/admin may withdraw; any active submission is closed with it.
func (e *WorkflowEngine) Withdraw(actor Actor, articleID int, reason string) (*models.Article, error) {
	var article *models.Article

	err := e.db.Transaction(func(tx *gorm.DB) error {
		articles := NewArticleStore(tx)
		ledger := NewSubmissionLedger(tx)

		var err error
		article, err = articles.ByID(articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		if article.AuthorID != actor.UserID && !actor.isEditorial() {
			return newAuthorizationError("Only the owning author or an editor can withdraw this article")
		}

		if utils.IsTerminalArticleStatus(article.Status) {
			return newPreconditionError(
				fmt.Sprintf("Article in status %s cannot be withdrawn", article.Status), nil)
		}

		if err := e.transitionArticle(tx, article, utils.ArticleStatusWithdrawn, nil); err != nil {
			return err
		}

		active, err := ledger.ActiveByArticle(articleID)
		if err != nil {
			return err
		}
		if active == nil {
			return nil
		}

		flipped, err := ledger.TransitionStatus(active.SubmissionID,
			[]string{utils.SubmissionStatusPending, utils.SubmissionStatusAssigned,
				utils.SubmissionStatusReviewing, utils.SubmissionStatusDecisionMade},
			utils.SubmissionStatusCompleted)
		if err != nil {
			return err
		}
		if flipped {
			note := "article withdrawn"
			if reason := strings.TrimSpace(reason); reason != "" {
				note = fmt.Sprintf("article withdrawn: %s", reason)
			}
			oldStatus := active.Status
			return ledger.RecordHistory(active.SubmissionID, &oldStatus, utils.SubmissionStatusCompleted, actor.UserID, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle soft-deletes a draft that has never been submitted. Any
// submission history makes the article permanent.
func (e *WorkflowEngine) DeleteArticle(actor Actor, articleID int) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		articles := NewArticleStore(tx)

		article, err := articles.ByID(articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return newNotFoundError("Article not found")
		}

		if article.AuthorID != actor.UserID && !actor.isAdmin() {
			return newAuthorizationError("Only the owning author can delete this article")
		}

		if article.Status != utils.ArticleStatusDraft {
			return newPreconditionError("Only draft articles can be deleted", nil)
		}

		hasHistory, err := articles.HasSubmissionHistory(articleID)
		if err != nil {
			return err
		}
		if hasHistory {
			return newPreconditionError("Articles with submission history cannot be deleted", nil)
		}

		return articles.SoftDelete(articleID)
	})
}

func generateDOI() string {
	return fmt.Sprintf("10.52285/ms.%s", strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]))
}
