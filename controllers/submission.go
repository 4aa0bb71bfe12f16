// controllers/submission.go - Submission listing and workflow operations
package controllers

import (
	"net/http"
	"strconv"

	"manuscript-review-api/config"
	"manuscript-review-api/models"
	"manuscript-review-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== SUBMISSION MANAGEMENT =====================

// GetSubmissions returns submissions visible to the caller: authors see
// their own, reviewers see the ones they are assigned to, editors and
// admins see everything.
func GetSubmissions(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	status := c.Query("status")
	articleID := c.Query("article_id")

	var submissions []models.Submission
	query := config.DB.Preload("Article").
		Preload("Submitter")

	switch actor.RoleID {
	case models.RoleEditor, models.RoleAdmin:
		// unrestricted
	case models.RoleReviewer:
		query = query.Joins("JOIN editor_assignments ON editor_assignments.submission_id = submissions.submission_id").
			Where("editor_assignments.editor_id = ? AND editor_assignments.is_active = ?", actor.UserID, true)
	default:
		query = query.Where("submitter_id = ?", actor.UserID)
	}

	if status != "" {
		query = query.Where("submissions.status = ?", status)
	}
	if articleID != "" {
		query = query.Where("submissions.article_id = ?", articleID)
	}

	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns a specific submission with its article.
func GetSubmission(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Article").
		Preload("Submitter").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !canViewSubmission(actor, &submission) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmissionHistory returns the status trail of a submission.
func GetSubmissionHistory(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !canViewSubmission(actor, &submission) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	var history []models.SubmissionStatusHistory
	if err := config.DB.Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
		"total":   len(history),
	})
}

// ===================== WORKFLOW OPERATIONS =====================

// AssignReviewers puts a pending submission under review.
func AssignReviewers(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req services.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assignments, err := newEngine().Assign(actor, submissionID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Reviewers assigned",
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// GetAssignments lists the active reviewer assignments of a submission.
func GetAssignments(c *gin.Context) {
	if _, ok := mustActor(c); !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	registry := services.NewAssignmentRegistry(config.DB)
	assignments, err := registry.ListActive(submissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// SubmitReview records the caller's review of a submission.
func SubmitReview(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, decisionReady, err := newEngine().Review(actor, submissionID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	message := "Review recorded"
	if decisionReady {
		message = "Review recorded; all reviews complete, submission awaits editorial decision"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        message,
		"review":         review,
		"decision_ready": decisionReady,
	})
}

// GetReviews lists a submission's reviews. Confidential comments are only
// visible to editors and admins.
func GetReviews(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !canViewSubmission(actor, &submission) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	board := services.NewReviewBoard(config.DB)
	reviews, err := board.ListBySubmission(submissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	if actor.RoleID != models.RoleEditor && actor.RoleID != models.RoleAdmin {
		for i := range reviews {
			reviews[i].ConfidentialComments = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// DecideSubmission records the editorial decision on a submission.
func DecideSubmission(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req services.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	article, submission, err := newEngine().Decide(actor, submissionID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Decision recorded",
		"article":    article,
		"submission": submission,
	})
}

func canViewSubmission(actor services.Actor, submission *models.Submission) bool {
	switch actor.RoleID {
	case models.RoleEditor, models.RoleAdmin:
		return true
	case models.RoleReviewer:
		registry := services.NewAssignmentRegistry(config.DB)
		assigned, err := registry.IsAssigned(submission.SubmissionID, actor.UserID)
		return err == nil && assigned
	}
	if submission.SubmitterID == actor.UserID {
		return true
	}
	// Co-authors may follow their manuscript's submissions too.
	var count int64
	config.DB.Model(&models.ArticleAuthor{}).
		Where("article_id = ? AND user_id = ?", submission.ArticleID, actor.UserID).
		Count(&count)
	return count > 0
}
