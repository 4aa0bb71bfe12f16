// controllers/article.go - Article management and article-level workflow actions
package controllers

import (
	"net/http"
	"strconv"

	"manuscript-review-api/config"
	"manuscript-review-api/models"
	"manuscript-review-api/services"
	"manuscript-review-api/utils"

	"github.com/gin-gonic/gin"
)

type ArticleRequest struct {
	Title          string  `json:"title" binding:"required"`
	Abstract       string  `json:"abstract"`
	Body           string  `json:"body"`
	Keywords       string  `json:"keywords"`
	Language       string  `json:"language"`
	CategoryID     *int    `json:"category_id"`
	ManuscriptFile *string `json:"manuscript_file"`
}

// CreateArticle creates a new draft owned by the caller.
func CreateArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	article := models.Article{
		Title:          utils.SanitizeInput(req.Title),
		Abstract:       req.Abstract,
		Body:           req.Body,
		Keywords:       utils.SanitizeInput(req.Keywords),
		Language:       language,
		AuthorID:       actor.UserID,
		CategoryID:     req.CategoryID,
		ManuscriptFile: req.ManuscriptFile,
	}

	store := services.NewArticleStore(config.DB)
	if err := store.Create(&article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"article": article,
	})
}

// GetArticles lists the caller's articles; editors and admins see all.
func GetArticles(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	status := c.Query("status")

	var articles []models.Article
	query := config.DB.Preload("Author").
		Preload("Category").
		Where("delete_at IS NULL")

	if actor.RoleID != models.RoleEditor && actor.RoleID != models.RoleAdmin {
		query = query.Where("author_id = ?", actor.UserID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
		"total":    len(articles),
	})
}

// GetArticle returns a single article with its co-authors.
func GetArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var article models.Article
	query := config.DB.Preload("Author").
		Preload("Category").
		Preload("Coauthor.User").
		Where("article_id = ? AND delete_at IS NULL", articleID)

	if err := query.First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	// Authors only see their own manuscripts; reviewers see those they are
	// assigned to; editors see everything.
	if actor.RoleID == models.RoleAuthor {
		store := services.NewArticleStore(config.DB)
		isAuthor, err := store.IsAuthor(&article, actor.UserID)
		if err != nil || !isAuthor {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// UpdateArticle modifies an editable manuscript. Status never changes here.
func UpdateArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := services.NewArticleStore(config.DB)
	article, err := store.ByID(articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load article"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	isAuthor, err := store.IsAuthor(article, actor.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check authorship"})
		return
	}
	if !isAuthor && actor.RoleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only authors can edit this article"})
		return
	}

	if !store.IsEditable(article) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article cannot be edited in its current status"})
		return
	}

	article.Title = utils.SanitizeInput(req.Title)
	article.Abstract = req.Abstract
	article.Body = req.Body
	article.Keywords = utils.SanitizeInput(req.Keywords)
	if req.Language != "" {
		article.Language = req.Language
	}
	article.CategoryID = req.CategoryID
	if req.ManuscriptFile != nil {
		article.ManuscriptFile = req.ManuscriptFile
	}

	if err := store.Update(article); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// DeleteArticle soft-deletes a never-submitted draft.
func DeleteArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	if err := newEngine().DeleteArticle(actor, articleID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article deleted successfully",
	})
}

// SubmitArticle starts a new evaluation attempt for the manuscript.
func SubmitArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	submission, err := newEngine().Submit(actor, articleID, req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Manuscript submitted for review",
		"submission": submission,
	})
}

// PublishArticle moves an accepted article to published.
func PublishArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	article, err := newEngine().Publish(actor, articleID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article published",
		"article": article,
	})
}

// WithdrawArticle retires a non-terminal article.
func WithdrawArticle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	article, err := newEngine().Withdraw(actor, articleID, req.Reason)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article withdrawn",
		"article": article,
	})
}
