// controllers/coauthor.go - Co-author management
package controllers

import (
	"net/http"
	"strconv"

	"manuscript-review-api/config"
	"manuscript-review-api/models"
	"manuscript-review-api/services"

	"github.com/gin-gonic/gin"
)

// AddCoauthor adds a co-author to an article
func AddCoauthor(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	type AddCoauthorRequest struct {
		UserID          int  `json:"user_id" binding:"required"`
		AuthorOrder     int  `json:"author_order"`
		IsCorresponding bool `json:"is_corresponding"`
	}

	var req AddCoauthorRequest
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

	// Only the owning author (or admin) manages the author list
	if article.AuthorID != actor.UserID && actor.RoleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning author can manage co-authors"})
		return
	}

	if !store.IsEditable(article) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify a submitted manuscript"})
		return
	}

	// Validate co-author user exists
	var coauthorUser models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).First(&coauthorUser).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Co-author user not found"})
		return
	}

	// Prevent adding the owning author as co-author
	if article.AuthorID == req.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add the owning author as co-author"})
		return
	}

	// Check if user is already a co-author
	var existing models.ArticleAuthor
	if err := config.DB.Where("article_id = ? AND user_id = ?", articleID, req.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already a co-author"})
		return
	}

	coauthor, err := store.AddCoauthor(article, req.UserID, req.AuthorOrder, req.IsCorresponding)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add co-author"})
		return
	}

	config.DB.Preload("User").First(coauthor, coauthor.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Co-author added successfully",
		"coauthor": coauthor,
	})
}

// GetCoauthors lists an article's co-authors in author order
func GetCoauthors(c *gin.Context) {
	if _, ok := mustActor(c); !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	store := services.NewArticleStore(config.DB)
	coauthors, err := store.ListCoauthors(articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch co-authors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"coauthors": coauthors,
		"total":     len(coauthors),
	})
}

// RemoveCoauthor removes a co-author from an editable article
func RemoveCoauthor(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil || articleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
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

	if article.AuthorID != actor.UserID && actor.RoleID != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning author can manage co-authors"})
		return
	}

	if !store.IsEditable(article) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify a submitted manuscript"})
		return
	}

	if err := store.RemoveCoauthor(articleID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove co-author"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Co-author removed successfully",
	})
}
