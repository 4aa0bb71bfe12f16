package services

import (
	"errors"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"gorm.io/gorm"
)

// ArticleStore owns article rows and their co-author list. Bind it to a
// transaction with NewArticleStore(tx) when composing with other stores.
type ArticleStore struct {
	db *gorm.DB
}

func NewArticleStore(db *gorm.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) ByID(articleID int) (*models.Article, error) {
	var article models.Article
	err := s.db.Where("article_id = ? AND delete_at IS NULL", articleID).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) Create(article *models.Article) error {
	now := time.Now()
	article.Status = utils.ArticleStatusDraft
	article.CreatedAt = now
	article.UpdatedAt = now
	return s.db.Create(article).Error
}

// Update persists author-editable fields. Status is deliberately not part
// of the update set; only the workflow engine writes it.
func (s *ArticleStore) Update(article *models.Article) error {
	return s.db.Model(&models.Article{}).
		Where("article_id = ?", article.ArticleID).
		Updates(map[string]interface{}{
			"title":           article.Title,
			"abstract":        article.Abstract,
			"body":            article.Body,
			"keywords":        article.Keywords,
			"language":        article.Language,
			"category_id":     article.CategoryID,
			"manuscript_file": article.ManuscriptFile,
			"updated_at":      time.Now(),
		}).Error
}

// IsEditable reports whether authors may still modify the manuscript.
func (s *ArticleStore) IsEditable(article *models.Article) bool {
	switch article.Status {
	case utils.ArticleStatusDraft, utils.ArticleStatusRevisionRequired:
		return true
	}
	return false
}

// CheckComplete runs the submission completeness rules against the stored
// manuscript.
func (s *ArticleStore) CheckComplete(article *models.Article) utils.FieldIssues {
	return utils.ValidateManuscriptComplete(article.Abstract, article.Body, article.ManuscriptFile)
}

// SoftDelete marks a draft article deleted. Articles with submission
// history must never reach this; the engine guards before calling.
func (s *ArticleStore) SoftDelete(articleID int) error {
	now := time.Now()
	return s.db.Model(&models.Article{}).
		Where("article_id = ?", articleID).
		Update("delete_at", &now).Error
}

// HasSubmissionHistory reports whether any submission was ever created for
// the article.
func (s *ArticleStore) HasSubmissionHistory(articleID int) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("article_id = ?", articleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsAuthor reports whether the user is the owning author or a listed
// co-author of the article.
func (s *ArticleStore) IsAuthor(article *models.Article, userID int) (bool, error) {
	if article.AuthorID == userID {
		return true, nil
	}
	var count int64
	if err := s.db.Model(&models.ArticleAuthor{}).
		Where("article_id = ? AND user_id = ?", article.ArticleID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListCoauthors returns the ordered co-author rows with user data.
func (s *ArticleStore) ListCoauthors(articleID int) ([]models.ArticleAuthor, error) {
	var coauthors []models.ArticleAuthor
	err := s.db.Where("article_id = ?", articleID).
		Preload("User").
		Order("author_order ASC").
		Find(&coauthors).Error
	return coauthors, err
}

// AddCoauthor appends a co-author, auto-assigning the next author order
// when none is supplied.
func (s *ArticleStore) AddCoauthor(article *models.Article, userID int, order int, isCorresponding bool) (*models.ArticleAuthor, error) {
	if order == 0 {
		var maxOrder int
		s.db.Model(&models.ArticleAuthor{}).
			Where("article_id = ?", article.ArticleID).
			Select("COALESCE(MAX(author_order), 1)").
			Scan(&maxOrder)
		order = maxOrder + 1
	}

	coauthor := models.ArticleAuthor{
		ArticleID:       article.ArticleID,
		UserID:          userID,
		AuthorOrder:     order,
		IsCorresponding: isCorresponding,
		CreatedAt:       time.Now(),
	}
	if err := s.db.Create(&coauthor).Error; err != nil {
		return nil, err
	}
	return &coauthor, nil
}

func (s *ArticleStore) RemoveCoauthor(articleID, userID int) error {
	return s.db.Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&models.ArticleAuthor{}).Error
}
