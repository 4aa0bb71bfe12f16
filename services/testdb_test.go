package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema.
// MaxOpenConns(1) keeps every connection on the same memory database and
// serializes concurrent transactions the way SQLite expects.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.ArticleAuthor{},
		&models.Submission{},
		&models.SubmissionStatusHistory{},
		&models.EditorAssignment{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, userID, roleID int, name string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		UserID:    userID,
		UserFname: name,
		UserLname: "Test",
		Email:     fmt.Sprintf("%s%d@example.org", strings.ToLower(name), userID),
		Password:  "x",
		RoleID:    roleID,
		CreateAt:  &now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %d: %v", userID, err)
	}
	return user
}

// seedArticle creates a draft that passes the completeness rules unless
// complete is false, in which case the abstract is left too short.
func seedArticle(t *testing.T, db *gorm.DB, authorID int, complete bool) *models.Article {
	t.Helper()

	abstract := strings.Repeat("a", utils.MinAbstractLength+20)
	if !complete {
		abstract = strings.Repeat("a", 50)
	}

	manuscript := "uploads/manuscript-v1.pdf"
	article := &models.Article{
		Title:          "Test Manuscript",
		Abstract:       abstract,
		Body:           strings.Repeat("b", utils.MinBodyLength+100),
		Keywords:       "testing,workflow",
		Language:       "en",
		Status:         utils.ArticleStatusDraft,
		AuthorID:       authorID,
		ManuscriptFile: &manuscript,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}
	return article
}

// recordingNotifier captures decision notifications without touching SMTP.
type recordingNotifier struct {
	calls []recordedNotification
}

type recordedNotification struct {
	AuthorID int
	Decision string
	Comments string
}

func (n *recordingNotifier) NotifyDecision(authorID int, article models.Article, submission models.Submission, decision string, editorComments string) {
	n.calls = append(n.calls, recordedNotification{
		AuthorID: authorID,
		Decision: decision,
		Comments: editorComments,
	})
}
