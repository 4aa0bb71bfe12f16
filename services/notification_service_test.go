package services

import (
	"strings"
	"testing"

	"manuscript-review-api/models"
	"manuscript-review-api/utils"
)

func TestNotifyDecisionWritesRowAndSendsMail(t *testing.T) {
	db := openTestDB(t)
	author := seedUser(t, db, 1, models.RoleAuthor, "Author")

	var (
		sentTo      []string
		sentSubject string
		sentBody    string
	)

	svc := &NotificationService{
		db: db,
		sendMail: func(to []string, subject, html string) error {
			sentTo = to
			sentSubject = subject
			sentBody = html
			return nil
		},
	}

	article := models.Article{ArticleID: 1, Title: "On Testing", AuthorID: author.UserID}
	submission := models.Submission{SubmissionID: 5, SubmissionNumber: "MS-AAAA1111", ArticleID: 1}

	svc.NotifyDecision(author.UserID, article, submission, utils.DecisionAccept, "Congratulations")

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification row, got %d", len(notifications))
	}
	if notifications[0].UserID != author.UserID {
		t.Fatalf("notification targeted user %d, want %d", notifications[0].UserID, author.UserID)
	}
	if notifications[0].Type != "success" {
		t.Fatalf("expected success type for accept, got %s", notifications[0].Type)
	}
	if notifications[0].RelatedSubmissionID == nil || *notifications[0].RelatedSubmissionID != submission.SubmissionID {
		t.Fatal("expected notification linked to the submission")
	}

	if len(sentTo) != 1 || sentTo[0] != author.Email {
		t.Fatalf("expected mail to %s, got %v", author.Email, sentTo)
	}
	if !strings.Contains(sentSubject, "accepted") {
		t.Fatalf("unexpected subject %q", sentSubject)
	}
	if !strings.Contains(sentBody, "MS-AAAA1111") {
		t.Fatal("expected email body to mention the submission number")
	}
}

func TestNotifyDecisionSwallowsMailFailure(t *testing.T) {
	db := openTestDB(t)
	author := seedUser(t, db, 1, models.RoleAuthor, "Author")

	svc := &NotificationService{
		db: db,
		sendMail: func(to []string, subject, html string) error {
			return errDialFailed
		},
	}

	article := models.Article{ArticleID: 1, Title: "On Testing", AuthorID: author.UserID}
	submission := models.Submission{SubmissionID: 5, SubmissionNumber: "MS-AAAA1111", ArticleID: 1}

	// Must not panic or propagate; the notification row still lands.
	svc.NotifyDecision(author.UserID, article, submission, utils.DecisionReject, "")

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected notification row despite mail failure, got %d", count)
	}
}

var errDialFailed = &dialError{}

type dialError struct{}

func (*dialError) Error() string { return "smtp dial failed" }
