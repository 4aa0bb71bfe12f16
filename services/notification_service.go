package services

import (
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"manuscript-review-api/config"
	"manuscript-review-api/models"
	"manuscript-review-api/utils"

	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows and sends the
// matching email. Everything here is best-effort: failures are logged and
// never propagate to the workflow operation that triggered them.
type NotificationService struct {
	db       *gorm.DB
	sendMail func(to []string, subject, html string) error
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, sendMail: config.SendMail}
}

// NotifyDecision informs the author of the editorial decision on their
// submission.
func (s *NotificationService) NotifyDecision(authorID int, article models.Article, submission models.Submission, decision string, editorComments string) {
	if s.db == nil || authorID == 0 {
		return
	}

	var title, message, typ string
	switch decision {
	case utils.DecisionAccept:
		title = "Your manuscript has been accepted"
		message = fmt.Sprintf("Submission %s (%q) was accepted for publication.", submission.SubmissionNumber, article.Title)
		typ = "success"
	case utils.DecisionReject:
		title = "Decision on your manuscript"
		message = fmt.Sprintf("Submission %s (%q) was not accepted.", submission.SubmissionNumber, article.Title)
		typ = "warning"
	case utils.DecisionRevisionRequired:
		title = "Revision requested for your manuscript"
		message = fmt.Sprintf("Submission %s (%q) requires revision before it can be reconsidered.", submission.SubmissionNumber, article.Title)
		typ = "info"
	default:
		title = "Update on your manuscript"
		message = fmt.Sprintf("Submission %s (%q) has been updated.", submission.SubmissionNumber, article.Title)
		typ = "info"
	}

	if editorComments != "" {
		message = fmt.Sprintf("%s\n\nEditor comments: %s", message, editorComments)
	}

	submissionID := submission.SubmissionID
	notification := models.Notification{
		UserID:              authorID,
		Title:               title,
		Message:             message,
		Type:                typ,
		RelatedSubmissionID: &submissionID,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("failed to create decision notification for user %d: %v", authorID, err)
	}

	var author models.User
	if err := s.db.Select("user_id", "user_fname", "user_lname", "email").
		Where("user_id = ? AND delete_at IS NULL", authorID).
		First(&author).Error; err != nil {
		log.Printf("failed to load author %d for decision email: %v", authorID, err)
		return
	}

	html := buildDecisionEmail(title, author.FullName(), message)
	s.sendMailSafe([]string{author.Email}, title, html)
}

func (s *NotificationService) sendMailSafe(to []string, subject, html string) {
	if s.sendMail == nil {
		return
	}
	if err := s.sendMail(to, subject, html); err != nil {
		log.Printf("notification email send failed (subject=%q to=%v): %v", subject, to, err)
	}
}

func buildDecisionEmail(subject, name, message string) string {
	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Dear %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">%s</p>
    <p style="margin:0 0 0 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}
