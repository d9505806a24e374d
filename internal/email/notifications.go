package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"uilibs/internal/config"
	"uilibs/internal/models"
)

// AdminEmailGetter is an interface for resolving notification recipients.
type AdminEmailGetter interface {
	GetAdminEmails(ctx context.Context) ([]string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier sends email notifications for moderation events.
type Notifier struct {
	service   *Service
	templates *Templates
	db        AdminEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db AdminEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		db:        db,
	}
}

// NotifySubmissionReceived notifies admins that a new library needs review.
func (n *Notifier) NotifySubmissionReceived(ctx context.Context, sub *models.Submission, submitter *models.User) {
	if !n.service.IsEnabled() {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		log.Printf("Failed to get admin emails: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.SubmissionReceived(sub, submitter)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}

// NotifySubmissionApproved notifies the submitter that their library was published.
func (n *Notifier) NotifySubmissionApproved(ctx context.Context, sub *models.Submission, lib *models.Library, approver *models.User) {
	if !n.service.IsEnabled() {
		return
	}

	submitter, err := n.db.GetUserByID(ctx, sub.UserID)
	if err != nil {
		log.Printf("Failed to get submitter: %v", err)
		return
	}
	if submitter.Email == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.SubmissionApproved(sub, lib, approver)
	n.service.SendAsync([]string{submitter.Email}, subject, htmlBody, textBody)
}

// NotifySubmissionRejected notifies the submitter that their library was declined.
func (n *Notifier) NotifySubmissionRejected(ctx context.Context, sub *models.Submission, reviewer *models.User, notes string) {
	if !n.service.IsEnabled() {
		return
	}

	submitter, err := n.db.GetUserByID(ctx, sub.UserID)
	if err != nil {
		log.Printf("Failed to get submitter: %v", err)
		return
	}
	if submitter.Email == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.SubmissionRejected(sub, reviewer, notes)
	n.service.SendAsync([]string{submitter.Email}, subject, htmlBody, textBody)
}

// NotifyHealthCheckFailures notifies admins about failed website checks.
func (n *Notifier) NotifyHealthCheckFailures(ctx context.Context, libraries []models.Library) {
	if !n.service.IsEnabled() || len(libraries) == 0 {
		return
	}

	emails, err := n.db.GetAdminEmails(ctx)
	if err != nil {
		log.Printf("Failed to get admin emails for health notification: %v", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	subject, htmlBody, textBody := n.templates.HealthCheckFailed(libraries)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}
