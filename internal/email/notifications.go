package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"actadash/internal/config"
	"actadash/internal/models"
)

// Sender delivers a single message.
type Sender interface {
	SendEmail(ctx context.Context, to []string, subject, htmlBody, textBody string) error
}

// Notifier sends the approval notifications for generated documents.
type Notifier struct {
	sender    Sender
	templates *Templates
	logger    *slog.Logger
	now       func() time.Time
}

// NewNotifier creates a notifier backed by the SMTP service.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	return NewNotifierWithSender(NewService(cfg, logger), NewTemplates(cfg), logger)
}

// NewNotifierWithSender creates a notifier delivering through sender.
func NewNotifierWithSender(sender Sender, templates *Templates, logger *slog.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		templates: templates,
		logger:    logger,
		now:       time.Now,
	}
}

// SendApprovalEmail asks clientEmail to approve the document actaID. A failed
// or unconfigured transport is returned as ErrDeliveryUnavailable; it is never
// reported as sent.
func (n *Notifier) SendApprovalEmail(ctx context.Context, actaID, clientEmail string) (*models.ApprovalEmailResponse, error) {
	subject, htmlBody, textBody := n.templates.ApprovalRequest(actaID, clientEmail)

	if err := n.sender.SendEmail(ctx, []string{clientEmail}, subject, htmlBody, textBody); err != nil {
		n.logger.Warn("approval email not delivered", "acta_id", actaID, "error", err)
		return nil, err
	}

	correlationID := uuid.NewString()
	n.logger.Info("approval email sent", "acta_id", actaID, "correlation_id", correlationID)

	return &models.ApprovalEmailResponse{
		ActaID:        actaID,
		ClientEmail:   clientEmail,
		Status:        "sent",
		CorrelationID: correlationID,
		Message:       "Approval email sent to " + clientEmail,
		SentAt:        n.now().UTC().Format(time.RFC3339),
	}, nil
}
