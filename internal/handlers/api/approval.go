package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
	"actadash/internal/email"
	"actadash/internal/models"
	"actadash/internal/validation"
)

// ApprovalNotifier sends the approval request for a document.
type ApprovalNotifier interface {
	SendApprovalEmail(ctx context.Context, actaID, clientEmail string) (*models.ApprovalEmailResponse, error)
}

// ApprovalHandler serves the approval email trigger.
type ApprovalHandler struct {
	notifier ApprovalNotifier
}

// NewApprovalHandler creates a new approval handler.
func NewApprovalHandler(notifier ApprovalNotifier) *ApprovalHandler {
	return &ApprovalHandler{notifier: notifier}
}

// Send validates {acta_id, client_email} and hands the message to the mail
// transport.
func (h *ApprovalHandler) Send(c fiber.Ctx) error {
	var body struct {
		ActaID      string `json:"acta_id"`
		ClientEmail string `json:"client_email"`
	}
	if err := decodeBody(c, &body); err != nil {
		return err
	}

	actaID := strings.TrimSpace(body.ActaID)
	clientEmail := strings.TrimSpace(body.ClientEmail)

	var missing []string
	if actaID == "" {
		missing = append(missing, "acta_id")
	}
	if clientEmail == "" {
		missing = append(missing, "client_email")
	}
	if len(missing) > 0 {
		return apperr.MissingFields(missing...)
	}

	if ok, msg := validation.ValidateEmail(clientEmail); !ok {
		return apperr.Validation(msg)
	}

	resp, err := h.notifier.SendApprovalEmail(c.Context(), actaID, clientEmail)
	if errors.Is(err, email.ErrDeliveryUnavailable) {
		return apperr.Unavailable("delivery_unavailable", "Approval email could not be delivered", err)
	}
	if err != nil {
		return err
	}

	return jsonResponse(c, fiber.StatusOK, resp)
}
