package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"actadash/internal/config"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, to, subject, htmlBody, textBody)
	return args.Error(0)
}

func TestNotifier_SendApprovalEmail(t *testing.T) {
	sender := new(mockSender)
	sender.On("SendEmail", mock.Anything, []string{"client@example.com"}, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	n := NewNotifierWithSender(sender, NewTemplates(&config.Config{ServiceName: "ACTA"}), discardLogger())
	n.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	resp, err := n.SendApprovalEmail(context.Background(), "acta_1", "client@example.com")
	require.NoError(t, err)
	require.Equal(t, "sent", resp.Status)
	require.Equal(t, "acta_1", resp.ActaID)
	require.Equal(t, "client@example.com", resp.ClientEmail)
	require.Equal(t, "2026-10-14T12:00:00Z", resp.SentAt)
	require.Len(t, resp.CorrelationID, 36)
	sender.AssertExpectations(t)
}

func TestNotifier_SendApprovalEmail_Unavailable(t *testing.T) {
	sender := new(mockSender)
	sender.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ErrDeliveryUnavailable)

	n := NewNotifierWithSender(sender, NewTemplates(&config.Config{}), discardLogger())

	resp, err := n.SendApprovalEmail(context.Background(), "acta_1", "client@example.com")
	require.Nil(t, resp)
	require.True(t, errors.Is(err, ErrDeliveryUnavailable))
}

func TestNewNotifier_Disabled(t *testing.T) {
	n := NewNotifier(&config.Config{}, discardLogger())

	_, err := n.SendApprovalEmail(context.Background(), "acta_1", "client@example.com")
	require.ErrorIs(t, err, ErrDeliveryUnavailable)
}
