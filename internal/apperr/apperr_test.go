package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndLabel(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		label  string
	}{
		{"validation", Validation("bad format"), http.StatusBadRequest, "Invalid request"},
		{"not found", NotFound("Project not found"), http.StatusNotFound, "Not found"},
		{"upstream", Upstream("Document store error", errors.New("timeout")), http.StatusInternalServerError, "Upstream service error"},
		{"unavailable", Unavailable("delivery_unavailable", "SMTP down", nil), http.StatusServiceUnavailable, "delivery_unavailable"},
		{"internal", &Error{Message: "boom"}, http.StatusInternalServerError, "Internal server error"},
		{"missing fields", MissingFields("acta_id", "client_email"), http.StatusBadRequest, "Missing required fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.label, tt.err.Label())
		})
	}
}

func TestMissingFields(t *testing.T) {
	err := MissingFields("acta_id", "client_email")
	assert.Equal(t, "Missing required fields: acta_id, client_email", err.Message)
	assert.Equal(t, []string{"acta_id", "client_email"}, err.Fields)
}

func TestWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("listing projects: %w", Upstream("Record store error", cause))

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsKind(err, KindUpstream))
	assert.False(t, IsKind(err, KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "Record store error: connection reset", Upstream("Record store error", cause).Error())
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
