package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
)

// jsonResponse writes body with the given HTTP status code.
func jsonResponse(c fiber.Ctx, status int, body any) error {
	return c.Status(status).JSON(body)
}

// timestamp formats t the way every response body reports times.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// decodeBody parses an optional JSON body into v. An empty body leaves v unchanged.
func decodeBody(c fiber.Ctx, v any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperr.Validation("Invalid JSON in request body")
	}
	return nil
}
