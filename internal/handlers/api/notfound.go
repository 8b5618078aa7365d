package api

import (
	"github.com/gofiber/fiber/v3"
)

// NotFound answers any request no route matched, echoing the path.
func NotFound(c fiber.Ctx) error {
	return jsonResponse(c, fiber.StatusNotFound, fiber.Map{
		"error": "Endpoint not found: " + c.Path(),
	})
}
