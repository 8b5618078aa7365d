package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// Cross-origin headers carried by every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET,HEAD,POST,PUT,DELETE,OPTIONS"
	AllowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
)

// SetCORSHeaders writes the fixed cross-origin headers onto the response.
func SetCORSHeaders(c fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, AllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, AllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, AllowHeaders)
}

// CORS sets the cross-origin headers on every response, whatever the origin,
// and answers preflight requests with 204 before routing.
func CORS() fiber.Handler {
	return func(c fiber.Ctx) error {
		SetCORSHeaders(c)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
