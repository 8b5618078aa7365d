package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"actadash/internal/apperr"
	"actadash/internal/config"
	"actadash/internal/metrics"
	"actadash/internal/middleware"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App    *fiber.App
	Cfg    *config.Config
	Logger *slog.Logger
}

// New creates a new server with middleware configured.
func New(cfg *config.Config, log *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: errorHandler(log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(middleware.CORS())
	app.Use(metrics.Middleware())

	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":   "Too many requests",
					"message": "Rate limit exceeded. Please try again later.",
				})
			},
		}))
	}

	return &Server{
		App:    app,
		Cfg:    cfg,
		Logger: log,
	}
}

// errorHandler is the single boundary where handler failures become
// responses. Every error body is {error, message} and carries the
// cross-origin headers.
func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		middleware.SetCORSHeaders(c)

		status := fiber.StatusInternalServerError
		body := fiber.Map{}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			body["error"] = http.StatusText(fe.Code)
			body["message"] = fe.Message
		} else if e, ok := apperr.As(err); ok {
			status = e.Status()
			body["error"] = e.Label()
			body["message"] = e.Message
			if len(e.Fields) > 0 {
				body["required"] = e.Fields
			}
			if e.Kind == apperr.KindUnavailable {
				body["status"] = "error"
			}
		} else {
			body["error"] = "Internal server error"
			body["message"] = "An unexpected error occurred"
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"request_id", requestid.FromContext(c),
				"error", err,
			)
		}

		if c.Method() == fiber.MethodHead {
			c.Status(status)
			return nil
		}
		return c.Status(status).JSON(body)
	}
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		clientCAs, err := loadClientCAs(s.Cfg.TLSCAFile)
		if err != nil {
			return err
		}
		listenConfig := fiber.ListenConfig{
			CertFile:    s.Cfg.TLSCertFile,
			CertKeyFile: s.Cfg.TLSKeyFile,
			TLSConfigFunc: func(tc *tls.Config) {
				applyTLSConfig(tc, clientCAs)
			},
		}
		s.Logger.Info("starting server", "addr", s.Cfg.ServerAddr, "tls", true, "mtls", clientCAs != nil)
		return s.App.Listen(s.Cfg.ServerAddr, listenConfig)
	}
	s.Logger.Info("starting server", "addr", s.Cfg.ServerAddr)
	return s.App.Listen(s.Cfg.ServerAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}

// loadClientCAs reads the CA bundle used to verify client certificates.
// An empty path disables client verification and returns nil.
func loadClientCAs(caFile string) (*x509.CertPool, error) {
	if caFile == "" {
		return nil, nil
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA certificate")
	}
	return pool, nil
}

// applyTLSConfig sets the minimum version and, when clientCAs is non-nil,
// requires and verifies client certificates.
func applyTLSConfig(tc *tls.Config, clientCAs *x509.CertPool) {
	tc.MinVersion = tls.VersionTLS12
	if clientCAs != nil {
		tc.ClientCAs = clientCAs
		tc.ClientAuth = tls.RequireAndVerifyClientCert
	}
}
