package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"actadash/internal/config"
)

// ErrDeliveryUnavailable is returned when mail could not be handed to the
// transport, either because SMTP is not configured or because the send failed.
var ErrDeliveryUnavailable = errors.New("email delivery unavailable")

const messageBoundary = "ActaBoundary7f3c2a91"

// Service delivers mail over SMTP with a bounded session time.
type Service struct {
	cfg     *config.Config
	timeout time.Duration
	enabled bool
}

// NewService creates a new email service.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
		timeout: cfg.SMTPTimeout,
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}

	if s.enabled {
		logger.Info("email delivery enabled", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "tls", cfg.SMTPTLS)
	} else {
		logger.Warn("email delivery disabled, SMTP not configured")
	}

	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendEmail sends an email to the specified recipients. The whole exchange
// is bounded by the configured SMTP timeout.
func (s *Service) SendEmail(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	if !s.enabled {
		return fmt.Errorf("%w: SMTP not configured", ErrDeliveryUnavailable)
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := s.buildMessage(to, subject, htmlBody, textBody)
	if err := s.send(ctx, to, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryUnavailable, err)
	}
	return nil
}

func (s *Service) buildMessage(to []string, subject, htmlBody, textBody string) string {
	var msg strings.Builder
	mw := multipart.NewWriter(&msg)
	_ = mw.SetBoundary(messageBoundary)

	headers := [][2]string{
		{"From", s.fromHeader()},
		{"To", strings.Join(to, ", ")},
		{"Subject", mime.QEncoding.Encode("UTF-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", mime.FormatMediaType("multipart/alternative", map[string]string{"boundary": mw.Boundary()})},
	}
	for _, h := range headers {
		msg.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	msg.WriteString("\r\n")

	// Writes go to a strings.Builder and cannot fail.
	for _, part := range []struct{ contentType, body string }{
		{`text/plain; charset="UTF-8"`, textBody},
		{`text/html; charset="UTF-8"`, htmlBody},
	} {
		if part.body == "" {
			continue
		}
		w, _ := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		io.WriteString(w, part.body)
	}
	mw.Close()

	return msg.String()
}

func (s *Service) fromHeader() string {
	if s.cfg.SMTPFromName == "" {
		return s.cfg.SMTPFrom
	}
	return (&mail.Address{Name: s.cfg.SMTPFromName, Address: s.cfg.SMTPFrom}).String()
}

// dial opens the connection according to the TLS mode. Implicit TLS wraps
// the socket; starttls upgrades it after the greeting.
func (s *Service) dial(ctx context.Context, tlsConfig *tls.Config) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(s.cfg.SMTPPort))

	var conn net.Conn
	var err error
	if s.cfg.SMTPTLS == "tls" {
		conn, err = (&tls.Dialer{Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("greeting: %w", err)
	}
	if s.cfg.SMTPTLS == "starttls" {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS: %w", err)
		}
	}
	return client, nil
}

// send delivers msg over a single SMTP session.
func (s *Service) send(ctx context.Context, to []string, msg string) error {
	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	client, err := s.dial(ctx, tlsConfig)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("AUTH: %w", err)
		}
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := io.WriteString(w, msg); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end of data: %w", err)
	}

	return client.Quit()
}
