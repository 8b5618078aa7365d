package email

import (
	"fmt"
	"html"
	"net/url"

	"actadash/internal/config"
	"actadash/internal/validation"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
  .wrap { font-family: Helvetica, Arial, sans-serif; color: #1f2933; max-width: 640px; margin: 0 auto; }
  .banner { background: #1b4f72; color: #ffffff; padding: 16px 24px; font-size: 20px; font-weight: bold; }
  .body { padding: 24px; border-left: 1px solid #d9e2ec; border-right: 1px solid #d9e2ec; }
  .details { border-collapse: collapse; width: 100%%; margin: 16px 0; }
  .details td { padding: 6px 8px; border-bottom: 1px solid #e4e7eb; }
  .button { background: #2e86c1; color: #ffffff; padding: 10px 20px; border-radius: 4px; text-decoration: none; }
  .fine { padding: 12px 24px; background: #f0f4f8; font-size: 12px; color: #627d98; }
</style>
</head>
<body>
<div class="wrap">
  <div class="banner">%s</div>
  <div class="body">%s</div>
  <div class="fine">Sent by %s. Please do not reply to this message.</div>
</div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content, html.EscapeString(t.sender()))
}

func (t *Templates) sender() string {
	if t.cfg.SMTPFromName != "" {
		return t.cfg.SMTPFromName
	}
	return t.cfg.ServiceName
}

// reviewURL links the recipient to the document in the dashboard, or returns
// "" when no usable dashboard URL is configured.
func (t *Templates) reviewURL(actaID string) string {
	if ok, _ := validation.ValidateURL(t.cfg.DashboardURL); !ok {
		return ""
	}
	return t.cfg.DashboardURL + "/acta-review?acta_id=" + url.QueryEscape(actaID)
}

// ApprovalRequest generates the email asking a client to approve a document.
func (t *Templates) ApprovalRequest(actaID, clientEmail string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Document %s is ready for your approval", t.sender(), actaID)

	link := t.reviewURL(actaID)
	button := ""
	if link != "" {
		button = fmt.Sprintf(`<p><a href="%s" class="button">Review document</a></p>`, html.EscapeString(link))
	}

	content := fmt.Sprintf(`
  <p>A project acceptance document has been prepared and requires your approval.</p>
  <table class="details">
    <tr><td>Document</td><td>%s</td></tr>
    <tr><td>Recipient</td><td>%s</td></tr>
  </table>
  %s
  <p>If you did not expect this message you can ignore it.</p>`,
		html.EscapeString(actaID),
		html.EscapeString(clientEmail),
		button,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`A project acceptance document is ready for your approval.

Document: %s
Recipient: %s
`,
		actaID,
		clientEmail,
	)
	if link != "" {
		textBody += fmt.Sprintf("\nReview it at: %s\n", link)
	}
	textBody += "\n--\n" + t.sender()

	return
}
