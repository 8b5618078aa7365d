package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// ProjectIDPattern defines the valid project identifier format.
var ProjectIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateProjectID checks that id is a usable record identifier.
func ValidateProjectID(id string) (bool, string) {
	if id == "" {
		return false, "project_id is required"
	}
	if len(id) > 128 {
		return false, "project_id must be at most 128 characters"
	}
	if !ProjectIDPattern.MatchString(id) {
		return false, "project_id may only contain letters, digits, dots, hyphens and underscores"
	}
	return true, ""
}

// DecodeManagerEmail unescapes a manager identity taken from a path segment,
// so that pm1%40example.com becomes pm1@example.com.
func DecodeManagerEmail(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(decoded), nil
}

// ValidateEmail checks that addr is a single bare email address.
func ValidateEmail(addr string) (bool, string) {
	if addr == "" {
		return false, "email is required"
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false, "Invalid email address"
	}

	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
