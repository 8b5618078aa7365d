package validation

import "testing"

func TestValidateProjectID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"simple", "PRJ-1", true},
		{"underscore", "proj_001", true},
		{"dotted", "1000.2", true},
		{"empty", "", false},
		{"too long", string(make([]byte, 129)), false},
		{"contains slash", "PRJ/1", false},
		{"path traversal", "../etc", false},
		{"contains space", "PRJ 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateProjectID(tt.id)
			if got != tt.valid {
				t.Errorf("ValidateProjectID(%q) = %v (%s), want %v", tt.id, got, msg, tt.valid)
			}
			if !got && msg == "" {
				t.Errorf("ValidateProjectID(%q) returned no message", tt.id)
			}
		})
	}
}

func TestDecodeManagerEmail(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		want    string
		wantErr bool
	}{
		{"encoded at", "pm1%40example.com", "pm1@example.com", false},
		{"plain", "pm1@example.com", "pm1@example.com", false},
		{"plus sign", "a%2Bb%40example.com", "a+b@example.com", false},
		{"bad escape", "pm1%4", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeManagerEmail(tt.segment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeManagerEmail(%q) error = %v, wantErr %v", tt.segment, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DecodeManagerEmail(%q) = %q, want %q", tt.segment, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		addr  string
		valid bool
	}{
		{"valid", "client@example.com", true},
		{"empty", "", false},
		{"no at", "client.example.com", false},
		{"display name", "Client <client@example.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ValidateEmail(tt.addr)
			if got != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.addr, got, tt.valid)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://example.com", true, ""},
		{"valid with path", "https://dashboard.example.com/actas", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"no host", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}
