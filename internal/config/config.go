package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr     string
	ServiceName    string
	ServiceVersion string
	LogLevel       string
	RateLimitMax   int // requests per minute per IP, 0 disables the limiter

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // when set, clients must present a certificate signed by this CA

	// Record store
	DatabaseURL     string
	ProjectsTable   string // reported as `table` in listing responses
	SeedDevProjects bool
	PMNamespaces    []string // path prefixes serving the PM listing, e.g. "pm-manager"
	AdminSegment    string   // literal path segment selecting the admin listing

	// Blob store
	AWSRegion              string
	DocumentBucket         string
	ResolverStrategy       string   // "direct", "scan" or "chain"
	ResolverDirectPrefixes []string // key prefixes tried by the direct-key strategy, in order
	ResolverScanPrefix     string
	ResolverPageSize       int
	PresignTTL             time.Duration

	// Enrichment
	StalenessDays int

	// Document generation
	RedisURL         string
	GenerationQueue  string
	GenerationETA    string
	GenerationJobTTL time.Duration

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "none", "tls", "starttls"
	SMTPTimeout  time.Duration

	// Links rendered into approval emails
	DashboardURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		ServiceName:    getEnv("SERVICE_NAME", "ACTA-UI Backend"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 0),

		TLSEnabled:  getEnvBool("TLS_ENABLED"),
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/actadash?sslmode=disable"),
		ProjectsTable:   getEnv("PROJECTS_TABLE", "projects"),
		SeedDevProjects: getEnvBool("SEED_DEV_PROJECTS"),
		PMNamespaces:    getEnvList("PM_NAMESPACES", "pm-manager,pm-projects"),
		AdminSegment:    getEnv("PM_ADMIN_SEGMENT", "all-projects"),

		AWSRegion:              getEnv("AWS_REGION", "us-east-2"),
		DocumentBucket:         getEnv("S3_BUCKET", ""),
		ResolverStrategy:       getEnv("RESOLVER_STRATEGY", "chain"),
		ResolverDirectPrefixes: getEnvList("RESOLVER_DIRECT_PREFIXES", "acta/,acta-documents/"),
		ResolverScanPrefix:     getEnv("RESOLVER_SCAN_PREFIX", "actas/"),
		ResolverPageSize:       getEnvInt("RESOLVER_PAGE_SIZE", 1000),
		PresignTTL:             getEnvDuration("PRESIGN_TTL", time.Hour),

		StalenessDays: getEnvInt("STALENESS_DAYS", 30),

		RedisURL:         getEnv("REDIS_URL", ""),
		GenerationQueue:  getEnv("GENERATION_QUEUE", "acta:generation"),
		GenerationETA:    getEnv("GENERATION_ETA", "5 minutes"),
		GenerationJobTTL: getEnvDuration("GENERATION_JOB_TTL", 24*time.Hour),

		SMTPEnabled:  getEnvBool("SMTP_ENABLED"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "ACTA Platform"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),
		SMTPTimeout:  getEnvDuration("SMTP_TIMEOUT", 10*time.Second),

		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	return splitList(getEnv(key, fallback))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP delivery is fully configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsGenerationEnabled returns true if a generation queue is configured.
func (c *Config) IsGenerationEnabled() bool {
	return c.RedisURL != ""
}
