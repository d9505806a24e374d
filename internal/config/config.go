package config

import (
	"os"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis, used for session storage when set
	RedisURL string

	// Object storage for library images
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3Region        string
	S3UseSSL        bool
	S3PublicBaseURL string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// SMTP for moderation notifications
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	SMTPEncryption string // "none", "tls", or "starttls"

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Background health checking of library websites
	EnableHealthChecks bool

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "UI Libraries"
	SiteTagline string // env: SITE_TAGLINE, default: "Discover component libraries for your next project"
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/uilibs?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET", "uilibs-images"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3UseSSL:        getEnv("S3_USE_SSL", "") != "",
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:       getEnv("SMTP_FROM", ""),
		SMTPEncryption: getEnv("SMTP_ENCRYPTION", "starttls"),

		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
		EnableHealthChecks: getEnv("ENABLE_HEALTH_CHECKS", "") != "",

		SiteTitle:   getEnv("SITE_TITLE", "UI Libraries"),
		SiteTagline: getEnv("SITE_TAGLINE", "Discover component libraries for your next project"),
		SiteFooter:  getEnv("SITE_FOOTER", "UI Libraries - Discover component libraries for your next project"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// EmailEnabled returns true when SMTP is configured enough to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// S3Enabled returns true when object storage is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != ""
}
