// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS and request body limits. AppConfig is
// where everything specific to ContestHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token auth
	JWTSecret string        // Secret used to sign API tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime (default 24h)

	// File storage configuration
	StorageType      string // Storage backend: "local"
	StorageLocalPath string // Local storage path (e.g., "./uploads/files")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit, email-smtp.us-east-1.amazonaws.com for SES)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@contesthub.com)

	// Branding used in outbound email
	SiteName     string // Display name (e.g., ContestHub)
	SupportEmail string // Address shown in email footers

	// Base URL for links in email
	BaseURL string // e.g., "https://contesthub.com" or "http://localhost:3000"

	// Admin bootstrap: promote or create this account on startup.
	AdminEmail    string
	AdminPassword string
}
