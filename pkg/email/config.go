package email

import (
	"time"

	"github.com/Alijeyrad/interiora_backend/config"
)

// Config holds email service configuration
type Config struct {
	Enabled bool
	From    string

	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int
}

// DefaultConfig returns sensible defaults for email configuration
func DefaultConfig() Config {
	return Config{
		Enabled:            false,
		SMTPPort:           587,
		SMTPUseTLS:         true,
		SMTPTimeoutSeconds: 30,
	}
}

// SMTPTimeout returns the SMTP timeout as a duration
func (c Config) SMTPTimeout() time.Duration {
	if c.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.EmailConfig to package Config
func FromCentralConfig(c config.EmailConfig) Config {
	cfg := DefaultConfig()
	cfg.Enabled = c.Enabled
	cfg.From = c.From
	cfg.SMTPHost = c.SMTP.Host
	if c.SMTP.Port > 0 {
		cfg.SMTPPort = c.SMTP.Port
	}
	cfg.SMTPUsername = c.SMTP.Username
	cfg.SMTPPassword = c.SMTP.Password
	cfg.SMTPUseTLS = c.SMTP.UseTLS
	if c.SMTP.TimeoutSeconds > 0 {
		cfg.SMTPTimeoutSeconds = c.SMTP.TimeoutSeconds
	}
	return cfg
}
