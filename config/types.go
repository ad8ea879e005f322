package config

import (
	"errors"
	"fmt"
	"slices"
)

type Config struct {
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Server         ServerConfig         `mapstructure:"server"`
	Site           SiteConfig           `mapstructure:"site"`
	Content        ContentConfig        `mapstructure:"content"`
	Notification   NotificationConfig   `mapstructure:"notification"`
	Authentication AuthenticationConfig `mapstructure:"authentication"`
	Authorization  AuthorizationConfig  `mapstructure:"authorization"`
	Email          EmailConfig          `mapstructure:"email"`
	SMS            SMSConfig            `mapstructure:"sms"`
	Password       PasswordConfig       `mapstructure:"password"`
	Codes          CodesConfig          `mapstructure:"codes"`
	Observability  ObservabilityConfig  `mapstructure:"observability"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	S3             S3Config             `mapstructure:"s3"`
	Nats           NatsConfig           `mapstructure:"nats"`
}

type NatsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type DatabaseConfig struct {
	Host       string                  `mapstructure:"host"`
	Port       int                     `mapstructure:"port"`
	User       string                  `mapstructure:"user"`
	Password   string                  `mapstructure:"password"`
	DBName     string                  `mapstructure:"dbname"`
	SSLMode    string                  `mapstructure:"sslmode"`
	Pool       DatabasePoolConfig      `mapstructure:"pool"`
	Migrations DatabaseMigrationConfig `mapstructure:"migrations"`
}

type DatabasePoolConfig struct {
	MaxOpenConns       int `mapstructure:"max_open_conns"`
	MaxIdleConns       int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_minutes"`
}

type DatabaseMigrationConfig struct {
	// AutoMigrate applies pending goose migrations when the HTTP server boots.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Environment    string          `mapstructure:"environment"`
	Domain         string          `mapstructure:"domain"`
	BodyLimitKB    int             `mapstructure:"body_limit_kb"`
	CORS           CORSConfig      `mapstructure:"cors"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Max           int  `mapstructure:"max"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

// SiteConfig carries the studio copy rendered on the landing page.
type SiteConfig struct {
	StudioName string   `mapstructure:"studio_name"`
	Tagline    string   `mapstructure:"tagline"`
	About      string   `mapstructure:"about"`
	Philosophy string   `mapstructure:"philosophy"`
	Services   []string `mapstructure:"services"`
	Process    []string `mapstructure:"process"`
	Phone      string   `mapstructure:"phone"`
	Email      string   `mapstructure:"email"`
	Address    string   `mapstructure:"address"`
	Instagram  string   `mapstructure:"instagram"`
}

type ContentConfig struct {
	GalleryLimit      int `mapstructure:"gallery_limit"`
	TestimonialsLimit int `mapstructure:"testimonials_limit"`
}

type NotificationConfig struct {
	// Dispatch is "sync" or "async".
	Dispatch string `mapstructure:"dispatch"`
	// Channels is any of "email", "events", "sms", "log".
	Channels       []string `mapstructure:"channels"`
	To             string   `mapstructure:"to"`
	SubjectPrefix  string   `mapstructure:"subject_prefix"`
	SMSTo          string   `mapstructure:"sms_to"`
	DefaultRegion  string   `mapstructure:"default_region"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

type AuthenticationConfig struct {
	Enabled               bool         `mapstructure:"enabled"`
	Paseto                PasetoConfig `mapstructure:"paseto"`
	MaxFailedLogins       int          `mapstructure:"max_failed_logins"`
	LockoutMinutes        int          `mapstructure:"lockout_minutes"`
	DefaultPasswordLength int          `mapstructure:"default_password_length"`
}

type PasetoConfig struct {
	Mode             string `mapstructure:"mode"`
	LocalKeyHex      string `mapstructure:"local_key_hex"`
	SecretKeyHex     string `mapstructure:"secret_key_hex"`
	PublicKeyHex     string `mapstructure:"public_key_hex"`
	Issuer           string `mapstructure:"issuer"`
	Audience         string `mapstructure:"audience"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type AuthorizationConfig struct {
	CasbinModelPath  string `mapstructure:"casbin_model_path"`
	CasbinPolicyPath string `mapstructure:"casbin_policy_path"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SMSConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	SMSIR   SMSIRConfig `mapstructure:"smsir"`
}

type SMSIRConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SecretKey  string `mapstructure:"secret_key"`
	// TemplateID is an UltraFast template with "name", "location" and
	// "reference" parameters.
	TemplateID string `mapstructure:"template_id"`
}

type PasswordConfig struct {
	MemoryKiB     uint32 `mapstructure:"memory_kib"`
	Iterations    uint32 `mapstructure:"iterations"`
	Parallelism   uint8  `mapstructure:"parallelism"`
	SaltLength    uint32 `mapstructure:"salt_length"`
	KeyLength     uint32 `mapstructure:"key_length"`
	LowMemoryMode bool   `mapstructure:"low_memory_mode"`
}

type CodesConfig struct {
	ReferenceLength int    `mapstructure:"reference_length"`
	Charset         string `mapstructure:"charset"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PresignTTLSec   int    `mapstructure:"presign_ttl_sec"`
}

var (
	validDispatch = []string{"sync", "async"}
	validChannels = []string{"email", "events", "sms", "log"}
)

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}

	if c.Notification.Dispatch != "" && !slices.Contains(validDispatch, c.Notification.Dispatch) {
		errs = append(errs, fmt.Errorf("notification.dispatch %q must be one of %v", c.Notification.Dispatch, validDispatch))
	}
	for _, ch := range c.Notification.Channels {
		if !slices.Contains(validChannels, ch) {
			errs = append(errs, fmt.Errorf("notification.channels: unknown channel %q", ch))
		}
	}
	if slices.Contains(c.Notification.Channels, "email") && c.Notification.To == "" {
		errs = append(errs, errors.New("notification.to is required for the email channel"))
	}
	if slices.Contains(c.Notification.Channels, "events") && !c.Nats.Enabled {
		errs = append(errs, errors.New("notification channel \"events\" requires nats.enabled"))
	}
	if slices.Contains(c.Notification.Channels, "sms") && c.Notification.SMSTo == "" {
		errs = append(errs, errors.New("notification.sms_to is required for the sms channel"))
	}

	if c.Authentication.Enabled {
		p := c.Authentication.Paseto
		switch p.Mode {
		case "local", "":
			if p.LocalKeyHex == "" {
				errs = append(errs, errors.New("authentication.paseto.local_key_hex is required"))
			}
		case "public":
			if p.SecretKeyHex == "" && p.PublicKeyHex == "" {
				errs = append(errs, errors.New("authentication.paseto needs secret_key_hex or public_key_hex"))
			}
		default:
			errs = append(errs, fmt.Errorf("authentication.paseto.mode %q is invalid", p.Mode))
		}
	}

	return errors.Join(errs...)
}
