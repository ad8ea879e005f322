package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Alijeyrad/interiora_backend/pkg/constants"
)

var GlobalConf *Config

func ReadConfig(configPath string) (*Config, error) {
	// A .env next to the config file seeds the environment; real env vars win.
	if err := godotenv.Load(filepath.Join(configPath, constants.DotEnvFile)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading %s: %w", constants.DotEnvFile, err)
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	// e.g. INTERIORA_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

// setDefaults registers every key that has a sane default. Registering a key
// also makes AutomaticEnv pick it up when no config file is present.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", constants.EnvDevelopment)
	v.SetDefault("server.body_limit_kb", 64)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.max", 20)
	v.SetDefault("server.rate_limit.window_seconds", 30)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", constants.AppName)
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("site.studio_name", "Interiora Studio")

	v.SetDefault("content.gallery_limit", 8)
	v.SetDefault("content.testimonials_limit", 6)

	v.SetDefault("notification.dispatch", "sync")
	v.SetDefault("notification.channels", []string{"log"})
	v.SetDefault("notification.to", "")
	v.SetDefault("notification.sms_to", "")
	v.SetDefault("notification.subject_prefix", "New enquiry")
	v.SetDefault("notification.default_region", "GB")
	v.SetDefault("notification.timeout_seconds", 30)

	v.SetDefault("authentication.enabled", false)
	v.SetDefault("authentication.paseto.mode", "local")
	v.SetDefault("authentication.paseto.local_key_hex", "")
	v.SetDefault("authentication.paseto.issuer", constants.AppName)
	v.SetDefault("authentication.paseto.audience", constants.AppName+"-admin")
	v.SetDefault("authentication.paseto.access_ttl_minutes", 15)
	v.SetDefault("authentication.paseto.refresh_ttl_days", 7)
	v.SetDefault("authentication.max_failed_logins", 5)
	v.SetDefault("authentication.lockout_minutes", 15)
	v.SetDefault("authentication.default_password_length", 16)

	v.SetDefault("authorization.casbin_model_path", "casbin_model.conf")
	v.SetDefault("authorization.casbin_policy_path", "casbin_policy.csv")

	v.SetDefault("codes.reference_length", 8)

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")

	v.SetDefault("observability.service_name", constants.AppName)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output.stdout", true)

	v.SetDefault("s3.presign_ttl_sec", 300)
}
