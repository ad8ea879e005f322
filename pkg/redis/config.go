package redis

import (
	"time"

	"github.com/Alijeyrad/interiora_backend/config"
)

// Config holds Redis connection settings
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// FromCentralConfig converts central config.RedisConfig, keeping defaults
// for anything unset.
func FromCentralConfig(c config.RedisConfig) Config {
	cfg := DefaultConfig()
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	cfg.DB = c.DB
	cfg.Username = c.Username
	cfg.Password = c.Password

	if c.PoolSize > 0 {
		cfg.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		cfg.MinIdleConns = c.MinIdleConns
	}
	if c.DialTimeoutSeconds > 0 {
		cfg.DialTimeout = time.Duration(c.DialTimeoutSeconds) * time.Second
	}
	if c.ReadTimeoutSeconds > 0 {
		cfg.ReadTimeout = time.Duration(c.ReadTimeoutSeconds) * time.Second
	}
	if c.WriteTimeoutSeconds > 0 {
		cfg.WriteTimeout = time.Duration(c.WriteTimeoutSeconds) * time.Second
	}
	return cfg
}
