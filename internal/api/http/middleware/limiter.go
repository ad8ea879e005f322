package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/interiora_backend/config"
)

const (
	defaultLimitMax    = 20
	defaultLimitWindow = 30 * time.Second
)

// NewLimiterWithRedis returns a sliding-window limiter keyed by client IP
// and backed by Redis so the window is shared between instances.
func NewLimiterWithRedis(rdb *redis.Client, cfg config.RateLimitConfig) fiber.Handler {
	limit := cfg.Max
	if limit <= 0 {
		limit = defaultLimitMax
	}
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = defaultLimitWindow
	}

	storage := fiberredis.NewFromConnection(rdb)
	return limiter.New(limiter.Config{
		Storage: storage,

		// sliding window
		Max:               limit,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests, please slow down"})
		},
	})
}
