package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/interiora_backend/internal/api/http/router"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := fiber.New(fiberConfig(p.Cfg))

	if p.OTel != nil && p.Cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware(
			healthcheck.LivenessEndpoint,
			healthcheck.ReadinessEndpoint,
			healthcheck.StartupEndpoint,
			router.MetricsPath(p.Cfg),
		))
	}

	configureGlobalMiddleware(app, p.Cfg)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("HTTP server listening", "addr", addr, "env", p.Cfg.Server.Environment)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func fiberConfig(cfg *config.Config) fiber.Config {
	fc := fiber.Config{
		AppName:      constants.AppName,
		ErrorHandler: errorHandler,
	}
	if cfg.Server.BodyLimitKB > 0 {
		fc.BodyLimit = cfg.Server.BodyLimitKB * 1024
	}
	if cfg.Server.TimeoutSeconds > 0 {
		t := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		fc.ReadTimeout = t
		fc.WriteTimeout = t
	}
	return fc
}

// errorHandler renders errors returned from middleware as JSON, the same
// shape the handlers use.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		slog.Error("unhandled error", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == constants.EnvProduction {
		app.Use(helmet.New())
		if c := cfg.Server.CORS; c.Enabled {
			app.Use(cors.New(cors.Config{
				AllowOrigins:     c.AllowOrigins,
				AllowMethods:     c.AllowMethods,
				AllowHeaders:     c.AllowHeaders,
				ExposeHeaders:    c.ExposeHeaders,
				AllowCredentials: c.AllowCredentials,
				MaxAge:           c.MaxAgeSeconds,
			}))
		}
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${reqHeader:X-Request-Id}] ${method} ${url} ${status}\n",
	}))
}
