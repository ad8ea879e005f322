package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
)

const cliStopTimeout = 30 * time.Second

// RunWithServices starts the infrastructure and service modules without the
// HTTP server, fills targets (pointers, as for fx.Populate), runs fn and
// stops everything again. Stopping waits for pending lead notifications.
func RunWithServices(ctx context.Context, cfg *config.Config, fn func(context.Context) error, targets ...any) error {
	opts := []fx.Option{
		fx.Supply(cfg),
		InfraModule,
		ServiceModule,
		fx.NopLogger,
		fx.Populate(targets...),
	}
	if cfg.Authentication.Enabled {
		opts = append(opts, AdminModule)
	}

	a := fx.New(opts...)
	if err := a.Err(); err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cliStopTimeout)
		defer cancel()
		if err := a.Stop(stopCtx); err != nil {
			slog.Warn("stop services", "err", err)
		}
	}()

	return fn(ctx)
}
