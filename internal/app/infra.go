package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/interiora_backend/config"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
	"github.com/Alijeyrad/interiora_backend/pkg/database"
	"github.com/Alijeyrad/interiora_backend/pkg/email"
	"github.com/Alijeyrad/interiora_backend/pkg/metrics"
	"github.com/Alijeyrad/interiora_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/interiora_backend/pkg/redis"
	s3pkg "github.com/Alijeyrad/interiora_backend/pkg/s3"
	"github.com/Alijeyrad/interiora_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies. Optional backends
// (S3, NATS) are provided as nil when disabled.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideSQLDB),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideS3Client),
	fx.Provide(ProvideNatsClient),
)

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config) (*database.DB, error) {
	dbCfg := database.FromCentralConfig(cfg.Database)
	db, err := database.New(dbCfg)
	if err != nil {
		return nil, err
	}

	if dbCfg.AutoMigrate {
		if err := database.NewMigrator(db).Up(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
	}

	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go reportDBStats(db, stop)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			slog.Debug("closing database connection")
			return db.Close()
		},
	})
	return db, nil
}

func reportDBStats(db *database.DB, stop <-chan struct{}) {
	t := time.NewTicker(15 * time.Second)
	defer t.Stop()
	for {
		metrics.UpdateDBStats(db.Stats())
		select {
		case <-t.C:
		case <-stop:
			return
		}
	}
}

func ProvideSQLDB(db *database.DB) *sql.DB {
	return db.GetConnection()
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideAuthorization(cfg *config.Config) (authorize.IAuthorization, error) {
	return authorize.New(authorize.FromCentralConfig(cfg.Authorization))
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

func ProvideS3Client(cfg *config.Config) (*s3pkg.Client, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}
	return s3pkg.New(context.Background(), cfg.S3)
}

func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if !cfg.Nats.Enabled {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL,
		nats.Name(constants.AppName),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "err", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
