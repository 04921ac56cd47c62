package components

import (
	"context"
	"log/slog"
	"time"

	"seatly/internal/handler/api"
	"seatly/internal/infra/inbox"
	"seatly/internal/infra/metrics"
	"seatly/internal/infra/payment"
	"seatly/internal/pkg/config"
	"seatly/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		metrics.NewCollector,
		NewRedisClient,
		fx.Annotate(
			NewPaymentVerifier,
			fx.As(new(commands.PaymentVerifier)),
		),
		NewVerificationCache,
		NewFinalizeLocker,
		fx.Annotate(
			NewInbox,
			fx.As(new(api.RedirectSubmitter)),
		),
	),
)

// NewRedisClient returns nil when Redis is disabled; cache and lock then fall back to no-ops.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled; verification cache and finalize lock are no-ops")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewPaymentVerifier(cfg config.Config, m *metrics.Collector) *payment.HTTPVerifier {
	return payment.NewHTTPVerifier(cfg.Payment, m)
}

func NewVerificationCache(client *redis.Client, cfg config.Config) commands.VerificationCache {
	if client == nil {
		return payment.NoopVerificationCache{}
	}
	return payment.NewRedisVerificationCache(client, cfg.Redis.VerificationTTL)
}

func NewFinalizeLocker(client *redis.Client, cfg config.Config) commands.FinalizeLocker {
	if client == nil {
		return payment.NoopFinalizeLocker{}
	}
	return payment.NewRedisFinalizeLocker(client, cfg.Redis.LockExpiry)
}

func NewInbox(lc fx.Lifecycle, cfg config.Config, handler commands.RedirectCommands, m *metrics.Collector, logger *slog.Logger) (*inbox.Inbox, error) {
	in, err := inbox.New(cfg.Redirect, handler, m, logger)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := in.Run(runCtx); err != nil {
					logger.Error("redirect inbox stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return in.Close()
		},
	})
	return in, nil
}
