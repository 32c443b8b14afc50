package cli

import (
	"context"
	"fmt"
	"time"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/config"
	"aitekka-quiz/internal/content"
	"aitekka-quiz/internal/infra/file"
	"aitekka-quiz/internal/infra/memory"
	pgstore "aitekka-quiz/internal/infra/postgres"
	redisstore "aitekka-quiz/internal/infra/redis"
	"aitekka-quiz/internal/logging"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultPort     = "8080"
	defaultCacheTTL = 10 * time.Minute
)

// backends holds the connections opened from config. Close releases them.
type backends struct {
	log   *logrus.Logger
	redis *redis.Client
	pool  *pgxpool.Pool
}

func openBackends(ctx context.Context, cfg config.Config, log *logrus.Logger) (*backends, error) {
	b := &backends{log: log}

	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.pool = pool
	}
	return b, nil
}

func (b *backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

// bankLoader chains the configured sources. The built-in bank is always the
// last resort so the default quiz can be played without any storage.
func (b *backends) bankLoader(cfg config.Config) memory.BankLoader {
	var loaders []memory.BankLoader
	if b.pool != nil {
		loaders = append(loaders, pgstore.NewBankLoader(b.pool))
	}
	if cfg.Quiz.BanksDir != "" {
		loaders = append(loaders, file.NewBankLoader(cfg.Quiz.BanksDir))
	}
	loaders = append(loaders, memory.NewStaticBankLoader(content.DefaultBank()))
	return memory.NewFallbackLoader(loaders...)
}

func (b *backends) bankRepository(cfg config.Config) app.BankRepository {
	ttl := config.Duration(cfg.Quiz.TTL, defaultCacheTTL)
	loader := b.bankLoader(cfg)
	if b.redis != nil {
		return redisstore.NewBankRepository(b.redis, loader, ttl, b.log)
	}
	return memory.NewBankRepository(loader, ttl)
}

func (b *backends) sessionStore(cfg config.Config) app.SessionRepository {
	if b.redis != nil {
		return redisstore.NewSessionStore(b.redis, config.Duration(cfg.Redis.TTL, defaultCacheTTL))
	}
	return memory.NewSessionStore()
}

func newLogger(cmd *cobra.Command, cfg config.Config) *logrus.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
}

func newService(cfg config.Config, store app.SessionRepository, banks app.BankRepository, log logrus.FieldLogger) *app.QuizService {
	return app.NewQuizService(store, banks,
		app.WithSessionRevealDelay(config.Duration(cfg.Quiz.RevealDelay, app.DefaultRevealDelay)),
		app.WithServiceLogger(log),
	)
}

func defaultBankID(cfg config.Config) string {
	if cfg.Quiz.Bank != "" {
		return cfg.Quiz.Bank
	}
	return content.DefaultBankID
}
