package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/projecthub/pkg/config"
	"github.com/dukex/projecthub/pkg/session"
)

func NewSessionStore(ctx context.Context, cfg config.SessionConfig, logger *slog.Logger) (session.Store, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		return session.NewRedisStore(ctx, cfg.RedisURL, cfg.TTL, logger)
	case config.SessionStoreMemory, "":
		return session.NewMemoryStore(cfg.TTL, logger), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Store)
	}
}
