package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/config"
)

var DBModule = fx.Module("db", fx.Provide(NewDB))

// NewDB opens the shared connection pool and ties its shutdown to the
// fx lifecycle.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		if cleanup != nil {
			cleanup()
		}
		return nil
	}})

	return pool, nil
}
