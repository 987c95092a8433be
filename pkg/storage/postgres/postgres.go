// Package postgres wraps a pgx connection pool with a squirrel statement
// builder configured for PostgreSQL placeholders.
package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	defaultPoolMax      = 20
	defaultConnAttempts = 5
	defaultRetryDelay   = 500 * time.Millisecond
)

// Config holds connection parameters.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	PoolMax  int32
}

// Postgres is the shared database handle.
type Postgres struct {
	Builder squirrel.StatementBuilderType
	Pool    *pgxpool.Pool
}

// New connects to PostgreSQL, retrying with a fixed delay.
func New(ctx context.Context, cfg Config, logger *otelzap.Logger) (*Postgres, error) {
	poolMax := cfg.PoolMax
	if poolMax <= 0 {
		poolMax = defaultPoolMax
	}

	url := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		net.JoinHostPort(cfg.Host, cfg.Port),
		cfg.Name,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing pool config: %w", err)
	}
	poolConfig.MaxConns = poolMax

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= defaultConnAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				break
			}
			pool.Close()
		}

		logger.Warn("PostgreSQL connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-time.After(defaultRetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	return &Postgres{
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		Pool:    pool,
	}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
