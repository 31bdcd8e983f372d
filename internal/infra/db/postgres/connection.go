package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"telegram-chat-logger/internal/config"
)

const (
	connectAttempts = 5
	initialBackoff  = 2 * time.Second
	backoffFactor   = 1.5
)

// schemaStatements provision the two tables. They are additive and safe to
// run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
  id SERIAL PRIMARY KEY,
  telegram_id BIGINT UNIQUE NOT NULL,
  username VARCHAR(255),
  first_name VARCHAR(255),
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS messages (
  id SERIAL PRIMARY KEY,
  user_id INTEGER REFERENCES users(id),
  telegram_message_id BIGINT,
  text TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}

type dialFunc func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error)

// Connect establishes a pooled connection, verifies it with a round-trip
// query, and provisions the schema. Transient connection failures are
// retried up to connectAttempts times with exponential backoff; anything
// else (bad DSN, authentication) fails immediately.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := connect(ctx, cfg, logger, dial, time.Sleep)
	if err != nil {
		return nil, err
	}
	if err := provisionSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("provision schema: %w", err)
	}
	return pool, nil
}

func connect(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger, dial dialFunc, sleep func(time.Duration)) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	poolCfg.ConnConfig.ConnectTimeout = cfg.AcquireTimeout

	delay := initialBackoff
	for attempt := 1; ; attempt++ {
		logger.Info().Int("attempt", attempt).Int("max_attempts", connectAttempts).Msg("connecting to database")

		pool, err := dial(ctx, poolCfg)
		if err == nil {
			logger.Info().Msg("database connection verified")
			return pool, nil
		}
		if !isTransient(err) {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to database after %d attempts: %w", connectAttempts, err)
		}

		logger.Warn().Err(err).Dur("retry_in", delay).Msg("database connection refused, retrying")
		sleep(delay)
		delay = time.Duration(float64(delay) * backoffFactor)
	}
}

// dial opens the pool and performs the liveness round-trip.
func dial(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var one int
	if err := pool.QueryRow(ctx, `SELECT 1;`).Scan(&one); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// isTransient reports whether a connection error is worth retrying. A
// PgError means the server answered (auth failure, bad database name) and
// retrying cannot help; refused connections and timeouts can.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func provisionSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil && !isDuplicateObject(err) {
			return err
		}
	}
	return nil
}

// isDuplicateObject tolerates the race where two starts provision at once:
// CREATE TABLE IF NOT EXISTS can still fail with duplicate_table (42P07) or
// duplicate_object (42710) under concurrency.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42P07" || pgErr.Code == "42710"
}
