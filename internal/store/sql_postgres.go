package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

// NewConnectPostgres opens the shared store on PostgreSQL through the pgx
// database/sql driver and pings it. When only the ping fails the returned
// error wraps [ErrStoreUnavailable] and the *DB is still returned.
func NewConnectPostgres(ctx context.Context, cfg config.SharedDB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	setupPool(conn, cfg)

	if err = pingWithTimeout(ctx, conn, cfg.ConnectTimeout); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		// the pool reconnects lazily, so the handle stays usable once the
		// server is back
		return NewDB(conn, DialectPostgres, log), fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return NewDB(conn, DialectPostgres, log), nil
}

func setupPool(conn *sql.DB, cfg config.SharedDB) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxOpen / 2)
	conn.SetConnMaxLifetime(5 * time.Minute)
}

func pingWithTimeout(ctx context.Context, conn *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return conn.PingContext(ctx)
}
