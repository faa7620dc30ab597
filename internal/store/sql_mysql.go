// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

// NewConnectMySQL opens the shared store on MySQL. The DSN is parsed and
// adjusted so that timestamps scan into time.Time and UPDATE reports matched
// rather than changed rows, which the version guard relies on.
func NewConnectMySQL(ctx context.Context, cfg config.SharedDB, log *logger.Logger) (*DB, error) {
	mysqlCfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMySQL").Msg("invalid mysql DSN")
		return nil, fmt.Errorf("invalid mysql DSN: %w", err)
	}
	mysqlCfg.ParseTime = true
	mysqlCfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(mysqlCfg)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMySQL").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn := sql.OpenDB(connector)
	setupPool(conn, cfg)

	if err = pingWithTimeout(ctx, conn, cfg.ConnectTimeout); err != nil {
		log.Err(err).Str("func", "NewConnectMySQL").Msg("error connecting database (ping)")
		// the pool reconnects lazily, so the handle stays usable once the
		// server is back
		return NewDB(conn, DialectMySQL, log), fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewConnectMySQL").Msg("connected to database successfully")

	return NewDB(conn, DialectMySQL, log), nil
}
