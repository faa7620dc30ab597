// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Journal modes accepted by [Replication.JournalMode].
const (
	// JournalModeOffline journals only writes made while disconnected
	// (plus keyed online writes, so their idempotency key is remembered).
	JournalModeOffline = "offline"
	// JournalModeAlways additionally mirrors every online write into the
	// local store and journals it as already synced.
	JournalModeAlways = "always"
)

// Shared store drivers accepted by [SharedDB.Driver].
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// StructuredConfig is the top-level configuration container for the edge
// replication service and the edgectl operator CLI. It is populated by
// merging defaults, an optional JSON/YAML file, environment variables
// (optionally preloaded from a .env file) and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version and integrity keys.
	App App `envPrefix:"APP_"`

	// Storage holds the local edge store and shared store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the admin HTTP API settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings edgectl uses to reach the admin API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds periodic sync and purge settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Replication holds routing and journal behaviour.
	Replication Replication `envPrefix:"REPLICATION_"`

	// ConfigFilePath is the optional path to a JSON or YAML file.
	// Env: CONFIG, flags: -c / -config.
	ConfigFilePath string `env:"CONFIG"`

	// EnvFilePath is the .env file loaded before environment parsing.
	// Env: ENV_FILE (defaults to ".env"; a missing file is ignored).
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level configuration values.
type App struct {
	// Version is exposed via GET /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// HashKey signs admin API request bodies (HashSHA256 header).
	// Empty disables the integrity check.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// ChecksumKey keys the BLAKE2b checksum of journal payloads.
	// Env: APP_CHECKSUM_KEY
	ChecksumKey string `env:"CHECKSUM_KEY"`
}

// Storage groups both stores the engine routes between.
type Storage struct {
	// Local is the embedded SQLite edge store.
	Local LocalDB `envPrefix:"LOCAL_"`

	// Shared is the central relational store.
	Shared SharedDB `envPrefix:"SHARED_"`
}

// LocalDB holds the SQLite edge store settings.
type LocalDB struct {
	// DSN is a file path or sqlite3 DSN.
	// Env: STORAGE_LOCAL_DSN
	DSN string `env:"DSN"`
}

// SharedDB holds the shared store connection settings.
type SharedDB struct {
	// Driver is "postgres" or "mysql".
	// Env: STORAGE_SHARED_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the driver-specific connection string.
	// Env: STORAGE_SHARED_DSN
	DSN string `env:"DSN"`

	// MaxOpenConns bounds the shared store pool.
	// Env: STORAGE_SHARED_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// ConnectTimeout bounds the startup ping.
	// Env: STORAGE_SHARED_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Server holds network and timeout settings for the admin HTTP API.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimitRPS is the sustained per-client request rate.
	// Env: SERVER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS"`

	// RateLimitBurst is the per-client burst size.
	// Env: SERVER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST"`
}

// Adapter holds the settings edgectl uses to talk to a running edge node.
type Adapter struct {
	// HTTPAddress is the admin API base address.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// SyncInterval is how often each configured account is synced.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PurgeInterval is how often synced entries are purged.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL"`

	// PurgeAge is the minimum age of a synced entry before it is purged.
	// Env: WORKERS_PURGE_AGE
	PurgeAge time.Duration `env:"PURGE_AGE"`

	// Accounts lists the accounts served by this edge node.
	// Env: WORKERS_ACCOUNTS (comma separated)
	Accounts []string `env:"ACCOUNTS" envSeparator:","`
}

// Replication holds routing, journal and pull behaviour.
type Replication struct {
	// JournalMode is "offline" (default) or "always".
	// Env: REPLICATION_JOURNAL_MODE
	JournalMode string `env:"JOURNAL_MODE"`

	// IDColumn is the record identifier column of every routed table.
	// Env: REPLICATION_ID_COLUMN
	IDColumn string `env:"ID_COLUMN"`

	// VersionColumn enables optimistic version guards when present on a row.
	// Env: REPLICATION_VERSION_COLUMN
	VersionColumn string `env:"VERSION_COLUMN"`

	// AccountColumn scopes rows to an account.
	// Env: REPLICATION_ACCOUNT_COLUMN
	AccountColumn string `env:"ACCOUNT_COLUMN"`

	// StoreColumn scopes rows of store-scoped tables to a store.
	// Env: REPLICATION_STORE_COLUMN
	StoreColumn string `env:"STORE_COLUMN"`

	// UpdatedAtColumn is compared against the "since" filter of a pull.
	// Env: REPLICATION_UPDATED_AT_COLUMN
	UpdatedAtColumn string `env:"UPDATED_AT_COLUMN"`

	// Tables restricts routing to the listed tables when non-empty.
	// Env: REPLICATION_TABLES
	Tables []string `env:"TABLES" envSeparator:","`

	// ReferenceTables is the default table set of a bulk pull.
	// Env: REPLICATION_REFERENCE_TABLES
	ReferenceTables []string `env:"REFERENCE_TABLES" envSeparator:","`

	// StoreScopedTables are additionally filtered by store on pull.
	// Env: REPLICATION_STORE_SCOPED_TABLES
	StoreScopedTables []string `env:"STORE_SCOPED_TABLES" envSeparator:","`

	// DistributedLease guards sync cycles with a shared-store lock so that
	// several edge instances never drain one account concurrently.
	// Env: REPLICATION_DISTRIBUTED_LEASE
	DistributedLease bool `env:"DISTRIBUTED_LEASE"`

	// StartOffline boots the router in offline mode.
	// Env: REPLICATION_START_OFFLINE
	StartOffline bool `env:"START_OFFLINE"`
}

// defaultConfig returns the lowest-priority configuration layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "dev",
		},
		Storage: Storage{
			Local: LocalDB{DSN: "edge.db"},
			Shared: SharedDB{
				Driver:         DriverPostgres,
				MaxOpenConns:   10,
				ConnectTimeout: 5 * time.Second,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SyncInterval:  5 * time.Minute,
			PurgeInterval: time.Hour,
			PurgeAge:      7 * 24 * time.Hour,
		},
		Replication: Replication{
			JournalMode:     JournalModeOffline,
			IDColumn:        "id",
			VersionColumn:   "version",
			AccountColumn:   "account_id",
			StoreColumn:     "store_id",
			UpdatedAtColumn: "updated_at",
			ReferenceTables: []string{"catalog_items", "categories", "staff"},
		},
		EnvFilePath: ".env",
	}
}

// GetStructuredConfig loads and merges the configuration in the following
// priority order (later layers override non-zero fields of earlier ones):
//  1. Defaults
//  2. JSON or YAML file (path resolved from env and flags)
//  3. Environment variables, after loading the .env file
//  4. Command-line flags
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(commandLineArgs()).
		withFile().
		build()
}
