package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] with JSON/YAML keys and
// human-readable durations.
type fileConfig struct {
	App struct {
		Version     string `json:"version" yaml:"version"`
		HashKey     string `json:"hash_key" yaml:"hash_key"`
		ChecksumKey string `json:"checksum_key" yaml:"checksum_key"`
	} `json:"app" yaml:"app"`

	Storage struct {
		Local struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"local" yaml:"local"`
		Shared struct {
			Driver         string   `json:"driver" yaml:"driver"`
			DSN            string   `json:"dsn" yaml:"dsn"`
			MaxOpenConns   int      `json:"max_open_conns" yaml:"max_open_conns"`
			ConnectTimeout Duration `json:"connect_timeout" yaml:"connect_timeout"`
		} `json:"shared" yaml:"shared"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		RateLimitRPS   float64  `json:"rate_limit_rps" yaml:"rate_limit_rps"`
		RateLimitBurst int      `json:"rate_limit_burst" yaml:"rate_limit_burst"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval" yaml:"sync_interval"`
		PurgeInterval Duration `json:"purge_interval" yaml:"purge_interval"`
		PurgeAge      Duration `json:"purge_age" yaml:"purge_age"`
		Accounts      []string `json:"accounts" yaml:"accounts"`
	} `json:"workers" yaml:"workers"`

	Replication struct {
		JournalMode       string   `json:"journal_mode" yaml:"journal_mode"`
		IDColumn          string   `json:"id_column" yaml:"id_column"`
		VersionColumn     string   `json:"version_column" yaml:"version_column"`
		AccountColumn     string   `json:"account_column" yaml:"account_column"`
		StoreColumn       string   `json:"store_column" yaml:"store_column"`
		UpdatedAtColumn   string   `json:"updated_at_column" yaml:"updated_at_column"`
		Tables            []string `json:"tables" yaml:"tables"`
		ReferenceTables   []string `json:"reference_tables" yaml:"reference_tables"`
		StoreScopedTables []string `json:"store_scoped_tables" yaml:"store_scoped_tables"`
		DistributedLease  bool     `json:"distributed_lease" yaml:"distributed_lease"`
		StartOffline      bool     `json:"start_offline" yaml:"start_offline"`
	} `json:"replication" yaml:"replication"`
}

// parseFile reads a JSON (.json) or YAML (.yaml, .yml) config file.
func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.NewDecoder(f).Decode(&fc)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&fc)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:     fc.App.Version,
			HashKey:     fc.App.HashKey,
			ChecksumKey: fc.App.ChecksumKey,
		},
		Storage: Storage{
			Local: LocalDB{DSN: fc.Storage.Local.DSN},
			Shared: SharedDB{
				Driver:         fc.Storage.Shared.Driver,
				DSN:            fc.Storage.Shared.DSN,
				MaxOpenConns:   fc.Storage.Shared.MaxOpenConns,
				ConnectTimeout: time.Duration(fc.Storage.Shared.ConnectTimeout),
			},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			RateLimitRPS:   fc.Server.RateLimitRPS,
			RateLimitBurst: fc.Server.RateLimitBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:  time.Duration(fc.Workers.SyncInterval),
			PurgeInterval: time.Duration(fc.Workers.PurgeInterval),
			PurgeAge:      time.Duration(fc.Workers.PurgeAge),
			Accounts:      fc.Workers.Accounts,
		},
		Replication: Replication{
			JournalMode:       fc.Replication.JournalMode,
			IDColumn:          fc.Replication.IDColumn,
			VersionColumn:     fc.Replication.VersionColumn,
			AccountColumn:     fc.Replication.AccountColumn,
			StoreColumn:       fc.Replication.StoreColumn,
			UpdatedAtColumn:   fc.Replication.UpdatedAtColumn,
			Tables:            fc.Replication.Tables,
			ReferenceTables:   fc.Replication.ReferenceTables,
			StoreScopedTables: fc.Replication.StoreScopedTables,
			DistributedLease:  fc.Replication.DistributedLease,
			StartOffline:      fc.Replication.StartOffline,
		},
	}
}

// Duration is a wrapper around time.Duration that decodes strings like
// "1h" or "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ns))
	return nil
}
