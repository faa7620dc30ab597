// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

// validate checks the merged [StructuredConfig] for values no component can
// work with. Zero values are left to the consumers' own defaults, so only
// values that were set to something unknown are rejected here.
func (cfg *StructuredConfig) validate() error {
	if d := cfg.Storage.Shared.Driver; d != "" && d != DriverPostgres && d != DriverMySQL {
		return fmt.Errorf("%w: unknown shared driver %q", ErrInvalidStorageConfigs, d)
	}

	if m := cfg.Replication.JournalMode; m != "" && m != JournalModeOffline && m != JournalModeAlways {
		return fmt.Errorf("%w: unknown journal mode %q", ErrInvalidReplicationConfigs, m)
	}

	if cfg.Server.RateLimitRPS < 0 || cfg.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SyncInterval < 0 || cfg.Workers.PurgeInterval < 0 || cfg.Workers.PurgeAge < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

// validateEdge checks what the edge service needs before it can start.
func (cfg *StructuredConfig) validateEdge() error {
	if cfg.Storage.Local.DSN == "" {
		return fmt.Errorf("%w: local DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Shared.DSN == "" {
		return fmt.Errorf("%w: shared DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SyncInterval == 0 {
		return fmt.Errorf("%w: sync interval is required", ErrInvalidWorkerConfigs)
	}

	r := cfg.Replication
	if slices.Contains([]string{r.IDColumn, r.AccountColumn}, "") {
		return fmt.Errorf("%w: id and account columns are required", ErrInvalidReplicationConfigs)
	}

	return nil
}

func (cfg *CLIConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
