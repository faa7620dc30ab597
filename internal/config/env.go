// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// List variables such as REPLICATION_TABLES are split on commas; entries are
// trimmed and empty ones dropped, so "orders, tickets," names two tables.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Workers.Accounts = cleanList(cfg.Workers.Accounts)
	cfg.Replication.Tables = cleanList(cfg.Replication.Tables)
	cfg.Replication.ReferenceTables = cleanList(cfg.Replication.ReferenceTables)
	cfg.Replication.StoreScopedTables = cleanList(cfg.Replication.StoreScopedTables)

	return nil
}

// cleanList returns nil when no entry is left, so an empty variable does not
// override a list set by a lower configuration layer.
func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
