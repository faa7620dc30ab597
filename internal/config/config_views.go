package config

import (
	"fmt"
	"time"
)

// GetEdgeConfig loads the merged configuration and checks that the edge
// service can start with it.
func GetEdgeConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if err = cfg.validateEdge(); err != nil {
		return nil, fmt.Errorf("invalid edge configuration: %w", err)
	}

	return cfg, nil
}

// CLIConfig is the edgectl view of the configuration. Command-line flags are
// owned by cobra, so this view is built from defaults, the optional file and
// the environment only.
type CLIConfig struct {
	// HTTPAddress is the admin API address of the edge node.
	HTTPAddress string
	// RequestTimeout bounds each admin API call.
	RequestTimeout time.Duration
	// HashKey signs request bodies when the edge node requires it.
	HashKey string
}

// GetCLIConfig builds and validates the edgectl configuration view.
func GetCLIConfig() (*CLIConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFile().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	cliCfg := &CLIConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		HashKey:        cfg.App.HashKey,
	}

	if err = cliCfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client configuration: %w", err)
	}

	return cliCfg, nil
}
