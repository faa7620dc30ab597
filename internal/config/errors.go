package config

import "errors"

// Validation errors returned when a merged configuration is unusable.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty local DSN or an unknown shared driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid admin API settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid edgectl adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidReplicationConfigs indicates an unknown journal mode or
	// an empty routing column.
	ErrInvalidReplicationConfigs = errors.New("invalid replication configuration")
	// ErrUnsupportedConfigFile is returned for config files that are
	// neither JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file extension")
)
