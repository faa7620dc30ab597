package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "edge.json", `{
		"storage": {"shared": {"driver": "mysql", "dsn": "root@tcp(db:3306)/retail", "connect_timeout": "2s"}},
		"workers": {"sync_interval": "90s", "accounts": ["acc-1"]},
		"replication": {"journal_mode": "always", "tables": ["orders"]}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Storage.Shared.Driver)
	assert.Equal(t, 2*time.Second, cfg.Storage.Shared.ConnectTimeout)
	assert.Equal(t, 90*time.Second, cfg.Workers.SyncInterval)
	assert.Equal(t, []string{"acc-1"}, cfg.Workers.Accounts)
	assert.Equal(t, JournalModeAlways, cfg.Replication.JournalMode)
	assert.Equal(t, []string{"orders"}, cfg.Replication.Tables)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "edge.yaml", `
server:
  http_address: "127.0.0.1:9090"
  request_timeout: 45s
  rate_limit_rps: 2.5
workers:
  purge_age: 24h
replication:
  reference_tables: [catalog_items]
  store_scoped_tables: [tickets]
  distributed_lease: true
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.InDelta(t, 2.5, cfg.Server.RateLimitRPS, 0.0001)
	assert.Equal(t, 24*time.Hour, cfg.Workers.PurgeAge)
	assert.Equal(t, []string{"catalog_items"}, cfg.Replication.ReferenceTables)
	assert.Equal(t, []string{"tickets"}, cfg.Replication.StoreScopedTables)
	assert.True(t, cfg.Replication.DistributedLease)
}

func TestParseFile_EmptyYAML(t *testing.T) {
	cfg, err := parseFile(writeTempFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.HTTPAddress)
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	_, err := parseFile(writeTempFile(t, "edge.toml", "a = 1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedConfigFile)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := parseFile("/nonexistent/edge.json")
	require.Error(t, err)

	_, err = parseFile(writeTempFile(t, "bad.json", `{"server":`))
	require.Error(t, err)

	_, err = parseFile(writeTempFile(t, "bad.yaml", "workers:\n  sync_interval: soon\n"))
	require.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, time.Duration(d))

	out, err := json.Marshal(Duration(time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m0s"`, string(out))
}

func TestGetCLIConfig_FromEnv(t *testing.T) {
	t.Setenv("ENV_FILE", writeTempFile(t, "none.env", ""))
	t.Setenv("CONFIG", "")
	t.Setenv("ADAPTER_ADDRESS", "10.0.0.5:8080")
	t.Setenv("APP_HASH_KEY", "k")

	cfg, err := GetCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:8080", cfg.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "k", cfg.HashKey)
}

func TestValidateEdge(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.ErrorIs(t, cfg.validateEdge(), ErrInvalidStorageConfigs, "shared DSN is missing")

	cfg.Storage.Shared.DSN = "postgres://localhost/retail"
	assert.NoError(t, cfg.validateEdge())

	cfg.Replication.AccountColumn = ""
	assert.ErrorIs(t, cfg.validateEdge(), ErrInvalidReplicationConfigs)
}
