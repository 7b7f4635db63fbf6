package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "combatd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadServer_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
}

func TestLoadServer_Overrides(t *testing.T) {
	path := writeConfig(t, `
port: 9090
log_level: debug
database:
  enabled: true
  host: db
rate_limit:
  casts_per_second: 4
  burst: 2
persist_interval: 10s
combat:
  combo_window: 2500ms
  global_cooldown: 0s
  combination_mana_cost: 25
`)

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://arcana:arcana@db:5432/arcana?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 4.0, cfg.RateLimit.CastsPerSecond)
	assert.Equal(t, 10*time.Second, cfg.PersistInterval)

	assert.Equal(t, 2500*time.Millisecond, cfg.Combat.ComboWindow)
	assert.Zero(t, cfg.Combat.GlobalCooldown)
	assert.Equal(t, 25, cfg.Combat.CombinationManaCost)
	// untouched keys keep their defaults
	assert.Equal(t, 1.5, cfg.Combat.VarietyMultiplier)
	assert.Equal(t, 50, cfg.Combat.LogCapacity)
}

func TestLoadServer_InvalidCombat(t *testing.T) {
	path := writeConfig(t, "combat:\n  combo_window: 0s\n  log_capacity: 0\n")

	_, err := LoadServer(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combo_window")
	assert.Contains(t, err.Error(), "log_capacity")
}

func TestLoadServer_NonPositivePersistInterval(t *testing.T) {
	_, err := LoadServer(writeConfig(t, "persist_interval: 0s\n"))
	assert.ErrorContains(t, err, "persist_interval")
}

func TestLoadServer_SampleFile(t *testing.T) {
	cfg, err := LoadServer(filepath.Join("..", "..", "config", "combatd.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
}

func TestLoadServer_BadYAML(t *testing.T) {
	_, err := LoadServer(writeConfig(t, "port: [1"))
	assert.ErrorContains(t, err, "parsing config")
}

func TestDefaultCombat_Valid(t *testing.T) {
	require.NoError(t, DefaultCombat().Validate())

	c := DefaultCombat()
	c.MaxChainLength = 2
	c.VarietyMultiplier = 0
	err := c.Validate()
	assert.ErrorContains(t, err, "max_chain_length")
	assert.ErrorContains(t, err, "multipliers")
}
