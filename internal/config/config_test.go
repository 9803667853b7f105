package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv(ConfigPathEnv, path)
}

func TestLoad_DirSourceDefaults(t *testing.T) {
	writeConfig(t, "source:\n  kind: dir\n  dir: /srv/exports\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fleet_status.db", cfg.DBPath)
	assert.Equal(t, SourceDir, cfg.Source.Kind)
	assert.Equal(t, "/srv/exports", cfg.Source.Dir)
	assert.Equal(t, CacheSQLite, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, 365, cfg.Planning.YearLookbackDays)
	assert.Equal(t, 120, cfg.Planning.MonthLookbackDays)
	assert.Equal(t, 5, cfg.Planning.HorizonYears)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_HTTPSourceFromFile(t *testing.T) {
	writeConfig(t, `
sheets:
  status_id: status-sheet
  ledger_id: ledger-sheet
  details_gid: "11"
  timeout: 5s
cache:
  backend: memory
  ttl: 2h
  size: 32
log:
  level: DEBUG
  format: json
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "status-sheet", cfg.Sheets.StatusID)
	assert.Equal(t, "11", cfg.Sheets.DetailsGID)
	assert.Equal(t, 5*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 32, cfg.Cache.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	writeConfig(t, "source:\n  kind: dir\n")
	t.Setenv("FLEET_STATUS_HTTP_ADDR", ":9090")
	t.Setenv("FLEET_STATUS_PLANNING_HORIZON_YEARS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 3, cfg.Planning.HorizonYears)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		DBPath:   "fleet_status.db",
		Source:   SourceConfig{Kind: SourceDir, Dir: "exports"},
		Cache:    CacheConfig{Backend: CacheSQLite, TTL: 24 * time.Hour},
		HTTP:     HTTPConfig{Addr: ":8080"},
		Refresh:  RefreshConfig{Interval: time.Minute},
		Planning: PlanningConfig{YearLookbackDays: 365, MonthLookbackDays: 120, HorizonYears: 5},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing db path", func(c *Config) { c.DBPath = "" }, true},
		{"unknown source", func(c *Config) { c.Source.Kind = "ftp" }, true},
		{"dir source without dir", func(c *Config) { c.Source.Dir = "" }, true},
		{"http source without sheet ids", func(c *Config) { c.Source.Kind = SourceHTTP }, true},
		{"http source", func(c *Config) {
			c.Source.Kind = SourceHTTP
			c.Sheets = SheetsConfig{BaseURL: "https://example.com", StatusID: "a", LedgerID: "b"}
		}, false},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "disk" }, true},
		{"short ttl", func(c *Config) { c.Cache.TTL = time.Second }, true},
		{"memory without size", func(c *Config) { c.Cache.Backend = CacheMemory }, true},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }, true},
		{"redis", func(c *Config) {
			c.Cache.Backend = CacheRedis
			c.Redis = RedisConfig{Addr: "localhost:6379"}
		}, false},
		{"zero horizon", func(c *Config) { c.Planning.HorizonYears = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"fast refresh", func(c *Config) { c.Refresh.Interval = time.Millisecond }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
