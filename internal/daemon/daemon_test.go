package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/config"
	"fleet_status/internal/sheets"
)

const statusBody = `google.visualization.Query.setResponse({"table":{"rows":[` +
	`{"c":[{"v":"2024-03-15"},{"v":"{\"ข้อมูลSheet1\":[{\"เครื่องบิน\":\"2208\",\"แบบเครื่องบิน\":\"CN-235\",\"สถานะ\":\"ใช้งานได้\",\"ชั่วโมง\":\"1004:30\"}]}"}]}` +
	`]}});`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	exports := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(exports, sheets.FileName(sheets.StatusExport)), []byte(statusBody), 0o644))
	for _, e := range []sheets.Export{sheets.DetailsExport, sheets.EnginesExport, sheets.PropellersExport} {
		require.NoError(t, os.WriteFile(filepath.Join(exports, sheets.FileName(e)), []byte("model,s/n\n"), 0o644))
	}
	return &config.Config{
		DBPath:   filepath.Join(t.TempDir(), "fleet_status.db"),
		Source:   config.SourceConfig{Kind: config.SourceDir, Dir: exports},
		Cache:    config.CacheConfig{Backend: config.CacheSQLite, TTL: time.Hour},
		HTTP:     config.HTTPConfig{Addr: "127.0.0.1:0"},
		Refresh:  config.RefreshConfig{Interval: time.Hour, Retention: 24 * time.Hour},
		Planning: config.PlanningConfig{YearLookbackDays: 365, MonthLookbackDays: 120, HorizonYears: 5},
		Log:      config.LogConfig{Level: "info", Format: "text"},
	}
}

func TestOpen(t *testing.T) {
	cfg := testConfig(t)
	stack, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer stack.Close()

	assert.NotNil(t, stack.Purger)
	_, ok := stack.Source.(*sheets.DirSource)
	assert.True(t, ok)

	res, published, err := stack.Selector.Select(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, published)
	assert.Equal(t, "2024-03-15", res.Date)
	require.Len(t, res.Aircraft, 1)
}

func TestOpen_MemoryCache(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache = config.CacheConfig{Backend: config.CacheMemory, TTL: time.Hour, Size: 16}
	stack, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer stack.Close()
	assert.Nil(t, stack.Purger)
}

func TestDaemon_StartStop(t *testing.T) {
	d, err := New(testConfig(t))
	require.NoError(t, err)
	assert.NotEmpty(t, d.watchDir)

	require.NoError(t, d.Start())
	require.Eventually(t, func() bool {
		return d.stack.Selector.Current() != nil
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, "2024-03-15", d.stack.Selector.Current().Date)
	require.NoError(t, d.Stop())
}
