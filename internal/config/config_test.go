package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/blockfall/internal/domain"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadOverrides(t *testing.T) {
	path := write(t, `
dimension:
  rows: 8
  columns: 7
search:
  max_moves: 4
server:
  trace_dir: " /tmp/trace "
log_level: DEBUG
seed: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Dimension{Rows: 8, Columns: 7}, cfg.Dimension)
	assert.Equal(t, domain.Target{MinScore: 100, MaxMoves: 4}, cfg.Target())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/tmp/trace", cfg.Server.TraceDir)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"dimension": "dimension: {rows: 30, columns: 8}\n",
		"width":     "dimension: {rows: 8, columns: 5000}\n",
		"moves":     "search: {max_moves: -1}\n",
		"level":     "log_level: loud\n",
		"syntax":    "dimension: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, body))
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
