package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, Load(filepath.Join(t.TempDir(), "absent.yaml"), cfg))
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, DefaultNamespace, cfg.Storage.Namespace)
	assert.Equal(t, slog.LevelInfo, cfg.App.LogLevel)
}

func TestLoad_ExpandsEnvAndOverrides(t *testing.T) {
	t.Setenv("MATTERS_TEST_DIR", "/tmp/matters-data")
	p := writeConfig(t, `
app:
  log_level: debug
  theme: neon
storage:
  backend: sqlite
  dir: ${MATTERS_TEST_DIR}
  namespace: work
`)
	cfg := NewDefaultConfig()
	require.NoError(t, Load(p, cfg))

	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, "neon", cfg.App.Theme)
	assert.Equal(t, "dark", cfg.App.MarkdownStyle)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/matters-data", cfg.Storage.Dir)
	assert.Equal(t, "work", cfg.Storage.Namespace)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "storage:\n  backend: redis\n"},
		{"bad namespace", "storage:\n  namespace: \"a/b\"\n"},
		{"unknown theme", "app:\n  theme: plaid\n"},
		{"broken yaml", "app: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load(writeConfig(t, tt.body), NewDefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestRead_LeavesValidationToCaller(t *testing.T) {
	p := writeConfig(t, `
storage:
  backend: paper
`)
	cfg := NewDefaultConfig()
	require.NoError(t, Read(p, cfg))
	assert.Equal(t, "paper", cfg.Storage.Backend)
	assert.Error(t, cfg.Validate())

	cfg.Storage.Backend = BackendSQLite
	assert.NoError(t, cfg.Validate())

	assert.Error(t, Load(p, NewDefaultConfig()))
}
