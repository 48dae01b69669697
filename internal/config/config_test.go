package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/config"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "", cfg.Manifest)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.SeqURL)
	assert.Equal(t, 40, cfg.Render.MaxRows)
	assert.False(t, cfg.Render.ShowTypes)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabula.yaml")
	raw := `data_dir: /srv/surveys
manifest: datasets.yaml
log_level: debug
seq_url: http://localhost:5341
render:
  max_rows: 10
  show_types: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/surveys", cfg.DataDir)
	assert.Equal(t, "datasets.yaml", cfg.Manifest)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5341", cfg.SeqURL)
	assert.Equal(t, 10, cfg.Render.MaxRows)
	assert.True(t, cfg.Render.ShowTypes)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabula.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, 40, cfg.Render.MaxRows)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabula.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: [not a map\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
