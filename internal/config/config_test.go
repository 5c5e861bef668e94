package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_NoDefaultFileIsSilent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "logs/argcheck.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.StrictGroups)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "argcheck.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log_level: debug
format: json
strict_groups: true
filter: example.com/app
rules:
  - DuplicateArgumentName
  - DuplicateActionArgument
`), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.StrictGroups)
	assert.Equal(t, "example.com/app", cfg.Filter)
	assert.Equal(t, []string{"DuplicateArgumentName", "DuplicateActionArgument"}, cfg.Rules)
	// Untouched keys keep their defaults.
	assert.Equal(t, "logs/argcheck.log", cfg.LogFile)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ARGCHECK_LOG_LEVEL", "warn")
	t.Setenv("ARGCHECK_STRICT_GROUPS", "true")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.StrictGroups)
}

func TestLoad_BrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log_level: [unclosed"), 0o644))

	_, err := Load(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}
