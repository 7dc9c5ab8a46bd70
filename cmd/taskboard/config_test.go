package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taskboard/pkg/types"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, types.BackendMemory, v.GetString(cfgKeyBackend))
	assert.Equal(t, types.DefaultHistoryLimit, v.GetInt(cfgKeyHistoryLimit))
	assert.False(t, v.GetBool(cfgKeyDebug))

	// First run leaves a well-formed config.yaml behind.
	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)

	var written configFile
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, types.BackendMemory, written.Backend)
	assert.Equal(t, types.DefaultHistoryLimit, written.HistoryLimit)
}

func TestLoadConfigReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\nhistory_limit: 32\ndebug: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, types.BackendSQLite, v.GetString(cfgKeyBackend))
	assert.Equal(t, 32, v.GetInt(cfgKeyHistoryLimit))
	assert.True(t, v.GetBool(cfgKeyDebug))
}

func TestLoadConfigDoesNotClobberExisting(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\n"
	path := filepath.Join(dir, configFileExt)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := loadConfig(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestConfigFromViper(t *testing.T) {
	dir := t.TempDir()
	content := "backend: memory\nhistory_limit: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)

	cfg := configFromViper(v)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, types.BackendMemory, cfg.Backend)
	assert.Equal(t, 7, cfg.GetHistoryLimit())
}
