package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.ScratchRoot)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.DebugMode)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Logging.Level, cfg.Logging.Level)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swiftreduce.yaml")

	cfg := DefaultConfig()
	cfg.Subject.SourcekitdPath = "/path/to/sourcekitd.so"
	cfg.Subject.FrontendPath = "/path/to/swift-frontend"
	cfg.Subject.Predicate = `stderr contains "Fatal error"`
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Subject.SourcekitdPath, loaded.Subject.SourcekitdPath)
	assert.Equal(t, cfg.Subject.FrontendPath, loaded.Subject.FrontendPath)
	assert.Equal(t, cfg.Subject.Predicate, loaded.Subject.Predicate)
}

func TestValidForModes(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.ValidForFrontend())
	assert.False(t, cfg.ValidForSourcekitd())

	cfg.Subject.FrontendPath = "/bin/swift-frontend"
	assert.True(t, cfg.ValidForFrontend())

	cfg.Subject.SourcekitdPath = "/lib/sourcekitd.so"
	cfg.Subject.HelperPath = "/bin/sourcekitd-helper"
	assert.True(t, cfg.ValidForSourcekitd())
}
