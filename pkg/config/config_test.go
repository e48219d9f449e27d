package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "auto", config.Security.APIKey)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestGenerateSecureKey(t *testing.T) {
	t.Run("generate 32 byte key", func(t *testing.T) {
		key, err := GenerateSecureKey(32)
		require.NoError(t, err)
		assert.Len(t, key, 64) // 32 bytes = 64 hex characters

		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
	})

	t.Run("generate different keys", func(t *testing.T) {
		key1, err := GenerateSecureKey(16)
		require.NoError(t, err)
		key2, err := GenerateSecureKey(16)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})
}

func TestSaveAndLoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	original := DefaultConfig()
	original.DataDir = "/var/lib/yad"
	original.Port = 9090
	original.Security.APIKey = "secret-key"
	original.Logging.Level = "debug"

	require.NoError(t, SaveConfig(original, configPath))

	// Saved with restrictive permissions
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("port: [not a number"), 0600))

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestBootstrapConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config, err := BootstrapConfig(configPath, "/data/yad")
	require.NoError(t, err)
	assert.Equal(t, "/data/yad", config.DataDir)
	assert.NotEqual(t, "auto", config.Security.APIKey)
	assert.Len(t, config.Security.APIKey, 64)

	assert.True(t, ConfigExists(configPath))

	// Round-trips through yaml
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, yaml.Unmarshal(data, &onDisk))
	assert.Equal(t, *config, onDisk)
}

func TestConfigExists(t *testing.T) {
	assert.False(t, ConfigExists(filepath.Join(t.TempDir(), "nope.yaml")))
}
