package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nstorage: redis\nredis:\n  host: cache\n  session-ttl: 2h\ntelegram:\n  token: secret\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf, err := Load(path)

		// Then: file values and defaults are combined
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2*time.Hour, conf.Redis.SessionTTL)
		assert.Equal(t, "secret", conf.Telegram.Token)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, 60, conf.Telegram.PollTimeout)
	})

	t.Run("Falls back to the environment", func(t *testing.T) {
		// Given: no config file and a token in the environment
		t.Setenv("TG_TOKEN", "from-env")
		t.Setenv("HTTP_PORT", "8081")

		// When: the config is loaded
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: environment values and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "from-env", conf.Telegram.Token)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("redis: [unclosed"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
