package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file selecting redis storage
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nboard-size: 4\nstorage:\n  type: redis\n  redis:\n    host: cache\n    port: \"6380\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the config is loaded
		conf, err := Load(path)

		// Then: file values win and missing keys get their defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, 4, conf.BoardSize)
		assert.Equal(t, StorageRedis, conf.Storage.Type)
		assert.Equal(t, "cache:6380", conf.Storage.Redis.GetRedisAddr())
		assert.Equal(t, "tictactoe:save", conf.Storage.Redis.Key)
		assert.Equal(t, "save_game.json", conf.Storage.SaveFile)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults are used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 3, conf.BoardSize)
		assert.Equal(t, StorageFile, conf.Storage.Type)
		assert.Equal(t, "save_game.db", conf.Storage.SQLitePath)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: the storage type set through the environment
		t.Setenv("TICTACTOE_STORAGE", StorageSQLite)
		t.Setenv("TICTACTOE_SQLITE_PATH", "games.db")

		// When: loading without a file
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment values are used
		require.NoError(t, err)
		assert.Equal(t, StorageSQLite, conf.Storage.Type)
		assert.Equal(t, "games.db", conf.Storage.SQLitePath)
	})

	t.Run("Rejects an unknown storage type", func(t *testing.T) {
		t.Setenv("TICTACTOE_STORAGE", "floppy")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		assert.ErrorIs(t, err, ErrUnknownStorage)
	})
}
