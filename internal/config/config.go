package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

var ErrUnknownStorage = errors.New("unknown storage type")

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile   string  `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:""`
	BoardSize int     `yaml:"board-size" env:"TICTACTOE_BOARD_SIZE" env-default:"3"`
	Storage   Storage `yaml:"storage"`
}

type Storage struct {
	Type       string `yaml:"type" env:"TICTACTOE_STORAGE" env-default:"file"`
	SaveFile   string `yaml:"save-file" env:"TICTACTOE_SAVE_FILE" env-default:"save_game.json"`
	SQLitePath string `yaml:"sqlite-path" env:"TICTACTOE_SQLITE_PATH" env-default:"save_game.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	Key  string `yaml:"key" env:"TICTACTOE_REDIS_KEY" env-default:"tictactoe:save"`
}

// Load - reads the config file at path; a missing file falls back to defaults and environment.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Storage.Type {
	case StorageFile, StorageRedis, StorageSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage.Type)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
