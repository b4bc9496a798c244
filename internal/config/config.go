// Package config loads app settings from an optional YAML file and
// QLOCK_* environment variables. Everything has a working default; the
// config file exists for people who want a self-hosted API or a custom
// database location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jatin/qlock/internal/account"
)

type Config struct {
	APIURL   string // sync backend base URL
	DBPath   string // SQLite database path, "" means the default data dir
	Sound    bool   // audible timer cues
	LogLevel string // zerolog level name
}

// Load reads $XDG_CONFIG_HOME/qlock/config.yaml if present, then
// applies QLOCK_* environment overrides. A missing config file is not
// an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("QLOCK")
	v.AutomaticEnv()

	v.SetDefault("api_url", account.DefaultAPIURL)
	v.SetDefault("db", "")
	v.SetDefault("sound", true)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		APIURL:   v.GetString("api_url"),
		DBPath:   v.GetString("db"),
		Sound:    v.GetBool("sound"),
		LogLevel: v.GetString("log_level"),
	}, nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "qlock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qlock")
}
