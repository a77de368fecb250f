// Package config handles application configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Constants for configuration
const (
	DefaultConfigPath = "./fvgview.yaml"
	DefaultEnvFile    = ".env"
	DefaultEventsDir  = "output"
	DefaultPort       = 8080
	DefaultWindowPad  = "1h"
)

// AppConfig holds the application configuration
type AppConfig struct {
	EventsDir  string
	ConfigPath string
	HTTP       HTTPConfig
	Log        LogConfig
	WindowPad  time.Duration
}

// HTTPConfig holds the viewer server configuration
type HTTPConfig struct {
	Port  int
	Debug bool
}

// LogConfig holds the logger configuration
type LogConfig struct {
	Level      string
	TimeFormat string
	Colored    bool
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadAppConfig loads the configuration from the environment (after loading an
// optional .env file) and an optional YAML file. Environment variables win over the file.
func LoadAppConfig() (*AppConfig, error) {
	return load(viper.New(), DefaultEnvFile)
}

func load(v *viper.Viper, envFile string) (*AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v.AutomaticEnv()

	v.SetDefault("CONFIG_PATH", DefaultConfigPath)
	v.SetDefault("EVENTS_DIR", DefaultEventsDir)
	v.SetDefault("HTTP_PORT", DefaultPort)
	v.SetDefault("HTTP_DEBUG", false)
	v.SetDefault("WINDOW_PAD", DefaultWindowPad)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_TIME_FORMAT", "2006-01-02 15:04:05")
	v.SetDefault("LOG_COLOR", true)
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)

	configPath := v.GetString("CONFIG_PATH")
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	pad, err := str2duration.ParseDuration(v.GetString("WINDOW_PAD"))
	if err != nil {
		return nil, fmt.Errorf("invalid WINDOW_PAD: %w", err)
	}

	config := &AppConfig{
		EventsDir:  v.GetString("EVENTS_DIR"),
		ConfigPath: configPath,
		HTTP: HTTPConfig{
			Port:  v.GetInt("HTTP_PORT"),
			Debug: v.GetBool("HTTP_DEBUG"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			TimeFormat: v.GetString("LOG_TIME_FORMAT"),
			Colored:    v.GetBool("LOG_COLOR"),
			JSON:       v.GetBool("LOG_JSON"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		WindowPad: pad,
	}

	return config, nil
}
