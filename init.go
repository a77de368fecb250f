package fvgview

import (
	"os"
	"strconv"

	"github.com/raykavin/fvgview/pkg/logger/zerolog"
	rszerolog "github.com/rs/zerolog"
)

const (
	// Default configuration values
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
)

// Environment variable names
const (
	envLogLevel      = "FVGVIEW_LOG_LEVEL"
	envLogTimeFormat = "FVGVIEW_LOG_TIME_FORMAT"
	envLogColor      = "FVGVIEW_LOG_COLOR"
	envLogJSON       = "FVGVIEW_LOG_JSON"
)

func init() {
	log, err := initLogger()
	if err != nil {
		panic(err)
	}

	DefaultLog = zerolog.NewAdapter(log)
}

// initLogger creates the package logger from environment variables
func initLogger() (*rszerolog.Logger, error) {
	logColored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return nil, err
	}

	logJSON, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	return zerolog.New(zerolog.Options{
		Level:          getEnvWithDefault(envLogLevel, defaultLogLevel),
		DateTimeLayout: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
		Colored:        logColored,
		JSON:           logJSON,
	})
}

// getEnvWithDefault returns the value of the environment variable or the default if not set
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseBoolEnv gets a boolean environment variable with a default value
func parseBoolEnv(key, defaultValue string) (bool, error) {
	value := getEnvWithDefault(key, defaultValue)
	return strconv.ParseBool(value)
}
