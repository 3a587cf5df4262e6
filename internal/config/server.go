package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by the HTTP server
const (
	EnvPort          = "PORT"
	EnvLogLevel      = "TAXBERG_LOG_LEVEL"
	EnvDevelopment   = "TAXBERG_DEV"
	EnvAllowedOrigin = "TAXBERG_ALLOWED_ORIGIN"
)

// ServerConfig holds the settings of the calculation API
type ServerConfig struct {
	Port          string
	LogLevel      string
	Development   bool
	AllowedOrigin string
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// LoadServerConfig reads server settings from the environment. When envFile is
// set it is loaded first; a missing file is not an error. Variables already
// present in the environment win over the file.
func LoadServerConfig(envFile string) (*ServerConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &ServerConfig{
		Port:          getenv(EnvPort, "8080"),
		LogLevel:      getenv(EnvLogLevel, "info"),
		AllowedOrigin: getenv(EnvAllowedOrigin, "*"),
	}

	if v := os.Getenv(EnvDevelopment); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvDevelopment, v, err)
		}
		cfg.Development = dev
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be numeric", EnvPort, cfg.Port)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
