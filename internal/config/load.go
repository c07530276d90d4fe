package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ANKIFY_SERVER_PORT for server.port.
const EnvPrefix = "ANKIFY"

// defaults lists every key with its default so AutomaticEnv can see it.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.log_format":               "json",
	"server.max_body_bytes":           1 << 20,
	"server.cors_allowed_origins":     []string{"*"},
	"server.shutdown_timeout_seconds": 10,
	"database.url":                    "",
	"llm.gemini_api_key":              "",
	"llm.model_name":                  "gemini-2.0-flash",
	"transcript.api_key":              "",
	"transcript.base_url":             "https://transcriptapi.com",
	"transcript.timeout_seconds":      120,
}

// Load configuration from environment variables and optionally a
// config.yaml in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
