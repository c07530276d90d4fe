package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Transcript TranscriptConfig `mapstructure:"transcript"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string   `mapstructure:"log_format"               validate:"required,oneof=json text"`
	MaxBodyBytes           int64    `mapstructure:"max_body_bytes"           validate:"required,gt=0"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"     validate:"required,dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LLMConfig contains all LLM integration related settings.
// An empty GeminiAPIKey disables generation.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
}

// Enabled reports whether generation is configured.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}

// TranscriptConfig contains settings for the YouTube transcript service.
// An empty APIKey disables YouTube sources.
type TranscriptConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Enabled reports whether transcript fetching is configured.
func (c TranscriptConfig) Enabled() bool {
	return c.APIKey != ""
}
