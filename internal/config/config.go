package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains the remote generation service settings.
//
// APIKey is deliberately optional: when it is empty the service runs on the
// deterministic template generator alone, and the remote path is never
// attempted. The toggle is carried here explicitly rather than read from the
// environment at call time.
type LLMConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	ModelName      string  `mapstructure:"model_name"      validate:"required"`
	EndpointURL    string  `mapstructure:"endpoint_url"    validate:"required,url"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// RemoteConfigured reports whether a remote-service credential is present.
func (c LLMConfig) RemoteConfigured() bool {
	return c.APIKey != ""
}
