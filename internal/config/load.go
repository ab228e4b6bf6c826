package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for all environment variables read by Load.
const envPrefix = "BLATTWERK"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("llm.model_name", "gpt-4o-mini")
	v.SetDefault("llm.endpoint_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.timeout_seconds", 30)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; environment variables carry the config.
	}

	// Environment variables with BLATTWERK_ prefix
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables. AutomaticEnv alone does
	// not surface keys that were never set as defaults or in a file.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "BLATTWERK_SERVER_PORT"},
		{"server.log_level", "BLATTWERK_SERVER_LOG_LEVEL"},
		{"database.url", "BLATTWERK_DATABASE_URL"},
		{"auth.jwt_secret", "BLATTWERK_AUTH_JWT_SECRET"},
		{"llm.api_key", "BLATTWERK_LLM_API_KEY"},
		{"llm.model_name", "BLATTWERK_LLM_MODEL_NAME"},
		{"llm.endpoint_url", "BLATTWERK_LLM_ENDPOINT_URL"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
