package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps configuration keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.port":                      "SERVER_PORT",
	"server.log_level":                 "LOG_LEVEL",
	"server.read_timeout_seconds":      "SERVER_READ_TIMEOUT_SECONDS",
	"server.write_timeout_seconds":     "SERVER_WRITE_TIMEOUT_SECONDS",
	"server.shutdown_timeout_seconds":  "SERVER_SHUTDOWN_TIMEOUT_SECONDS",
	"database.host":                    "DB_HOST",
	"database.port":                    "DB_PORT",
	"database.name":                    "DB_NAME",
	"database.username":                "DB_USERNAME",
	"database.password":                "DB_PASSWORD",
	"database.sslmode":                 "DB_SSLMODE",
	"database.min_conns":               "DB_MIN_CONNS",
	"database.max_conns":               "DB_MAX_CONNS",
	"database.connect_timeout_seconds": "DB_CONNECT_TIMEOUT_SECONDS",
	"auth.bcrypt_cost":                 "BCRYPT_COST",
	"observability.sentry_dsn":         "SENTRY_DSN",
	"observability.environment":        "APP_ENV",
}

// setDefaults registers the default value of every optional setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "user_data")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.connect_timeout_seconds", 5)

	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("observability.environment", "development")
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is read first without overriding
// variables already present in the environment. Environment variables take
// precedence over values from config.yaml.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
