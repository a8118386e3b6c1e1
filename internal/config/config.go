package config

import (
	"fmt"
	"net/url"
	"strconv"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database" validate:"required"`
	Auth          AuthConfig          `mapstructure:"auth" validate:"required"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains the PostgreSQL connection and pool settings.
// Username and Password have no defaults: the process cannot start without them.
type DatabaseConfig struct {
	Host                  string `mapstructure:"host" validate:"required"`
	Port                  int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	Name                  string `mapstructure:"name" validate:"required"`
	Username              string `mapstructure:"username" validate:"required"`
	Password              string `mapstructure:"password" validate:"required"`
	SSLMode               string `mapstructure:"sslmode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MinConns              int    `mapstructure:"min_conns" validate:"gte=1"`
	MaxConns              int    `mapstructure:"max_conns" validate:"gtefield=MinConns"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// DSN returns the connection URL for the configured database.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	if c.ConnectTimeoutSeconds > 0 {
		q := u.Query()
		q.Set("connect_timeout", strconv.Itoa(c.ConnectTimeoutSeconds))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// AuthConfig contains password hashing settings.
type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// ObservabilityConfig contains optional error-reporting settings.
type ObservabilityConfig struct {
	SentryDSN   string `mapstructure:"sentry_dsn" validate:"omitempty,url"`
	Environment string `mapstructure:"environment"`
}
