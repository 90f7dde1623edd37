package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Version  VersionConfig  `mapstructure:"version" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL, when set, is used as-is and the discrete connection fields are ignored.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"omitempty,url"`
	Host            string        `mapstructure:"host" validate:"required_without=URL"`
	Port            int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	User            string        `mapstructure:"user" validate:"required_without=URL"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name" validate:"required_without=URL"`
	SSLMode         string        `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}

// DSN returns the connection string handed to the pgx driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// VersionConfig holds the versions reported by the /sec endpoints.
type VersionConfig struct {
	// ExpectedClient is the only client version accepted by the version check.
	ExpectedClient string `mapstructure:"expected_client" validate:"required"`
	// API is this service's own API version.
	API string `mapstructure:"api" validate:"required"`
}
