// Package config loads the service configuration.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults
//  2. an optional config file (YAML, TOML or JSON, by extension)
//  3. environment variables prefixed NEWS_, with dots as underscores:
//     server.port → NEWS_SERVER_PORT, database.url → NEWS_DATABASE_URL
//
// Commands call godotenv before Load, so a .env file in the working
// directory feeds step 3 without overriding the real environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "NEWS"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile         string        `mapstructure:"log_file"`
	LogMaxSizeMB    int           `mapstructure:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups   int           `mapstructure:"log_max_backups" validate:"gte=0"`
	LogMaxAgeDays   int           `mapstructure:"log_max_age_days" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	// URL is a file path (or file: URI) for sqlite and a connection
	// string for postgres.
	URL  string `mapstructure:"url" validate:"required"`
	Seed bool   `mapstructure:"seed"`
}

var defaults = map[string]any{
	"server.port":             9090,
	"server.log_level":        "info",
	"server.log_file":         "",
	"server.log_max_size_mb":  100,
	"server.log_max_backups":  3,
	"server.log_max_age_days": 7,
	"server.shutdown_timeout": 30 * time.Second,
	"database.driver":         DriverSQLite,
	"database.url":            "data/news.db",
	"database.seed":           false,
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default: AutomaticEnv only resolves keys viper
	// already knows about, and Unmarshal only sees those.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its validate tags and reports every failing
// key in one error.
func Validate(cfg *Config) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: validating: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(msgs, "; "))
}
