package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Database DatabaseConfig    `yaml:"database"`
	Static   StaticConfig      `yaml:"static"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Database.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	Env      string     `yaml:"env"`
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	// Empty env means development, matching the defaults.
	if c.Env == "" {
		c.Env = EnvDevelopment
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.Required, validation.In(EnvDevelopment, EnvProduction, EnvTest)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// Production reports whether error details must be hidden from clients.
func (c *ApplicationConfig) Production() bool {
	return c.Env == EnvProduction
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DatabaseConfig holds the database connection string. postgres:// URLs
// select PostgreSQL; anything else is a SQLite file path.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
	)
}

// StaticConfig holds the directory of public assets served at the root.
// An empty or missing directory disables static serving.
type StaticConfig struct {
	Dir string `yaml:"dir"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			Env:      EnvDevelopment,
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8000,
			},
		},
		Database: DatabaseConfig{
			URL: "./noteful.db",
		},
		Static: StaticConfig{
			Dir: "./public",
		},
	}
}
