// Package config loads server settings from the environment. A .env file
// in the working directory is read first by the godotenv autoload import
// in main.
package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// "text" or "json"
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DataDir   string `env:"DATA_DIR" envDefault:"./data"`
	StaticDir string `env:"STATIC_DIR" envDefault:"./public"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./public/uploads"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"2097152"`

	ShowContactPage           string   `env:"SHOW_CONTACT_PAGE" envDefault:"/showContact.html"`
	ContactFormDefaultService string   `env:"CONTACT_FORM_DEFAULT_SERVICE" envDefault:"General Inquiry"`
	CORSAllowedOrigins        []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Admin AdminConfig
	SMTP  SMTPConfig
}

// AdminConfig controls the admin area. It is disabled while Password is empty.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

// SMTPConfig configures contact notifications.
type SMTPConfig struct {
	Host    string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port    string `env:"SMTP_PORT" envDefault:"587"`
	User    string `env:"SMTP_USER"`
	Pass    string `env:"SMTP_PASS"`
	ToEmail string `env:"TO_EMAIL"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.DataDir == "" {
		return errors.New("DATA_DIR must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// AdminEnabled reports whether the admin routes should be mounted.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Password != ""
}
