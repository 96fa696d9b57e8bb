// Package config provides application configuration: the database connection file and the
// HTTP server settings loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds all process-level configuration that is not part of the connection file.
type Server struct {
	HTTP    HTTPConfig
	App     AppConfig
	Logging LoggingConfig
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"HTTP_PORT" envDefault:"5000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev            bool   `env:"DEV" envDefault:"false"`
	ConnectionFile string `env:"CONNECTION_FILE" envDefault:"connessione.txt"`
	SchemaMode     string `env:"SCHEMA_MODE" envDefault:"create"`
	DBDebug        bool   `env:"DB_DEBUG" envDefault:"false"`
	FlashSecret    string `env:"FLASH_SECRET" envDefault:"chiave_segreta_per_flash_messages"`
	SecureCookies  bool   `env:"SECURE_COOKIES" envDefault:"false"`
	Metrics        bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoggingConfig controls the zap logger and its optional rotated file sink.
type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"` // json, console
	FilePath   string `env:"LOG_FILE"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"50"` // MB
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"28"` // days
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// LoadServer reads the server configuration from environment variables.
// Callers load a .env file beforehand when they want one.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
