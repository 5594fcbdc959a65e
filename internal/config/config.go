// Package config загружает конфигурацию сервера активации.
//
// Порядок источников: файл .env (если есть), переменные окружения
// с префиксом ACTIVATOR, затем явно заданные флаги командной строки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/iudanet/activator/internal/crypto"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "ACTIVATOR"

// Config represents the complete server configuration
type Config struct {
	Server     ServerConfig     `envconfig:"SERVER"`
	Database   DatabaseConfig   `envconfig:"DB"`
	Credential CredentialConfig `envconfig:"CREDENTIAL"`
	Archive    ArchiveConfig    `envconfig:"ARCHIVE"`
	RateLimit  RateLimitConfig  `envconfig:"RATE_LIMIT"`
	Logging    LoggingConfig    `envconfig:"LOG"`

	// ShowVersion задается только флагом -version
	ShowVersion bool `ignored:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// DatabaseConfig contains SQLite store configuration
type DatabaseConfig struct {
	Path           string        `envconfig:"FILE" default:"activator.db"`
	RetryAttempts  uint64        `envconfig:"RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"RETRY_BASE_DELAY" default:"20ms"`
}

// CredentialConfig contains session credential configuration
type CredentialConfig struct {
	Secret string        `envconfig:"SECRET"`
	TTL    time.Duration `envconfig:"TTL" default:"168h"`
}

// ArchiveConfig contains archived profile policy
type ArchiveConfig struct {
	Retention time.Duration `envconfig:"RETENTION" default:"720h"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"true"`
	RPS     float64 `envconfig:"RPS" default:"10"`
	Burst   int     `envconfig:"BURST" default:"20"`
	// TrustProxy включает учет X-Forwarded-For и X-Real-IP
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// Load loads configuration for the given command line arguments (without program name)
func Load(args []string) (*Config, error) {
	flags := flag.NewFlagSet("activator-server", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	envFile := flags.String("env-file", ".env", "path to .env file")
	addr := flags.String("addr", "", "HTTP listen address")
	dbPath := flags.String("db", "", "path to SQLite database")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := flags.String("log-format", "", "log format: text, json")
	showVersion := flags.Bool("version", false, "show version information")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Переменные окружения имеют приоритет над .env файлом
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", *envFile, err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Флаги применяются только если заданы явно
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "db":
			cfg.Database.Path = *dbPath
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})
	cfg.ShowVersion = *showVersion

	if cfg.ShowVersion {
		return &cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	var errs []error

	if len(c.Credential.Secret) < crypto.MinSecretLen {
		errs = append(errs, fmt.Errorf("%s_CREDENTIAL_SECRET must be at least %d bytes", EnvPrefix, crypto.MinSecretLen))
	}
	if c.Credential.TTL <= 0 {
		errs = append(errs, errors.New("credential TTL must be positive"))
	}
	if c.Archive.Retention <= 0 {
		errs = append(errs, errors.New("archive retention must be positive"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ParseLevel разбирает уровень логирования
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// NewLogger создает slog.Logger по конфигурации логирования
func NewLogger(cfg LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return slog.New(handler), nil
}
