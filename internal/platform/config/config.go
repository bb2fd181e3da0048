// Package config loads quotesync configuration using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20

	DefaultClientRetryMaxAttempts     = 3
	DefaultClientRetryMultiplier      = 2.0
	DefaultClientRetryJitterFactor    = 0.25
	DefaultClientCircuitMaxFailures   = 5
	DefaultClientCircuitHalfOpenLimit = 1

	DefaultTransportMaxIdleConns        = 20
	DefaultTransportMaxIdleConnsPerHost = 4

	DefaultLogFileMaxSizeMB  = 20
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28

	// DefaultSyncInterval is the period of the automatic sync cycle.
	DefaultSyncInterval = 30 * time.Second

	DefaultPushBatchSize   = 50
	DefaultPushConcurrency = 4

	// DefaultRemoteCategory labels remote records that carry no category.
	DefaultRemoteCategory = "Remote"

	DefaultRemoteBaseURL = "https://jsonplaceholder.typicode.com"

	// EnvPrefix prefixes every environment override. A double underscore
	// separates sections: APP_SYNC__DELETION_POLICY sets sync.deletion_policy.
	EnvPrefix = "APP_"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Storage   StorageConfig   `koanf:"storage"   validate:"required"`
	Sync      SyncConfig      `koanf:"sync"      validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP API settings used by the serve command.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=100ms"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains the remote HTTP client settings.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains connection pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains remote endpoints.
type ServicesConfig struct {
	Quote QuoteEndpointConfig `koanf:"quote" validate:"required"`
}

// QuoteEndpointConfig describes the remote quote endpoint.
type QuoteEndpointConfig struct {
	BaseURL    string `koanf:"base_url"    validate:"required,url"`
	Name       string `koanf:"name"        validate:"required"`
	ListPath   string `koanf:"list_path"   validate:"required,startswith=/"`
	PushPath   string `koanf:"push_path"   validate:"required,startswith=/"`
	FetchLimit int    `koanf:"fetch_limit" validate:"min=0"`
	APIKey     string `koanf:"api_key"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver     string `koanf:"driver"      validate:"required,oneof=badger sqlite"`
	Path       string `koanf:"path"`
	SQLitePath string `koanf:"sqlite_path"`
	InMemory   bool   `koanf:"in_memory"`
}

// SyncConfig tunes the sync orchestrator.
type SyncConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Interval        time.Duration `koanf:"interval"         validate:"required,min=1s"`
	SyncOnStart     bool          `koanf:"sync_on_start"`
	DeletionPolicy  string        `koanf:"deletion_policy"  validate:"required,oneof=readd respect"`
	PushBatchSize   int           `koanf:"push_batch_size"  validate:"required,min=1,max=1000"`
	PushConcurrency int           `koanf:"push_concurrency" validate:"required,min=1,max=32"`
	RemoteCategory  string        `koanf:"remote_category"  validate:"required"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotesync",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "127.0.0.1",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotesync.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotesync",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "10s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "200ms",
		"client.retry.max_interval":                "3s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "60s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.quote.base_url":    DefaultRemoteBaseURL,
		"services.quote.name":        "quote-remote",
		"services.quote.list_path":   "/posts",
		"services.quote.push_path":   "/posts",
		"services.quote.fetch_limit": 0,
		"services.quote.api_key":     "",

		"storage.driver":      "badger",
		"storage.path":        "",
		"storage.sqlite_path": "",
		"storage.in_memory":   false,

		"sync.enabled":          true,
		"sync.interval":         DefaultSyncInterval.String(),
		"sync.sync_on_start":    true,
		"sync.deletion_policy":  "readd",
		"sync.push_batch_size":  DefaultPushBatchSize,
		"sync.push_concurrency": DefaultPushConcurrency,
		"sync.remote_category":  DefaultRemoteCategory,
	}
}

// Load reads configuration from the ./configs directory. See LoadFrom.
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom loads configuration with the following precedence (highest first):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file ({dir}/{profile}.yaml)
//  3. Base config file ({dir}/base.yaml)
//  4. Default values
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, filepath.Join(dir, "base.yaml")); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		if err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml")); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_SYNC__PUSH_BATCH_SIZE to sync.push_batch_size.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
