package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	SubjectPrefix   string        `mapstructure:"subject_prefix"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"` // message ID dedupe window of the stream
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"` // PEM encoded RSA public key
}

// RelayConfig holds outbox relay configuration
type RelayConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxElapsed   time.Duration `mapstructure:"max_elapsed"`
}

// RateLimitConfig holds the per-caller limits of mutating API routes
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
}

// WebhookConfig holds the endpoint ledger events are forwarded to
type WebhookConfig struct {
	URL        string        `mapstructure:"url"`
	Secret     string        `mapstructure:"secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
}

// CollectionConfig holds the parameters of a new collection
type CollectionConfig struct {
	Name            string `mapstructure:"name"`
	Symbol          string `mapstructure:"symbol"`
	BaseURI         string `mapstructure:"base_uri"`
	ContractURI     string `mapstructure:"contract_uri"`
	MaxSupply       uint64 `mapstructure:"max_supply"`
	MaxBatchSize    uint64 `mapstructure:"max_batch_size"`
	RoyaltyBps      uint64 `mapstructure:"royalty_bps"`
	RoyaltyReceiver string `mapstructure:"royalty_receiver"`
	Admin           string `mapstructure:"admin"`
}

// LedgerAPIConfig holds configuration for the ledger API server
type LedgerAPIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Relay      RelayConfig      `mapstructure:"relay"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// LedgerCtlConfig holds configuration for the ledgerctl deployment tool
type LedgerCtlConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig   `mapstructure:"database"`
	NATS           NATSConfig       `mapstructure:"nats"`
	Network        string           `mapstructure:"network"`
	DeploymentsDir string           `mapstructure:"deployments_dir"`
	Webhook        WebhookConfig    `mapstructure:"webhook"`
	Collection     CollectionConfig `mapstructure:"collection"`
}

// LoadLedgerAPIConfig loads configuration for the ledger API server
func LoadLedgerAPIConfig(configFile string, envPath string) (*LedgerAPIConfig, error) {
	v := configureViper("ledger-api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.subject_prefix", "ledger")
	v.SetDefault("nats.connection_name", "ledger-api")
	v.SetDefault("nats.duplicate_window", "24h")
	v.SetDefault("relay.enabled", true)
	v.SetDefault("relay.poll_interval", "2s")
	v.SetDefault("relay.batch_size", 100)
	v.SetDefault("relay.max_elapsed", "30s")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.idle_ttl", "10m")
	v.SetDefault("collection.max_batch_size", domain.DEFAULT_MAX_BATCH_SIZE)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg LedgerAPIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadLedgerCtlConfig loads configuration for ledgerctl
func LoadLedgerCtlConfig(configFile string, envPath string) (*LedgerCtlConfig, error) {
	v := configureViper("ledgerctl", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.subject_prefix", "ledger")
	v.SetDefault("nats.connection_name", "ledgerctl")
	v.SetDefault("network", "local")
	v.SetDefault("deployments_dir", "deployments")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.max_elapsed", "1m")
	v.SetDefault("collection.max_batch_size", domain.DEFAULT_MAX_BATCH_SIZE)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg LedgerCtlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.auto_migrate", true)
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds every key so env-only setups unmarshal fully
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"log_level",
		"sentry_dsn",
		"environment",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.auto_migrate",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		// Relay
		"relay.enabled",
		"relay.poll_interval",
		"relay.batch_size",
		"relay.max_elapsed",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.idle_ttl",
		// Collection
		"collection.name",
		"collection.symbol",
		"collection.base_uri",
		"collection.contract_uri",
		"collection.max_supply",
		"collection.max_batch_size",
		"collection.royalty_bps",
		"collection.royalty_receiver",
		"collection.admin",
		// ledgerctl
		"network",
		"deployments_dir",
		"webhook.url",
		"webhook.secret",
		"webhook.timeout",
		"webhook.max_elapsed",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env files from the config directory, later files overriding earlier ones
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
