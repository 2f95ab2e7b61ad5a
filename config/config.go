package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Deribit  DeribitConfig  `mapstructure:"deribit"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

type DeribitConfig struct {
	REST RESTConfig `mapstructure:"rest"`
}

type RESTConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ScanConfig controls which instruments are listed and how summaries are fetched.
type ScanConfig struct {
	Currency    string        `mapstructure:"currency"`    // underlying asset code, e.g. "BTC"
	Window      time.Duration `mapstructure:"window"`      // forward expiry window
	Concurrency int           `mapstructure:"concurrency"` // max in-flight book summary requests
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type ArchiveConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	CreateDB bool `mapstructure:"create_db"`
	// Retention drops snapshots older than this after each insert; 0 keeps everything.
	Retention time.Duration `mapstructure:"retention"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deribit.rest.base_url", "https://www.deribit.com/api/v2/public")
	v.SetDefault("deribit.rest.timeout", 10*time.Second)

	v.SetDefault("scan.currency", "BTC")
	v.SetDefault("scan.window", 7*24*time.Hour)
	v.SetDefault("scan.concurrency", 8)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.refresh_interval", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "optionflow")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.ssm_prefix", "/optionflow/postgres/")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.create_db", false)
	v.SetDefault("archive.retention", 30*24*time.Hour)
}

// Load loads application configuration using Viper.
// An explicit path wins; otherwise config.yaml is searched next to the binary
// and in the working directory. A missing file is not an error since every key
// has a default. Environment variables override both (e.g. SCAN_CURRENCY).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
		}
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the scanner cannot run with.
func (c *Config) Validate() error {
	if c.Deribit.REST.BaseURL == "" {
		return errors.New("config: deribit.rest.base_url is required")
	}
	if c.Scan.Currency == "" {
		return errors.New("config: scan.currency is required")
	}
	if c.Scan.Window <= 0 {
		return fmt.Errorf("config: scan.window must be positive, got %s", c.Scan.Window)
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("config: scan.concurrency must be >= 1, got %d", c.Scan.Concurrency)
	}
	if c.Archive.Retention < 0 {
		return fmt.Errorf("config: archive.retention must not be negative, got %s", c.Archive.Retention)
	}
	if c.Server.RefreshInterval <= 0 {
		return fmt.Errorf("config: server.refresh_interval must be positive, got %s", c.Server.RefreshInterval)
	}
	return nil
}
