// Package config loads the pipeline's environment-provided settings:
// input_path, connection_string, worker_count, parquet_dir,
// indicator_period, log_level.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the pipeline driver needs to run one pass.
type Config struct {
	InputPath        string `mapstructure:"input_path"`
	ConnectionString string `mapstructure:"connection_string"`
	WorkerCount      int    `mapstructure:"worker_count"`
	ParquetDir       string `mapstructure:"parquet_dir"`
	IndicatorPeriod  int    `mapstructure:"indicator_period"`
	LogLevel         string `mapstructure:"log_level"`
}

// Load reads .env (if present, ignored if not) then resolves settings from
// the environment, falling back to defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("worker_count", 4)
	v.SetDefault("parquet_dir", ".")
	v.SetDefault("indicator_period", 5)
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"input_path", "connection_string", "worker_count", "parquet_dir", "indicator_period", "log_level"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings a pipeline run cannot proceed without.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string is required")
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker_count must be at least 1, got %d", c.WorkerCount)
	}
	if c.IndicatorPeriod < 1 {
		return fmt.Errorf("indicator_period must be at least 1, got %d", c.IndicatorPeriod)
	}
	return nil
}
