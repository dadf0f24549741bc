// Package config loads the opal inspector configuration from opal.yml.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the inspector configuration
type Config struct {
	Serve ServeConfig `mapstructure:"serve"`
	Trace TraceConfig `mapstructure:"trace"`
}

// ServeConfig configures the introspection HTTP endpoint
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// TraceConfig configures runtime debug tracing
type TraceConfig struct {
	// Enabled turns on construction and dispatch debug logs
	Enabled bool `mapstructure:"enabled"`
}

// Load loads the configuration from opal.yml or opal.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 7421)
	v.SetDefault("trace.enabled", false)

	v.SetConfigName("opal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support (OPAL_SERVE_PORT etc.)
	v.SetEnvPrefix("opal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Addr returns the listen address for the introspection endpoint
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Serve.Host, c.Serve.Port)
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Serve.Port <= 0 || cfg.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be in 1..65535, got: %d", cfg.Serve.Port)
	}
	return nil
}
