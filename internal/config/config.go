// Package config reads runtime settings for the fitness manager from an
// optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration values.
type Config struct {
	ServiceName    string  `yaml:"service_name"`
	Logging        Logging `yaml:"logging"`
	OTLPEndpoint   string  `yaml:"otlp_endpoint"` // empty disables trace export
	SeedSampleData bool    `yaml:"seed_sample_data"`
}

// Logging selects the log level and output format ("console" or "json").
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used for local runs.
func Default() Config {
	return Config{
		ServiceName: "fitness-manager",
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		SeedSampleData: true,
	}
}

// Load starts from Default, applies the YAML file named by
// FITNESS_CONFIG_FILE if set, then applies environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := getEnv("FITNESS_CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ServiceName = getEnv("FITNESS_SERVICE_NAME", cfg.ServiceName)
	cfg.Logging.Level = getEnv("FITNESS_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("FITNESS_LOG_FORMAT", cfg.Logging.Format)
	cfg.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.SeedSampleData = getBoolEnv("FITNESS_SEED_SAMPLE_DATA", cfg.SeedSampleData)
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
