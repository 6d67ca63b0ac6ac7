// Package config reads analysis settings from environment variables. An
// optional .env file is loaded by the caller before Load runs.
package config

import (
	"os"
	"strconv"

	"plsgo/domain/core"
	"plsgo/domain/pls"
)

// Config represents the complete application configuration
type Config struct {
	Seed        int64
	NumPerm     int
	NumBoot     int
	Rotate      int
	CILower     float64
	CIUpper     float64
	Concurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := pls.DefaultOptions()

	config := &Config{
		Seed:        int64(getEnvIntOrDefault("PLS_SEED", 0)),
		NumPerm:     getEnvIntOrDefault("PLS_NUM_PERM", defaults.NumPerm),
		NumBoot:     getEnvIntOrDefault("PLS_NUM_BOOT", defaults.NumBoot),
		Rotate:      getEnvIntOrDefault("PLS_ROTATE", int(defaults.RotateMethod)),
		CILower:     getEnvFloatOrDefault("PLS_CI_LOWER", defaults.CIBounds[0]),
		CIUpper:     getEnvFloatOrDefault("PLS_CI_UPPER", defaults.CIBounds[1]),
		Concurrency: getEnvIntOrDefault("PLS_CONCURRENCY", 0),
	}

	if err := config.Options().Validate(); err != nil {
		return nil, core.NewConfigError("environment", err.Error())
	}
	return config, nil
}

// Options converts the configuration to resample-test options.
func (c *Config) Options() pls.Options {
	return pls.Options{
		NumPerm:      c.NumPerm,
		NumBoot:      c.NumBoot,
		RotateMethod: pls.RotateMethod(c.Rotate),
		CIBounds:     [2]float64{c.CILower, c.CIUpper},
		Seed:         c.Seed,
		Concurrency:  c.Concurrency,
	}
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
