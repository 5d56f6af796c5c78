// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"restaurant/pkg/logger"
)

// Config holds the runtime settings of the API server.
type Config struct {
	ServiceName     string
	Addr            string
	LogLevel        logger.Level
	OtelHost        string
	OtelSampleRate  float64
	ShutdownTimeout time.Duration
}

// Defaults used when a variable is unset.
const (
	DefaultServiceName     = "restaurant"
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
)

// Load reads envFile (if it exists) into the process environment, without
// overriding variables already set, and then parses the configuration.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup parses the configuration using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		ServiceName: get("SERVICE_NAME", DefaultServiceName),
		Addr:        get("ORDERS_ADDR", DefaultAddr),
		OtelHost:    get("OTEL_HOST", ""),
	}

	var errs []error

	lvl, err := logger.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = lvl

	rate, err := strconv.ParseFloat(get("OTEL_SAMPLE_RATE", "1"), 64)
	if err != nil || rate < 0 || rate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE: must be a number in [0,1], got %q", get("OTEL_SAMPLE_RATE", "1")))
	}
	cfg.OtelSampleRate = rate

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout.String()))
	if err != nil || timeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: must be a positive duration, got %q", get("SHUTDOWN_TIMEOUT", "")))
	}
	cfg.ShutdownTimeout = timeout

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
