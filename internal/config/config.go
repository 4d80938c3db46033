// Package config holds the server settings of the routedom binary.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration. Zero fields are filled by Default.
type Config struct {
	Addr            string
	BasePath        string
	MountID         string
	Title           string
	LogLevel        string
	LogFormat       string
	RateLimit       float64
	RateBurst       int
	TrustProxy      bool
	ShutdownTimeout time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:            ":8080",
		BasePath:        "/create-route-dom",
		MountID:         "root",
		Title:           "create-route-dom",
		LogLevel:        "info",
		LogFormat:       "text",
		RateLimit:       20,
		RateBurst:       40,
		ShutdownTimeout: 10 * time.Second,
	}
}

const envPrefix = "ROUTEDOM_"

// FromEnv returns Default overridden by ROUTEDOM_* environment variables.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("ADDR", &cfg.Addr)
	str("BASE_PATH", &cfg.BasePath)
	str("MOUNT_ID", &cfg.MountID)
	str("TITLE", &cfg.Title)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	var errs []error
	if v, ok := lookup(envPrefix + "RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_LIMIT: %w", envPrefix, err))
		}
		cfg.RateLimit = f
	}
	if v, ok := lookup(envPrefix + "RATE_BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_BURST: %w", envPrefix, err))
		}
		cfg.RateBurst = n
	}
	if v, ok := lookup(envPrefix + "TRUST_PROXY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTRUST_PROXY: %w", envPrefix, err))
		}
		cfg.TrustProxy = b
	}
	if v, ok := lookup(envPrefix + "SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", envPrefix, err))
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, errors.Join(errs...)
}

// Validate normalises BasePath to a clean absolute path without trailing slash
// ("" for the site root) and checks the remaining fields.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.BasePath)
	if base == "" || base == "/" {
		c.BasePath = ""
	} else {
		c.BasePath = path.Clean("/" + base)
		if strings.ContainsAny(c.BasePath, "{}") {
			return fmt.Errorf("base path %q must not contain patterns", c.BasePath)
		}
	}
	if c.MountID == "" || strings.ContainsAny(c.MountID, " \t\n\"'#") {
		return fmt.Errorf("mount id %q is not a valid element id", c.MountID)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("rate limit and burst must not be negative")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
