// Package config holds the runtime settings of the formwizard binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
)

// EnvPrefix namespaces the environment variables read by FromEnv.
const EnvPrefix = "FORMWIZARD_"

// Config is the merged result of defaults, environment and flags.
type Config struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	Definition      string
	Validator       string
	AllowBack       bool
	Rate            float64
	Burst           int
	ShutdownTimeout time.Duration
	Theme           ThemeConfig
}

// ThemeConfig selects the renderer theme.
type ThemeConfig struct {
	Name       string
	Variant    string
	Stylesheet string
	CSSVars    map[string]string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       logging.FormatAuto,
		Validator:       orchestrator.ValidatorRules,
		AllowBack:       true,
		Rate:            5,
		Burst:           10,
		ShutdownTimeout: 5 * time.Second,
	}
}

// FromEnv overlays FORMWIZARD_* variables found through lookup onto cfg.
// Passing nil uses os.LookupEnv.
func FromEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	var errs []error
	if v, ok := get("ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := get("DEFINITION"); ok {
		cfg.Definition = v
	}
	if v, ok := get("VALIDATOR"); ok {
		cfg.Validator = v
	}
	if v, ok := get("ALLOW_BACK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sALLOW_BACK: %w", EnvPrefix, err))
		}
		cfg.AllowBack = b
	}
	if v, ok := get("RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sRATE: %w", EnvPrefix, err))
		}
		cfg.Rate = f
	}
	if v, ok := get("BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sBURST: %w", EnvPrefix, err))
		}
		cfg.Burst = n
	}
	if v, ok := get("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSHUTDOWN_TIMEOUT: %w", EnvPrefix, err))
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := get("THEME"); ok {
		cfg.Theme.Name = v
	}
	if v, ok := get("THEME_VARIANT"); ok {
		cfg.Theme.Variant = v
	}
	if v, ok := get("THEME_STYLESHEET"); ok {
		cfg.Theme.Stylesheet = v
	}
	return cfg, errors.Join(errs...)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("config: addr is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: log level: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", logging.FormatAuto, logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.LogFormat))
	}
	if _, err := orchestrator.ValidatorFor(c.Validator); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.Rate < 0 {
		errs = append(errs, fmt.Errorf("config: rate must not be negative, got %v", c.Rate))
	}
	if c.Rate > 0 && c.Burst < 1 {
		errs = append(errs, fmt.Errorf("config: burst must be at least 1 when rate limiting, got %d", c.Burst))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config: shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
