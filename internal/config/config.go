// Package config provides centralized configuration for the dashprobe runner.
// It loads configuration from CLI flags and environment variables, validates
// required fields, and provides sensible defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kuitang/dashprobe/internal/urlutil"
	"github.com/kuitang/dashprobe/internal/wait"
)

// Config holds all runner configuration.
type Config struct {
	// Target
	TargetURL string

	// Element lookup and navigation-readiness bound
	ImplicitWait time.Duration

	// Browser window state
	Maximize bool
	Headless bool

	// Static mode: evaluate checks against server-rendered HTML over plain
	// HTTP instead of launching a browser.
	Static bool
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Flags holds parsed CLI flag values. Call ParseFlags before Load.
// MaximizeSet records whether --maximize was given explicitly, since its
// default is indistinguishable from an explicit --maximize=true.
type Flags struct {
	URL         string
	WaitSecs    int
	Maximize    bool
	MaximizeSet bool
	Headed      bool
	Static      bool
}

// ParseFlags registers and parses the runner's CLI flags.
func ParseFlags() Flags {
	var f Flags
	flag.StringVar(&f.URL, "url", "", "Dashboard URL to probe (overrides TARGET_URL env var)")
	flag.IntVar(&f.WaitSecs, "wait", 0, "Implicit wait in seconds (overrides IMPLICIT_WAIT_SECONDS, default 10)")
	flag.BoolVar(&f.Maximize, "maximize", true, "Maximize the browser window (overrides MAXIMIZE env var)")
	flag.BoolVar(&f.Headed, "headed", false, "Run the browser with a visible window")
	flag.BoolVar(&f.Static, "static", false, "Check server-rendered HTML without launching a browser")
	flag.Parse()
	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == "maximize" {
			f.MaximizeSet = true
		}
	})
	return f
}

// Load builds configuration from environment variables and parsed flag values.
// Explicitly set flags win over env vars; env vars win over flag defaults.
func Load(f Flags) (*Config, error) {
	cfg := &Config{}

	cfg.TargetURL = strings.TrimSpace(os.Getenv("TARGET_URL"))
	if f.URL != "" {
		cfg.TargetURL = strings.TrimSpace(f.URL)
	}

	waitSecs := parseIntOrDefault("IMPLICIT_WAIT_SECONDS", int(wait.DefaultTimeout/time.Second))
	if f.WaitSecs > 0 {
		waitSecs = f.WaitSecs
	}
	cfg.ImplicitWait = time.Duration(waitSecs) * time.Second

	cfg.Maximize = f.Maximize
	if !f.MaximizeSet {
		cfg.Maximize = parseBoolOrDefault("MAXIMIZE", f.Maximize)
	}
	cfg.Headless = !f.Headed
	cfg.Static = f.Static

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.TargetURL == "" {
		errs = append(errs, "target URL is required (set TARGET_URL or use --url)")
	} else if normalized, err := urlutil.NormalizeTarget(c.TargetURL); err != nil {
		errs = append(errs, fmt.Sprintf("target URL %q must be an absolute http(s) URL", c.TargetURL))
	} else {
		c.TargetURL = normalized
	}

	if c.ImplicitWait <= 0 {
		errs = append(errs, "implicit wait must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// WaitPolicy returns the lookup policy derived from the configured implicit wait.
func (c *Config) WaitPolicy() wait.Policy {
	return wait.Default().WithTimeout(c.ImplicitWait)
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "dashprobe starting...")
	fmt.Fprintf(os.Stderr, "  Target:  %s\n", c.TargetURL)
	fmt.Fprintf(os.Stderr, "  Wait:    %s\n", c.ImplicitWait)
	if c.Static {
		fmt.Fprintln(os.Stderr, "  Mode:    static HTML (--static)")
	} else if c.Headless {
		fmt.Fprintln(os.Stderr, "  Mode:    headless browser")
	} else {
		fmt.Fprintln(os.Stderr, "  Mode:    headed browser")
	}
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoad loads configuration and panics if validation fails.
// Use this in main() when you want the runner to fail fast on bad config.
func MustLoad(f Flags) *Config {
	cfg, err := Load(f)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
