package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// External tools (names looked up on PATH, or explicit paths)
	Rebar string
	Erl   string

	// Child process settings
	ExtraPath     string
	SentinelSuite string
	EunitDir      string
	Timeout       time.Duration

	// Run history, stored under each build root
	HistoryDir   string
	HistoryFile  string
	HistoryLimit int

	// Paths to ignore when listing tests
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags that override configuration
type Flags struct {
	ConfigFile string
	Rebar      string
	Erl        string
	Timeout    time.Duration
	NoProgress bool
	NoHistory  bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		Rebar:         DefaultRebar,
		Erl:           DefaultErl,
		ExtraPath:     DefaultExtraPath,
		SentinelSuite: DefaultSentinelSuite,
		EunitDir:      DefaultEunitDir,
		Timeout:       DefaultTimeout,
		HistoryDir:    DefaultHistoryDir,
		HistoryFile:   DefaultHistoryFile,
		HistoryLimit:  DefaultHistoryLimit,
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load layers configuration: defaults, then the YAML file, then .env and ERLT_* variables, then flags.
// A missing default config file is not an error; a missing explicitly named one is.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path := flags.ConfigFile
	if path == "" {
		path = DefaultConfigFile
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, err
		}
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(DefaultEnvFile)
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

// ApplyEnv applies ERLT_* overrides read through getenv
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("ERLT_REBAR"); v != "" {
		c.Rebar = v
	}
	if v := getenv("ERLT_ERL"); v != "" {
		c.Erl = v
	}
	if v := getenv("ERLT_EXTRA_PATH"); v != "" {
		c.ExtraPath = v
	}
	if v := getenv("ERLT_SENTINEL_SUITE"); v != "" {
		c.SentinelSuite = v
	}
	if v := getenv("ERLT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ERLT_TIMEOUT %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v := getenv("ERLT_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ERLT_HISTORY_LIMIT %q: %w", v, err)
		}
		c.HistoryLimit = n
	}
	return nil
}

// ApplyFlags stores flags and applies the ones that override configuration
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Rebar != "" {
		c.Rebar = flags.Rebar
	}
	if flags.Erl != "" {
		c.Erl = flags.Erl
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
}

// GetHistoryPath returns the history file for a build root
func (c *Config) GetHistoryPath(root string) string {
	p := filepath.Join(root, c.HistoryDir, c.HistoryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
