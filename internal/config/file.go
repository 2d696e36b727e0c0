package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of erlt.yaml. Empty fields keep the current value.
type fileConfig struct {
	Rebar         string   `yaml:"rebar"`
	Erl           string   `yaml:"erl"`
	ExtraPath     string   `yaml:"extra_path"`
	SentinelSuite string   `yaml:"sentinel_suite"`
	EunitDir      string   `yaml:"eunit_dir"`
	Timeout       string   `yaml:"timeout"`
	HistoryLimit  *int     `yaml:"history_limit"`
	Ignore        []string `yaml:"ignore"`
}

// ApplyFile overlays the YAML file at path onto c
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Rebar != "" {
		c.Rebar = fc.Rebar
	}
	if fc.Erl != "" {
		c.Erl = fc.Erl
	}
	if fc.ExtraPath != "" {
		c.ExtraPath = fc.ExtraPath
	}
	if fc.SentinelSuite != "" {
		c.SentinelSuite = fc.SentinelSuite
	}
	if fc.EunitDir != "" {
		c.EunitDir = fc.EunitDir
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in %s: %w", fc.Timeout, path, err)
		}
		c.Timeout = d
	}
	if fc.HistoryLimit != nil {
		c.HistoryLimit = *fc.HistoryLimit
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.Ignore...)
	}
	return nil
}
