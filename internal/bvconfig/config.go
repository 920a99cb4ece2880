// Package bvconfig loads process-wide defaults for the solver: the
// fallback timeout and size budget that bvsynth-solve uses for a request
// whose timeout or size field is zero or negative, the fold-body
// catalog's MAX_BODY, and an optional on-disk cluster cache directory
// (read by bvsynth-repl).
//
// SPDX-License-Identifier: Apache-2.0
package bvconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the values a bvsynth-solve or bvsynth-repl process reads
// once at startup.
type Config struct {
	DefaultTimeoutSec int    `yaml:"default_timeout_sec"`
	DefaultMaxSize    int    `yaml:"default_max_size"`
	MaxBody           int    `yaml:"max_body"`
	CacheDir          string `yaml:"cache_dir"`
}

// Default returns the built-in values used when no config file is
// present and no override was given.
func Default() Config {
	return Config{
		DefaultTimeoutSec: 30,
		DefaultMaxSize:    30,
		MaxBody:           9,
		CacheDir:          "",
	}
}

// Load reads a YAML config file at path, overlaying its fields onto
// Default(). A missing file is not an error; it just yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
