// Copyright 2025 The marketing-sm Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for marketing-sm with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .marketing-sm.yaml (current directory)
//   - .marketing-sm.yml (current directory)
//   - ~/.marketing-sm/config.yaml
//   - ~/.marketing-sm/config.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".marketing-sm.yaml",
			".marketing-sm.yml",
			filepath.Join(os.Getenv("HOME"), ".marketing-sm", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".marketing-sm", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Data.Dir = expandPath(cfg.Data.Dir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if dir := os.Getenv("MARKETING_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if name := os.Getenv("MARKETING_STATE_FILENAME"); name != "" {
		cfg.Data.StateFilename = name
	}

	if endpoint := os.Getenv("APIFY_ENDPOINT"); endpoint != "" {
		cfg.Apify.Endpoint = endpoint
	}
	if limit := os.Getenv("APIFY_RESULTS_LIMIT"); limit != "" {
		if n, err := parsePositiveInt(limit); err == nil {
			cfg.Apify.ResultsLimit = n
		}
	}

	if project := os.Getenv("GOOGLE_API_PROJECT"); project != "" {
		cfg.Google.Project = project
	}
	if location := os.Getenv("GOOGLE_LOCATION"); location != "" {
		cfg.Google.Location = location
	}
	if model := os.Getenv("GOOGLE_TEXT_MODEL"); model != "" {
		cfg.Google.TextModel = model
	}

	if locale := os.Getenv("MARKETING_LOCALE"); locale != "" {
		cfg.Locale = strings.ToLower(locale)
	}
	if level := os.Getenv("MARKETING_LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if format := os.Getenv("MARKETING_LOG_FORMAT"); format != "" {
		cfg.Log.Format = strings.ToLower(format)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// StatePath returns the full path of the state document.
func (c *Config) StatePath() string {
	return filepath.Join(c.Data.Dir, c.Data.StateFilename)
}

// ApifyToken returns the scraping service token from the configured
// environment variable, or "" when it is unset.
func (c *Config) ApifyToken() string {
	return os.Getenv(c.Apify.TokenEnv)
}

// Validate checks the configuration against its struct constraints. This
// should be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
