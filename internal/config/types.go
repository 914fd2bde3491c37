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

// Package config types define the configuration structures used throughout
// marketing-sm. A Config is built once at start-up and passed explicitly to
// every component that needs it.
package config

import "time"

// Config represents the complete configuration for marketing-sm.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Apify  ApifyConfig  `yaml:"apify"`
	Google GoogleConfig `yaml:"google"`
	Locale string       `yaml:"locale" validate:"required,oneof=pt en"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig locates the persisted business state.
type DataConfig struct {
	Dir           string `yaml:"dir" validate:"required"`
	StateFilename string `yaml:"state_filename" validate:"required,excludesall=/\\"`
}

// ApifyConfig configures the hosted actor used to scrape social profiles.
// The token itself is read from the environment variable named by TokenEnv
// so it never lands in a config file.
type ApifyConfig struct {
	Endpoint          string        `yaml:"endpoint" validate:"required,url"`
	TokenEnv          string        `yaml:"api_token_env" validate:"required"`
	ActorID           string        `yaml:"actor_id" validate:"required"`
	ResultsLimit      int           `yaml:"results_limit" validate:"min=1,max=1000"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
}

// GoogleConfig names the project and model used by the content generator.
// posts plan copies it into every generation request.
type GoogleConfig struct {
	Project   string `yaml:"project"`
	Location  string `yaml:"location" validate:"required"`
	TextModel string `yaml:"text_model" validate:"required"`
}

// LogConfig controls log verbosity and rendering.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=console json"`
}

// DefaultConfig returns a Config with the settings the application ships with.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "./app/data",
			StateFilename: "state.json",
		},
		Apify: ApifyConfig{
			Endpoint:          "https://api.apify.com",
			TokenEnv:          "APIFY_API_TOKEN",
			ActorID:           "apify~instagram-scraper",
			ResultsLimit:      200,
			RequestsPerSecond: 1,
			Timeout:           5 * time.Minute,
		},
		Google: GoogleConfig{
			Location:  "us-central1",
			TextModel: "gemini-1.5-pro-001",
		},
		Locale: "pt",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
