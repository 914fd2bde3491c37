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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Data.Dir != "./app/data" {
		t.Errorf("Data.Dir = %s, want ./app/data", cfg.Data.Dir)
	}
	if cfg.Data.StateFilename != "state.json" {
		t.Errorf("Data.StateFilename = %s, want state.json", cfg.Data.StateFilename)
	}
	if cfg.Apify.TokenEnv != "APIFY_API_TOKEN" {
		t.Errorf("Apify.TokenEnv = %s, want APIFY_API_TOKEN", cfg.Apify.TokenEnv)
	}
	if cfg.Apify.ResultsLimit != 200 {
		t.Errorf("Apify.ResultsLimit = %d, want 200", cfg.Apify.ResultsLimit)
	}
	if cfg.Google.Location != "us-central1" {
		t.Errorf("Google.Location = %s, want us-central1", cfg.Google.Location)
	}
	if cfg.Google.TextModel != "gemini-1.5-pro-001" {
		t.Errorf("Google.TextModel = %s, want gemini-1.5-pro-001", cfg.Google.TextModel)
	}
	if cfg.Locale != "pt" {
		t.Errorf("Locale = %s, want pt", cfg.Locale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
data:
  dir: /srv/marketing
  state_filename: businesses.json

apify:
  endpoint: https://apify.internal.example
  api_token_env: MY_APIFY_TOKEN
  results_limit: 50
  timeout: 90s

google:
  project: acme-marketing
  text_model: gemini-1.5-flash

locale: en

log:
  level: debug
  format: json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.StatePath() != filepath.Join("/srv/marketing", "businesses.json") {
		t.Errorf("StatePath() = %s", cfg.StatePath())
	}
	if cfg.Apify.Endpoint != "https://apify.internal.example" {
		t.Errorf("Apify.Endpoint = %s", cfg.Apify.Endpoint)
	}
	if cfg.Apify.TokenEnv != "MY_APIFY_TOKEN" {
		t.Errorf("Apify.TokenEnv = %s, want MY_APIFY_TOKEN", cfg.Apify.TokenEnv)
	}
	if cfg.Apify.ResultsLimit != 50 {
		t.Errorf("Apify.ResultsLimit = %d, want 50", cfg.Apify.ResultsLimit)
	}
	if cfg.Apify.Timeout != 90*time.Second {
		t.Errorf("Apify.Timeout = %v, want 90s", cfg.Apify.Timeout)
	}
	// Unset keys keep their defaults
	if cfg.Apify.ActorID != "apify~instagram-scraper" {
		t.Errorf("Apify.ActorID = %s, want default", cfg.Apify.ActorID)
	}
	if cfg.Google.Location != "us-central1" {
		t.Errorf("Google.Location = %s, want default", cfg.Google.Location)
	}
	if cfg.Google.Project != "acme-marketing" || cfg.Google.TextModel != "gemini-1.5-flash" {
		t.Errorf("Google = %+v", cfg.Google)
	}
	if cfg.Locale != "en" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Locale/Log = %s/%+v", cfg.Locale, cfg.Log)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("LoadConfig should fail for a missing explicit config file")
	}

	badPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("data: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(badPath)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("LoadConfig(bad yaml) error = %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARKETING_DATA_DIR", "/env/data")
	t.Setenv("MARKETING_STATE_FILENAME", "env.json")
	t.Setenv("APIFY_ENDPOINT", "https://apify.env.example")
	t.Setenv("APIFY_RESULTS_LIMIT", "25")
	t.Setenv("GOOGLE_API_PROJECT", "env-project")
	t.Setenv("GOOGLE_LOCATION", "europe-west1")
	t.Setenv("GOOGLE_TEXT_MODEL", "env-model")
	t.Setenv("MARKETING_LOCALE", "EN")
	t.Setenv("MARKETING_LOG_LEVEL", "Warn")
	t.Setenv("MARKETING_LOG_FORMAT", "JSON")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.StatePath() != filepath.Join("/env/data", "env.json") {
		t.Errorf("StatePath() = %s", cfg.StatePath())
	}
	if cfg.Apify.Endpoint != "https://apify.env.example" || cfg.Apify.ResultsLimit != 25 {
		t.Errorf("Apify = %+v", cfg.Apify)
	}
	if cfg.Google.Project != "env-project" || cfg.Google.Location != "europe-west1" || cfg.Google.TextModel != "env-model" {
		t.Errorf("Google = %+v", cfg.Google)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %s, want en", cfg.Locale)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want warn/json", cfg.Log)
	}
}

func TestEnvironmentOverrides_InvalidNumberIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APIFY_RESULTS_LIMIT", "lots")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Apify.ResultsLimit != 200 {
		t.Errorf("ResultsLimit = %d, want default 200", cfg.Apify.ResultsLimit)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DATA_ROOT", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"~/marketing", "/home/tester/marketing"},
		{"$DATA_ROOT/marketing", "/data/marketing"},
		{"/abs/path", "/abs/path"},
		{"./relative", "./relative"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApifyToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apify.TokenEnv = "TEST_APIFY_TOKEN"

	t.Setenv("TEST_APIFY_TOKEN", "")
	if got := cfg.ApifyToken(); got != "" {
		t.Errorf("ApifyToken() = %q, want empty", got)
	}

	t.Setenv("TEST_APIFY_TOKEN", "secret")
	if got := cfg.ApifyToken(); got != "secret" {
		t.Errorf("ApifyToken() = %q, want secret", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }, "Dir"},
		{"filename with separator", func(c *Config) { c.Data.StateFilename = "a/b.json" }, "StateFilename"},
		{"bad endpoint", func(c *Config) { c.Apify.Endpoint = "not a url" }, "Endpoint"},
		{"zero results limit", func(c *Config) { c.Apify.ResultsLimit = 0 }, "ResultsLimit"},
		{"zero rate", func(c *Config) { c.Apify.RequestsPerSecond = 0 }, "RequestsPerSecond"},
		{"unknown locale", func(c *Config) { c.Locale = "fr" }, "Locale"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "Level"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}
