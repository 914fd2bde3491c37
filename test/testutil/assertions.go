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

package testutil

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertNDJSONOutput validates that a file holds one business record per
// line and returns the names in file order.
func AssertNDJSONOutput(t *testing.T, filePath string, expectedCount int) []string {
	t.Helper()

	file, err := os.Open(filePath)
	if err != nil {
		t.Fatalf("Failed to open output file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	var names []string

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("Line %d: invalid JSON: %v", len(names)+1, err)
			continue
		}

		for _, field := range []string{"name", "descriptions", "suggestions", "profiles", "colors"} {
			if _, ok := rec[field]; !ok {
				t.Errorf("Line %d: missing required field '%s'", len(names)+1, field)
			}
		}

		name, _ := rec["name"].(string)
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading file: %v", err)
	}

	if len(names) != expectedCount {
		t.Errorf("Expected %d records, got %d", expectedCount, len(names))
	}
	return names
}

// StateBackups returns the preserved copies of a corrupted state file.
func StateBackups(t *testing.T, statePath string) []string {
	t.Helper()

	matches, err := filepath.Glob(statePath + ".*")
	if err != nil {
		t.Fatalf("Failed to glob backups: %v", err)
	}

	var backups []string
	for _, m := range matches {
		if !strings.HasSuffix(m, ".tmp") {
			backups = append(backups, m)
		}
	}
	return backups
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertFileExists checks that a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks that a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks that a file holds exactly the expected bytes
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}

	if string(content) != expected {
		t.Errorf("File content mismatch\nGot:\n%s\nWant:\n%s", content, expected)
	}
}
