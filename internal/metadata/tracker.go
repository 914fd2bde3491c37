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

// Package metadata records an audit trail of profile scrapes. Each scrape
// leaves a JSON file in the scrapes directory next to the state document
// with its parameters, post statistics and a link to the previous scrape of
// the same profile.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OS-joaocastilho/marketing-sm/internal/scraper"
)

// DirName is the directory, relative to the data directory, holding
// scrape metadata files.
const DirName = "scrapes"

const filePrefix = "scrape-metadata-"

// Tracker collects statistics during a scrape. Create one when the scrape
// starts and record the posts once it returns.
type Tracker struct {
	now       func() time.Time
	startTime time.Time
	stats     ScrapeResults
}

// New creates a tracker started at the current time.
func New() *Tracker {
	return NewWithClock(time.Now)
}

// NewWithClock creates a tracker that reads time from now.
func NewWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now, startTime: now()}
}

// RecordPosts adds scraped posts to the running statistics.
func (t *Tracker) RecordPosts(posts []scraper.ProfilePost) {
	for _, p := range posts {
		t.stats.TotalPosts++
		t.stats.TotalLikes += p.LikesCount
		t.stats.TotalComments += p.CommentsCount

		date, err := time.Parse(time.RFC3339, p.Date)
		if err != nil {
			continue
		}
		if t.stats.OldestPost.IsZero() || date.Before(t.stats.OldestPost) {
			t.stats.OldestPost = date
		}
		if date.After(t.stats.NewestPost) {
			t.stats.NewestPost = date
		}
	}
}

// GenerateMetadata builds the record for a completed scrape.
func (t *Tracker) GenerateMetadata(version string, params ScrapeParams, previous *ScrapeRef) *ScrapeMetadata {
	completedAt := t.now()

	results := t.stats
	results.StartedAt = t.startTime
	results.CompletedAt = completedAt
	results.Duration = completedAt.Sub(t.startTime).String()

	return &ScrapeMetadata{
		Version:        version,
		ScrapeID:       fmt.Sprintf("scrape-%d", t.startTime.UnixNano()),
		Parameters:     params,
		Results:        results,
		PreviousScrape: previous,
	}
}

// Ref returns a reference to m for linking the next scrape to it.
func (m *ScrapeMetadata) Ref() *ScrapeRef {
	if m == nil {
		return nil
	}
	return &ScrapeRef{ScrapeID: m.ScrapeID, CompletedAt: m.Results.CompletedAt}
}

// SaveMetadata writes m to dir, creating it if needed. The file is written
// to a temporary name and renamed into place.
func SaveMetadata(m *ScrapeMetadata, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s%d.json", filePrefix, m.Results.StartedAt.UnixNano()))
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(m, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadLatestMetadata returns the most recent scrape of profileURL for
// business, or nil if there is none. Unreadable files are skipped.
func LoadLatestMetadata(dir, business, profileURL string) (*ScrapeMetadata, error) {
	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata files: %w", err)
	}

	var latest *ScrapeMetadata
	for _, path := range files {
		m, err := readMetadata(path)
		if err != nil {
			continue
		}
		if m.Parameters.Business != business || !sameProfile(m.Parameters.ProfileURL, profileURL) {
			continue
		}
		if latest == nil || m.Results.StartedAt.After(latest.Results.StartedAt) {
			latest = m
		}
	}
	return latest, nil
}

func readMetadata(path string) (*ScrapeMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var m ScrapeMetadata
	if err := json.NewDecoder(file).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}
	return &m, nil
}

// sameProfile compares profile URLs ignoring a trailing slash.
func sameProfile(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}

// WriteMetadataToWriter writes m as indented JSON.
func WriteMetadataToWriter(m *ScrapeMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(m)
}
