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

package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/rs/zerolog"
)

// DefaultFilename is the name of the state document inside the data directory.
const DefaultFilename = "state.json"

// Store loads and saves a State at a fixed path. It assumes a single writer;
// concurrent writers from several processes race and the last rename wins.
type Store struct {
	path string
	log  zerolog.Logger
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report recoveries and writes.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces the clock used to suffix backup files.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store for the document at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the state document.
func (s *Store) Path() string {
	return s.path
}

// EnsureDir creates the directory holding the state document. Save does not
// create directories itself; call this once during start-up.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Load reads the state document. It never fails: a missing or unreadable
// document yields an empty State, and a document that is not valid JSON is
// first copied to a timestamp-suffixed sibling so its bytes survive.
func (s *Store) Load() *State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Str("path", s.path).Msg("state file does not exist, starting with empty state")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("state file unreadable, starting with empty state")
		}
		return NewState()
	}

	st, report, err := decodeState(data)
	if err != nil {
		backup := s.preserve(data)
		s.log.Warn().Err(err).
			Str("path", s.path).
			Str("backup", backup).
			Msg("state file is corrupted (invalid JSON), starting with empty state")
		return NewState()
	}
	if report.truncatedColors > 0 {
		s.log.Warn().Int("dropped", report.truncatedColors).Msg("discarded brand colors beyond the supported maximum")
	}
	if len(report.renamed) > 0 {
		s.log.Warn().Strs("businesses", report.renamed).Msg("business name did not match its key, using the key")
	}

	s.log.Info().Str("path", s.path).Int("businesses", len(st.Businesses)).Msg("state loaded")
	return st
}

// preserve copies unreadable bytes next to the state document. It is best
// effort and returns the backup path, or "" if nothing was written.
func (s *Store) preserve(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	backup := fmt.Sprintf("%s.%d", s.path, s.now().UnixNano())
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		s.log.Error().Err(err).Str("backup", backup).Msg("failed to preserve corrupted state file")
		return ""
	}
	return backup
}

// Save writes the full State to the document, replacing what was there.
// It uses a write-to-temp-and-rename pattern so a crash leaves either the
// old or the new document. Errors wrap errors.ErrWriteFailure and are not
// retried. Bodies must be valid UTF-8; invalid bytes are written as U+FFFD.
func (s *Store) Save(st *State) error {
	data, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal state: %w", mserrors.ErrWriteFailure, err)
	}

	tempFile := s.path + ".tmp"
	file, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary state file: %w", mserrors.ErrWriteFailure, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("%w: failed to write temporary state file: %w", mserrors.ErrWriteFailure, err)
	}

	// Sync to ensure data is flushed to disk
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("%w: failed to sync temporary state file: %w", mserrors.ErrWriteFailure, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("%w: failed to close temporary state file: %w", mserrors.ErrWriteFailure, err)
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("%w: failed to rename temporary state file: %w", mserrors.ErrWriteFailure, err)
	}

	s.log.Debug().Str("path", s.path).Int("businesses", len(st.Businesses)).Msg("state stored")
	return nil
}

// Backups lists the preserved copies of corrupted documents, oldest first.
func (s *Store) Backups() ([]string, error) {
	matches, err := filepath.Glob(s.path + ".*")
	if err != nil {
		return nil, fmt.Errorf("failed to list state backups: %w", err)
	}
	backups := matches[:0]
	for _, m := range matches {
		suffix := strings.TrimPrefix(m, s.path+".")
		if suffix == "tmp" || !isDigits(suffix) {
			continue
		}
		backups = append(backups, m)
	}
	slices.SortFunc(backups, func(a, b string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(a, b)
	})
	return backups, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
