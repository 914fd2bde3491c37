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
	"fmt"
	"slices"
	"strings"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
)

// MaxColors is the maximum number of brand colors kept per business.
const MaxColors = 6

// Entry is a titled text record. It is used for descriptions, suggestions
// and scraped profile snapshots alike; for profiles the title is the URL and
// the body holds the serialized scrape output.
type Entry struct {
	Title string
	Body  string
}

// Business is a named aggregate of descriptions, suggestions, scraped
// profiles and brand colors.
type Business struct {
	// Name is the unique key of the business within a State.
	Name string

	// Descriptions maps a title to a free-text description of the business.
	Descriptions map[string]Entry

	// Suggestions maps a title to a note the generated posts should follow.
	Suggestions map[string]Entry

	// Profiles maps a profile URL to the scraped snapshot of that profile.
	Profiles map[string]Entry

	// Colors is ordered by visual priority; index 0 is the dominant color.
	Colors []string
}

// NewBusiness returns an empty business with the given name.
func NewBusiness(name string) *Business {
	return &Business{
		Name:         name,
		Descriptions: make(map[string]Entry),
		Suggestions:  make(map[string]Entry),
		Profiles:     make(map[string]Entry),
		Colors:       []string{},
	}
}

// AddDescription stores a description under title, replacing any existing
// description with the same title.
func (b *Business) AddDescription(title, body string) error {
	return putEntry(b.Descriptions, title, body)
}

// AddSuggestion stores a suggestion under title, replacing any existing
// suggestion with the same title.
func (b *Business) AddSuggestion(title, body string) error {
	return putEntry(b.Suggestions, title, body)
}

// AddProfile stores the scraped snapshot of a profile under its URL,
// replacing any earlier snapshot of the same URL.
func (b *Business) AddProfile(url, scraped string) error {
	return putEntry(b.Profiles, url, scraped)
}

// SetColors replaces the whole color sequence. The slice is copied.
func (b *Business) SetColors(colors []string) error {
	if len(colors) > MaxColors {
		return fmt.Errorf("%w: %d colors given, at most %d allowed", mserrors.ErrInvalidInput, len(colors), MaxColors)
	}
	b.Colors = append([]string{}, colors...)
	return nil
}

func putEntry(m map[string]Entry, title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: entry title must not be empty", mserrors.ErrInvalidInput)
	}
	m[title] = Entry{Title: title, Body: body}
	return nil
}

// State is the full durable aggregate of all businesses and the unit of
// persistence.
type State struct {
	Businesses map[string]*Business
}

// NewState returns a State with no businesses.
func NewState() *State {
	return &State{Businesses: make(map[string]*Business)}
}

// AddBusiness registers a new business and returns it. Adding a name that
// already exists returns the existing business untouched.
func (s *State) AddBusiness(name string) (*Business, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: business name must not be empty", mserrors.ErrInvalidInput)
	}
	if b, ok := s.Businesses[name]; ok {
		return b, nil
	}
	b := NewBusiness(name)
	s.Businesses[name] = b
	return b, nil
}

// Business looks up a business by name.
func (s *State) Business(name string) (*Business, error) {
	b, ok := s.Businesses[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", mserrors.ErrBusinessNotFound, name)
	}
	return b, nil
}

// Names returns the business names in sorted order.
func (s *State) Names() []string {
	names := make([]string, 0, len(s.Businesses))
	for name := range s.Businesses {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SortedTitles returns the keys of an entry mapping in sorted order.
func SortedTitles(m map[string]Entry) []string {
	titles := make([]string, 0, len(m))
	for title := range m {
		titles = append(titles, title)
	}
	slices.Sort(titles)
	return titles
}
