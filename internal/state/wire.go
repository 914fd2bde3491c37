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
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// The on-disk document keeps the dict-of-dicts shape used by earlier
// releases. Entries always serialize their body under "description", even
// for suggestions and scraped profiles.

type wireEntry struct {
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
}

type wireBusiness struct {
	Name          string               `json:"name"`
	Descriptions  map[string]wireEntry `json:"descriptions"`
	Suggestions   map[string]wireEntry `json:"suggestions"`
	InstagramURLs map[string]wireEntry `json:"instagram_urls"`
	Colors        []*string            `json:"colors"`
}

type wireState struct {
	Businesses map[string]wireBusiness `json:"businesses"`
}

// encodeState writes every business under its key, with the key as its
// name. Nil businesses are skipped.
func encodeState(s *State) ([]byte, error) {
	w := wireState{Businesses: make(map[string]wireBusiness, len(s.Businesses))}
	for key, b := range s.Businesses {
		if b == nil {
			continue
		}
		colors := make([]*string, 0, len(b.Colors))
		for i := range b.Colors {
			colors = append(colors, &b.Colors[i])
		}
		w.Businesses[key] = wireBusiness{
			Name:          key,
			Descriptions:  encodeEntries(b.Descriptions),
			Suggestions:   encodeEntries(b.Suggestions),
			InstagramURLs: encodeEntries(b.Profiles),
			Colors:        colors,
		}
	}
	return json.MarshalIndent(w, "", "  ")
}

func encodeEntries(m map[string]Entry) map[string]wireEntry {
	out := make(map[string]wireEntry, len(m))
	for key, e := range m {
		body, _ := json.Marshal(e.Body)
		out[key] = wireEntry{Title: e.Title, Description: body}
	}
	return out
}

// decodeReport counts the repairs made while decoding.
type decodeReport struct {
	truncatedColors int
	renamed         []string
}

// decodeState rebuilds a State, defaulting every missing collection to empty.
// A business is always named after its key. Null colors are dropped and
// anything beyond MaxColors is discarded.
func decodeState(data []byte) (*State, decodeReport, error) {
	var (
		w      wireState
		report decodeReport
	)
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, report, err
	}

	s := NewState()
	for key, wb := range w.Businesses {
		b := NewBusiness(key)
		if wb.Name != "" && wb.Name != key {
			report.renamed = append(report.renamed, key)
		}
		b.Descriptions = decodeEntries(wb.Descriptions)
		b.Suggestions = decodeEntries(wb.Suggestions)
		b.Profiles = decodeEntries(wb.InstagramURLs)
		for _, c := range wb.Colors {
			if c == nil {
				continue
			}
			if len(b.Colors) == MaxColors {
				report.truncatedColors++
				continue
			}
			b.Colors = append(b.Colors, *c)
		}
		s.Businesses[key] = b
	}
	sort.Strings(report.renamed)
	return s, report, nil
}

func decodeEntries(m map[string]wireEntry) map[string]Entry {
	out := make(map[string]Entry, len(m))
	for key, we := range m {
		title := we.Title
		if title == "" {
			title = key
		}
		out[key] = Entry{Title: title, Body: entryBody(we.Description)}
	}
	return out
}

// entryBody returns the text of a serialized body. Older documents stored
// raw scrape output (a JSON list of posts) instead of a string; that value
// is kept verbatim as compact JSON text.
func entryBody(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return trimmed
	}
	return buf.String()
}
