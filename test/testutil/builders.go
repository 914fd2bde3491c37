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

// BusinessBuilder builds a business in the persisted document shape. It
// can also produce the older shapes the store still has to read.
type BusinessBuilder struct {
	name         string
	omitName     bool
	descriptions map[string]any
	suggestions  map[string]any
	profiles     map[string]any
	colors       []any
}

// NewBusinessBuilder creates a builder for a business with no entries.
func NewBusinessBuilder(name string) *BusinessBuilder {
	return &BusinessBuilder{
		name:         name,
		descriptions: map[string]any{},
		suggestions:  map[string]any{},
		profiles:     map[string]any{},
		colors:       []any{},
	}
}

func entry(title string, body any) map[string]any {
	return map[string]any{"title": title, "description": body}
}

// WithDescription adds a description entry.
func (b *BusinessBuilder) WithDescription(title, body string) *BusinessBuilder {
	b.descriptions[title] = entry(title, body)
	return b
}

// WithSuggestion adds a suggestion entry.
func (b *BusinessBuilder) WithSuggestion(title, body string) *BusinessBuilder {
	b.suggestions[title] = entry(title, body)
	return b
}

// WithProfile adds a scraped profile. body may be a string or, as older
// documents stored it, a list of posts.
func (b *BusinessBuilder) WithProfile(url string, body any) *BusinessBuilder {
	b.profiles[url] = entry(url, body)
	return b
}

// WithColors sets the colors. nil elements become JSON nulls.
func (b *BusinessBuilder) WithColors(colors ...any) *BusinessBuilder {
	b.colors = colors
	return b
}

// WithoutName drops the name field, as hand-edited documents sometimes do.
func (b *BusinessBuilder) WithoutName() *BusinessBuilder {
	b.omitName = true
	return b
}

// Name returns the business name the builder was created with.
func (b *BusinessBuilder) Name() string {
	return b.name
}

// Build returns the business object.
func (b *BusinessBuilder) Build() map[string]any {
	out := map[string]any{
		"descriptions":   b.descriptions,
		"suggestions":    b.suggestions,
		"instagram_urls": b.profiles,
		"colors":         b.colors,
	}
	if !b.omitName {
		out["name"] = b.name
	}
	return out
}

// StateDocument assembles a full state document keyed by business name.
func StateDocument(businesses ...*BusinessBuilder) map[string]any {
	m := make(map[string]any, len(businesses))
	for _, b := range businesses {
		m[b.name] = b.Build()
	}
	return map[string]any{"businesses": m}
}
