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

// Package locale holds the user-facing label tables. Each locale is a YAML
// table mapping a label key to its text; adding a locale means adding a
// table under tables/.
package locale

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Key identifies a user-facing label.
type Key string

const (
	AppTitle               Key = "app_title"
	AppSubtitle            Key = "app_subtitle"
	AddNewBrand            Key = "add_new_brand"
	AddNewDescription      Key = "add_new_description"
	AddNewProfile          Key = "add_new_profile"
	RefreshButton          Key = "refresh_button"
	Brand                  Key = "brand"
	BrandName              Key = "brand_name"
	NewBrand               Key = "new_brand"
	Colors                 Key = "colors"
	MainColor              Key = "main_color"
	SecondColor            Key = "second_color"
	ThirdColor             Key = "third_color"
	FourthColor            Key = "fourth_color"
	FifthColor             Key = "fifth_color"
	SixthColor             Key = "sixth_color"
	InstagramProfile       Key = "instagram_profile"
	NewInstagramProfile    Key = "new_instagram_profile"
	ScrapeInstagramButton  Key = "scrape_instagram_button"
	PageDescription        Key = "page_description"
	NumPosts               Key = "num_posts"
	PostsMonth             Key = "posts_month"
	DescriptionTitle       Key = "description_title"
	SaveDescriptionButton  Key = "save_description_button"
	InputSuggestions       Key = "input_suggestions"
	AdvancedConfigurations Key = "advanced_configurations"
	EducationalPosts       Key = "educational_posts"
	MotivationalPosts      Key = "motivational_posts"
	InteractivePosts       Key = "interactive_posts"
	PromotionalPosts       Key = "promotional_posts"
	PostsGenerateButton    Key = "posts_generate_button"
	PostDescription        Key = "post_description"
	PostText               Key = "post_text"
)

// Keys returns every known label key.
func Keys() []Key {
	return []Key{
		AppTitle, AppSubtitle, AddNewBrand, AddNewDescription, AddNewProfile,
		RefreshButton, Brand, BrandName, NewBrand, Colors, MainColor,
		SecondColor, ThirdColor, FourthColor, FifthColor, SixthColor,
		InstagramProfile, NewInstagramProfile, ScrapeInstagramButton,
		PageDescription, NumPosts, PostsMonth, DescriptionTitle,
		SaveDescriptionButton, InputSuggestions, AdvancedConfigurations,
		EducationalPosts, MotivationalPosts, InteractivePosts,
		PromotionalPosts, PostsGenerateButton, PostDescription, PostText,
	}
}

//go:embed tables/*.yaml
var tables embed.FS

// Table is the label set of one locale.
type Table struct {
	Locale string         `yaml:"locale"`
	Labels map[Key]string `yaml:"labels"`
	Months []string       `yaml:"months"`
}

// Available lists the locales that have a table.
func Available() []string {
	entries, err := tables.ReadDir("tables")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(out)
	return out
}

// Load parses the table for locale.
func Load(locale string) (*Table, error) {
	data, err := tables.ReadFile(path.Join("tables", strings.ToLower(locale)+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("no label table for locale %q (available: %s)", locale, strings.Join(Available(), ", "))
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse label table %q: %w", locale, err)
	}
	if len(t.Months) != 12 {
		return nil, fmt.Errorf("label table %q has %d months, want 12", locale, len(t.Months))
	}
	return &t, nil
}

// Lookup returns the text for k, or the key itself when the table lacks it.
func (t *Table) Lookup(k Key) string {
	if s, ok := t.Labels[k]; ok && s != "" {
		return s
	}
	return string(k)
}

// Month returns the localized name of m.
func (t *Table) Month(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return t.Months[m-1]
}

// Missing lists the known keys the table has no text for.
func (t *Table) Missing() []Key {
	var out []Key
	for _, k := range Keys() {
		if t.Labels[k] == "" {
			out = append(out, k)
		}
	}
	return out
}

// FormatPost renders the PostText label with a caption and image prompt.
func (t *Table) FormatPost(caption, prompt string) string {
	r := strings.NewReplacer("{caption}", caption, "{prompt}", prompt)
	return r.Replace(t.Lookup(PostText))
}
