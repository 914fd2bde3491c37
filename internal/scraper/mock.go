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

package scraper

import (
	"context"
	"fmt"
	"sync"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
)

// MockScraper is a Scraper that returns canned posts, for tests and for
// the CLI's --mock-scraper flag.
type MockScraper struct {
	// Posts to return
	Posts []ProfilePost

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	mu       sync.Mutex
	calls    int
	lastURLs []string
}

// NewMockScraper creates a mock scraper with default test data.
func NewMockScraper(opts ...MockOption) *MockScraper {
	m := &MockScraper{Posts: samplePosts()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scrape implements Scraper.
func (m *MockScraper) Scrape(ctx context.Context, profileURL string) ([]ProfilePost, error) {
	m.mu.Lock()
	m.calls++
	m.lastURLs = append(m.lastURLs, profileURL)
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := ValidateProfileURL(profileURL); err != nil {
		return nil, err
	}
	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", mserrors.ErrInvalidToken)
	}
	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", mserrors.ErrNetworkFailure)
	}
	if m.Error != nil {
		return nil, m.Error
	}

	out := make([]ProfilePost, len(m.Posts))
	copy(out, m.Posts)
	return out, nil
}

// Calls returns how many times Scrape was invoked.
func (m *MockScraper) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// URLs returns the profile URLs passed to Scrape, in call order.
func (m *MockScraper) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lastURLs...)
}

// MockOption configures a MockScraper.
type MockOption func(*MockScraper)

// WithPosts sets the posts to return.
func WithPosts(posts []ProfilePost) MockOption {
	return func(m *MockScraper) {
		m.Posts = posts
	}
}

// WithError makes the scraper return err.
func WithError(err error) MockOption {
	return func(m *MockScraper) {
		m.Error = err
	}
}

// WithAuthFailure makes the scraper simulate a rejected token.
func WithAuthFailure() MockOption {
	return func(m *MockScraper) {
		m.ShouldFailAuth = true
	}
}

func samplePosts() []ProfilePost {
	return []ProfilePost{
		{
			Caption:       "Três dicas para começar a semana com energia #segunda",
			Alt:           "Photo of a coffee cup on a desk",
			CommentsCount: 4,
			Hashtags:      []string{"segunda"},
			Images:        []string{},
			LikesCount:    87,
			Date:          "2024-03-04T09:00:00.000Z",
		},
		{
			Caption:       "Qual destes produtos é o seu favorito? Conte nos comentários!",
			Alt:           "",
			CommentsCount: 21,
			Hashtags:      []string{},
			Images:        []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
			LikesCount:    140,
			Date:          "2024-03-06T18:30:00.000Z",
		},
		{
			Caption:       "Promoção de março: 20% em toda a loja #promo",
			Alt:           "Storefront with sale banner",
			CommentsCount: 2,
			Hashtags:      []string{"promo"},
			Images:        []string{},
			LikesCount:    52,
			Date:          "2024-03-08T12:00:00.000Z",
		},
	}
}
