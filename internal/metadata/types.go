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

package metadata

import (
	"time"
)

// ScrapeMetadata is the record of a single profile scrape: what was asked
// for, what came back and how long it took.
type ScrapeMetadata struct {
	Version        string        `json:"version"`
	ScrapeID       string        `json:"scrape_id"`
	Parameters     ScrapeParams  `json:"parameters"`
	Results        ScrapeResults `json:"results"`
	PreviousScrape *ScrapeRef    `json:"previous_scrape,omitempty"`
}

// ScrapeParams captures the inputs of a scrape.
type ScrapeParams struct {
	Business     string `json:"business"`
	ProfileURL   string `json:"profile_url"`
	ActorID      string `json:"actor_id"`
	ResultsLimit int    `json:"results_limit"`
}

// ScrapeResults holds the statistics of the posts a scrape returned. Post
// dates that could not be parsed are counted but do not move the range.
type ScrapeResults struct {
	TotalPosts    int       `json:"total_posts"`
	TotalLikes    int       `json:"total_likes"`
	TotalComments int       `json:"total_comments"`
	OldestPost    time.Time `json:"oldest_post_date"`
	NewestPost    time.Time `json:"newest_post_date"`
	Duration      string    `json:"scrape_duration"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// ScrapeRef links a scrape to the previous scrape of the same profile.
type ScrapeRef struct {
	ScrapeID    string    `json:"scrape_id"`
	CompletedAt time.Time `json:"completed_at"`
}
