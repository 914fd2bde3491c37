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
	"encoding/json"
	"fmt"
)

// Scraper fetches the recent posts of a profile.
type Scraper interface {
	Scrape(ctx context.Context, profileURL string) ([]ProfilePost, error)
}

// ProfilePost is one scraped post, reduced to the fields useful as a
// content example.
type ProfilePost struct {
	Caption       string   `json:"caption"`
	Alt           string   `json:"alt"`
	CommentsCount int      `json:"commentsCount"`
	Hashtags      []string `json:"hashtags"`
	Images        []string `json:"images"`
	LikesCount    int      `json:"likesCount"`
	Date          string   `json:"date"`
}

// Snapshot serializes posts into the text stored as a profile body.
func Snapshot(posts []ProfilePost) (string, error) {
	if posts == nil {
		posts = []ProfilePost{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return "", fmt.Errorf("failed to serialize scraped posts: %w", err)
	}
	return string(data), nil
}

// ParseSnapshot reverses Snapshot.
func ParseSnapshot(body string) ([]ProfilePost, error) {
	var posts []ProfilePost
	if err := json.Unmarshal([]byte(body), &posts); err != nil {
		return nil, fmt.Errorf("profile body is not a post snapshot: %w", err)
	}
	return posts, nil
}

// runInput is the actor input for a profile posts scrape.
type runInput struct {
	AddParentData                     bool     `json:"addParentData"`
	DirectURLs                        []string `json:"directUrls"`
	EnhanceUserSearchWithFacebookPage bool     `json:"enhanceUserSearchWithFacebookPage"`
	IsUserTaggedFeedURL               bool     `json:"isUserTaggedFeedURL"`
	ResultsLimit                      int      `json:"resultsLimit"`
	ResultsType                       string   `json:"resultsType"`
	SearchLimit                       int      `json:"searchLimit"`
	SearchType                        string   `json:"searchType"`
}

func newRunInput(profileURL string, limit int) runInput {
	return runInput{
		DirectURLs:   []string{profileURL},
		ResultsLimit: limit,
		ResultsType:  "posts",
		SearchLimit:  1,
		SearchType:   "hashtag",
	}
}

// datasetItem is a raw item produced by the actor. Any field may be null.
type datasetItem struct {
	Caption          *string  `json:"caption"`
	Alt              *string  `json:"alt"`
	CommentsCount    *int     `json:"commentsCount"`
	Hashtags         []string `json:"hashtags"`
	Images           []string `json:"images"`
	LikesCount       *int     `json:"likesCount"`
	Timestamp        *string  `json:"timestamp"`
	Error            string   `json:"error"`
	ErrorDescription string   `json:"errorDescription"`
}

func (it datasetItem) post() ProfilePost {
	p := ProfilePost{
		Hashtags: it.Hashtags,
		Images:   it.Images,
	}
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if it.Caption != nil {
		p.Caption = *it.Caption
	}
	if it.Alt != nil {
		p.Alt = *it.Alt
	}
	if it.CommentsCount != nil {
		p.CommentsCount = *it.CommentsCount
	}
	if it.LikesCount != nil {
		p.LikesCount = *it.LikesCount
	}
	if it.Timestamp != nil {
		p.Date = *it.Timestamp
	}
	return p
}

// apiError is the error envelope returned by the Apify API.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
