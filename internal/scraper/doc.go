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

// Package scraper reads recent posts from a public social profile so they
// can be stored as examples for content generation.
//
// Scraping itself is done by a hosted actor; ApifyClient only starts a
// synchronous actor run and maps the resulting dataset items. Every call is
// throttled by a token bucket, guarded by a circuit breaker, and retried
// by the HTTP transport on transient failures (502, 503, 504, 429 and
// network errors). Callers see one blocking call.
//
// Example usage:
//
//	client, err := scraper.NewApifyClient(cfg.ApifyToken(), cfg.Apify, logger)
//	if err != nil {
//	    return err
//	}
//	posts, err := client.Scrape(ctx, "https://www.instagram.com/padaria/")
//	if err != nil {
//	    return err
//	}
//	snapshot, _ := scraper.Snapshot(posts)
//	_ = business.AddProfile(url, snapshot)
package scraper
