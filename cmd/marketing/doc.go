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

// Package main implements the marketing-sm command-line interface.
// It edits the stored business state that feeds social media content
// generation and prepares generation requests from it.
//
// The CLI supports:
//   - Registering businesses and their descriptions, suggestions and brand colors
//   - Scraping an Instagram profile into a business as example posts
//   - Balancing a month's post count across the four content categories
//   - Building a validated generation request and exporting state as NDJSON
//
// Usage:
//
//	marketing-sm business add "Acme Bakery"
//	marketing-sm description add "Acme Bakery" About "Family bakery in Porto"
//	marketing-sm profile add "Acme Bakery" https://www.instagram.com/acme/
//	marketing-sm profile last "Acme Bakery" https://www.instagram.com/acme/
//	marketing-sm posts plan "Acme Bakery" --description About --total 8
//
// The scraping token is read from APIFY_API_TOKEN unless the config file
// names another variable.
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Invalid input, unknown business or scraper authentication error
//   - 3: Scraping or network error
//   - 4: State could not be written
package main
