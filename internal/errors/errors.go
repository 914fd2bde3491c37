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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
//
// A missing or corrupted state file is never reported through these errors:
// the state store recovers from both locally and starts from an empty state.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrWriteFailure indicates the state document could not be durably written.
	// The edit that triggered the save is still in memory but was not persisted.
	// Maps to exit code 4.
	ErrWriteFailure = errors.New("state write failed")

	// ErrBusinessNotFound indicates the named business is not in the state.
	// Maps to exit code 2.
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidInput indicates a malformed argument, such as an empty title
	// or too many brand colors.
	// Maps to exit code 2.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidToken indicates the scraping service rejected the api token.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid scraper api token")

	// ErrMissingToken indicates the scraping service token is not configured.
	// Maps to exit code 2.
	ErrMissingToken = errors.New("scraper api token not set")

	// ErrScrapeFailed indicates the scraping actor returned an unusable result.
	// Maps to exit code 3.
	ErrScrapeFailed = errors.New("profile scrape failed")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates the scraping service rate limit has been exceeded.
	// Maps to exit code 3.
	ErrRateLimit = errors.New("scraper rate limit exceeded")
)
