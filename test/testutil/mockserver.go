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

// Package testutil provides common test helpers for marketing-sm
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer is a stand-in for the scraping service.
type MockServer struct {
	*httptest.Server
	requests atomic.Int32
}

// RequestCount returns the number of requests received so far.
func (m *MockServer) RequestCount() int32 {
	return m.requests.Load()
}

func newMockServer(t *testing.T, handler func(count int32, w http.ResponseWriter, r *http.Request)) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(m.requests.Add(1), w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// NewActorServer serves count dataset items for every actor run.
func NewActorServer(t *testing.T, count int) *MockServer {
	t.Helper()
	return newMockServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		AssertActorRequest(t, r)
		writeItems(w, GenerateDatasetItems(count))
	})
}

// NewRateLimitServer answers 429 for the first failCount requests, then
// succeeds.
func NewRateLimitServer(t *testing.T, retryAfter, failCount int) *MockServer {
	t.Helper()
	return newMockServer(t, func(n int32, w http.ResponseWriter, r *http.Request) {
		if n <= int32(failCount) {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"type":"rate-limit-exceeded","message":"You have exceeded the rate limit"}}`))
			return
		}
		writeItems(w, GenerateDatasetItems(3))
	})
}

// NewErrorServer always answers with statusCode and an Apify error envelope.
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return newMockServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    strings.ToLower(strings.ReplaceAll(http.StatusText(statusCode), " ", "-")),
				"message": http.StatusText(statusCode),
			},
		})
	})
}

// NewTransientErrorServer fails failCount times with errorCode, then succeeds.
func NewTransientErrorServer(t *testing.T, failCount, errorCode int) *MockServer {
	t.Helper()
	return newMockServer(t, func(n int32, w http.ResponseWriter, r *http.Request) {
		if n <= int32(failCount) {
			w.WriteHeader(errorCode)
			_, _ = w.Write([]byte(http.StatusText(errorCode)))
			return
		}
		writeItems(w, GenerateDatasetItems(3))
	})
}

// NewSlowServer delays every response by delay.
func NewSlowServer(t *testing.T, delay time.Duration) *MockServer {
	t.Helper()
	return newMockServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		writeItems(w, GenerateDatasetItems(1))
	})
}

func writeItems(w http.ResponseWriter, items []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

// GenerateDatasetItems builds count actor dataset items shaped like the
// Instagram scraper's output, newest first.
func GenerateDatasetItems(count int) []map[string]any {
	base := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	items := make([]map[string]any, 0, count)
	for i := 1; i <= count; i++ {
		items = append(items, map[string]any{
			"caption":       fmt.Sprintf("Post %d #tag%d", i, i),
			"alt":           fmt.Sprintf("Photo %d", i),
			"commentsCount": i,
			"hashtags":      []string{fmt.Sprintf("tag%d", i)},
			"images":        []string{},
			"likesCount":    10 * i,
			"timestamp":     base.AddDate(0, 0, -i).Format("2006-01-02T15:04:05.000Z"),
		})
	}
	return items
}

// AssertActorRequest validates a run-sync-get-dataset-items request.
func AssertActorRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if !strings.HasSuffix(r.URL.Path, "/run-sync-get-dataset-items") {
		t.Errorf("Unexpected path: %s", r.URL.Path)
	}
	if r.Method != http.MethodPost {
		t.Errorf("Expected POST method, got: %s", r.Method)
	}
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got: %s", ct)
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		t.Error("Expected bearer token")
	}
}
