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
	"fmt"
	"net/http"
	"time"

	"github.com/OS-joaocastilho/marketing-sm/internal/apierror"
	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/rs/zerolog"
)

// userAgent identifies this client to the scraping service.
const userAgent = "marketing-sm"

// authTransport adds the bearer token and standard headers to every request.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("User-Agent", userAgent)
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return t.base.RoundTrip(req)
}

// retryTransport adds exponential backoff retry logic for transient failures.
type retryTransport struct {
	base           http.RoundTripper
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	inspector      apierror.Inspector
	log            zerolog.Logger
}

// newRetryTransport creates a new transport with retry logic.
func newRetryTransport(base http.RoundTripper, log zerolog.Logger) *retryTransport {
	return &retryTransport{
		base:           base,
		maxRetries:     5,
		initialBackoff: time.Second,
		maxBackoff:     30 * time.Second,
		inspector:      apierror.NewInspector(),
		log:            log,
	}
}

// RoundTrip implements http.RoundTripper with retry logic. Request bodies
// are replayed through GetBody, so only requests built with a rewindable
// body are retried.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error
	backoff := t.initialBackoff

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		clonedReq := req.Clone(req.Context())
		if attempt > 0 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return nil, lastErr
			}
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			clonedReq.Body = body
		}

		resp, err := t.base.RoundTrip(clonedReq)

		// Success - return immediately
		if err == nil && !isRetryableStatusCode(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			if !t.inspector.IsRetryable(err) {
				return nil, err
			}
			lastErr = apierror.WithRetryInfo(fmt.Errorf("%w: %w", mserrors.ErrNetworkFailure, err), attempt+1, t.maxRetries)
		} else {
			sentinel := mserrors.ErrNetworkFailure
			if resp.StatusCode == http.StatusTooManyRequests {
				sentinel = mserrors.ErrRateLimit
			}
			lastErr = apierror.WithRetryInfo(
				fmt.Errorf("received status %d: %w", resp.StatusCode, sentinel),
				attempt+1, t.maxRetries)
			resp.Body.Close()
		}

		// Don't retry on the last attempt
		if attempt < t.maxRetries-1 {
			t.log.Warn().Err(lastErr).Dur("backoff", backoff).Msg("scraper request failed, retrying")
			select {
			case <-time.After(backoff):
				backoff *= 2
				if backoff > t.maxBackoff {
					backoff = t.maxBackoff
				}
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}
	}

	return nil, apierror.WithUserAction(lastErr,
		"Scraping service unavailable. Please check your internet connection and try again")
}

// isRetryableStatusCode checks if an HTTP status code should trigger a retry.
func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
