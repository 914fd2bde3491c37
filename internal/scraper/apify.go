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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OS-joaocastilho/marketing-sm/internal/apierror"
	"github.com/OS-joaocastilho/marketing-sm/internal/config"
	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps the dataset a single run may return.
const maxResponseBytes = 32 << 20

// ApifyClient implements Scraper using a hosted Apify actor.
type ApifyClient struct {
	httpClient   *http.Client
	endpoint     string
	actorID      string
	resultsLimit int
	runTimeout   time.Duration
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker
	inspector    apierror.Inspector
	log          zerolog.Logger
}

// NewApifyClient creates a client authenticated with token. The transport
// chain is retry -> auth -> pooled default transport.
func NewApifyClient(token string, cfg config.ApifyConfig, log zerolog.Logger) (*ApifyClient, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: set %s", mserrors.ErrMissingToken, cfg.TokenEnv)
	}
	if cfg.RequestsPerSecond <= 0 || cfg.ResultsLimit <= 0 || cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: apify rate, results limit and timeout must be positive", mserrors.ErrInvalidInput)
	}

	transport := &http.Transport{
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	log = log.With().Str("component", "scraper").Logger()
	c := &ApifyClient{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newRetryTransport(&authTransport{token: token, base: transport}, log),
		},
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		actorID:      cfg.ActorID,
		resultsLimit: cfg.ResultsLimit,
		runTimeout:   cfg.Timeout,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		inspector:    apierror.NewInspector(),
		log:          log,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "apify",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// Only transport-level trouble counts against the service.
		IsSuccessful: func(err error) bool {
			return err == nil || !(c.inspector.IsNetworkError(err) || c.inspector.IsRateLimitError(err))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return c, nil
}

// Scrape runs the actor synchronously for profileURL and returns the posts
// it found.
func (c *ApifyClient) Scrape(ctx context.Context, profileURL string) ([]ProfilePost, error) {
	if err := ValidateProfileURL(profileURL); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scrape of %s canceled while throttled: %w", profileURL, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.run(ctx, profileURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: scraping service temporarily disabled after repeated failures: %w", mserrors.ErrNetworkFailure, err)
		}
		return nil, err
	}

	posts := result.([]ProfilePost)
	c.log.Info().Str("url", profileURL).Int("posts", len(posts)).Msg("profile scraped")
	return posts, nil
}

func (c *ApifyClient) run(ctx context.Context, profileURL string) ([]ProfilePost, error) {
	body, err := json.Marshal(newRunInput(profileURL, c.resultsLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to encode actor input: %w", err)
	}

	runURL := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?timeout=%s",
		c.endpoint, url.PathEscape(c.actorID), strconv.Itoa(int(c.runTimeout.Seconds())))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, runURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build actor request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err, profileURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read actor response: %w", mserrors.ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp.StatusCode, data, profileURL)
	}

	var items []datasetItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: actor returned malformed dataset: %w", mserrors.ErrScrapeFailed, err)
	}

	posts := make([]ProfilePost, 0, len(items))
	var firstErr string
	for _, it := range items {
		if it.Error != "" {
			if firstErr == "" {
				firstErr = strings.TrimSpace(it.Error + ": " + it.ErrorDescription)
			}
			continue
		}
		posts = append(posts, it.post())
	}
	if len(posts) == 0 && firstErr != "" {
		return nil, fmt.Errorf("%w: %s: %s", mserrors.ErrScrapeFailed, profileURL, firstErr)
	}
	return posts, nil
}

func (c *ApifyClient) statusError(status int, body []byte, profileURL string) error {
	var envelope apiError
	msg := http.StatusText(status)
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Type + ": " + envelope.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", mserrors.ErrInvalidToken, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: actor %s not found: %s", mserrors.ErrScrapeFailed, c.actorID, msg)
	case status == http.StatusRequestTimeout:
		return fmt.Errorf("%w: actor run for %s timed out: %s", mserrors.ErrScrapeFailed, profileURL, msg)
	default:
		return fmt.Errorf("%w: status %d for %s: %s", mserrors.ErrScrapeFailed, status, profileURL, msg)
	}
}

// mapError converts transport errors to the application's sentinel errors.
func (c *ApifyClient) mapError(err error, profileURL string) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("scrape of %s: %w", profileURL, err)
	case errors.Is(err, mserrors.ErrRateLimit) || errors.Is(err, mserrors.ErrNetworkFailure):
		return err
	case c.inspector.IsNetworkError(err):
		return fmt.Errorf("%w: %w", mserrors.ErrNetworkFailure, err)
	default:
		return fmt.Errorf("scrape of %s failed: %w", profileURL, err)
	}
}

// ValidateProfileURL accepts absolute http(s) URLs with a host.
func ValidateProfileURL(profileURL string) error {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not a profile URL", mserrors.ErrInvalidInput, profileURL)
	}
	return nil
}
