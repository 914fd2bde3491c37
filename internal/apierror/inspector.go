package apierror

import (
	"errors"
	"fmt"
	"strings"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
)

// Inspector provides methods for analyzing scraping service errors.
type Inspector interface {
	// IsAuthError returns true if the error represents an authentication or authorization failure.
	IsAuthError(err error) bool

	// IsRateLimitError returns true if the error represents a rate limit error.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool

	// IsRetryable returns true if repeating the same request may succeed.
	IsRetryable(err error) bool
}

// StringInspector implements Inspector by matching well-known fragments of
// error messages.
type StringInspector struct{}

// NewInspector returns the default inspector: sentinel errors in the chain
// are checked first, then the message text.
func NewInspector() Inspector {
	return &ChainInspector{base: &StringInspector{}}
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *StringInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "user-or-token-not-found") ||
		strings.Contains(errStr, "authentication")
}

// IsRateLimitError checks if the error is a rate limit error.
func (i *StringInspector) IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "rate-limit-exceeded") ||
		strings.Contains(errStr, "429")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *StringInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "eof")
}

// IsRetryable reports rate limit and network errors as retryable.
func (i *StringInspector) IsRetryable(err error) bool {
	return i.IsRateLimitError(err) || i.IsNetworkError(err)
}

// ChainInspector checks the error chain for sentinel errors and falls back
// to a base inspector.
type ChainInspector struct {
	base Inspector
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (c *ChainInspector) IsAuthError(err error) bool {
	if errors.Is(err, mserrors.ErrInvalidToken) || errors.Is(err, mserrors.ErrMissingToken) {
		return true
	}
	return c.base.IsAuthError(err)
}

// IsRateLimitError checks the error chain first, then falls back to base inspector.
func (c *ChainInspector) IsRateLimitError(err error) bool {
	if errors.Is(err, mserrors.ErrRateLimit) {
		return true
	}
	return c.base.IsRateLimitError(err)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
func (c *ChainInspector) IsNetworkError(err error) bool {
	if errors.Is(err, mserrors.ErrNetworkFailure) {
		return true
	}
	return c.base.IsNetworkError(err)
}

// IsRetryable never retries auth errors or invalid input, even when their
// message happens to look transient.
func (c *ChainInspector) IsRetryable(err error) bool {
	if err == nil || c.IsAuthError(err) || errors.Is(err, mserrors.ErrInvalidInput) {
		return false
	}
	return c.IsRateLimitError(err) || c.IsNetworkError(err)
}

// RetryError records how many attempts were made before giving up.
type RetryError struct {
	Err         error
	Attempt     int
	MaxAttempts int
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("%v (attempt %d/%d)", e.Err, e.Attempt, e.MaxAttempts)
}

func (e *RetryError) Unwrap() error { return e.Err }

// WithRetryInfo annotates err with the attempt count.
func WithRetryInfo(err error, attempt, maxAttempts int) error {
	if err == nil {
		return nil
	}
	return &RetryError{Err: err, Attempt: attempt, MaxAttempts: maxAttempts}
}

// UserActionError carries a hint telling the user how to recover.
type UserActionError struct {
	Err    error
	Action string
}

func (e *UserActionError) Error() string {
	return fmt.Sprintf("%v. %s", e.Err, e.Action)
}

func (e *UserActionError) Unwrap() error { return e.Err }

// WithUserAction annotates err with a recovery hint.
func WithUserAction(err error, action string) error {
	if err == nil {
		return nil
	}
	return &UserActionError{Err: err, Action: action}
}
