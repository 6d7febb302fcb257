package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v50/github"
)

// GitHubErrorType represents the type of GitHub API error
type GitHubErrorType int

const (
	// ErrorTypeRateLimit indicates rate limit exceeded
	ErrorTypeRateLimit GitHubErrorType = iota
	// ErrorTypeNetworkTimeout indicates network timeout
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication indicates authentication failure
	ErrorTypeAuthentication
	// ErrorTypeNotFound indicates resource not found
	ErrorTypeNotFound
	// ErrorTypeServerError indicates server error (5xx)
	ErrorTypeServerError
	// ErrorTypeUnknown indicates unknown error type
	ErrorTypeUnknown
)

// String returns the string representation of the error type
func (t GitHubErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// GitHubError represents a classified GitHub API error
type GitHubError struct {
	Type        GitHubErrorType
	StatusCode  int
	Message     string
	RetryAfter  time.Duration
	OriginalErr error
}

// Error implements the error interface
func (e *GitHubError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error [%s, HTTP %d]: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

// Unwrap returns the original error
func (e *GitHubError) Unwrap() error {
	return e.OriginalErr
}

// ClassifyError converts errors returned by go-github (or the HTTP stack
// below it) into a *GitHubError. nil stays nil and an existing *GitHubError
// is returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return err
	}

	classified := &GitHubError{
		Type:        ErrorTypeUnknown,
		Message:     err.Error(),
		OriginalErr: err,
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var netErr net.Error
	var urlErr *url.Error

	switch {
	case errors.As(err, &rateErr):
		classified.Type = ErrorTypeRateLimit
		classified.StatusCode = statusOf(rateErr.Response)
		classified.Message = rateErr.Message
		if reset := rateErr.Rate.Reset.Time; !reset.IsZero() {
			if d := time.Until(reset); d > 0 {
				classified.RetryAfter = d
			}
		}

	case errors.As(err, &abuseErr):
		classified.Type = ErrorTypeRateLimit
		classified.StatusCode = statusOf(abuseErr.Response)
		classified.Message = abuseErr.Message
		classified.RetryAfter = abuseErr.GetRetryAfter()

	case errors.As(err, &respErr):
		classified.StatusCode = statusOf(respErr.Response)
		classified.Message = respErr.Message
		classified.Type = typeForStatus(classified.StatusCode)

	case errors.Is(err, context.DeadlineExceeded):
		classified.Type = ErrorTypeNetworkTimeout

	case errors.As(err, &netErr), errors.As(err, &urlErr):
		classified.Type = ErrorTypeNetworkTimeout
	}

	return classified
}

func typeForStatus(status int) GitHubErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status >= 500 && status < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// IsRateLimitError checks if the error is a rate limit error
func IsRateLimitError(err error) bool {
	return hasType(err, ErrorTypeRateLimit)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool {
	return hasType(err, ErrorTypeAuthentication)
}

func hasType(err error, t GitHubErrorType) bool {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr.Type == t
	}
	return false
}
