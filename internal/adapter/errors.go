package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// FetchErrorKind buckets transport failures into the fixed categories the
// retry policy understands. Every kind except [FetchPermanent] is worth
// another attempt.
type FetchErrorKind int

const (
	FetchPermanent FetchErrorKind = iota
	FetchURLExpired
	FetchConnection
	FetchTimeout
	FetchDNS
	FetchServer
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchURLExpired:
		return "url expired or forbidden"
	case FetchConnection:
		return "connection failure"
	case FetchTimeout:
		return "timeout"
	case FetchDNS:
		return "name resolution failure"
	case FetchServer:
		return "server error"
	default:
		return "permanent"
	}
}

// Retryable reports whether another attempt can reasonably succeed.
func (k FetchErrorKind) Retryable() bool {
	return k != FetchPermanent
}

// FetchError wraps a transport failure with its classification.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err carries a retryable [FetchError]
// classification. Unclassified errors are treated as permanent.
func IsRetryable(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind.Retryable()
	}
	return false
}

// IsOffline reports whether err indicates the authority could not be
// reached at all (as opposed to reached and unhappy). The orchestrator
// treats this as "serve from cache", not as a failure.
func IsOffline(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case FetchConnection, FetchTimeout, FetchDNS:
			return true
		}
	}
	return false
}

// classifyTransportError buckets an error returned by the HTTP client
// (before any status code was received).
func classifyTransportError(err error) *FetchError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &FetchError{Kind: FetchDNS, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return &FetchError{Kind: FetchConnection, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &FetchError{Kind: FetchConnection, Err: err}
	}

	return &FetchError{Kind: FetchPermanent, Err: err}
}

// classifyStatusCode buckets a non-2xx HTTP response.
func classifyStatusCode(statusCode int, body string) *FetchError {
	err := fmt.Errorf("http %d: %s", statusCode, body)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &FetchError{Kind: FetchURLExpired, Err: err}
	case statusCode >= http.StatusInternalServerError:
		return &FetchError{Kind: FetchServer, Err: err}
	default:
		return &FetchError{Kind: FetchPermanent, Err: err}
	}
}
