package engine

import (
	"fmt"
	"net/http"
)

// ProviderError is reported by the transport layer when Trello responds
// with a non-2xx status. Message should carry the provider-supplied error
// text when available; RawResponse holds the response body bytes and must
// never include credentials.
type ProviderError struct {
	StatusCode  int
	Message     string
	RawResponse []byte
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	if e.Message != "" {
		return fmt.Sprintf("trello: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("trello: status %d", e.StatusCode)
}

// Throttled reports whether this is Trello's explicit rate-limit signal.
func (e *ProviderError) Throttled() bool {
	return e != nil && e.StatusCode == http.StatusTooManyRequests
}

// RemoteServiceError is the caller-visible failure for any provider
// rejection other than throttling. It carries the provider's message, or a
// generic fallback when the provider supplied none.
type RemoteServiceError struct {
	Message string
	cause   *ProviderError
}

const genericRemoteMessage = "Trello API request failed"

func newRemoteServiceError(cause *ProviderError) *RemoteServiceError {
	msg := ""
	if cause != nil {
		msg = cause.Message
	}
	if msg == "" {
		msg = genericRemoteMessage
	}
	return &RemoteServiceError{Message: msg, cause: cause}
}

func (e *RemoteServiceError) Error() string {
	if e == nil {
		return genericRemoteMessage
	}
	return e.Message
}

// Unwrap exposes the underlying provider error for status inspection.
func (e *RemoteServiceError) Unwrap() error {
	if e == nil || e.cause == nil {
		return nil
	}
	return e.cause
}
