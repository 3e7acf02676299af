package client

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// RequestError reports a non-200 response from the envbee API.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("envbee: request failed with status %d: %s", e.StatusCode, e.Message)
}

// RequestTimeoutError reports that the remote attempt exceeded its deadline.
type RequestTimeoutError struct {
	Message string
}

func (e *RequestTimeoutError) Error() string {
	return "envbee: " + e.Message
}

// CacheError reports a local cache failure. It is logged by the client and
// never propagated to callers.
type CacheError struct {
	Message string
}

func (e *CacheError) Error() string {
	return "envbee: cache: " + e.Message
}

// isExpectedRemoteFailure reports whether err is one of the two checked
// transport failure kinds. Anything else still triggers the cache fallback
// but is logged as unexpected.
func isExpectedRemoteFailure(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return true
	}
	var timeoutErr *RequestTimeoutError
	return errors.As(err, &timeoutErr)
}

// isTimeout classifies raw transport errors into the timeout bucket.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
