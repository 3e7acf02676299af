// Package auth produces the per-request HMAC authorization header the envbee
// API expects. The signature binds the timestamp, HTTP method, and request
// path, so a captured header cannot be replayed against another endpoint.
package auth

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// The API hashes the request body into the signature. This client only issues
// GET requests, so the digest is always the MD5 of the empty JSON object.
var emptyBodyDigest = func() string {
	sum := md5.Sum([]byte("{}"))
	return hex.EncodeToString(sum[:])
}()

// Authenticator signs request paths with the account's API secret. The secret
// never leaves the process; only the derived signature goes on the wire.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// Option configures the authenticator.
type Option func(*Authenticator)

// WithClock overrides the clock used for signature timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an authenticator for the given API secret.
func New(secret []byte, opts ...Option) *Authenticator {
	a := &Authenticator{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sign returns the Authorization header value for a GET request to path. The
// path must be the exact path-plus-query string that goes on the wire.
func (a *Authenticator) Sign(path string) (string, error) {
	if a == nil || len(a.secret) == 0 {
		return "", errors.New("auth: api secret is required")
	}
	if path == "" {
		return "", errors.New("auth: request path is required")
	}

	timestamp := strconv.FormatInt(a.now().UnixMilli(), 10)

	mac := hmac.New(sha256.New, a.secret)
	// Order matters: timestamp, method, path, body digest, no separators.
	mac.Write([]byte(timestamp))
	mac.Write([]byte("GET"))
	mac.Write([]byte(path))
	mac.Write([]byte(emptyBodyDigest))

	return fmt.Sprintf("HMAC %s:%s", timestamp, hex.EncodeToString(mac.Sum(nil))), nil
}
