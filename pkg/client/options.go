package client

import (
	"net/http"
	"time"

	"github.com/goliatone/go-envbee/pkg/cachedir"
	"github.com/goliatone/go-envbee/pkg/config"
	"github.com/goliatone/go-envbee/pkg/interfaces/cache"
	"github.com/goliatone/go-envbee/pkg/interfaces/logger"
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout bounds each remote attempt. Defaults to config.DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger injects a structured logger. Defaults to a no-op logger; the
// client never installs process-wide logging state.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCache injects the fallback cache store directly, bypassing the
// per-credential directory resolution.
func WithCache(store cache.Store) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
			c.ownsCache = false
		}
	}
}

// WithCacheDir overrides how the per-credential cache directory is resolved.
func WithCacheDir(resolve cachedir.Resolver) Option {
	return func(c *Client) {
		if resolve != nil {
			c.resolveCacheDir = resolve
		}
	}
}

// WithClock overrides the clock used for signature timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithStrictCacheWrites surfaces bulk cache-write failures as an aggregated
// CacheError in the logs instead of silently continuing per entry. Fetched
// data is still returned either way.
func WithStrictCacheWrites() Option {
	return func(c *Client) {
		c.strictCacheWrites = true
	}
}

// WithConfig applies a loaded configuration in one step. Individual options
// given after it still win.
func WithConfig(cfg config.Config) Option {
	return func(c *Client) {
		if cfg.BaseURL != "" {
			c.baseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			c.timeout = cfg.Timeout
		}
		if cfg.CacheDir != "" {
			c.resolveCacheDir = cachedir.Fixed(cfg.CacheDir)
		}
		if cfg.StrictCacheWrites {
			c.strictCacheWrites = true
		}
	}
}
