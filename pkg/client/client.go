// Package client implements the envbee API client: authenticated variable
// retrieval with a local read-through cache that serves as fallback when the
// remote service is unreachable. Each call makes exactly one remote attempt;
// on failure it answers from the cache instead of retrying.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	bunstore "github.com/goliatone/go-envbee/internal/storage/bun"
	"github.com/goliatone/go-envbee/pkg/auth"
	"github.com/goliatone/go-envbee/pkg/cachedir"
	"github.com/goliatone/go-envbee/pkg/config"
	"github.com/goliatone/go-envbee/pkg/interfaces/cache"
	"github.com/goliatone/go-envbee/pkg/interfaces/logger"
	"github.com/goliatone/go-envbee/pkg/masking"
)

const (
	variableValuePath = "/variables-values/"
	variablesPath     = "/variables"
)

// Variable is a named configuration value.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListParams paginate GetVariables. Zero values are omitted from the request.
type ListParams struct {
	Offset int
	Limit  int
}

// Client retrieves variables from the envbee API. The cache is never the
// source of truth: entries are written only after a successful remote fetch
// and read only when a remote fetch fails.
type Client struct {
	apiKey            string
	auth              *auth.Authenticator
	baseURL           string
	timeout           time.Duration
	http              *http.Client
	log               logger.Logger
	cache             cache.Store
	ownsCache         bool
	resolveCacheDir   cachedir.Resolver
	now               func() time.Time
	strictCacheWrites bool
}

// New builds a client for the given credentials. Without WithCache the
// fallback cache is a SQLite database under the per-credential user cache
// directory; if that store cannot be opened the client stays functional with
// caching disabled.
func New(apiKey string, apiSecret []byte, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("envbee: api key is required")
	}
	if len(apiSecret) == 0 {
		return nil, errors.New("envbee: api secret is required")
	}

	c := &Client{
		apiKey:          apiKey,
		baseURL:         config.DefaultBaseURL,
		timeout:         config.DefaultTimeout,
		http:            &http.Client{},
		log:             &logger.Nop{},
		resolveCacheDir: cachedir.Default,
	}
	for _, opt := range opts {
		opt(c)
	}

	authOpts := []auth.Option{}
	if c.now != nil {
		authOpts = append(authOpts, auth.WithClock(c.now))
	}
	c.auth = auth.New(apiSecret, authOpts...)

	if c.cache == nil {
		c.cache, c.ownsCache = c.openCache()
	}

	c.log.Debug("envbee client initialized",
		logger.F("base_url", c.baseURL),
		logger.F("api_key", masking.APIKey(apiKey)))
	return c, nil
}

// openCache resolves the per-credential namespace and opens the persistent
// store. Cache failures are never fatal: on error the client runs without
// fallback data.
func (c *Client) openCache() (cache.Store, bool) {
	dir, err := c.resolveCacheDir(c.apiKey)
	if err != nil {
		c.log.Warn("cache disabled: resolve cache dir",
			logger.F("error", (&CacheError{Message: err.Error()}).Error()))
		return &cache.Nop{}, false
	}
	store, err := bunstore.Open(dir)
	if err != nil {
		c.log.Warn("cache disabled: open store",
			logger.F("error", (&CacheError{Message: err.Error()}).Error()))
		return &cache.Nop{}, false
	}
	return store, true
}

// Close releases the cache store when the client opened it itself. Injected
// stores stay open; their lifecycle belongs to the caller.
func (c *Client) Close() error {
	if c.ownsCache && c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// GetVariable retrieves a single variable by name. On remote failure it
// answers from the fallback cache; a miss yields an empty value, not an
// error. Only signing failures and invalid input propagate.
func (c *Client) GetVariable(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("envbee: variable name is required")
	}
	path := variableValuePath + name
	log := c.log.With(
		logger.F("request_id", uuid.NewString()),
		logger.F("variable", name))

	header, err := c.auth.Sign(path)
	if err != nil {
		return "", err
	}

	body, err := c.fetch(ctx, path, header)
	if err == nil {
		var payload struct {
			Value string `json:"value"`
		}
		if err = json.Unmarshal(body, &payload); err == nil {
			c.writeCache(ctx, log, name, payload.Value)
			return payload.Value, nil
		}
		err = fmt.Errorf("decode response: %w", err)
	}

	c.logRemoteFailure(log, err)
	return c.fallbackValue(ctx, log, name), nil
}

// GetVariables retrieves a page of variables. On success every entry is
// written through to the cache and the fetched list is returned as-is; on
// remote failure the whole cache content is returned in enumeration order.
func (c *Client) GetVariables(ctx context.Context, params ListParams) ([]Variable, error) {
	query := map[string]string{}
	if params.Offset > 0 {
		query["offset"] = strconv.Itoa(params.Offset)
	}
	if params.Limit > 0 {
		query["limit"] = strconv.Itoa(params.Limit)
	}
	path, err := addQueryParams(variablesPath, query)
	if err != nil {
		return nil, err
	}
	log := c.log.With(
		logger.F("request_id", uuid.NewString()),
		logger.F("path", path))

	header, err := c.auth.Sign(path)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, path, header)
	if err == nil {
		var payload struct {
			Data []Variable `json:"data"`
		}
		if err = json.Unmarshal(body, &payload); err == nil {
			c.writeCacheBulk(ctx, log, payload.Data)
			return payload.Data, nil
		}
		err = fmt.Errorf("decode response: %w", err)
	}

	c.logRemoteFailure(log, err)
	return c.fallbackList(ctx, log), nil
}

// fetch performs the single authenticated remote attempt and classifies
// failures into the checked transport error kinds.
func (c *Client) fetch(ctx context.Context, path, authHeader string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &RequestTimeoutError{
				Message: fmt.Sprintf("request to %s timed out after %s", path, c.timeout),
			}
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func (c *Client) logRemoteFailure(log logger.Logger, err error) {
	if isExpectedRemoteFailure(err) {
		log.Warn("remote fetch failed, falling back to cache", logger.F("error", err.Error()))
		return
	}
	log.Error("unexpected remote failure, falling back to cache", logger.F("error", err.Error()))
}

// writeCache persists one entry best-effort. Failures are logged, never
// propagated.
func (c *Client) writeCache(ctx context.Context, log logger.Logger, name, value string) {
	if err := c.cache.Set(ctx, name, value); err != nil {
		log.Warn("cache write failed",
			logger.F("error", (&CacheError{Message: err.Error()}).Error()))
	}
}

// writeCacheBulk persists fetched entries, continuing past individual write
// failures. With strict cache writes enabled the failures are aggregated into
// one logged CacheError; they still do not reach the caller.
func (c *Client) writeCacheBulk(ctx context.Context, log logger.Logger, vars []Variable) {
	var failed []string
	for _, v := range vars {
		if err := c.cache.Set(ctx, v.Name, v.Value); err != nil {
			if c.strictCacheWrites {
				failed = append(failed, v.Name)
			} else {
				log.Debug("cache write failed", logger.F("variable", v.Name), logger.F("error", err.Error()))
			}
		}
	}
	if len(failed) > 0 {
		cerr := &CacheError{Message: fmt.Sprintf("failed to cache %d of %d variables: %s",
			len(failed), len(vars), strings.Join(failed, ", "))}
		log.Warn("bulk cache write incomplete", logger.F("error", cerr.Error()))
	}
}

func (c *Client) fallbackValue(ctx context.Context, log logger.Logger, name string) string {
	value, ok, err := c.cache.Get(ctx, name)
	if err != nil {
		log.Error("cache read failed",
			logger.F("error", (&CacheError{Message: err.Error()}).Error()))
		return ""
	}
	if !ok {
		log.Warn("variable missing from fallback cache")
		return ""
	}
	log.Debug("served variable from fallback cache")
	return value
}

func (c *Client) fallbackList(ctx context.Context, log logger.Logger) []Variable {
	keys, err := c.cache.Keys(ctx)
	if err != nil {
		log.Error("cache enumeration failed",
			logger.F("error", (&CacheError{Message: err.Error()}).Error()))
		return nil
	}
	vars := make([]Variable, 0, len(keys))
	for _, key := range keys {
		value, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Error("cache read failed", logger.F("variable", key),
				logger.F("error", (&CacheError{Message: err.Error()}).Error()))
			continue
		}
		if !ok {
			continue
		}
		vars = append(vars, Variable{Name: key, Value: value})
	}
	log.Debug("served variables from fallback cache", logger.F("count", len(vars)))
	return vars
}
