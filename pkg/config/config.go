package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// DefaultBaseURL is the production envbee endpoint.
const DefaultBaseURL = "https://api.envbee.dev"

// DefaultTimeout bounds each remote attempt, connect and read combined.
const DefaultTimeout = 2 * time.Second

// Config captures the client-level configuration knobs. Credentials are not
// part of the config surface; they are constructor arguments so they never
// travel through config files.
type Config struct {
	// BaseURL overrides the production endpoint, mostly for staging setups.
	BaseURL string `mapstructure:"base_url" json:"base_url"`
	// Timeout bounds the single remote attempt each call performs.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	// CacheDir pins the fallback cache to a fixed directory. When empty the
	// per-credential user cache directory is used.
	CacheDir string `mapstructure:"cache_dir" json:"cache_dir"`
	// StrictCacheWrites aggregates bulk cache-write failures into a logged
	// CacheError instead of silently continuing.
	StrictCacheWrites bool `mapstructure:"strict_cache_writes" json:"strict_cache_writes"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder to keep smoke tests meaningful. Once cfgx is fully implemented we
// can drop the fallback.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
