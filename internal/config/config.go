package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	envPrefix      = "ESSE_WEB_"
	defaultEnvFile = ".env"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig    `envPrefix:"SERVER_"`
	CMS       CMSConfig       `envPrefix:"CMS_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Site      SiteConfig      `envPrefix:"SITE_"`
	Log       LogConfig       `envPrefix:"LOG_"`
	Analytics AnalyticsConfig `envPrefix:"ANALYTICS_"`
}

// ServerConfig configures the HTTP listener and asset locations.
type ServerConfig struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	Env          string        `env:"ENV" envDefault:"dev"`
	Dev          bool          `env:"DEV" envDefault:"false"`
	TemplatesDir string        `env:"TEMPLATES_DIR" envDefault:"templates"`
	PublicDir    string        `env:"PUBLIC_DIR" envDefault:"public"`
	LocalesDir   string        `env:"LOCALES_DIR" envDefault:"locales"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

// CMSConfig points the content client at the headless CMS.
type CMSConfig struct {
	URL      string        `env:"URL" envDefault:"http://localhost:1337"`
	MediaURL string        `env:"MEDIA_URL"`
	Token    string        `env:"TOKEN"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// CacheConfig enables response caching for CMS reads. A zero TTL disables it.
type CacheConfig struct {
	TTL      time.Duration `env:"TTL" envDefault:"0s"`
	RedisURL string        `env:"REDIS_URL"`
}

// SiteConfig holds public site settings.
type SiteConfig struct {
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	File    string `env:"FILE" envDefault:"content/site.yaml"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

// AnalyticsConfig carries tracking identifiers rendered into the layout.
type AnalyticsConfig struct {
	GA4MeasurementID string `env:"GA_MEASUREMENT_ID"`
}

// ValidationError reports invalid configuration fields.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid fields: %s", strings.Join(e.fields, ", "))
}

// Fields returns the offending field names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile       string
	overrides     map[string]string
	withSystemEnv bool
}

// WithEnvFile reads additional values from a dotenv file. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap overrides values from the environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.withSystemEnv = false
	}
}

// Load resolves configuration from the dotenv file, the process environment and
// explicit overrides, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:       defaultEnvFile,
		overrides:     map[string]string{},
		withSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	values := map[string]string{}
	if options.envFile != "" {
		fileValues, err := godotenv.Read(options.envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", options.envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	if options.withSystemEnv {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				values[k] = v
			}
		}
	}
	for k, v := range options.overrides {
		values[k] = v
	}

	// Cloud Run injects PORT without our prefix.
	if _, ok := values[envPrefix+"SERVER_ADDR"]; !ok {
		if port := strings.TrimSpace(values["PORT"]); port != "" {
			values[envPrefix+"SERVER_ADDR"] = ":" + port
		}
	}

	var cfg Config
	if err := env.Parse(&cfg, env.Options{Environment: values, Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	cfg.CMS.URL = strings.TrimRight(strings.TrimSpace(cfg.CMS.URL), "/")
	cfg.CMS.MediaURL = strings.TrimRight(strings.TrimSpace(cfg.CMS.MediaURL), "/")
	if cfg.CMS.MediaURL == "" {
		cfg.CMS.MediaURL = cfg.CMS.URL
	}
	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var fields []string
	if !isHTTPURL(cfg.CMS.URL) {
		fields = append(fields, "CMS_URL")
	}
	if !isHTTPURL(cfg.CMS.MediaURL) {
		fields = append(fields, "CMS_MEDIA_URL")
	}
	if !isHTTPURL(cfg.Site.BaseURL) {
		fields = append(fields, "SITE_BASE_URL")
	}
	if cfg.CMS.Timeout <= 0 {
		fields = append(fields, "CMS_TIMEOUT")
	}
	if cfg.Cache.TTL < 0 {
		fields = append(fields, "CACHE_TTL")
	}
	if cfg.Cache.RedisURL != "" {
		if _, err := url.Parse(cfg.Cache.RedisURL); err != nil {
			fields = append(fields, "CACHE_REDIS_URL")
		}
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		fields = append(fields, "LOG_LEVEL")
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	return &ValidationError{fields: fields}
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
