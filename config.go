package vogon

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults mirror the service's reference client: poll every 60 seconds with
// a 24-hour budget, retrieving at most 100 rows per query.
const (
	DefaultScheme       = "https"
	DefaultPort         = 9090
	DefaultPollInterval = 60 * time.Second
	DefaultQueryTimeout = 1440 * time.Minute
	DefaultMaxRows      = 100

	// Floors enforced before any network call. The service throttles
	// aggressive pollers, and sub-2-minute budgets cannot complete a
	// single poll cycle.
	MinPollInterval = 45 * time.Second
	MinQueryTimeout = 2 * time.Minute
)

// Config holds everything needed to execute queries against one Vogon
// deployment.
type Config struct {
	Host      string
	Port      int
	Scheme    string // "https" (default) or "http"
	AuthToken string // sent as the vogon-auth-token header

	PollInterval time.Duration // wait between status checks (min 45s)
	QueryTimeout time.Duration // overall job budget (min 2m)
	MaxRows      int           // rows retrieved per query

	// RaiseOnError controls whether a terminal non-success job status is
	// surfaced as a JobFailedError or as a nil result.
	RaiseOnError bool

	LogLevel string       // log level: debug, info, warn, error (default "info")
	Logger   *slog.Logger // optional; defaults to slog.Default()
}

// BaseURL returns the service root, e.g. "https://vogon.reports.mn:9090".
func (c *Config) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.Port)
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the polling parameters against the service floors.
// Violations fail before any network call.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrConfiguration("vogon host is required")
	}
	if c.QueryTimeout < MinQueryTimeout {
		return ErrConfiguration("query timeout for vogon query cannot be less than %s", MinQueryTimeout)
	}
	if c.PollInterval < MinPollInterval {
		return ErrConfiguration("poll interval for vogon query cannot be less than %s", MinPollInterval)
	}
	if c.MaxRows <= 0 {
		return ErrConfiguration("max rows must be positive, got %d", c.MaxRows)
	}
	return nil
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Scheme == "" {
		out.Scheme = DefaultScheme
	}
	if out.Port == 0 {
		out.Port = DefaultPort
	}
	if out.PollInterval == 0 {
		out.PollInterval = DefaultPollInterval
	}
	if out.QueryTimeout == 0 {
		out.QueryTimeout = DefaultQueryTimeout
	}
	if out.MaxRows == 0 {
		out.MaxRows = DefaultMaxRows
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// LoadFromEnv loads configuration from VOGON_* environment variables.
// Unset variables fall back to defaults; malformed values are errors.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:         os.Getenv("VOGON_HOST"),
		AuthToken:    os.Getenv("VOGON_AUTH_TOKEN"),
		Scheme:       os.Getenv("VOGON_SCHEME"),
		LogLevel:     os.Getenv("VOGON_LOG_LEVEL"),
		RaiseOnError: true,
	}

	if v := os.Getenv("VOGON_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, ErrConfiguration("VOGON_PORT must be an integer: %v", err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("VOGON_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrConfiguration("VOGON_POLL_INTERVAL must be a duration: %v", err)
		}
		cfg.PollInterval = d
	}
	if v := os.Getenv("VOGON_QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrConfiguration("VOGON_QUERY_TIMEOUT must be a duration: %v", err)
		}
		cfg.QueryTimeout = d
	}
	if v := os.Getenv("VOGON_MAX_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, ErrConfiguration("VOGON_MAX_ROWS must be an integer: %v", err)
		}
		cfg.MaxRows = n
	}

	return cfg.withDefaults(), nil
}

// ParseDSN parses a connection string of the form
//
//	vogon://host:port?token=...&poll_interval=90s&query_timeout=30m&max_rows=500
//
// The scheme query parameter selects http for plaintext deployments.
func ParseDSN(dsn string) (*Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, ErrConfiguration("parse dsn: %v", err)
	}
	if u.Scheme != "vogon" {
		return nil, ErrConfiguration("dsn scheme must be vogon://, got %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, ErrConfiguration("dsn host is required")
	}

	cfg := &Config{
		Host:         u.Hostname(),
		RaiseOnError: true,
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, ErrConfiguration("dsn port must be an integer: %v", err)
		}
		cfg.Port = n
	}

	q := u.Query()
	cfg.AuthToken = q.Get("token")
	cfg.Scheme = q.Get("scheme")
	if v := q.Get("poll_interval"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrConfiguration("dsn poll_interval must be a duration: %v", err)
		}
		cfg.PollInterval = d
	}
	if v := q.Get("query_timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, ErrConfiguration("dsn query_timeout must be a duration: %v", err)
		}
		cfg.QueryTimeout = d
	}
	if v := q.Get("max_rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, ErrConfiguration("dsn max_rows must be an integer: %v", err)
		}
		cfg.MaxRows = n
	}

	return cfg.withDefaults(), nil
}
