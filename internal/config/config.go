// Package config loads browser binding session settings from a YAML file
// and CMIS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Session holds the settings of one browser binding session.
type Session struct {
	// Browser binding service URL. Required.
	BrowserURL string

	// Credentials. A token selects bearer auth, a user basic auth.
	User     string
	Password string
	Token    string

	// Succinct asks the server for succinct properties (default true).
	Succinct bool

	// Transport
	Timeout    time.Duration
	MaxRetries int
	RateLimit  float64
	RateBurst  int

	// Type definition cache
	TypeCacheSize int
	TypeCacheTTL  time.Duration
	// Optional Postgres store shared across sessions.
	TypeStoreDSN    string
	TypeStoreDriver string

	LogLevel  slog.Level
	LogFormat string
}

// Default returns a session with every optional setting at its default.
func Default() *Session {
	return &Session{
		Succinct:        true,
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RateLimit:       10,
		RateBurst:       5,
		TypeCacheSize:   500,
		TypeCacheTTL:    time.Hour,
		TypeStoreDriver: "postgres",
		LogLevel:        slog.LevelInfo,
		LogFormat:       "text",
	}
}

// fileSession is the YAML layout. Durations are Go duration strings.
type fileSession struct {
	BrowserURL string `yaml:"browserUrl"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Token      string `yaml:"token"`
	Succinct   *bool  `yaml:"succinct"`
	Transport  struct {
		Timeout    string   `yaml:"timeout"`
		MaxRetries *int     `yaml:"maxRetries"`
		RateLimit  *float64 `yaml:"rateLimit"`
		RateBurst  *int     `yaml:"rateBurst"`
	} `yaml:"transport"`
	TypeCache struct {
		Size        *int   `yaml:"size"`
		TTL         string `yaml:"ttl"`
		StoreDSN    string `yaml:"storeDsn"`
		StoreDriver string `yaml:"storeDriver"`
	} `yaml:"typeCache"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads the session from the environment.
func Load() (*Session, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the session from a YAML file. Environment variables
// override file values.
func LoadFile(path string) (*Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw fileSession
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Default()
	if err := cfg.applyFile(&raw); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Session) applyFile(raw *fileSession) error {
	setString(&cfg.BrowserURL, raw.BrowserURL)
	setString(&cfg.User, raw.User)
	setString(&cfg.Password, raw.Password)
	setString(&cfg.Token, raw.Token)
	if raw.Succinct != nil {
		cfg.Succinct = *raw.Succinct
	}

	if raw.Transport.Timeout != "" {
		d, err := time.ParseDuration(raw.Transport.Timeout)
		if err != nil {
			return fmt.Errorf("transport.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if raw.Transport.MaxRetries != nil {
		cfg.MaxRetries = *raw.Transport.MaxRetries
	}
	if raw.Transport.RateLimit != nil {
		cfg.RateLimit = *raw.Transport.RateLimit
	}
	if raw.Transport.RateBurst != nil {
		cfg.RateBurst = *raw.Transport.RateBurst
	}

	if raw.TypeCache.Size != nil {
		cfg.TypeCacheSize = *raw.TypeCache.Size
	}
	if raw.TypeCache.TTL != "" {
		d, err := time.ParseDuration(raw.TypeCache.TTL)
		if err != nil {
			return fmt.Errorf("typeCache.ttl: %w", err)
		}
		cfg.TypeCacheTTL = d
	}
	setString(&cfg.TypeStoreDSN, raw.TypeCache.StoreDSN)
	setString(&cfg.TypeStoreDriver, raw.TypeCache.StoreDriver)

	if raw.Log.Level != "" {
		level, err := parseLogLevel(raw.Log.Level)
		if err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
		cfg.LogLevel = level
	}
	setString(&cfg.LogFormat, raw.Log.Format)
	return nil
}

func (cfg *Session) applyEnv() error {
	var err error

	cfg.BrowserURL = getEnvDefault("CMIS_BROWSER_URL", cfg.BrowserURL)
	cfg.User = getEnvDefault("CMIS_USER", cfg.User)
	cfg.Password = getEnvDefault("CMIS_PASSWORD", cfg.Password)
	cfg.Token = getEnvDefault("CMIS_TOKEN", cfg.Token)

	if cfg.Succinct, err = getEnvBool("CMIS_SUCCINCT", cfg.Succinct); err != nil {
		return fmt.Errorf("CMIS_SUCCINCT: %w", err)
	}
	if cfg.Timeout, err = getEnvDuration("CMIS_TIMEOUT", cfg.Timeout); err != nil {
		return fmt.Errorf("CMIS_TIMEOUT: %w", err)
	}
	if cfg.MaxRetries, err = getEnvInt("CMIS_MAX_RETRIES", cfg.MaxRetries); err != nil {
		return fmt.Errorf("CMIS_MAX_RETRIES: %w", err)
	}
	if cfg.RateLimit, err = getEnvFloat("CMIS_RATE_LIMIT", cfg.RateLimit); err != nil {
		return fmt.Errorf("CMIS_RATE_LIMIT: %w", err)
	}
	if cfg.RateBurst, err = getEnvInt("CMIS_RATE_BURST", cfg.RateBurst); err != nil {
		return fmt.Errorf("CMIS_RATE_BURST: %w", err)
	}

	if cfg.TypeCacheSize, err = getEnvInt("CMIS_TYPE_CACHE_SIZE", cfg.TypeCacheSize); err != nil {
		return fmt.Errorf("CMIS_TYPE_CACHE_SIZE: %w", err)
	}
	if cfg.TypeCacheTTL, err = getEnvDuration("CMIS_TYPE_CACHE_TTL", cfg.TypeCacheTTL); err != nil {
		return fmt.Errorf("CMIS_TYPE_CACHE_TTL: %w", err)
	}
	cfg.TypeStoreDSN = getEnvDefault("CMIS_TYPE_STORE_DSN", cfg.TypeStoreDSN)
	cfg.TypeStoreDriver = getEnvDefault("CMIS_TYPE_STORE_DRIVER", cfg.TypeStoreDriver)

	if val := os.Getenv("CMIS_LOG_LEVEL"); val != "" {
		if cfg.LogLevel, err = parseLogLevel(val); err != nil {
			return fmt.Errorf("CMIS_LOG_LEVEL: %w", err)
		}
	}
	cfg.LogFormat = getEnvDefault("CMIS_LOG_FORMAT", cfg.LogFormat)
	return nil
}

// Validate checks required settings and ranges.
func (cfg *Session) Validate() error {
	if cfg.BrowserURL == "" {
		return errors.New("browser URL is required (CMIS_BROWSER_URL)")
	}
	if !strings.HasPrefix(cfg.BrowserURL, "http://") && !strings.HasPrefix(cfg.BrowserURL, "https://") {
		return fmt.Errorf("browser URL %q must be http or https", cfg.BrowserURL)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", cfg.Timeout)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0, got %d", cfg.MaxRetries)
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return fmt.Errorf("rate limit and burst must be > 0, got %g/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.TypeCacheSize <= 0 {
		return fmt.Errorf("type cache size must be > 0, got %d", cfg.TypeCacheSize)
	}
	if cfg.TypeCacheTTL < 0 {
		return fmt.Errorf("type cache TTL must be >= 0, got %s", cfg.TypeCacheTTL)
	}
	switch cfg.TypeStoreDriver {
	case "postgres", "pgx":
	default:
		return fmt.Errorf("type store driver %q, allowed: postgres, pgx", cfg.TypeStoreDriver)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("log format %q, allowed: json, text", cfg.LogFormat)
	}
	return nil
}

// SetupLogger configures the default slog logger from the session. Logs go
// to stderr so command output stays clean.
func SetupLogger(cfg *Session) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func getEnvDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", val)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", val)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use Go format: 30s, 1h, 15m)", val)
	}
	return d, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (allowed: true, false, 1, 0)", val)
	}
	return b, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid level %q, allowed: debug, info, warn, error", level)
	}
}
