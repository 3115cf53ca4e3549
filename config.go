package blog

import (
	"errors"
	"strings"
	"time"
)

// Defaults mirror the development out-of-box experience. Both values are
// insecure and must be overridden for anything reachable from the network;
// New logs a warning whenever either is still in use.
const (
	DefaultPassword  = "secret"
	DefaultSecretKey = "your-secret-key-change-in-production"
)

var (
	ErrPasswordRequired     = errors.New("blog config: password is required")
	ErrSecretKeyRequired    = errors.New("blog config: secret key is required")
	ErrPostsDirRequired     = errors.New("blog config: posts directory is required")
	ErrAddrRequired         = errors.New("blog config: listen address is required")
	ErrSessionTTLInvalid    = errors.New("blog config: session TTL must be zero or positive")
	ErrCacheTTLInvalid      = errors.New("blog config: cache TTL must be zero or positive")
	ErrLoggingLevelInvalid  = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")
)

// Config aggregates every runtime setting for the blog module. Values are set
// once at startup and never mutated afterwards.
type Config struct {
	// Password is the shared password guarding every content route.
	Password string
	// SecretKey signs session cookies.
	SecretKey string
	// PostsDir is the directory scanned for *.md files.
	PostsDir string
	// Addr is the HTTP listen address.
	Addr string
	// Title is shown on rendered pages.
	Title string
	// SessionTTL bounds session cookie validity. Zero selects the default.
	SessionTTL time.Duration
	Cache      CacheConfig
	Markdown   MarkdownConfig
	Logging    LoggingConfig
}

// CacheConfig toggles the post listing cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MarkdownConfig tunes the goldmark renderer.
type MarkdownConfig struct {
	// Extensions selects goldmark extensions by name; empty means the
	// GFM-flavoured defaults.
	Extensions []string
	// SafeMode suppresses raw HTML embedded in post bodies.
	SafeMode  bool
	HardWraps bool
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the development configuration.
func DefaultConfig() Config {
	return Config{
		Password:   DefaultPassword,
		SecretKey:  DefaultSecretKey,
		PostsDir:   "./posts",
		Addr:       ":8000",
		Title:      "Private Blog",
		SessionTTL: 24 * time.Hour,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks structural requirements before the module boots.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Password) == "" {
		return ErrPasswordRequired
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return ErrSecretKeyRequired
	}
	if strings.TrimSpace(c.PostsDir) == "" {
		return ErrPostsDirRequired
	}
	if strings.TrimSpace(c.Addr) == "" {
		return ErrAddrRequired
	}
	if c.SessionTTL < 0 {
		return ErrSessionTTLInvalid
	}
	if c.Cache.TTL < 0 {
		return ErrCacheTTLInvalid
	}
	if !validLoggingLevel(c.Logging.Level) {
		return ErrLoggingLevelInvalid
	}
	if !validLoggingFormat(c.Logging.Format) {
		return ErrLoggingFormatInvalid
	}
	return nil
}

// Warnings reports insecure-but-tolerated settings, one message per finding.
func (c Config) Warnings() []string {
	var out []string
	if c.Password == DefaultPassword {
		out = append(out, "using the default password; set BLOG_PASSWORD")
	}
	if c.SecretKey == DefaultSecretKey {
		out = append(out, "using the default session secret; set SECRET_KEY")
	}
	return out
}

func validLoggingLevel(level string) bool {
	switch level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func validLoggingFormat(format string) bool {
	switch format {
	case "", "json", "console", "pretty":
		return true
	}
	return false
}
