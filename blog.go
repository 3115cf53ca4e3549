// Package blog assembles a password-gated personal blog: Markdown files with
// optional frontmatter become posts, a shared password is exchanged for a
// signed session cookie, and a small HTTP server renders list, detail, and
// login pages.
package blog

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Post exports the post record for consumers of the blog package.
type Post = posts.Post

// PostStore exports the content loader contract.
type PostStore = posts.Store

// SessionManager exports the session token contract.
type SessionManager = auth.SessionManager

// shutdownGrace bounds how long Run waits for in-flight requests.
const shutdownGrace = 10 * time.Second

// Module is the top level blog runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	store    *posts.Store
	gate     *auth.Gate
	server   *server.Server
}

// Option overrides module dependencies during construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
}

// WithLoggerProvider substitutes the logger provider, primarily for tests and
// host applications that already carry one.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// New validates the configuration and wires the content loader, auth gate,
// and HTTP server together. Insecure default credentials are logged as
// warnings, never rejected.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options moduleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	logger := logging.RootLogger(provider)
	for _, warning := range cfg.Warnings() {
		logger.Warn("blog.insecure_default", "warning", warning)
	}

	markdownSvc, err := markdown.NewService(markdown.Config{
		BasePath: cfg.PostsDir,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			SafeMode:   cfg.Markdown.SafeMode,
			HardWraps:  cfg.Markdown.HardWraps,
		},
		Logger: logging.MarkdownLogger(provider),
	}, nil)
	if err != nil {
		return nil, err
	}

	store, err := posts.NewStore(markdownSvc, posts.CacheConfig{
		Enabled: cfg.Cache.Enabled,
		TTL:     cfg.Cache.TTL,
	}, logging.PostsLogger(provider))
	if err != nil {
		return nil, err
	}

	sessions, err := auth.NewSessionManager(auth.SessionConfig{
		Secret: cfg.SecretKey,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}

	gate, err := auth.NewGate(cfg.Password, sessions, logging.AuthLogger(provider))
	if err != nil {
		return nil, err
	}

	srv, err := server.New(server.Config{
		Addr:  cfg.Addr,
		Title: cfg.Title,
	}, store, gate, logging.ServerLogger(provider))
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		store:    store,
		gate:     gate,
		server:   srv,
	}, nil
}

// Posts returns the configured post store.
func (m *Module) Posts() *posts.Store {
	return m.store
}

// Server returns the configured HTTP server.
func (m *Module) Server() *server.Server {
	return m.server
}

// Warnings reports insecure defaults detected in the active configuration.
func (m *Module) Warnings() []string {
	return m.cfg.Warnings()
}

// Run serves HTTP until the context is cancelled, then drains in-flight
// requests before returning.
func (m *Module) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.server.Listen()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	m.logger.Info("blog.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
