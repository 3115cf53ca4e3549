package commands

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	blog "github.com/goliatone/go-blog"
)

// ServeCmd starts the HTTP server after loading every post from disk.
type ServeCmd struct {
	Addr     string `help:"HTTP listen address." default:":8000" env:"BLOG_ADDR"`
	PostsDir string `help:"Directory scanned for Markdown posts." default:"./posts" env:"BLOG_POSTS_DIR"`
	Title    string `help:"Site title shown on rendered pages." default:"Private Blog" env:"BLOG_TITLE"`

	Password   string        `help:"Shared password guarding content routes." default:"secret" env:"BLOG_PASSWORD"`
	SecretKey  string        `help:"Secret used to sign session cookies." default:"your-secret-key-change-in-production" env:"SECRET_KEY"`
	SessionTTL time.Duration `help:"How long a login session stays valid." default:"24h" env:"BLOG_SESSION_TTL"`

	CacheTTL time.Duration `help:"Post listing cache TTL; zero disables the cache." default:"0s" env:"BLOG_CACHE_TTL"`
	SafeMode bool          `help:"Strip raw HTML embedded in post bodies." env:"BLOG_SAFE_MODE"`

	LogLevel  string `help:"Log level." default:"info" enum:"trace,debug,info,warn,error" env:"BLOG_LOG_LEVEL"`
	LogFormat string `help:"Log output format." default:"console" enum:"console,json,pretty" env:"BLOG_LOG_FORMAT"`
}

// Validate runs before Run; kong surfaces the error and exits non-zero.
func (c *ServeCmd) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.serve.addr_required", "listen address is required")
			}
			return nil
		})),
		validation.Field(&c.PostsDir, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.serve.posts_dir_required", "posts directory is required")
			}
			return nil
		})),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.SecretKey, validation.Required),
		validation.Field(&c.SessionTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.CacheTTL, validation.Min(time.Duration(0))),
	)
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg := blog.DefaultConfig()
	cfg.Addr = c.Addr
	cfg.PostsDir = c.PostsDir
	cfg.Title = c.Title
	cfg.Password = c.Password
	cfg.SecretKey = c.SecretKey
	cfg.SessionTTL = c.SessionTTL
	cfg.Cache.Enabled = c.CacheTTL > 0
	cfg.Cache.TTL = c.CacheTTL
	cfg.Markdown.SafeMode = c.SafeMode
	cfg.Logging.Level = c.LogLevel
	cfg.Logging.Format = c.LogFormat
	if globals.Debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.AddSource = true
	}

	module, err := blog.New(cfg)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return module.Run(runCtx)
}
