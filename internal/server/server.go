package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config carries the server-level settings.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string
	// Title is shown in page headers and the login form.
	Title string
}

// Server hosts the blog's HTTP surface on a fiber app.
type Server struct {
	cfg    Config
	app    *fiber.App
	store  *posts.Store
	gate   *auth.Gate
	logger interfaces.Logger
}

// New builds the fiber application, loading the embedded templates eagerly so
// a broken or missing view fails at startup rather than on first render.
func New(cfg Config, store *posts.Store, gate *auth.Gate, logger interfaces.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("server: post store is required")
	}
	if gate == nil {
		return nil, errors.New("server: auth gate is required")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":8000"
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "Private Blog"
	}

	views, err := viewsRoot()
	if err != nil {
		return nil, fmt.Errorf("server: views filesystem: %w", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("server: load templates: %w", err)
	}

	srv := &Server{
		cfg:    cfg,
		store:  store,
		gate:   gate,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.Title,
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          srv.errorHandler,
	})
	srv.app = app

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) registerRoutes() {
	s.app.Use(s.annotateRequest())

	static, err := staticRoot()
	if err == nil {
		s.app.Use("/static", filesystem.New(filesystem.Config{
			Root: http.FS(static),
		}))
	}

	s.app.Get("/login", s.handleLoginPage)
	s.app.Post("/login", s.handleLoginSubmit)
	s.app.Get("/logout", s.handleLogout)

	s.app.Get("/", s.gate.RequireAuth(), s.handleIndex)
	s.app.Get("/post/:slug", s.gate.RequireAuth(), s.handlePost)
}

// annotateRequest threads request metadata into the context used by service
// loggers and emits one line per request.
func (s *Server) annotateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		c.SetUserContext(logging.ContextWithFields(c.UserContext(), map[string]any{
			"method": c.Method(),
			"path":   c.Path(),
		}))

		err := c.Next()

		s.requestLogger(c).Debug("server.request",
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// requestLogger scopes the server logger to the current request so annotated
// context fields ride along on every entry.
func (s *Server) requestLogger(c *fiber.Ctx) interfaces.Logger {
	return s.logger.WithContext(c.UserContext())
}

// errorHandler renders the error view for every failure surfaced by a route.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		s.requestLogger(c).Error("server.request_failed", "error", err)
	}

	return c.Status(code).Render("error", fiber.Map{
		"Title":   s.cfg.Title,
		"Code":    code,
		"Message": message,
	})
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen() error {
	s.logger.Info("server.listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
