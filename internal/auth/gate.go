package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// LoginPath is where unauthenticated requests are redirected.
const LoginPath = "/login"

// Gate decides whether a request carries an authenticated session and
// exchanges the shared password for one.
type Gate struct {
	password []byte
	sessions *SessionManager
	logger   interfaces.Logger
}

// NewGate constructs a Gate over the configured password and session manager.
func NewGate(password string, sessions *SessionManager, logger interfaces.Logger) (*Gate, error) {
	if strings.TrimSpace(password) == "" {
		return nil, ErrPasswordRequired
	}
	if sessions == nil {
		return nil, ErrSecretRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Gate{
		password: []byte(password),
		sessions: sessions,
		logger:   logger,
	}, nil
}

// CheckPassword reports whether the submitted password matches the configured
// one. The comparison is constant time; there is no lockout or rate limiting.
func (g *Gate) CheckPassword(candidate string) bool {
	return subtle.ConstantTimeCompare(g.password, []byte(candidate)) == 1
}

// IsAuthenticated reports whether the request carries a valid session cookie.
func (g *Gate) IsAuthenticated(c *fiber.Ctx) bool {
	token := c.Cookies(g.sessions.CookieName())
	if token == "" {
		return false
	}
	if err := g.sessions.Verify(token); err != nil {
		g.logger.Debug("auth.session_rejected", "path", c.Path(), "error", err)
		return false
	}
	return true
}

// RequireAuth is the middleware protecting content routes: requests without a
// valid session are redirected to the login page.
func (g *Gate) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.IsAuthenticated(c) {
			return c.Redirect(LoginPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// IssueCookie mints a session token and attaches it to the response.
func (g *Gate) IssueCookie(c *fiber.Ctx) error {
	token, expires, err := g.sessions.Issue(time.Now())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     g.sessions.CookieName(),
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie, ending the session.
func (g *Gate) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     g.sessions.CookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
