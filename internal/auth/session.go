package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultCookieName is the cookie that carries the session token.
const DefaultCookieName = "blog_session"

// DefaultTTL bounds how long an issued session stays valid.
const DefaultTTL = 24 * time.Hour

const tokenIssuer = "go-blog"

// SessionConfig captures the signing parameters for session tokens.
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// SessionManager mints and verifies stateless session tokens. Tokens are
// HS256-signed JWTs; a session is valid iff its signature verifies against
// the configured secret and it has not expired.
type SessionManager struct {
	cfg SessionConfig
}

// NewSessionManager validates the configuration and returns a manager.
func NewSessionManager(cfg SessionConfig) (*SessionManager, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &SessionManager{cfg: cfg}, nil
}

// CookieName returns the configured session cookie name.
func (m *SessionManager) CookieName() string {
	return m.cfg.CookieName
}

// Issue mints a signed session token anchored at now, returning the token and
// its expiry.
func (m *SessionManager) Issue(now time.Time) (string, time.Time, error) {
	expires := now.Add(m.cfg.TTL)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "authenticated",
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign session token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks the token signature, issuer, and expiry. Any failure is
// reported as ErrSessionInvalid so callers treat every bad token the same way.
func (m *SessionManager) Verify(tokenStr string) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if !parsed.Valid {
		return ErrSessionInvalid
	}
	return nil
}
