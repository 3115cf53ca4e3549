package auth

import "errors"

var (
	ErrSecretRequired   = errors.New("auth: session secret is required")
	ErrPasswordRequired = errors.New("auth: blog password is required")
	ErrSessionInvalid   = errors.New("auth: session token is invalid")
)
