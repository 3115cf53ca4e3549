// Package auth implements the password gate: a shared password is exchanged
// for a signed, stateless session cookie, and content routes require a valid
// cookie before rendering.
package auth
