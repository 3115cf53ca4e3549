// Package server wires the HTTP surface of the blog: the post listing and
// detail pages behind the auth gate, the login form, and static assets.
// Templates and styles are embedded so the binary is self-contained.
package server
