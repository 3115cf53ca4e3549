// Package commands holds the blogd CLI commands.
package commands

// Globals carries flags shared by every command.
type Globals struct {
	Debug   bool
	Version string
}
