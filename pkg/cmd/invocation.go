// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is registered and
// dispatched (Discord slash, message prefix, CLI) is defined by adapters that wrap this.
package cmd

import "context"

// Invocation carries the minimal input any command runner can pass: the key the
// command was resolved under, positional arguments and an opaque payload.
// Adapters set Data to their own context (e.g. a Discord interaction or a
// terminal session).
type Invocation struct {
	Name string
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution. Permissions, options
// and transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
