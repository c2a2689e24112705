package cmd

import "context"

// Middleware decorates a command (permission check, guild guard, logging).
// The decorated value is still a Command.
type Middleware func(Command) Command

// Apply decorates c with mws in order; the last one runs first.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Unwrappable is implemented by decorated commands so callers can reach the
// command underneath, e.g. to find its options or autocomplete provider.
type Unwrappable interface {
	Command
	Unwrap() Command
}

// Layer is one middleware layer around a command. Name and Description
// always come from the inner command.
type Layer struct {
	Inner Command
	// Label names the layer in logs, e.g. "permissions" or "log".
	Label   string
	RunFunc func(ctx context.Context, inv *Invocation) error
}

func (l *Layer) Name() string        { return l.Inner.Name() }
func (l *Layer) Description() string { return l.Inner.Description() }
func (l *Layer) Unwrap() Command     { return l.Inner }

func (l *Layer) Run(ctx context.Context, inv *Invocation) error {
	if l.RunFunc == nil {
		return l.Inner.Run(ctx, inv)
	}
	return l.RunFunc(ctx, inv)
}

// Wrap puts a labelled layer around c that runs run instead of c.Run.
func Wrap(c Command, label string, run func(ctx context.Context, inv *Invocation) error) Command {
	return &Layer{Inner: c, Label: label, RunFunc: run}
}

// Root returns the command underneath every layer.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrappable)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}

// Layers lists the labels of the layers around c, outermost first.
// Unlabelled wrappers are skipped.
func Layers(c Command) []string {
	var out []string
	for {
		if l, ok := c.(*Layer); ok && l.Label != "" {
			out = append(out, l.Label)
		}
		u, ok := c.(Unwrappable)
		if !ok {
			return out
		}
		c = u.Unwrap()
	}
}
