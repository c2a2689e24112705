package command

import (
	"fmt"
	"runtime/debug"
)

// Phases reported in HandlerError besides the invocation kinds.
const (
	PhaseInit         = "init"
	PhaseAutocomplete = "autocomplete"
)

// HandlerError is a failure raised by a command's own code. Phase is
// PhaseInit, PhaseAutocomplete or the invocation kind ("text", "structured").
type HandlerError struct {
	Command string
	Phase   string
	Err     error
	// Panic and Stack are set when the command panicked.
	Panic any
	Stack []byte
}

func (e *HandlerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s (%s): panic recovered: %v", e.Command, e.Phase, e.Panic)
	}
	return fmt.Sprintf("%s (%s): %v", e.Command, e.Phase, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Panicked reports whether the command panicked rather than returning an error.
func (e *HandlerError) Panicked() bool { return e.Panic != nil }

// Safely runs fn on behalf of command name. A returned error or a panic comes
// back as *HandlerError so one command cannot take the process down.
func Safely(name, phase string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		he := &HandlerError{Command: name, Phase: phase, Panic: r, Stack: debug.Stack()}
		if perr, ok := r.(error); ok {
			he.Err = perr
		}
		err = he
	}()

	if ferr := fn(); ferr != nil {
		return &HandlerError{Command: name, Phase: phase, Err: ferr}
	}
	return nil
}
