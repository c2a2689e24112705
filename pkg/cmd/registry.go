package cmd

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrConflict is returned when a name or alias is already taken.
var ErrConflict = errors.New("name already registered")

// Registry stores commands by name and alias. It does not perform dispatch; each
// adapter looks up commands and invokes them with its own context.
//
// Aliases are extra keys pointing at the same Command value, never copies.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds c under its name and every alias. When any key is already taken
// nothing is added and the error wraps ErrConflict.
func (r *Registry) Register(c Command, aliases ...string) error {
	keys := append([]string{c.Name()}, aliases...)

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%q listed twice: %w", k, ErrConflict)
		}
		seen[k] = struct{}{}
		if prev, taken := r.commands[k]; taken {
			return fmt.Errorf("%q is taken by %q: %w", k, prev.Name(), ErrConflict)
		}
	}
	for _, k := range keys {
		r.commands[k] = c
	}
	return nil
}

// Get returns the command registered under name or alias, or nil.
func (r *Registry) Get(name string) Command {
	c, _ := r.Lookup(name)
	return c
}

// Lookup returns the command registered under name or alias.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[name]
	return c, ok
}

// Delete evicts a key. Deleting a primary name also evicts its aliases so no
// alias outlives the command it points at. Reports whether anything was removed.
func (r *Registry) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.commands[name]
	if !ok {
		return false
	}
	if c.Name() != name {
		delete(r.commands, name)
		return true
	}
	for k, v := range r.commands {
		if v.Name() == name {
			delete(r.commands, k)
		}
	}
	return true
}

// Commands returns the distinct registered commands (aliases excluded), sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands))
	for k, c := range r.commands {
		if k == c.Name() {
			list = append(list, c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Aliases returns the alias keys of the command registered under name, sorted.
func (r *Registry) Aliases(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for k, c := range r.commands {
		if c.Name() == name && k != name {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct commands.
func (r *Registry) Len() int {
	return len(r.Commands())
}
