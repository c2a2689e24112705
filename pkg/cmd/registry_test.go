package cmd

import (
	"context"
	"errors"
	"testing"
)

type stubCommand struct {
	name string
	runs int
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub " + s.name }
func (s *stubCommand) Run(context.Context, *Invocation) error {
	s.runs++
	return nil
}

func TestRegistryAliasesShareCommand(t *testing.T) {
	reg := NewRegistry()
	bazaar := &stubCommand{name: "bazaar"}
	if err := reg.Register(bazaar, "bz"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if reg.Get("bz") != reg.Get("bazaar") {
		t.Fatal("alias must resolve to the same command value")
	}
	if got := reg.Len(); got != 1 {
		t.Fatalf("Len = %d, want 1", got)
	}
	if got := reg.Aliases("bazaar"); len(got) != 1 || got[0] != "bz" {
		t.Fatalf("Aliases = %v, want [bz]", got)
	}
}

func TestRegistryRejectsConflicts(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		aliases []string
	}{
		{name: "duplicate primary name", cmd: "ping"},
		{name: "alias collides with existing name", cmd: "pong", aliases: []string{"ping"}},
		{name: "name collides with existing alias", cmd: "p"},
		{name: "alias repeats own name", cmd: "echo", aliases: []string{"echo"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			if err := reg.Register(&stubCommand{name: "ping"}, "p"); err != nil {
				t.Fatalf("seed register: %v", err)
			}

			err := reg.Register(&stubCommand{name: tc.cmd}, tc.aliases...)
			if !errors.Is(err, ErrConflict) {
				t.Fatalf("err = %v, want ErrConflict", err)
			}
			if got := reg.Len(); got != 1 {
				t.Fatalf("Len = %d, want 1 (rejected command must not be partially registered)", got)
			}
		})
	}
}

func TestRegistryDelete(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&stubCommand{name: "bazaar"}, "bz", "baz"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if !reg.Delete("bz") {
		t.Fatal("Delete(bz) reported nothing removed")
	}
	if reg.Get("bz") != nil || reg.Get("bazaar") == nil {
		t.Fatal("deleting an alias must keep the primary name")
	}

	if !reg.Delete("bazaar") {
		t.Fatal("Delete(bazaar) reported nothing removed")
	}
	if reg.Get("baz") != nil {
		t.Fatal("deleting the primary name must evict remaining aliases")
	}
	if reg.Delete("missing") {
		t.Fatal("Delete of an unknown key must report false")
	}
}

func TestRegistryCommandsSortedDistinct(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"userinfo", "bazaar", "ping"} {
		var aliases []string
		if name == "bazaar" {
			aliases = []string{"bz"}
		}
		if err := reg.Register(&stubCommand{name: name}, aliases...); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	got := reg.Commands()
	want := []string{"bazaar", "ping", "userinfo"}
	if len(got) != len(want) {
		t.Fatalf("Commands() len = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Name() != want[i] {
			t.Fatalf("Commands()[%d] = %s, want %s", i, c.Name(), want[i])
		}
	}
}
