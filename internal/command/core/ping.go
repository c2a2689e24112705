package core

import (
	"context"

	"github.com/keshon/bazaar-bot/internal/command"
)

// PingCommand answers with "pong".
type PingCommand struct{}

func (c *PingCommand) Name() string          { return "ping" }
func (c *PingCommand) Description() string   { return "Replies with pong." }
func (c *PingCommand) Permissions() []string { return []string{"ADMINISTRATOR"} }

func (c *PingCommand) Run(_ context.Context, inv *command.Invocation) error {
	return inv.Reply(&command.Reply{Content: "pong"})
}
