package middleware

import (
	"context"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

// WithGuildOnly answers with a notice instead of running guild-bound commands
// in DMs or the terminal.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, "guild-only", func(ctx context.Context, inv *cmd.Invocation) error {
			ci, ok := inv.Data.(*command.Invocation)
			if !ok || ci.GuildID() != "" {
				return c.Run(ctx, inv)
			}
			def, ok := command.DefinitionOf(c)
			if !ok {
				return c.Run(ctx, inv)
			}
			if gb, ok := def.(command.GuildBound); ok && gb.GuildOnly() {
				return ci.ReplyEmbed(command.NoticeEmbed(command.ErrGuildOnly.Error()+"."), true)
			}
			return c.Run(ctx, inv)
		})
	}
}
