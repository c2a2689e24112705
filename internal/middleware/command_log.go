package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

// WithCommandLogger logs every command execution with its outcome and duration.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, "log", func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			var ev *zerolog.Event
			if err != nil {
				ev = log.Warn().Err(err)
			} else {
				ev = log.Info()
			}
			ev = ev.Str("command", c.Name()).Str("as", inv.Name).Dur("took", time.Since(start))
			if ci, ok := inv.Data.(*command.Invocation); ok {
				ev = ev.Stringer("kind", ci.Kind).Str("guild", ci.GuildID()).Str("channel", ci.ChannelID())
				if u := ci.User(); u != nil {
					ev = ev.Str("user", u.ID)
				}
			}
			ev.Msg("command executed")
			return err
		})
	}
}

// Default is the standard chain, outermost last: logging wraps the guild
// guard, which wraps the permission check.
func Default(developerID string) []cmd.Middleware {
	return []cmd.Middleware{
		WithUserPermissionCheck(developerID),
		WithGuildOnly(),
		WithCommandLogger(),
	}
}
