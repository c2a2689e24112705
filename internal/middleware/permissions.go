package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

// WithUserPermissionCheck refuses to run a command unless the invoking member
// holds every permission the command declares. Administrators and the
// developer bypass the check; invocations outside a guild are not checked.
func WithUserPermissionCheck(developerID string) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, "permissions", func(ctx context.Context, inv *cmd.Invocation) error {
			ci, ok := inv.Data.(*command.Invocation)
			if !ok {
				return c.Run(ctx, inv)
			}
			def, ok := command.DefinitionOf(c)
			if !ok {
				return c.Run(ctx, inv)
			}
			pp, ok := def.(command.PermissionProvider)
			if !ok || len(pp.Permissions()) == 0 {
				return c.Run(ctx, inv)
			}

			user := ci.User()
			if ci.GuildID() == "" || user == nil {
				return c.Run(ctx, inv)
			}
			if developerID != "" && user.ID == developerID {
				return c.Run(ctx, inv)
			}

			have, err := memberPermissions(ci, user.ID)
			if err != nil {
				return fmt.Errorf("failed to get user permissions: %w", err)
			}
			if have&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			required, err := command.PermissionBits(pp.Permissions())
			if err != nil {
				return err
			}
			if have&required == required {
				return c.Run(ctx, inv)
			}

			var missing []string
			for _, name := range pp.Permissions() {
				bit, _ := command.PermissionByName(name)
				if have&bit == 0 {
					missing = append(missing, command.PermissionLabel(name))
				}
			}
			msg := fmt.Sprintf(
				"You need the following permissions to run this command:\n`%s`",
				strings.Join(missing, "`, `"),
			)
			return ci.ReplyEmbed(command.ErrorEmbed(msg), true)
		})
	}
}

// memberPermissions prefers the resolved permissions Discord sends with
// interactions and falls back to computing them from state.
func memberPermissions(ci *command.Invocation, userID string) (int64, error) {
	if ci.Interaction != nil && ci.Interaction.Member != nil && ci.Interaction.Member.Permissions != 0 {
		return ci.Interaction.Member.Permissions, nil
	}
	if ci.Client == nil {
		return 0, fmt.Errorf("no client to resolve permissions for %s", userID)
	}
	return ci.Client.UserChannelPermissions(userID, ci.ChannelID())
}
