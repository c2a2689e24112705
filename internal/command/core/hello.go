package core

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
)

// HelloCommand greets the invoking member by display name.
type HelloCommand struct{}

func (c *HelloCommand) Name() string          { return "hello" }
func (c *HelloCommand) Description() string   { return "Says hello to you." }
func (c *HelloCommand) Permissions() []string { return []string{"ADMINISTRATOR"} }
func (c *HelloCommand) GuildOnly() bool       { return true }

func (c *HelloCommand) Run(_ context.Context, inv *command.Invocation) error {
	member := inv.Member()
	if member == nil {
		return command.ErrGuildOnly
	}
	return inv.ReplyEmbed(&discordgo.MessageEmbed{
		Color:       command.ColorGreen,
		Description: fmt.Sprintf("Hello %s!", DisplayName(member)),
	}, false)
}

// DisplayName resolves what Discord shows for a member: nickname, then global
// name, then username.
func DisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}
