package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

var (
	// ErrNoTestGuild means no usable TEST_GUILD_ID is configured.
	ErrNoTestGuild = errors.New("no test server configured")
	// ErrTestGuildMissing means the bot is not in the configured test guild.
	ErrTestGuildMissing = errors.New("testing server failed to load")
)

// Publisher is the part of *discordgo.Session used to publish commands.
type Publisher interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// ApplicationCommands renders registered commands as slash command payloads,
// in the given order. Aliases are never published.
func ApplicationCommands(cmds []cmd.Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		def, ok := command.DefinitionOf(c)
		if !ok {
			continue
		}
		ac := &discordgo.ApplicationCommand{
			Type:        discordgo.ChatApplicationCommand,
			Name:        def.Name(),
			Description: def.Description(),
		}
		if op, ok := def.(command.OptionsProvider); ok {
			ac.Options = op.Options()
		}
		if pp, ok := def.(command.PermissionProvider); ok && len(pp.Permissions()) > 0 {
			if bits, err := command.PermissionBits(pp.Permissions()); err == nil {
				ac.DefaultMemberPermissions = &bits
			}
		}
		if gb, ok := def.(command.GuildBound); ok && gb.GuildOnly() {
			dm := false
			ac.DMPermission = &dm
		}
		out = append(out, ac)
	}
	return out
}

// PublishTestGuild overwrites the test guild's command set with the bot's
// commands. guilds are the guilds the bot is in.
func (b *Bot) PublishTestGuild(p Publisher, appID string, guilds []*discordgo.Guild) error {
	if !b.Config.HasTestGuild() {
		return ErrNoTestGuild
	}
	guildID := b.Config.TestGuildID

	found := false
	for _, g := range guilds {
		if g.ID == guildID {
			found = true
			break
		}
	}
	if !found {
		return ErrTestGuildMissing
	}

	published, err := p.ApplicationCommandBulkOverwrite(appID, guildID, ApplicationCommands(b.Commands))
	if err != nil {
		return fmt.Errorf("overwrite commands in guild %s: %w", guildID, err)
	}
	log.Info().Str("guild", guildID).Int("commands", len(published)).Msg("Commands updated on the test server.")
	return nil
}

func onReadyPublish(s *discordgo.Session, r *discordgo.Ready, b *Bot) {
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}
	if err := b.PublishTestGuild(s, appID, r.Guilds); err != nil {
		switch {
		case errors.Is(err, ErrNoTestGuild):
			log.Info().Msg("No test server configured.")
		case errors.Is(err, ErrTestGuildMissing):
			log.Warn().Str("guild", b.Config.TestGuildID).Msg("Testing server failed to load.")
		default:
			log.Error().Err(err).Msg("failed to publish commands")
		}
	}
}
