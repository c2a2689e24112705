package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/internal/config"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

// Bot holds what event handlers need: the command registry, the commands to
// publish and the runtime config.
type Bot struct {
	Registry *cmd.Registry
	Config   *config.Config
	// Commands are the distinct registered commands in load order.
	Commands []cmd.Command

	ctx context.Context
}

// New builds a Bot from a finished command load.
func New(cfg *config.Config, reg *cmd.Registry, report *command.Report) *Bot {
	return &Bot{
		Registry: reg,
		Config:   cfg,
		Commands: report.Commands(),
		ctx:      context.Background(),
	}
}

// Run opens the gateway session, subscribes events and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context, events []EventDefinition) error {
	dg, err := discordgo.New("Bot " + b.Config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	b.ctx = ctx

	report := LoadEvents(dg, b, events)
	fmt.Println(report.String())

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("❎ Shutdown signal received. Cleaning up...")
	return nil
}

// Context is the lifetime context handlers run under.
func (b *Bot) Context() context.Context {
	return b.ctx
}
