package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

const (
	// maxChoices is Discord's cap on autocomplete choices.
	maxChoices = 25

	msgCommandFailed  = "⛔ An error occurred while running this command."
	msgGuildOnly      = "⛔ This command is only available in a Discord server!"
	msgInvalidCommand = "⛔ Invalid command name: `%s`"
)

// Platform is the part of *discordgo.Session the dispatcher talks to.
type Platform interface {
	command.Client
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// HandleInteraction routes slash commands and autocomplete requests.
func (b *Bot) HandleInteraction(ctx context.Context, p Platform, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlash(ctx, p, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(ctx, p, i)
	}
}

func (b *Bot) handleSlash(ctx context.Context, p Platform, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	c, ok := b.Registry.Lookup(data.Name)
	if !ok {
		log.Warn().Str("command", data.Name).Msg("unknown slash command, dropping it from the registry")
		err := p.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{command.ErrorEmbed(msgCommandFailed)},
			},
		})
		if err != nil {
			log.Error().Err(err).Str("command", data.Name).Msg("failed to answer unknown command")
		}
		b.Registry.Delete(data.Name)
		return
	}

	inv := &command.Invocation{
		Kind:        command.Structured,
		Name:        data.Name,
		Options:     command.OptionMap(data.Options),
		Client:      p,
		Interaction: i,
		Responder:   &interactionResponder{p: p, i: i.Interaction},
		ReceivedAt:  time.Now(),
	}
	b.run(ctx, c, inv)
}

func (b *Bot) handleAutocomplete(ctx context.Context, p Platform, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	c, ok := b.Registry.Lookup(data.Name)
	if !ok {
		return
	}
	def, _ := command.DefinitionOf(c)
	ac, ok := def.(command.Autocompleter)
	if !ok {
		return
	}

	req := &command.AutocompleteRequest{Command: data.Name, Event: i}
	if opt := focusedOption(data.Options); opt != nil {
		req.Option = opt.Name
		req.Value = fmt.Sprint(opt.Value)
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	err := command.Safely(data.Name, command.PhaseAutocomplete, func() error {
		var err error
		choices, err = ac.Autocomplete(ctx, req)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("command", data.Name).Str("option", req.Option).Msg("autocomplete failed")
		choices = nil
	}
	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}

	err = p.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Error().Err(err).Str("command", data.Name).Msg("failed to send autocomplete choices")
	}
}

// focusedOption finds the option the user is typing in, descending into
// subcommands.
func focusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Focused {
			return o
		}
		if f := focusedOption(o.Options); f != nil {
			return f
		}
	}
	return nil
}

// HandleMessage routes prefixed text commands. botID is the bot's own user id.
func (b *Bot) HandleMessage(ctx context.Context, p Platform, botID string, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}
	prefix := b.Config.CommandPrefix
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	c, ok := b.Registry.Lookup(name)
	if !ok {
		perms, err := p.UserChannelPermissions(botID, m.ChannelID)
		if err != nil || perms&discordgo.PermissionSendMessages == 0 {
			log.Warn().Err(err).Str("channel", m.ChannelID).Msg("⛔ I cannot send messages in this channel")
			return
		}
		_, err = p.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{command.ErrorEmbed(fmt.Sprintf(msgInvalidCommand, name))},
		})
		if err != nil {
			log.Error().Err(err).Str("channel", m.ChannelID).Msg("failed to report invalid command")
		}
		return
	}

	inv := &command.Invocation{
		Kind:       command.Text,
		Name:       name,
		Args:       args,
		Client:     p,
		Message:    m,
		Responder:  &messageResponder{p: p, m: m},
		ReceivedAt: time.Now(),
	}
	b.run(ctx, c, inv)
}

// run executes c and turns a returned error or panic into an ephemeral reply.
func (b *Bot) run(ctx context.Context, c cmd.Command, inv *command.Invocation) {
	err := command.Safely(c.Name(), inv.Kind.String(), func() error {
		return command.Run(ctx, c, inv)
	})
	if err == nil {
		return
	}

	ev := log.Error().Err(err).Str("command", c.Name()).Stringer("kind", inv.Kind).Str("guild", inv.GuildID())
	var he *command.HandlerError
	if errors.As(err, &he) && he.Panicked() {
		ev = ev.Bytes("stack", he.Stack)
	}
	ev.Msg("command failed")
	msg := msgCommandFailed
	if errors.Is(err, command.ErrGuildOnly) {
		msg = msgGuildOnly
	}
	if rerr := inv.ReplyEmbed(command.ErrorEmbed(msg), true); rerr != nil {
		log.Error().Err(rerr).Str("command", c.Name()).Msg("failed to report command error")
	}
}

// responseState tracks how far an interaction has been answered.
type responseState uint8

const (
	statePending responseState = iota
	stateDeferred
	stateReplied
)

// interactionResponder answers the interaction once, or acknowledges it with
// Defer and fills the placeholder in later. Further replies are follow-ups.
// Discord drops interactions left unanswered for three seconds.
type interactionResponder struct {
	p     Platform
	i     *discordgo.Interaction
	state responseState
}

func (r *interactionResponder) Defer(ephemeral bool) error {
	if r.state != statePending {
		return nil
	}
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := r.p.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
	if err == nil {
		r.state = stateDeferred
	}
	return err
}

func (r *interactionResponder) Reply(reply *command.Reply) error {
	var flags discordgo.MessageFlags
	if reply.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	switch r.state {
	case stateReplied:
		_, err := r.p.FollowupMessageCreate(r.i, true, &discordgo.WebhookParams{
			Content: reply.Content,
			Embeds:  reply.Embeds,
			Flags:   flags,
		})
		return err
	case stateDeferred:
		// The placeholder keeps the visibility chosen at Defer.
		content, embeds := reply.Content, reply.Embeds
		_, err := r.p.InteractionResponseEdit(r.i, &discordgo.WebhookEdit{
			Content: &content,
			Embeds:  &embeds,
		})
		if err == nil {
			r.state = stateReplied
		}
		return err
	}

	err := r.p.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply.Content,
			Embeds:  reply.Embeds,
			Flags:   flags,
		},
	})
	if err == nil {
		r.state = stateReplied
	}
	return err
}

// messageResponder replies in the channel the command was typed in. Text
// replies cannot be ephemeral.
type messageResponder struct {
	p Platform
	m *discordgo.MessageCreate
}

func (r *messageResponder) Reply(reply *command.Reply) error {
	_, err := r.p.ChannelMessageSendComplex(r.m.ChannelID, &discordgo.MessageSend{
		Content:   reply.Content,
		Embeds:    reply.Embeds,
		Reference: r.m.Reference(),
	})
	return err
}
