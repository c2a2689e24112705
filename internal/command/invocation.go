package command

import (
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrWrongContext is returned when a command receives a payload it does not understand.
	ErrWrongContext = errors.New("wrong context type")
	// ErrUnsupported is returned when a command is invoked through a surface it does not serve.
	ErrUnsupported = errors.New("command does not support this invocation")
	// ErrGuildOnly is returned when a guild-bound command runs outside a guild.
	ErrGuildOnly = errors.New("this command is only available in a Discord server")
)

// Kind tags which surface an invocation came from.
type Kind uint8

const (
	// Text is a prefixed chat message ("pp bazaar ...").
	Text Kind = iota + 1
	// Structured is a native slash-command interaction.
	Structured
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Structured:
		return "structured"
	default:
		return "unknown"
	}
}

// Reply is what a command sends back, independent of the surface.
type Reply struct {
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Ephemeral bool
}

// Responder delivers a reply for one invocation.
type Responder interface {
	Reply(r *Reply) error
}

// Deferrer is implemented by responders that can acknowledge an invocation
// before its reply is ready.
type Deferrer interface {
	Defer(ephemeral bool) error
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(r *Reply) error

func (f ResponderFunc) Reply(r *Reply) error { return f(r) }

// Client is the slice of *discordgo.Session that commands and middleware call.
type Client interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// Invocation is the tagged input every command receives. Exactly one of
// Message (Text) or Interaction (Structured) is set; Message may also be nil
// for text invocations that do not come from Discord.
type Invocation struct {
	Kind Kind
	// Name is the key the command was resolved under; it may be an alias.
	Name string
	// Args are the whitespace separated tokens after the command name (Text only).
	Args []string
	// Options are the top-level option values keyed by name (Structured only).
	Options map[string]*discordgo.ApplicationCommandInteractionDataOption

	Client      Client
	Message     *discordgo.MessageCreate
	Interaction *discordgo.InteractionCreate
	Responder   Responder
	ReceivedAt  time.Time
}

// Reply sends r through the invocation's responder.
func (inv *Invocation) Reply(r *Reply) error {
	if inv.Responder == nil {
		return errors.New("invocation has no responder")
	}
	return inv.Responder.Reply(r)
}

// Defer acknowledges the invocation ahead of a slow reply. It is a no-op for
// responders that answer whenever they are ready.
func (inv *Invocation) Defer(ephemeral bool) error {
	d, ok := inv.Responder.(Deferrer)
	if !ok {
		return nil
	}
	return d.Defer(ephemeral)
}

// ReplyEmbed is a shorthand for a single-embed reply.
func (inv *Invocation) ReplyEmbed(e *discordgo.MessageEmbed, ephemeral bool) error {
	return inv.Reply(&Reply{Embeds: []*discordgo.MessageEmbed{e}, Ephemeral: ephemeral})
}

// GuildID returns the guild the invocation happened in, or "" for DMs and the terminal.
func (inv *Invocation) GuildID() string {
	switch {
	case inv.Interaction != nil:
		return inv.Interaction.GuildID
	case inv.Message != nil:
		return inv.Message.GuildID
	}
	return ""
}

// ChannelID returns the channel the invocation happened in.
func (inv *Invocation) ChannelID() string {
	switch {
	case inv.Interaction != nil:
		return inv.Interaction.ChannelID
	case inv.Message != nil:
		return inv.Message.ChannelID
	}
	return ""
}

// User returns the invoking user, or nil when unknown.
func (inv *Invocation) User() *discordgo.User {
	switch {
	case inv.Interaction != nil:
		if inv.Interaction.Member != nil && inv.Interaction.Member.User != nil {
			return inv.Interaction.Member.User
		}
		return inv.Interaction.User
	case inv.Message != nil:
		return inv.Message.Author
	}
	return nil
}

// Member returns the invoking guild member, or nil outside a guild. Message
// members do not carry their user, so it is filled from the author.
func (inv *Invocation) Member() *discordgo.Member {
	switch {
	case inv.Interaction != nil:
		return inv.Interaction.Member
	case inv.Message != nil && inv.Message.Member != nil:
		m := *inv.Message.Member
		if m.User == nil {
			m.User = inv.Message.Author
		}
		return &m
	}
	return nil
}

// StringOption returns a string option value.
func (inv *Invocation) StringOption(name string) (string, bool) {
	opt, ok := inv.Options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return opt.StringValue(), true
}

// BoolOption returns a boolean option value, false when absent.
func (inv *Invocation) BoolOption(name string) bool {
	opt, ok := inv.Options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionBoolean {
		return false
	}
	return opt.BoolValue()
}

// OptionMap indexes interaction options by name.
func OptionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}
