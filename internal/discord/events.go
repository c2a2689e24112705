package discord

import (
	"fmt"
	"reflect"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
)

// allowedEvents maps every event name the bot may subscribe to onto the
// discordgo payload type delivered for it.
var allowedEvents = map[string]reflect.Type{
	"ready":              reflect.TypeFor[*discordgo.Ready](),
	"resumed":            reflect.TypeFor[*discordgo.Resumed](),
	"guildCreate":        reflect.TypeFor[*discordgo.GuildCreate](),
	"guildDelete":        reflect.TypeFor[*discordgo.GuildDelete](),
	"interactionCreate":  reflect.TypeFor[*discordgo.InteractionCreate](),
	"messageCreate":      reflect.TypeFor[*discordgo.MessageCreate](),
	"messageUpdate":      reflect.TypeFor[*discordgo.MessageUpdate](),
	"messageDelete":      reflect.TypeFor[*discordgo.MessageDelete](),
	"messageReactionAdd": reflect.TypeFor[*discordgo.MessageReactionAdd](),
}

// Subscriber is the part of *discordgo.Session events are attached to.
type Subscriber interface {
	AddHandler(handler interface{}) func()
	AddHandlerOnce(handler interface{}) func()
}

// EventDefinition binds a handler to a named gateway event.
type EventDefinition struct {
	Name string
	Once bool

	payload reflect.Type
	build   func(b *Bot) interface{}
}

// On subscribes fn to every occurrence of the event. The bot is passed to fn
// after the session and payload.
func On[T any](name string, fn func(s *discordgo.Session, e *T, b *Bot)) EventDefinition {
	return EventDefinition{
		Name:    name,
		payload: reflect.TypeFor[*T](),
		build: func(b *Bot) interface{} {
			return func(s *discordgo.Session, e *T) { fn(s, e, b) }
		},
	}
}

// Once is On for events handled at most one time.
func Once[T any](name string, fn func(s *discordgo.Session, e *T, b *Bot)) EventDefinition {
	def := On(name, fn)
	def.Once = true
	return def
}

// LoadEvents subscribes every valid definition and reports each outcome.
// Invalid definitions are reported and never subscribed.
func LoadEvents(sub Subscriber, b *Bot, defs []EventDefinition) *command.Report {
	report := command.NewReport("Events Loaded")
	for i, def := range defs {
		source := fmt.Sprintf("event #%d", i+1)

		want, ok := allowedEvents[def.Name]
		if !ok || def.Name == "" {
			report.Fail(source, def.Name, fmt.Sprintf("Event name is either invalid or missing: %q", def.Name))
			log.Warn().Str("event", def.Name).Msg("event rejected")
			continue
		}
		if def.build == nil || def.payload != want {
			report.Fail(source, def.Name, "handler type does not match event")
			log.Warn().Str("event", def.Name).Msg("event rejected")
			continue
		}

		h := def.build(b)
		if def.Once {
			sub.AddHandlerOnce(h)
		} else {
			sub.AddHandler(h)
		}
		report.OK(source, def.Name, nil)
	}
	return report
}

// DefaultEvents is the bot's event manifest.
func DefaultEvents() []EventDefinition {
	return []EventDefinition{
		Once("ready", onReady),
		Once("ready", onReadyPublish),
		On("interactionCreate", onInteractionCreate),
		On("messageCreate", onMessageCreate),
	}
}

func onReady(s *discordgo.Session, r *discordgo.Ready, _ *Bot) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("The bot is up and ready to go.")
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
	b.HandleInteraction(b.Context(), s, i)
}

func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *Bot) {
	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}
	b.HandleMessage(b.Context(), s, botID, m)
}
