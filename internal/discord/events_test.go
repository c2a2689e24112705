package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
)

type fakeSubscriber struct {
	handlers []interface{}
	once     []interface{}
}

func (f *fakeSubscriber) AddHandler(h interface{}) func() {
	f.handlers = append(f.handlers, h)
	return func() {}
}

func (f *fakeSubscriber) AddHandlerOnce(h interface{}) func() {
	f.once = append(f.once, h)
	return func() {}
}

func TestLoadEvents(t *testing.T) {
	var gotBot *Bot
	noop := func(*discordgo.Session, *discordgo.MessageCreate, *Bot) {}

	defs := []EventDefinition{
		Once("ready", func(_ *discordgo.Session, _ *discordgo.Ready, b *Bot) { gotBot = b }),
		On("messageCreate", noop),
		On("messageCreat", noop),
		On("", noop),
		On("ready", noop),
	}
	sub := &fakeSubscriber{}
	b := &Bot{}
	report := LoadEvents(sub, b, defs)

	if len(sub.once) != 1 || len(sub.handlers) != 1 {
		t.Fatalf("once = %d, recurring = %d", len(sub.once), len(sub.handlers))
	}
	if got := len(report.Failed()); got != 3 {
		t.Fatalf("failed rows = %d, want 3: %+v", got, report.Rows)
	}
	if report.Rows[4].Reason != "handler type does not match event" {
		t.Fatalf("reason = %q", report.Rows[4].Reason)
	}

	h, ok := sub.once[0].(func(*discordgo.Session, *discordgo.Ready))
	if !ok {
		t.Fatalf("ready handler has type %T", sub.once[0])
	}
	h(nil, &discordgo.Ready{})
	if gotBot != b {
		t.Fatal("bot not appended to handler call")
	}
}

func TestDefaultEventsLoad(t *testing.T) {
	report := LoadEvents(&fakeSubscriber{}, &Bot{}, DefaultEvents())
	for _, row := range report.Rows {
		if row.Status != command.StatusOK {
			t.Errorf("%s: %s %s", row.Name, row.Status, row.Reason)
		}
	}
}

func TestAllowedEventsCoverAllowList(t *testing.T) {
	for _, name := range []string{
		"ready", "resumed", "guildCreate", "guildDelete", "interactionCreate",
		"messageCreate", "messageUpdate", "messageDelete", "messageReactionAdd",
	} {
		if _, ok := allowedEvents[name]; !ok {
			t.Errorf("%s missing from allow-list", name)
		}
	}
	if len(allowedEvents) != 9 {
		t.Errorf("allow-list has %d entries, want 9", len(allowedEvents))
	}
}
