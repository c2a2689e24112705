package discord

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/internal/command/hypixel"
	feed "github.com/keshon/bazaar-bot/internal/hypixel"
)

// slowFeed answers after delay and records which interaction responses had
// been sent when each fetch started.
type slowFeed struct {
	p     *fakePlatform
	delay time.Duration
	err   error
	seen  [][]discordgo.InteractionResponseType
}

func (f *slowFeed) HasKey() bool { return true }

func (f *slowFeed) Bazaar(ctx context.Context) (*feed.BazaarData, error) {
	f.seen = append(f.seen, f.p.responseTypes())
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &feed.BazaarData{
		Success:     true,
		LastUpdated: 1700000000000,
		Products:    map[string]feed.Product{"DIRT": {ProductID: "DIRT"}},
	}, nil
}

func itemOption(v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: "item", Type: discordgo.ApplicationCommandOptionString, Value: v}
}

func TestSlowBazaarLookupIsDeferred(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantColor int
	}{
		{name: "found", wantTitle: "DIRT", wantColor: command.ColorGold},
		{
			name:      "feed error",
			err:       &feed.StatusError{Code: http.StatusServiceUnavailable, Status: "503 Service Unavailable"},
			wantTitle: "Error code 503",
			wantColor: command.ColorRed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePlatform{}
			f := &slowFeed{p: p, delay: 20 * time.Millisecond}
			b := newTestBot(t, hypixel.NewBazaar(f))
			f.err = tc.err

			b.HandleInteraction(context.Background(), p, slash("bazaar", itemOption("DIRT")))

			if len(f.seen) != 2 {
				t.Fatalf("fetches = %d, want 2 (init and lookup)", len(f.seen))
			}
			atFetch := f.seen[1]
			if len(atFetch) != 1 || atFetch[0] != discordgo.InteractionResponseDeferredChannelMessageWithSource {
				t.Fatalf("responses sent before the lookup fetch = %v, want one deferred ack", atFetch)
			}
			if len(p.responses) != 1 || p.responses[0].Data.Flags != 0 {
				t.Fatalf("responses = %+v, want a single public ack", p.responses)
			}
			if len(p.edits) != 1 || len(p.followups) != 0 {
				t.Fatalf("edits = %d, followups = %d, want 1 and 0", len(p.edits), len(p.followups))
			}
			embeds := *p.edits[0].Embeds
			if len(embeds) != 1 || embeds[0].Title != tc.wantTitle || embeds[0].Color != tc.wantColor {
				t.Fatalf("edited embeds = %+v", embeds)
			}
		})
	}
}

func TestErrorAfterDeferFillsPlaceholder(t *testing.T) {
	b := newTestBot(t, &fakeDef{name: "slow", run: func(_ context.Context, inv *command.Invocation) error {
		if err := inv.Defer(false); err != nil {
			return err
		}
		return errors.New("upstream gone")
	}})
	p := &fakePlatform{}

	b.HandleInteraction(context.Background(), p, slash("slow"))

	if got := p.responseTypes(); len(got) != 1 || got[0] != discordgo.InteractionResponseDeferredChannelMessageWithSource {
		t.Fatalf("responses = %v", got)
	}
	if len(p.edits) != 1 || len(p.followups) != 0 {
		t.Fatalf("edits = %d, followups = %d", len(p.edits), len(p.followups))
	}
	e := (*p.edits[0].Embeds)[0]
	if e.Description != msgCommandFailed || e.Color != command.ColorRed {
		t.Fatalf("embed = %+v", e)
	}
}

func TestDeferredResponderSequence(t *testing.T) {
	p := &fakePlatform{}
	r := &interactionResponder{p: p, i: &discordgo.Interaction{}}

	if err := r.Defer(true); err != nil {
		t.Fatal(err)
	}
	if err := r.Defer(true); err != nil {
		t.Fatal(err)
	}
	if len(p.responses) != 1 || p.responses[0].Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Fatalf("responses = %+v, want one ephemeral ack", p.responses)
	}

	for _, content := range []string{"first", "second"} {
		if err := r.Reply(&command.Reply{Content: content}); err != nil {
			t.Fatal(err)
		}
	}
	if len(p.edits) != 1 || *p.edits[0].Content != "first" {
		t.Fatalf("edits = %+v", p.edits)
	}
	if len(p.followups) != 1 || p.followups[0].Content != "second" {
		t.Fatalf("followups = %+v", p.followups)
	}

	if err := r.Defer(false); err != nil || len(p.responses) != 1 {
		t.Fatal("defer after a reply must be a no-op")
	}
}

func TestTextInvocationIgnoresDefer(t *testing.T) {
	b := newTestBot(t, &fakeDef{name: "slow", run: func(_ context.Context, inv *command.Invocation) error {
		if err := inv.Defer(false); err != nil {
			return err
		}
		return inv.Reply(&command.Reply{Content: "done"})
	}})
	p := &fakePlatform{perms: discordgo.PermissionSendMessages}

	b.HandleMessage(context.Background(), p, "bot", message("pp slow"))

	if len(p.responses) != 0 || len(p.messages) != 1 || p.messages[0].Content != "done" {
		t.Fatalf("responses = %d, messages = %+v", len(p.responses), p.messages)
	}
}
