package core

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
)

func capture(inv *command.Invocation) *[]*command.Reply {
	var replies []*command.Reply
	inv.Responder = command.ResponderFunc(func(r *command.Reply) error {
		replies = append(replies, r)
		return nil
	})
	return &replies
}

func TestPing(t *testing.T) {
	for _, kind := range []command.Kind{command.Text, command.Structured} {
		inv := &command.Invocation{Kind: kind, Name: "ping"}
		replies := capture(inv)
		if err := (&PingCommand{}).Run(context.Background(), inv); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if len(*replies) != 1 || (*replies)[0].Content != "pong" || (*replies)[0].Ephemeral {
			t.Fatalf("%s: replies = %+v", kind, *replies)
		}
	}
}

func TestHello(t *testing.T) {
	inv := &command.Invocation{
		Kind: command.Text,
		Message: &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID: "1",
			Author:  &discordgo.User{ID: "7", Username: "steve", GlobalName: "Steve"},
			Member:  &discordgo.Member{},
		}},
	}
	replies := capture(inv)
	if err := (&HelloCommand{}).Run(context.Background(), inv); err != nil {
		t.Fatal(err)
	}
	e := (*replies)[0].Embeds[0]
	if e.Description != "Hello Steve!" || e.Color != command.ColorGreen {
		t.Fatalf("embed = %+v", e)
	}
}

func TestHelloOutsideGuild(t *testing.T) {
	inv := &command.Invocation{Kind: command.Text}
	capture(inv)
	if err := (&HelloCommand{}).Run(context.Background(), inv); !errors.Is(err, command.ErrGuildOnly) {
		t.Fatalf("err = %v, want ErrGuildOnly", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		m    *discordgo.Member
		want string
	}{
		{&discordgo.Member{Nick: "nick", User: &discordgo.User{Username: "u", GlobalName: "g"}}, "nick"},
		{&discordgo.Member{User: &discordgo.User{Username: "u", GlobalName: "g"}}, "g"},
		{&discordgo.Member{User: &discordgo.User{Username: "u"}}, "u"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.m); got != tc.want {
			t.Errorf("DisplayName = %q, want %q", got, tc.want)
		}
	}
}
