package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
	"github.com/keshon/bazaar-bot/pkg/util"
)

// runText resolves args[0] like the prefix dispatcher and prints every reply to w.
func runText(ctx context.Context, reg *cmd.Registry, args []string, w io.Writer) error {
	name := args[0]
	c, ok := reg.Lookup(name)
	if !ok {
		return fmt.Errorf("invalid command name: %s", name)
	}

	inv := &command.Invocation{
		Kind: command.Text,
		Name: name,
		Args: args[1:],
		Responder: command.ResponderFunc(func(r *command.Reply) error {
			_, err := io.WriteString(w, render(r))
			return err
		}),
		ReceivedAt: time.Now(),
	}
	return command.Safely(c.Name(), inv.Kind.String(), func() error {
		return command.Run(ctx, c, inv)
	})
}

// render prints a reply as plain text, expanding Discord timestamp markup.
func render(r *command.Reply) string {
	var b strings.Builder
	if r.Content != "" {
		b.WriteString(r.Content)
		b.WriteString("\n")
	}
	for _, e := range r.Embeds {
		renderEmbed(&b, e)
	}
	return util.ExpandTimestamps(b.String(), "YYYY-MM-DD hh:mm:ss")
}

func renderEmbed(b *strings.Builder, e *discordgo.MessageEmbed) {
	if e.Author != nil && e.Author.Name != "" {
		fmt.Fprintf(b, "[%s]\n", e.Author.Name)
	}
	if e.Title != "" {
		fmt.Fprintf(b, "== %s ==\n", e.Title)
	}
	if e.Description != "" {
		b.WriteString(e.Description)
		b.WriteString("\n")
	}
	for _, f := range e.Fields {
		if strings.TrimSpace(strings.ReplaceAll(f.Name, "\u200b", "")) == "" {
			continue
		}
		fmt.Fprintf(b, "%s:\n", f.Name)
		for _, line := range strings.Split(f.Value, "\n") {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	if e.Footer != nil && e.Footer.Text != "" {
		fmt.Fprintf(b, "-- %s\n", e.Footer.Text)
	}
}
