package hypixel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	feed "github.com/keshon/bazaar-bot/internal/hypixel"
	"github.com/keshon/bazaar-bot/pkg/util"
)

const (
	// maxOrderRows caps how many price levels one embed field lists.
	maxOrderRows = 15
	spacer       = "\u200b"
)

// Feed is the price source the bazaar command reads.
type Feed interface {
	Bazaar(ctx context.Context) (*feed.BazaarData, error)
	HasKey() bool
}

// BazaarCommand looks up live bazaar prices for one product.
type BazaarCommand struct {
	Feed    Feed
	catalog feed.Catalog
}

func NewBazaar(f Feed) *BazaarCommand {
	return &BazaarCommand{Feed: f}
}

func (c *BazaarCommand) Name() string          { return "bazaar" }
func (c *BazaarCommand) Description() string   { return "Reports back on the bazaar items." }
func (c *BazaarCommand) Aliases() []string     { return []string{"bz"} }
func (c *BazaarCommand) Permissions() []string { return []string{"ADMINISTRATOR"} }
func (c *BazaarCommand) Enabled() bool         { return c.Feed != nil && c.Feed.HasKey() }

func (c *BazaarCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "item",
			Description:  "The item to look up",
			Required:     true,
			Autocomplete: true,
		},
	}
}

// Init loads the autocomplete catalog. A failed fetch is logged and the
// command stays usable with live lookups.
func (c *BazaarCommand) Init(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("bazaar catalog refresh failed")
	}
	return nil
}

// Refresh rebuilds the catalog from a fresh snapshot. On error the previous
// catalog is kept.
func (c *BazaarCommand) Refresh(ctx context.Context) error {
	data, err := c.Feed.Bazaar(ctx)
	if err != nil {
		return err
	}
	c.catalog.Replace(data)
	log.Debug().Int("products", c.catalog.Len()).Msg("bazaar catalog refreshed")
	return nil
}

func (c *BazaarCommand) Run(ctx context.Context, inv *command.Invocation) error {
	var id string
	switch inv.Kind {
	case command.Structured:
		id, _ = inv.StringOption("item")
		// The feed can take longer than the interaction deadline.
		if err := inv.Defer(false); err != nil {
			log.Warn().Err(err).Str("item", id).Msg("failed to defer bazaar reply")
		}
	case command.Text:
		if len(inv.Args) == 0 {
			return inv.ReplyEmbed(command.ErrorEmbed(fmt.Sprintf("Usage: `%s <item>`", inv.Name)), false)
		}
		id = feed.CanonicalID(inv.Args...)
	default:
		return command.ErrUnsupported
	}
	return inv.ReplyEmbed(c.Lookup(ctx, id), false)
}

func (c *BazaarCommand) Autocomplete(_ context.Context, req *command.AutocompleteRequest) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if req.Option != "item" {
		return choices, nil
	}
	for _, e := range c.catalog.Suggest(req.Value, feed.MaxSuggestions) {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: e.Name, Value: e.ID})
	}
	return choices, nil
}

// Lookup builds the reply embed for id. Failures are rendered, not returned.
func (c *BazaarCommand) Lookup(ctx context.Context, id string) *discordgo.MessageEmbed {
	data, err := c.Feed.Bazaar(ctx)
	if err != nil {
		log.Error().Err(err).Str("item", id).Msg("bazaar lookup failed")
		var se *feed.StatusError
		if errors.As(err, &se) {
			return &discordgo.MessageEmbed{
				Color:       command.ColorRed,
				Title:       fmt.Sprintf("Error code %d", se.StatusCode()),
				Description: "There was an error running this command: " + se.StatusText(),
			}
		}
		return command.ErrorEmbed("There was an error running this command!")
	}

	updated := "Last updated: " + util.DiscordTimestamp(data.LastUpdated, 'F')
	if p, ok := data.Products[id]; ok {
		return productEmbed(id, updated, p)
	}

	if match, dist, ok := c.catalog.Closest(id); ok && dist < utf8.RuneCountInString(id) {
		if p, found := data.Products[match]; found {
			desc := fmt.Sprintf("There is no product with the name %s.\nThe closest match is: %s\n%s", id, match, updated)
			return productEmbed(match, desc, p)
		}
	}

	list := "none"
	if same := c.catalog.SameInitial(id); len(same) > 0 {
		list = truncate(strings.Join(same, ", "), 4000)
	}
	return &discordgo.MessageEmbed{
		Color:       command.ColorGold,
		Title:       "Unknown product",
		Description: fmt.Sprintf("There is no product with the name %s.\nProducts with the same initial: %s", id, list),
	}
}

func productEmbed(id, description string, p feed.Product) *discordgo.MessageEmbed {
	q := p.QuickStatus
	return &discordgo.MessageEmbed{
		Color:       command.ColorGold,
		Title:       id,
		Description: description,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Instant Sell", Value: number(q.SellPrice), Inline: true},
			{Name: "Sell Volume", Value: number(q.SellVolume), Inline: true},
			{Name: spacer, Value: spacer, Inline: true},
			{Name: "Instant Buy", Value: number(q.BuyPrice), Inline: true},
			{Name: "Buy Volume", Value: number(q.BuyVolume), Inline: true},
			{Name: spacer, Value: spacer, Inline: true},
			{Name: "Buy Orders", Value: OrderRows(p.SellSummary, false), Inline: true},
			{Name: "Sell Orders", Value: OrderRows(p.BuySummary, false), Inline: true},
		},
	}
}

// OrderRows renders at most 15 price levels, one per line, taken from the
// front of the book or, when ascending, from the back. The input is not modified.
func OrderRows(summary []feed.Summary, ascending bool) string {
	if len(summary) == 0 {
		return "None!"
	}
	n := min(len(summary), maxOrderRows)
	rows := make([]string, 0, n)
	for i := range n {
		s := summary[i]
		if ascending {
			s = summary[len(summary)-1-i]
		}
		plural := "s"
		if s.Orders == 1 {
			plural = ""
		}
		rows = append(rows, fmt.Sprintf("%s @ %s (%d order%s)", number(s.Amount), number(s.PricePerUnit), s.Orders, plural))
	}
	return strings.Join(rows, "\n")
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}
