package command

import (
	"context"

	"github.com/keshon/bazaar-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Definition is what individual commands implement. Everything else a command
// can declare is an optional capability interface below.
type Definition interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliaser declares extra lookup keys for the text surface.
type Aliaser interface {
	Aliases() []string
}

// PermissionProvider declares required member permissions by vocabulary name
// (e.g. "ADMINISTRATOR", "MANAGE_MESSAGES").
type PermissionProvider interface {
	Permissions() []string
}

// OptionsProvider declares the structured option schema rendered as slash UI.
type OptionsProvider interface {
	Options() []*discordgo.ApplicationCommandOption
}

// Toggle lets a command opt out of registration. Commands without it are enabled.
type Toggle interface {
	Enabled() bool
}

// GuildBound marks commands that only make sense inside a guild.
type GuildBound interface {
	GuildOnly() bool
}

// Initializer runs once at load time. A returned error keeps the command out
// of the registry.
type Initializer interface {
	Init(ctx context.Context) error
}

// Refresher is implemented by commands whose cached data should be reloaded
// periodically while the bot runs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Autocompleter answers suggestion requests for a partially typed option.
type Autocompleter interface {
	Autocomplete(ctx context.Context, req *AutocompleteRequest) ([]*discordgo.ApplicationCommandOptionChoice, error)
}

// AutocompleteRequest describes the focused option of an autocomplete interaction.
type AutocompleteRequest struct {
	Command string
	Option  string
	Value   string
	Event   *discordgo.InteractionCreate
}

// Adapter adapts a Definition to cmd.Command so it can live in the registry.
type Adapter struct {
	Def Definition
}

func (a *Adapter) Name() string        { return a.Def.Name() }
func (a *Adapter) Description() string { return a.Def.Description() }

// Run unpacks the Discord invocation carried in inv.Data.
func (a *Adapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	ci, ok := inv.Data.(*Invocation)
	if !ok {
		return ErrWrongContext
	}
	return a.Def.Run(ctx, ci)
}

// DefinitionOf walks through middleware wrappers and returns the underlying definition.
func DefinitionOf(c cmd.Command) (Definition, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := cmd.Root(c).(*Adapter)
	if !ok {
		return nil, false
	}
	return a.Def, true
}

// Run executes a registered command with a Discord invocation, going through
// the middleware chain.
func Run(ctx context.Context, c cmd.Command, inv *Invocation) error {
	return c.Run(ctx, &cmd.Invocation{Name: inv.Name, Args: inv.Args, Data: inv})
}
