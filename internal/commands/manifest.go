package commands

import (
	"context"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/internal/command/core"
	hypixelcmd "github.com/keshon/bazaar-bot/internal/command/hypixel"
	"github.com/keshon/bazaar-bot/internal/command/info"
	"github.com/keshon/bazaar-bot/internal/config"
	"github.com/keshon/bazaar-bot/internal/hypixel"
	"github.com/keshon/bazaar-bot/internal/middleware"
	"github.com/keshon/bazaar-bot/pkg/cmd"
	"github.com/keshon/bazaar-bot/pkg/retrylimit"
)

// Deps are the shared services commands are built with.
type Deps struct {
	Hypixel hypixelcmd.Feed
}

// Manifest lists every command the bot ships, in load order.
func Manifest(d Deps) []command.Definition {
	return []command.Definition{
		&core.PingCommand{},
		&core.HelloCommand{},
		&info.UserInfoCommand{},
		hypixelcmd.NewBazaar(d.Hypixel),
	}
}

// NewDeps builds the services described by cfg.
func NewDeps(cfg *config.Config) Deps {
	return Deps{
		Hypixel: hypixel.NewClient(hypixel.Config{
			BaseURL: cfg.HypixelBaseURL,
			APIKey:  cfg.HypixelAPIKey,
			Timeout: cfg.HypixelTimeout,
			Retry:   retrylimit.DefaultConfig(),
		}),
	}
}

// Load builds the manifest from cfg and registers it behind the default
// middleware chain.
func Load(ctx context.Context, cfg *config.Config) (*cmd.Registry, *command.Report) {
	reg := cmd.NewRegistry()
	report := command.Load(ctx, reg, Manifest(NewDeps(cfg)), middleware.Default(cfg.DeveloperID)...)
	return reg, report
}
