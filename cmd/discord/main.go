package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/commands"
	"github.com/keshon/bazaar-bot/internal/config"
	"github.com/keshon/bazaar-bot/internal/discord"
	"github.com/keshon/bazaar-bot/internal/logging"
	v "github.com/keshon/bazaar-bot/internal/version"
	"github.com/keshon/bazaar-bot/pkg/jobmgr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().Msgf("Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg, report := commands.Load(ctx, cfg)
	fmt.Println(report.String())

	jobs := jobmgr.NewManager(func(msg string) {
		log.Debug().Str("job", msg).Msg("job status")
	})
	defer jobs.StopAll()
	commands.StartRefreshers(ctx, jobs, report.Commands(), cfg.CatalogRefresh)
	log.Info().Strs("jobs", jobs.List()).Msg(jobs.Status())

	bot := discord.New(cfg, reg, report)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx, discord.DefaultEvents()); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Stringer("signal", s).Msg("Received signal, shutting down...")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
		cancel()
	}

	log.Info().Msg("Discord bot exited cleanly")
}
