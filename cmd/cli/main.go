package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keshon/bazaar-bot/internal/commands"
	"github.com/keshon/bazaar-bot/internal/config"
	"github.com/keshon/bazaar-bot/internal/logging"
	v "github.com/keshon/bazaar-bot/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "bazaar-cli",
		Short:         v.AppName + " from the terminal",
		Long:          v.AppDescription + "\n\nRuns bot commands as text invocations and prints their replies.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "commands",
			Short: "Load every command and print the load report",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, report := commands.Load(cmd.Context(), cfg)
				fmt.Fprintln(cmd.OutOrStdout(), report.String())
				return nil
			},
		},
		&cobra.Command{
			Use:     "run <command> [args...]",
			Short:   "Run a command as if it was typed with the prefix",
			Example: "  bazaar-cli run bazaar enchanted diamond\n  bazaar-cli run ping",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, _ := commands.Load(cmd.Context(), cfg)
				return runText(cmd.Context(), reg, args, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (built %s, %s)\n", v.AppName, v.BuildDate, v.GoVersion)
			},
		},
	)
	root.PersistentFlags().Bool("debug", false, "shorthand for LOG_LEVEL=debug")
	root.PersistentPreRunE = chainDebug(root.PersistentPreRunE)
	return root
}

// chainDebug lets --debug override the configured level after config loads.
func chainDebug(next func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := next(cmd, args); err != nil {
			return err
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logging.Setup("debug")
			log.Debug().Msg("debug logging enabled")
		}
		return nil
	}
}
