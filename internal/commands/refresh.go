package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
	"github.com/keshon/bazaar-bot/pkg/jobmgr"
)

// StartRefreshers schedules a periodic refresh job for every registered
// command that keeps cached data. It returns the started job names.
func StartRefreshers(ctx context.Context, jobs *jobmgr.Manager, cmds []cmd.Command, interval time.Duration) []string {
	if interval <= 0 {
		return nil
	}
	var started []string
	for _, c := range cmds {
		def, ok := command.DefinitionOf(c)
		if !ok {
			continue
		}
		r, ok := def.(command.Refresher)
		if !ok {
			continue
		}
		name := "refresh:" + def.Name()
		onErr := func(err error) {
			log.Warn().Err(err).Str("job", name).Msg("refresh failed, keeping cached data")
		}
		if err := jobs.StartAsync(ctx, name, jobmgr.Every(interval, r.Refresh, onErr)); err != nil {
			log.Error().Err(err).Str("job", name).Msg("failed to start refresh job")
			continue
		}
		started = append(started, name)
	}
	return started
}
