package command

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/keshon/bazaar-bot/pkg/cmd"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// initConcurrency bounds how many initializers run at once.
const initConcurrency = 4

// nameRule is Discord's rule for chat command names.
var nameRule = regexp.MustCompile(`^[-_\p{Ll}\p{N}]{1,32}$`)

const maxDescription = 100

// Load validates defs in order and registers the ones that pass, wrapped in mws.
// Initializers run concurrently; registration happens afterwards in manifest
// order, so the result does not depend on initializer timing. A malformed
// definition is reported and skipped, never fatal.
func Load(ctx context.Context, reg *cmd.Registry, defs []Definition, mws ...cmd.Middleware) *Report {
	report := NewReport("Commands Loaded")
	initErrs := runInitializers(ctx, defs)

	for i, def := range defs {
		source := fmt.Sprintf("%T", def)
		name := def.Name()

		if t, ok := def.(Toggle); ok && !t.Enabled() {
			report.Skip(source, name, "disabled")
			continue
		}
		if err := initErrs[i]; err != nil {
			report.Fail(source, name, fmt.Sprintf("init failed with reason: %v", err))
			continue
		}
		aliases, err := Validate(def)
		if err != nil {
			report.Fail(source, name, err.Error())
			continue
		}

		c := cmd.Apply(&Adapter{Def: def}, mws...)
		if err := reg.Register(c, aliases...); err != nil {
			report.Fail(source, name, err.Error())
			continue
		}
		registered := reg.Aliases(name)
		log.Debug().Str("command", name).Strs("aliases", registered).Strs("layers", cmd.Layers(c)).Msg("command registered")
		report.OK(source, name, c, registered...)
	}

	for _, row := range report.Rows {
		switch row.Status {
		case StatusFailed:
			log.Warn().Str("command", row.Name).Str("source", row.Source).Msg(row.Reason)
		case StatusSkipped:
			log.Debug().Str("command", row.Name).Msg("command disabled")
		}
	}
	log.Info().Int("registered", len(report.Commands())).Int("candidates", len(defs)).Msg("commands loaded")
	return report
}

func runInitializers(ctx context.Context, defs []Definition) []error {
	errs := make([]error, len(defs))

	var g errgroup.Group
	g.SetLimit(initConcurrency)
	for i, def := range defs {
		initializer, ok := def.(Initializer)
		if !ok {
			continue
		}
		if t, ok := def.(Toggle); ok && !t.Enabled() {
			continue
		}
		g.Go(func() error {
			errs[i] = Safely(def.Name(), PhaseInit, func() error { return initializer.Init(ctx) })
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// Validate checks the shape of a definition and returns its aliases.
func Validate(def Definition) ([]string, error) {
	name := def.Name()
	if name == "" {
		return nil, errors.New("command name is missing")
	}
	if !nameRule.MatchString(name) {
		return nil, fmt.Errorf("invalid command name: %q", name)
	}

	desc := def.Description()
	if desc == "" {
		return nil, errors.New("command description is missing")
	}
	if utf8.RuneCountInString(desc) > maxDescription {
		return nil, fmt.Errorf("command description is longer than %d characters", maxDescription)
	}

	if p, ok := def.(PermissionProvider); ok {
		if _, err := PermissionBits(p.Permissions()); err != nil {
			return nil, err
		}
	}

	var aliases []string
	if a, ok := def.(Aliaser); ok {
		for _, alias := range a.Aliases() {
			if !nameRule.MatchString(alias) {
				return nil, fmt.Errorf("invalid alias: %q", alias)
			}
			aliases = append(aliases, alias)
		}
	}
	return aliases, nil
}
