package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/stow"
)

// RestoreOptions defines the options for Restore
type RestoreOptions struct {
	Selector
	DryRun bool
}

// RestoreResult is returned by Restore
type RestoreResult struct {
	*BatchResult
}

// Restore links every registered pair of the selected targets, typically
// on a fresh machine where the registry was copied over. A missing source
// or target counts as a failure.
func Restore(ctx context.Context, deps Deps, opts RestoreOptions) (*RestoreResult, error) {
	log := logging.GetLogger("commands.restore")
	log.Debug().Str("command", "Restore").Msg("Executing command")
	defer logging.LogOperationStart(log, "restore")()

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	sel, err := opts.Selector.resolve(reg)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{BatchResult: newBatch(sel, opts.DryRun)}
	for _, target := range sel.Targets {
		for _, source := range reg.SourcesOf(target) {
			result.record(target, restore(ctx, deps, source, target, opts.DryRun))
		}
	}

	log.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Command finished")
	return result, nil
}

func restore(ctx context.Context, deps Deps, source, target string, dryRun bool) PairResult {
	logger := logging.GetLogger("commands.restore")
	pair := PairResult{Source: source}

	if err := paths.RequireDir(source, paths.RoleSource); err != nil {
		return failed(pair, err)
	}
	if err := paths.RequireDir(target, paths.RoleTarget); err != nil {
		return failed(pair, err)
	}

	if dryRun {
		plan, err := stow.PlanCreate(ctx, deps.Planner, source, target)
		if err != nil {
			return failed(pair, err)
		}
		pair.Outcome = OutcomePlanned
		pair.Plan = stow.ParsePlan(plan)
		return pair
	}

	if err := stow.ApplyCreate(ctx, deps.Planner, source, target); err != nil {
		logger.Warn().Err(err).Str("source", source).Str("target", target).Msg("Restore failed")
		return failed(pair, err)
	}
	pair.Outcome = OutcomeApplied
	return pair
}
