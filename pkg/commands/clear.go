package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/stow"
)

// ClearOptions defines the options for Clear
type ClearOptions struct {
	Selector
	DryRun bool
}

// ClearResult is a BatchResult plus the targets that were fully cleared
type ClearResult struct {
	*BatchResult
	All     bool     `json:"all"`
	Cleared []string `json:"cleared"`
}

// Clear unlinks every source of the selected targets and drops them from
// the registry. A source whose unlinking fails stays registered so that a
// later run can retry it; sources that no longer exist are dropped without
// unlinking.
func Clear(ctx context.Context, deps Deps, opts ClearOptions) (*ClearResult, error) {
	log := logging.GetLogger("commands.clear")
	log.Debug().Str("command", "Clear").Msg("Executing command")
	defer logging.LogOperationStart(log, "clear")()

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	sel, err := opts.Selector.resolve(reg)
	if err != nil {
		return nil, err
	}

	result := &ClearResult{
		BatchResult: newBatch(sel, opts.DryRun),
		All:         opts.All,
		Cleared:     []string{},
	}

	for _, target := range sel.Targets {
		failures := 0
		for _, source := range reg.SourcesOf(target) {
			pair := unlink(ctx, deps, source, target, opts.DryRun)
			result.record(target, pair)
			if pair.Outcome == OutcomeFailed {
				failures++
				continue
			}
			if !opts.DryRun {
				// Registered pairs always remove cleanly
				_ = reg.Remove(target, source)
			}
		}
		if failures == 0 {
			result.Cleared = append(result.Cleared, target)
		}
	}

	if !opts.DryRun && len(sel.Targets) > 0 {
		if err := deps.Store.Save(reg); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("cleared", len(result.Cleared)).
		Int("failed", result.Failed).
		Msg("Command finished")
	return result, nil
}

func unlink(ctx context.Context, deps Deps, source, target string, dryRun bool) PairResult {
	logger := logging.GetLogger("commands.clear")
	pair := PairResult{Source: source}

	if !paths.Exists(source) || !paths.Exists(target) {
		pair.Outcome = OutcomeSkipped
		pair.Error = "source or target not found"
		return pair
	}

	if dryRun {
		plan, err := stow.PlanRemove(ctx, deps.Planner, source, target)
		if err != nil {
			return failed(pair, err)
		}
		pair.Outcome = OutcomePlanned
		pair.Plan = stow.ParsePlan(plan)
		return pair
	}

	if err := stow.ApplyRemove(ctx, deps.Planner, source, target); err != nil {
		logger.Warn().Err(err).Str("source", source).Str("target", target).Msg("Unlink failed")
		return failed(pair, err)
	}
	pair.Outcome = OutcomeApplied
	return pair
}
