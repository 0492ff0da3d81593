package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/registry"
	"github.com/arthur-debert/amu/pkg/stow"
)

// UpdateOptions defines the options for Update
type UpdateOptions struct {
	Selector
	// Source, when set, selects every target that lists it instead
	Source string
	DryRun bool
}

// UpdateResult is returned by Update
type UpdateResult struct {
	*BatchResult
	// Source echoes the --source filter, if any
	Source string `json:"source,omitempty"`
}

// Update relinks every registered source of the selected targets so new
// files get linked and deleted ones unlinked. Missing sources are skipped
// and failures are counted without stopping.
func Update(ctx context.Context, deps Deps, opts UpdateOptions) (*UpdateResult, error) {
	log := logging.GetLogger("commands.update")
	log.Debug().Str("command", "Update").Msg("Executing command")
	defer logging.LogOperationStart(log, "update")()

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}

	sel, err := selectForUpdate(reg, opts)
	if err != nil {
		return nil, err
	}

	result := &UpdateResult{BatchResult: newBatch(sel, opts.DryRun), Source: opts.Source}
	for _, target := range sel.Targets {
		for _, source := range reg.SourcesOf(target) {
			result.record(target, refresh(ctx, deps, source, target, opts.DryRun))
		}
	}

	log.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("Command finished")
	return result, nil
}

func selectForUpdate(reg *registry.Registry, opts UpdateOptions) (Selection, error) {
	if opts.Source == "" || reg.IsEmpty() {
		return opts.Selector.resolve(reg)
	}

	source, err := paths.Canonical(opts.Source)
	if err != nil {
		return Selection{}, err
	}
	targets := reg.TargetsWithSource(source)
	if targets == nil {
		targets = []string{}
	}
	return Selection{Targets: targets}, nil
}

func refresh(ctx context.Context, deps Deps, source, target string, dryRun bool) PairResult {
	logger := logging.GetLogger("commands.update")
	pair := PairResult{Source: source}

	if !paths.Exists(source) {
		pair.Outcome = OutcomeSkipped
		pair.Error = "source not found"
		return pair
	}

	if dryRun {
		plan, err := stow.PlanRefresh(ctx, deps.Planner, source, target)
		if err != nil {
			return failed(pair, err)
		}
		pair.Outcome = OutcomePlanned
		pair.Plan = stow.ParsePlan(plan)
		return pair
	}

	if err := stow.ApplyRefresh(ctx, deps.Planner, source, target); err != nil {
		logger.Warn().Err(err).Str("source", source).Str("target", target).Msg("Refresh failed")
		return failed(pair, err)
	}
	pair.Outcome = OutcomeApplied
	return pair
}

func failed(pair PairResult, err error) PairResult {
	pair.Outcome = OutcomeFailed
	pair.Error = err.Error()
	return pair
}
