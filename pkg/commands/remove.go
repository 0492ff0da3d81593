package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/stow"
)

// RemoveOptions defines the options for Remove
type RemoveOptions struct {
	Source string
	// Target defaults to the current directory
	Target string
	DryRun bool
}

// RemoveResult describes an unregistered binding
type RemoveResult struct {
	Source string `json:"source"`
	Target string `json:"target"`
	DryRun bool   `json:"dry_run"`
	// Unlinked is false when the source no longer existed
	Unlinked bool             `json:"unlinked"`
	Plan     []stow.Operation `json:"plan,omitempty"`
}

// Remove unlinks source from target and unregisters it. Neither path has
// to exist any more; a vanished source is unregistered without unlinking.
func Remove(ctx context.Context, deps Deps, opts RemoveOptions) (*RemoveResult, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("command", "Remove").Msg("Executing command")
	defer logging.LogOperationStart(log, "remove")()

	source, err := paths.Canonical(opts.Source)
	if err != nil {
		return nil, err
	}
	target, err := paths.CanonicalTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	if err := reg.Remove(target, source); err != nil {
		return nil, err
	}

	result := &RemoveResult{Source: source, Target: target, DryRun: opts.DryRun}
	canUnlink := paths.Exists(source) && paths.Exists(target)

	if opts.DryRun {
		if canUnlink {
			plan, err := stow.PlanRemove(ctx, deps.Planner, source, target)
			if err != nil {
				return nil, err
			}
			result.Plan = stow.ParsePlan(plan)
			result.Unlinked = true
		}
		return result, nil
	}

	if canUnlink {
		if err := stow.ApplyRemove(ctx, deps.Planner, source, target); err != nil {
			return nil, err
		}
		result.Unlinked = true
	} else {
		log.Info().Str("source", source).Msg("Source or target gone, unregistering without unlinking")
	}

	if err := deps.Store.Save(reg); err != nil {
		return nil, err
	}

	log.Info().Str("source", source).Str("target", target).Msg("Command finished")
	return result, nil
}
