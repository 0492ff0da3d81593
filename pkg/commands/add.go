package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/stow"
)

// AddOptions defines the options for Add
type AddOptions struct {
	Source string
	// Target defaults to the current directory
	Target string
	DryRun bool
}

// AddResult describes a registered binding
type AddResult struct {
	Source string           `json:"source"`
	Target string           `json:"target"`
	DryRun bool             `json:"dry_run"`
	Plan   []stow.Operation `json:"plan,omitempty"`
}

// Add registers source under target and links it. The registry is only
// saved once linking succeeded; a dry run saves nothing.
func Add(ctx context.Context, deps Deps, opts AddOptions) (*AddResult, error) {
	log := logging.GetLogger("commands.add")
	log.Debug().Str("command", "Add").Msg("Executing command")
	defer logging.LogOperationStart(log, "add")()

	source, err := paths.Normalize(opts.Source, paths.RoleSource)
	if err != nil {
		return nil, err
	}
	if err := paths.RequireDir(source, paths.RoleSource); err != nil {
		return nil, err
	}
	target, err := paths.ResolveTarget(opts.Target)
	if err != nil {
		return nil, err
	}
	if err := paths.RequireDir(target, paths.RoleTarget); err != nil {
		return nil, err
	}

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	if err := reg.Add(target, source); err != nil {
		return nil, err
	}

	result := &AddResult{Source: source, Target: target, DryRun: opts.DryRun}

	if opts.DryRun {
		plan, err := stow.PlanCreate(ctx, deps.Planner, source, target)
		if err != nil {
			return nil, err
		}
		result.Plan = stow.ParsePlan(plan)
		return result, nil
	}

	if err := stow.ApplyCreate(ctx, deps.Planner, source, target); err != nil {
		return nil, err
	}
	if err := deps.Store.Save(reg); err != nil {
		return nil, err
	}

	log.Info().Str("source", source).Str("target", target).Msg("Command finished")
	return result, nil
}
