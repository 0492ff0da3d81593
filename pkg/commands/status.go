package commands

import (
	"context"

	"github.com/arthur-debert/amu/pkg/linkstate"
	"github.com/arthur-debert/amu/pkg/logging"
)

// StatusOptions defines the options for Status
type StatusOptions struct {
	Selector
}

// StatusResult is returned by Status
type StatusResult struct {
	Selection
	Report *linkstate.Report `json:"report"`
}

// Status classifies every registered pair of the selected targets
func Status(ctx context.Context, deps Deps, opts StatusOptions) (*StatusResult, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("command", "Status").Msg("Executing command")
	defer logging.LogOperationStart(log, "status")()

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	sel, err := opts.Selector.resolve(reg)
	if err != nil {
		return nil, err
	}

	classifier := linkstate.NewClassifier(deps.FS, deps.Planner)
	report := linkstate.NewReport()
	for _, target := range sel.Targets {
		for _, source := range reg.SourcesOf(target) {
			report.Add(target, source, classifier.Classify(ctx, source, target))
		}
	}

	log.Info().
		Int("ok", report.Summary.OK).
		Int("warning", report.Summary.Warning).
		Int("error", report.Summary.Error).
		Msg("Command finished")
	return &StatusResult{Selection: sel, Report: report}, nil
}
