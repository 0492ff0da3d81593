package linkstate

import (
	"context"
	"os"

	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/stow"
	"github.com/rs/zerolog"
)

// Classifier computes the Status of a (source, target) pair
type Classifier struct {
	fs      filesystem.FS
	walker  *Walker
	planner stow.Planner
	logger  zerolog.Logger
}

// NewClassifier creates a classifier reading through fsys and simulating
// link runs with planner
func NewClassifier(fsys filesystem.FS, planner stow.Planner) *Classifier {
	return &Classifier{
		fs:      fsys,
		walker:  NewWalker(fsys),
		planner: planner,
		logger:  logging.GetLogger("linkstate.classifier"),
	}
}

// Classify inspects the current filesystem and returns exactly one status.
// It never modifies anything.
func (c *Classifier) Classify(ctx context.Context, source, target string) Status {
	logger := c.logger.With().Str("source", source).Str("target", target).Logger()

	if _, err := c.fs.ReadDir(source); err != nil {
		if os.IsPermission(err) {
			logger.Debug().Err(err).Msg("Source unreadable")
			return PermissionDenied(source)
		}
		logger.Debug().Err(err).Msg("Source missing")
		return SourceNotFound()
	}

	if status, ok := c.checkTarget(target); !ok {
		logger.Debug().Str("status", status.Kind.String()).Msg("Target unusable")
		return status
	}

	findings := Summarize(c.walker.Walk(source, target))
	if len(findings.BrokenLinks) > 0 {
		return BrokenLinks(findings.BrokenLinks)
	}
	if len(findings.RealFiles) > 0 {
		return RealFiles(findings.RealFiles)
	}

	plan, err := stow.PlanCreate(ctx, c.planner, source, target)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not simulate linking, assuming no conflicts")
	} else if stow.HasConflict(plan) {
		return Conflicts(plan)
	}

	logger.Debug().Int("links", findings.LinkCount).Msg("Pair is in sync")
	return OK(findings.LinkCount)
}

func (c *Classifier) checkTarget(target string) (Status, bool) {
	info, err := c.fs.Stat(target)
	if err != nil {
		if os.IsPermission(err) {
			return PermissionDenied(target), false
		}
		return TargetNotFound(), false
	}
	if !info.IsDir() {
		return TargetNotFound(), false
	}
	if _, err := c.fs.ReadDir(target); err != nil && os.IsPermission(err) {
		return PermissionDenied(target), false
	}
	return Status{}, true
}
