package stow

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/amu/pkg/errors"
)

// DefaultBinary is the link tool looked up on PATH
const DefaultBinary = "stow"

// Mode selects what the link tool does with a source tree
type Mode int

const (
	// ModeCreate links the source into the target
	ModeCreate Mode = iota
	// ModeRemove deletes the source's links from the target (-D)
	ModeRemove
	// ModeRefresh removes then recreates the links (-R)
	ModeRefresh
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeRemove:
		return "remove"
	case ModeRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

func (m Mode) flag() string {
	switch m {
	case ModeRemove:
		return "-D"
	case ModeRefresh:
		return "-R"
	default:
		return ""
	}
}

// Planner plans and applies link trees. Plan never touches the target and
// returns the tool's diagnostic transcript. Apply performs the change.
type Planner interface {
	Plan(ctx context.Context, mode Mode, source, target string) (string, error)
	Apply(ctx context.Context, mode Mode, source, target string) error
}

// PlanCreate simulates linking source into target
func PlanCreate(ctx context.Context, p Planner, source, target string) (string, error) {
	return p.Plan(ctx, ModeCreate, source, target)
}

// PlanRemove simulates unlinking source from target
func PlanRemove(ctx context.Context, p Planner, source, target string) (string, error) {
	return p.Plan(ctx, ModeRemove, source, target)
}

// PlanRefresh simulates relinking source into target
func PlanRefresh(ctx context.Context, p Planner, source, target string) (string, error) {
	return p.Plan(ctx, ModeRefresh, source, target)
}

// ApplyCreate links source into target
func ApplyCreate(ctx context.Context, p Planner, source, target string) error {
	return p.Apply(ctx, ModeCreate, source, target)
}

// ApplyRemove unlinks source from target
func ApplyRemove(ctx context.Context, p Planner, source, target string) error {
	return p.Apply(ctx, ModeRemove, source, target)
}

// ApplyRefresh relinks source into target
func ApplyRefresh(ctx context.Context, p Planner, source, target string) error {
	return p.Apply(ctx, ModeRefresh, source, target)
}

// SplitSource splits source into the stow directory and package name
func SplitSource(source string) (parent, leaf string, err error) {
	if source == "" {
		return "", "", errors.New(errors.ErrInvalidInput, "Invalid source path: empty")
	}

	clean := filepath.Clean(source)
	leaf = filepath.Base(clean)
	if leaf == "." || leaf == ".." || leaf == string(filepath.Separator) {
		return "", "", errors.Newf(errors.ErrInvalidInput, "Invalid source path: no directory name: %s", source).
			WithDetail("source", source)
	}

	parent = filepath.Dir(clean)
	if parent == clean {
		return "", "", errors.Newf(errors.ErrInvalidInput, "Invalid source path: no parent directory: %s", source).
			WithDetail("source", source)
	}

	return parent, leaf, nil
}

// Args builds the link tool arguments for one invocation
func Args(mode Mode, simulate bool, source, target string) ([]string, error) {
	parent, leaf, err := SplitSource(source)
	if err != nil {
		return nil, err
	}

	var args []string
	if simulate {
		args = append(args, "-n", "-v")
	}
	args = append(args, "--no-folding")
	if f := mode.flag(); f != "" {
		args = append(args, f)
	}
	args = append(args, "-t", target, "-d", parent, leaf)
	return args, nil
}
