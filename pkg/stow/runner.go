package stow

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner is the Planner backed by the real link tool
type Runner struct {
	binary string
	logger zerolog.Logger
}

// NewRunner creates a runner invoking binary, or DefaultBinary when empty
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{
		binary: binary,
		logger: logging.GetLogger("stow"),
	}
}

// Binary returns the executable this runner invokes
func (r *Runner) Binary() string {
	return r.binary
}

// Plan runs the tool in simulate mode and returns its stderr. A non-zero
// exit is not an error here: conflicts are reported that way and the
// transcript is what callers inspect. Failing to start the tool is.
func (r *Runner) Plan(ctx context.Context, mode Mode, source, target string) (string, error) {
	args, err := Args(mode, true, source, target)
	if err != nil {
		return "", err
	}

	stderr, runErr := r.run(ctx, args)
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			return "", errors.Wrapf(runErr, errors.ErrLinkTool, "stow command failed to start").
				WithDetail("binary", r.binary)
		}
		r.logger.Debug().Err(runErr).Str("mode", mode.String()).Msg("Simulation exited non-zero")
	}
	return stderr, nil
}

// Apply runs the tool for real
func (r *Runner) Apply(ctx context.Context, mode Mode, source, target string) error {
	args, err := Args(mode, false, source, target)
	if err != nil {
		return err
	}

	stderr, runErr := r.run(ctx, args)
	if runErr != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = runErr.Error()
		}
		return errors.Newf(errors.ErrLinkTool, "stow command failed: %s", msg).
			WithDetail("mode", mode.String()).
			WithDetail("source", source).
			WithDetail("target", target).
			WithDetail("stderr", stderr)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, args []string) (string, error) {
	logging.LogCommand(r.logger, r.binary, args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if stdout.Len() > 0 {
		r.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		r.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}
	if err != nil {
		r.logger.Debug().Err(err).Strs("args", args).Msg("Command failed")
	}

	return stderr.String(), err
}

// CheckInstalled fails unless binary can be found on PATH
func CheckInstalled(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return errors.New(errors.ErrLinkToolNotFound, installHint(binary)).
			WithDetail("binary", binary).
			WithDetail("cause", err.Error())
	}
	return nil
}

func installHint(binary string) string {
	return binary + " is not installed\n\n" +
		"Install with:\n" +
		"  macOS:  brew install stow\n" +
		"  Ubuntu: sudo apt install stow\n" +
		"  Arch:   sudo pacman -S stow"
}
