// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"io"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/ui/json"
	"github.com/arthur-debert/amu/pkg/ui/terminal"
	"github.com/arthur-debert/amu/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Options tune the human renderers
type Options struct {
	// ConflictLines caps the diagnostic lines shown per conflict
	ConflictLines int
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output: a color terminal gets FormatTerminal,
// anything else FormatText.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch Resolve(format, output) {
	case FormatTerminal:
		return terminal.New(output, opts.ConflictLines), nil
	case FormatText:
		return text.New(output, opts.ConflictLines), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", format)
	}
}
