// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/amu/pkg/commands"
	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/linkstate"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{
		output:  output,
		encoder: encoder,
	}
}

// statusDocument is the JSON shape of a status report
type statusDocument struct {
	Targets      []linkstate.TargetResult `json:"targets"`
	Summary      linkstate.Summary        `json:"summary"`
	Unregistered string                   `json:"unregistered,omitempty"`
}

// RenderResult renders any result type as JSON. A status result is
// rendered as its report.
func (r *Renderer) RenderResult(result interface{}) error {
	if status, ok := result.(*commands.StatusResult); ok {
		report := status.Report
		if report == nil {
			report = linkstate.NewReport()
		}
		return r.encoder.Encode(statusDocument{
			Targets:      report.Targets,
			Summary:      report.Summary,
			Unregistered: status.Unregistered,
		})
	}
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}
