// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/amu/pkg/ui/styles"
	"github.com/arthur-debert/amu/pkg/ui/text"
)

// Renderer is the text layout painted with the default style sheet
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer, conflictLines int) *Renderer {
	return NewWithSheet(w, styles.Default(), conflictLines)
}

// NewWithSheet creates a terminal renderer using a specific style sheet
func NewWithSheet(w io.Writer, sheet styles.Sheet, conflictLines int) *Renderer {
	return &Renderer{Renderer: text.NewStyled(w, sheetPainter{sheet}, conflictLines)}
}

type sheetPainter struct {
	sheet styles.Sheet
}

func (p sheetPainter) Paint(style, s string) string {
	return p.sheet.Render(style, s)
}
