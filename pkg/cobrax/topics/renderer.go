package topics

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns a topic's raw text into display text. ext is the topic
// file's extension, dot included.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer shows topics as written
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// MarkdownRenderer renders .md topics with glamour. Other extensions, and
// anything glamour fails on, are shown as written.
type MarkdownRenderer struct {
	// Style is a glamour style name or path. Empty picks one from the
	// terminal background.
	Style string

	// WrapWidth is the word wrap column, 0 keeps glamour's default
	WrapWidth int
}

// NewMarkdownRenderer returns a renderer that honours NO_COLOR
func NewMarkdownRenderer() *MarkdownRenderer {
	r := &MarkdownRenderer{}
	if os.Getenv("NO_COLOR") != "" {
		r.Style = "notty"
	}
	return r
}

func (r *MarkdownRenderer) Render(content string, ext string) string {
	if !strings.EqualFold(ext, ".md") {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.WrapWidth > 0 {
		options = append(options, glamour.WithWordWrap(r.WrapWidth))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
