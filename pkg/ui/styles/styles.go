// Package styles defines the visual styling for amu's terminal output.
//
// Styles have semantic names (Success, Warning, Path, ...) and adaptive
// colors that adjust to light and dark terminal themes. The definitions
// live in the embedded styles.yaml.
package styles

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Semantic style names
const (
	Header  = "Header"
	Success = "Success"
	Warning = "Warning"
	Error   = "Error"
	Muted   = "Muted"
	DryRun  = "DryRun"
	Path    = "Path"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Faint      bool   `yaml:"faint,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Sheet maps semantic names to lipgloss styles
type Sheet map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

var (
	defaultOnce  sync.Once
	defaultSheet Sheet
)

// Default returns the sheet built from the embedded styles.yaml. If that
// cannot be parsed every style is unstyled.
func Default() Sheet {
	defaultOnce.Do(func() {
		sheet, err := Parse(embeddedStyles)
		if err != nil {
			sheet = Sheet{}
		}
		defaultSheet = sheet
	})
	return defaultSheet
}

// Parse builds a sheet from YAML style definitions
func Parse(data []byte) (Sheet, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	sheet := make(Sheet, len(config.Styles))
	for name, def := range config.Styles {
		sheet[name] = buildStyle(def, colors)
	}
	return sheet, nil
}

// buildStyle constructs a lipgloss style from a style definition. Unknown
// color names are ignored.
func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}

	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}

	return style
}

// Get returns the named style, or an empty style for unknown names
func (s Sheet) Get(name string) lipgloss.Style {
	if style, ok := s[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text
func (s Sheet) Render(name, text string) string {
	return s.Get(name).Render(text)
}
