package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format names an output format. The values match display.format.
type Format string

const (
	// FormatAuto picks FormatTerminal or FormatText from the output
	FormatAuto     Format = "auto"
	FormatTerminal Format = "term"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

func (f Format) String() string {
	return string(f)
}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

// ParseFormat maps a format name, case-insensitively, to a Format. Empty
// means FormatAuto.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// Resolve replaces FormatAuto with the concrete format for w. Only a color
// capable terminal gets FormatTerminal; NO_COLOR, pipes, regular files and
// in-memory writers get FormatText.
func Resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	file, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(file).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
