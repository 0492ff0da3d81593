package amu

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpEmphasis reports whether help text may carry ANSI styling
func helpEmphasis() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// templateFuncs are the usage template helpers. With emphasis off they
// only change case.
func templateFuncs(emphasis bool) template.FuncMap {
	bold := func(s string) string {
		if !emphasis {
			return s
		}
		return pterm.Bold.Sprint(s)
	}
	return template.FuncMap{
		"bold":  bold,
		"upper": strings.ToUpper,
		"boldUpper": func(s string) string {
			return bold(strings.ToUpper(s))
		},
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(templateFuncs(helpEmphasis()))
}
