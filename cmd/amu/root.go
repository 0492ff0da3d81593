// Package amu implements the amu command line.
package amu

import (
	"fmt"
	"io"

	"github.com/arthur-debert/amu/internal/version"
	"github.com/arthur-debert/amu/pkg/cobrax/topics"
	"github.com/arthur-debert/amu/pkg/commands"
	"github.com/arthur-debert/amu/pkg/config"
	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/registry"
	"github.com/arthur-debert/amu/pkg/stow"
	"github.com/arthur-debert/amu/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Command groups
const (
	groupLinks   = "links"
	groupInspect = "inspect"
	groupMisc    = "misc"
)

// annotationSetup tells the root pre-run how much to prepare for a command
const (
	annotationSetup = "amu.setup"
	setupSettings   = "settings"
	setupTool       = "tool"
)

// app is the state shared by every command once the root's pre-run has
// finished
type app struct {
	// planner replaces the stow runner when set
	planner stow.Planner

	verbosity int
	format    string

	settings *config.Settings
	deps     commands.Deps
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

func newRootCmd(planner stow.Planner) *cobra.Command {
	initTemplateFormatting()

	a := &app{planner: planner}

	rootCmd := &cobra.Command{
		Use:     "amu",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupLinks, Title: MsgGroupLinks},
		&cobra.Group{ID: groupInspect, Title: MsgGroupInspect},
		&cobra.Group{ID: groupMisc, Title: MsgGroupMisc},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newAddCmd())
	rootCmd.AddCommand(a.newRemoveCmd())
	rootCmd.AddCommand(a.newUpdateCmd())
	rootCmd.AddCommand(a.newRestoreCmd())
	rootCmd.AddCommand(a.newClearCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newStatusCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	tm, err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewMarkdownRenderer(),
	})
	if err == nil {
		rootCmd.AddCommand(newTopicsCmd(tm))
		rootCmd.SetHelpCommandGroupID(groupMisc)
	} else {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// setup loads settings and, for commands that touch links, builds the
// command dependencies
func (a *app) setup(cmd *cobra.Command) error {
	level := cmd.Annotations[annotationSetup]
	if level == "" {
		return nil
	}

	overrides := map[string]interface{}{}
	if a.format != "" {
		overrides["display.format"] = a.format
	}
	settings, err := config.Load(config.Options{Overrides: overrides})
	if err != nil {
		return err
	}
	a.settings = settings

	if level != setupTool {
		return nil
	}

	planner := a.planner
	if planner == nil {
		if err := stow.CheckInstalled(settings.Tool.Binary); err != nil {
			return err
		}
		planner = stow.NewRunner(settings.Tool.Binary)
	}

	a.deps = commands.Deps{
		Store:   registry.NewStore(settings.RegistryFile()),
		Planner: planner,
		FS:      filesystem.NewOS(),
	}
	log.Debug().
		Str("registry", a.deps.Store.Path()).
		Str("tool", settings.Tool.Binary).
		Msg("Command dependencies ready")
	return nil
}

// render writes result in the configured format, or as JSON when asJSON
func (a *app) render(cmd *cobra.Command, result interface{}, asJSON bool) error {
	format, err := ui.ParseFormat(a.settings.Display.Format)
	if err != nil {
		return err
	}
	if asJSON {
		format = ui.FormatJSON
	}

	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout(), ui.Options{
		ConflictLines: a.settings.Display.ConflictLines,
	})
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

// ExitCode reports err on w and returns the process exit code. A command
// that only found issues exits non-zero without a message.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrIssuesFound) {
		return 1
	}

	renderer, rerr := ui.NewRenderer(ui.FormatAuto, w, ui.Options{})
	if rerr == nil {
		_ = renderer.RenderError(err)
	}
	return 1
}

func issuesFound() error {
	return errors.New(errors.ErrIssuesFound, "issues found")
}

func setupAnnotation(level string) map[string]string {
	return map[string]string{annotationSetup: level}
}
