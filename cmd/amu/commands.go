package amu

import (
	"fmt"

	"github.com/arthur-debert/amu/internal/version"
	"github.com/arthur-debert/amu/pkg/commands"
	"github.com/arthur-debert/amu/pkg/config"
	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// sourceAndTarget accepts <source> [target]
func sourceAndTarget(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return errors.New(errors.ErrInvalidInput, "missing required argument <source>")
	case len(args) > 2:
		return errors.Newf(errors.ErrInvalidInput, "too many arguments: expected <source> [target], got %d", len(args))
	}
	return nil
}

func splitSourceTarget(args []string) (string, string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	return args[0], ""
}

func optionalTarget(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}

func (a *app) newAddCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:         "add <source> [target]",
		Short:       MsgAddShort,
		Long:        MsgAddLong,
		Example:     MsgAddExample,
		GroupID:     groupLinks,
		Args:        sourceAndTarget,
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := splitSourceTarget(args)
			result, err := commands.Add(cmd.Context(), a.deps, commands.AddOptions{
				Source: source,
				Target: target,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result, false)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func (a *app) newRemoveCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:         "remove <source> [target]",
		Short:       MsgRemoveShort,
		Long:        MsgRemoveLong,
		GroupID:     groupLinks,
		Args:        sourceAndTarget,
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := splitSourceTarget(args)
			result, err := commands.Remove(cmd.Context(), a.deps, commands.RemoveOptions{
				Source: source,
				Target: target,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result, false)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func (a *app) newUpdateCmd() *cobra.Command {
	var (
		dryRun bool
		all    bool
		source string
	)

	cmd := &cobra.Command{
		Use:         "update [target]",
		Short:       MsgUpdateShort,
		Long:        MsgUpdateLong,
		GroupID:     groupLinks,
		Args:        cobra.MaximumNArgs(1),
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Update(cmd.Context(), a.deps, commands.UpdateOptions{
				Selector: commands.Selector{Target: optionalTarget(args), All: all},
				Source:   source,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}
			if err := a.render(cmd, result, false); err != nil {
				return err
			}
			if result.HasFailures() {
				return issuesFound()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	cmd.Flags().StringVarP(&source, "source", "s", "", MsgFlagSource)
	return cmd
}

func (a *app) newRestoreCmd() *cobra.Command {
	var (
		dryRun bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:         "restore [target]",
		Short:       MsgRestoreShort,
		Long:        MsgRestoreLong,
		GroupID:     groupLinks,
		Args:        cobra.MaximumNArgs(1),
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Restore(cmd.Context(), a.deps, commands.RestoreOptions{
				Selector: commands.Selector{Target: optionalTarget(args), All: all},
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}
			if err := a.render(cmd, result, false); err != nil {
				return err
			}
			if result.HasFailures() {
				return issuesFound()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}

func (a *app) newClearCmd() *cobra.Command {
	var (
		dryRun bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:         "clear [target]",
		Short:       MsgClearShort,
		Long:        MsgClearLong,
		GroupID:     groupLinks,
		Args:        cobra.MaximumNArgs(1),
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Clear(cmd.Context(), a.deps, commands.ClearOptions{
				Selector: commands.Selector{Target: optionalTarget(args), All: all},
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}
			if err := a.render(cmd, result, false); err != nil {
				return err
			}
			if result.HasFailures() {
				return issuesFound()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	var (
		all     bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:         "list [target]",
		Short:       MsgListShort,
		Long:        MsgListLong,
		GroupID:     groupInspect,
		Args:        cobra.MaximumNArgs(1),
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.List(a.deps, commands.ListOptions{
				Selector: commands.Selector{Target: optionalTarget(args), All: all},
				Verbose:  verbose,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result, false)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	// Shadows the global -v for this command
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, MsgFlagListVerbose)
	return cmd
}

func (a *app) newStatusCmd() *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:         "status [target]",
		Short:       MsgStatusShort,
		Long:        MsgStatusLong,
		Example:     MsgStatusExample,
		GroupID:     groupInspect,
		Args:        cobra.MaximumNArgs(1),
		Annotations: setupAnnotation(setupTool),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Status(cmd.Context(), a.deps, commands.StatusOptions{
				Selector: commands.Selector{Target: optionalTarget(args), All: all},
			})
			if err != nil {
				return err
			}
			if err := a.render(cmd, result, asJSON); err != nil {
				return err
			}
			if result.Report.Summary.HasIssues() {
				return issuesFound()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	cmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:         "config",
		Short:       MsgConfigShort,
		GroupID:     groupMisc,
		Args:        cobra.NoArgs,
		Annotations: setupAnnotation(setupSettings),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}
			data, err := a.settings.MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: groupMisc,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               groupMisc,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}

// newManCmd writes the roff manual page for the whole command tree
func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "AMU",
				Section: "1",
				Source:  "amu " + version.Version,
				Manual:  "amu manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
