package amu

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Merge multiple source directories into one target with symlinks"
	MsgAddShort        = "Register a source directory and link it into a target"
	MsgRemoveShort     = "Unlink a source directory and unregister it"
	MsgUpdateShort     = "Relink registered sources to pick up added and deleted files"
	MsgRestoreShort    = "Link every registered source (new machine setup)"
	MsgListShort       = "List registered sources"
	MsgStatusShort     = "Show the link state of registered sources"
	MsgClearShort      = "Unlink and unregister every source of a target"
	MsgTopicsShort     = "Display help topics"
	MsgTopicsLong      = "Display a help topic, or the list of topics when no name is given."
	MsgConfigShort     = "Print the effective settings as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Write the manual page in roff format"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagDryRun      = "Show what would be done without making changes"
	MsgFlagAll         = "Act on every registered target"
	MsgFlagSource      = "Update every target that references this source"
	MsgFlagListVerbose = "Also show the symlinks present in each target"
	MsgFlagJSON        = "Output in JSON format"
	MsgFlagDefaults    = "Print the built-in defaults instead of the effective settings"

	// Group titles
	MsgGroupLinks   = "Link commands:"
	MsgGroupInspect = "Inspect commands:"
	MsgGroupMisc    = "Misc:"

	MsgVersionFormat = "amu version %s\n  commit: %s\n  built:  %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/clear-long.txt
	msgClearLongRaw string
	MsgClearLong    = strings.TrimSpace(msgClearLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
