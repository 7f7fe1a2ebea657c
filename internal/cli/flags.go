package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/slugnorris/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"also show unchanged and ignored entries",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"show failures only",
	)
}

// GetGlobalFlags returns the global flags
func GetGlobalFlags() *GlobalFlags {
	return &globalFlags
}

// RenameFlags holds the flags shared by the rename and preview commands
type RenameFlags struct {
	Path       string
	DryRun     bool
	NoRecurse  bool
	IgnoreRoot bool
	Force      bool

	MaxLength  int
	NumDigits  int
	WarnLimit  int
	ErrorLimit int

	IgnoreGlobs []string
	IgnoreStems []string
	IgnoreExts  []string
	Prefixes    []string
	Suffixes    []string
	Extensions  []string
	NoDashExts  []string

	Output       string
	Progress     bool
	Report       string
	ReportFormat string
	MetricsFile  string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var renameFlags RenameFlags

// addRenameFlags registers the rule, output and logging flags on cmd
func addRenameFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.BoolVar(&renameFlags.NoRecurse, "no-recurse", false, "rename only the given entry, do not descend")
	f.BoolVar(&renameFlags.IgnoreRoot, "ignore-root", false, "keep the root name, process its children only")
	f.BoolVarP(&renameFlags.Force, "force", "f", false, "run even outside a git work tree")

	f.IntVar(&renameFlags.MaxLength, "max-length", 0, "maximum stem length, 0 for unlimited")
	f.IntVar(&renameFlags.NumDigits, "num-digits", 0, "zero-pad a leading number to this many digits")
	f.IntVar(&renameFlags.WarnLimit, "warn-limit", 0, "warn about paths longer than this")
	f.IntVar(&renameFlags.ErrorLimit, "error-limit", 0, "fail on paths longer than this")

	f.StringArrayVar(&renameFlags.IgnoreGlobs, "ignore-glob", nil, "glob pattern to skip (repeatable, trailing / for directories)")
	f.StringArrayVar(&renameFlags.IgnoreStems, "ignore-stem", nil, "name stem to skip (repeatable)")
	f.StringArrayVar(&renameFlags.IgnoreExts, "ignore-ext", nil, "extension to skip (repeatable)")
	f.StringArrayVar(&renameFlags.Prefixes, "prefix", nil, "prefix marker preserved verbatim (repeatable)")
	f.StringArrayVar(&renameFlags.Suffixes, "suffix", nil, "suffix marker preserved verbatim (repeatable)")
	f.StringArrayVar(&renameFlags.Extensions, "ext", nil, "additional recognized extension (repeatable)")
	f.StringArrayVar(&renameFlags.NoDashExts, "no-dash-ext", nil, "extension whose files use underscores (repeatable)")

	f.StringVarP(&renameFlags.Output, "output", "o", "", "output format: human, json")
	f.BoolVar(&renameFlags.Progress, "progress", false, "show a progress bar on terminals")
	f.StringVar(&renameFlags.Report, "report", "", "write the full event log to file")
	f.StringVar(&renameFlags.ReportFormat, "report-format", "human", "report format: human, json")
	f.StringVar(&renameFlags.MetricsFile, "metrics-file", "", "write Prometheus metrics to file (textfile collector format)")

	// Logging flags
	f.StringVar(&renameFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	f.StringVar(&renameFlags.LogFormat, "log-format", "json", "log format: json, console")
	f.StringVar(&renameFlags.LogLevel, "log-level", "debug", "log level: debug, info, warn, error")
}
