package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/slugnorris/pkg/config"
	"github.com/sdejongh/slugnorris/pkg/logging"
	"github.com/sdejongh/slugnorris/pkg/metrics"
	"github.com/sdejongh/slugnorris/pkg/output"
	"github.com/sdejongh/slugnorris/pkg/rename"
	"github.com/sdejongh/slugnorris/pkg/storage"
)

// ExitError carries a process exit code for runs that completed with
// per-entry failures. It has already been reported, main prints nothing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename [path]",
		Short: "Rename a tree into slug form",
		Long: `Recursively rename files and directories into lowercase, URL-safe slugs.
Extensions, leading and trailing markers are preserved. Existing entries are
never overwritten. Without --force the path must be inside a git work tree;
tracked entries are moved with "git mv" so their history follows them.

Running on the current directory keeps its name and processes its children.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRename,
	}

	cmd.Flags().BoolVarP(&renameFlags.DryRun, "dry-run", "n", false, "preview the renames against an in-memory copy of the tree")
	cmd.Flags().BoolVarP(&renameFlags.DryRun, "dry", "d", false, "alias for --dry-run")
	cmd.Flags().MarkHidden("dry")
	addRenameFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	renameFlags.Path = "."
	if len(args) > 0 {
		renameFlags.Path = args[0]
	}

	t, err := resolveTarget(renameFlags.Path)
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	operation, err := createRenameOperation(cfg, t)
	if err != nil {
		return fmt.Errorf("failed to create rename operation: %w", err)
	}

	git, err := checkGitSafety(ctx, t, operation.Force)
	if err != nil {
		return err
	}

	backend, err := storage.NewLocal(t.Base)
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}
	defer backend.Close()

	logger, err := createLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	formatter := createFormatter(cfg, out)

	engine := rename.NewEngine(backend, git, formatter, logger, operation, t.Start)
	engine.SetOutput(out)

	report, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}

	if renameFlags.Report != "" {
		if err := output.WriteReport(report, renameFlags.Report, renameFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if renameFlags.MetricsFile != "" {
		recorder := metrics.NewRecorder()
		recorder.RecordReport(report)
		if err := recorder.WriteTextfile(renameFlags.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if code := report.Status.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// createFormatter picks the formatter for the configured output
func createFormatter(cfg *config.Config, out io.Writer) output.Formatter {
	verbosity := output.Normal
	switch {
	case cfg.Output.Quiet:
		verbosity = output.Quiet
	case cfg.Output.Verbose:
		verbosity = output.Verbose
	}

	switch cfg.Output.Format {
	case "json":
		return output.NewJSONFormatter(verbosity)
	default:
		if cfg.Output.Progress && output.IsTerminal(out) {
			return output.NewProgressFormatter(verbosity)
		}
		return output.NewHumanFormatter(verbosity)
	}
}

// createLogger creates a logger from the logging flags, falling back to the
// configuration file when --log-file is not given
func createLogger(cmd *cobra.Command, cfg *config.Config) (logging.Logger, error) {
	path := renameFlags.LogFile
	format := renameFlags.LogFormat
	level := renameFlags.LogLevel

	if path == "" {
		if !cfg.Logging.Enabled || cfg.Logging.File == "" {
			return logging.NewNullLogger(), nil
		}
		path = cfg.Logging.File
		if !cmd.Flags().Changed("log-format") {
			format = cfg.Logging.Format
		}
		if !cmd.Flags().Changed("log-level") {
			level = cfg.Logging.Level
		}
	}

	parsedLevel, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var logFormat logging.Format
	switch format {
	case "json":
		logFormat = logging.FormatJSON
	case "console":
		logFormat = logging.FormatConsole
	default:
		return nil, fmt.Errorf("invalid log format: %s (valid: json, console)", format)
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       path,
		Format:     logFormat,
		Level:      parsedLevel,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
