// Package rename walks a directory tree and renames every entry into its
// slug form, against either the real filesystem or an in-memory mirror.
package rename

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sdejongh/slugnorris/pkg/logging"
	"github.com/sdejongh/slugnorris/pkg/models"
	"github.com/sdejongh/slugnorris/pkg/output"
	"github.com/sdejongh/slugnorris/pkg/storage"
	"github.com/sdejongh/slugnorris/pkg/vcs"
)

// Engine orchestrates one rename run
type Engine struct {
	backend   storage.Backend
	git       *vcs.Git
	formatter output.Formatter
	logger    logging.Logger
	operation *models.RenameOperation
	start     string
	out       io.Writer
}

// NewEngine creates a rename engine. start is the path of the walk root
// inside backend. git may be nil; it is never used for dry runs.
func NewEngine(
	backend storage.Backend,
	git *vcs.Git,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.RenameOperation,
	start string,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		backend:   backend,
		git:       git,
		formatter: formatter,
		logger:    logger,
		operation: operation,
		start:     storage.Clean(start),
		out:       os.Stdout,
	}
}

// SetOutput sets the writer handed to the formatter
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run executes the rename operation. The returned error is reserved for
// failures that prevent the walk from starting; per-entry failures are
// reported as events and reflected in the report status.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	if err := e.operation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operation: %w", err)
	}

	report := models.NewRunReport(e.operation.ID, e.operation.Root, e.operation.DryRun)
	logger := e.logger.WithFields(logging.Fields{"run_id": e.operation.ID})

	if e.formatter != nil {
		if err := e.formatter.Start(e.out, report); err != nil {
			return nil, fmt.Errorf("failed to start output: %w", err)
		}
	}

	emit := func(ev models.Event) {
		report.Record(ev)
		logEvent(ctx, logger, ev)
		if e.formatter != nil {
			if err := e.formatter.Event(ev); err != nil {
				logger.Warn(ctx, "formatter failed", logging.Fields{"error": err.Error()})
			}
		}
	}

	target := e.backend
	git := e.git
	if e.operation.DryRun {
		mem, err := e.prepareSandbox(ctx, emit)
		if err != nil {
			if e.formatter != nil {
				e.formatter.Error(err)
			}
			return nil, err
		}
		target = mem
		git = nil
	}

	logger.Info(ctx, "starting rename run", logging.Fields{
		"root":    e.operation.Root,
		"start":   e.start,
		"dry_run": e.operation.DryRun,
		"git":     git != nil,
	})

	walker := NewWalker(target, NewExecutor(target, git, logger), e.operation, logger, emit)
	if !walker.Visit(ctx, e.start, true) {
		report.Fail()
	}
	if err := ctx.Err(); err != nil {
		logger.Warn(ctx, "run cancelled", logging.Fields{"error": err.Error()})
		report.Fail()
	}

	report.Finish()
	logger.Info(ctx, "rename run finished", logging.Fields{
		"status":    string(report.Status),
		"renamed":   report.Stats.Renamed,
		"conflicts": report.Stats.Conflicts,
		"duration":  report.Duration.String(),
	})

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			logger.Warn(ctx, "formatter failed", logging.Fields{"error": err.Error()})
		}
	}
	return report, nil
}

// prepareSandbox mirrors the walk root into memory. Subtrees that cannot be
// read are reported as unreadable; their siblings are still mirrored.
func (e *Engine) prepareSandbox(ctx context.Context, emit EmitFunc) (*storage.Memory, error) {
	mem := storage.NewMemory(e.backend.Capabilities().CaseInsensitive)

	result, err := storage.Mirror(ctx, e.backend, mem, e.start)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dry run: %w", err)
	}
	for _, failure := range result.Failed {
		emit(models.NewPathEvent(models.EventUnreadable, failure.Path, failure.Err))
	}

	e.logger.Debug(ctx, "dry-run sandbox prepared", logging.Fields{
		"dirs":   result.Dirs,
		"files":  result.Files,
		"failed": len(result.Failed),
	})
	return mem, nil
}

func logEvent(ctx context.Context, logger logging.Logger, ev models.Event) {
	fields := logging.Fields{"event": string(ev.Type)}
	if ev.Path != "" {
		fields["path"] = ev.Path
	}
	if ev.OldPath != "" {
		fields["old"] = ev.OldPath
		fields["new"] = ev.NewPath
	}
	if ev.Limit > 0 {
		fields["length"] = ev.Length
		fields["limit"] = ev.Limit
	}

	switch {
	case ev.Type.Failure():
		logger.Error(ctx, "entry failed", ev.Err, fields)
	case ev.Type == models.EventWarn:
		logger.Warn(ctx, "path too long", fields)
	default:
		logger.Debug(ctx, "entry processed", fields)
	}
}
