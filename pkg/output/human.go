package output

import (
	"fmt"
	"io"
	"time"

	"github.com/sdejongh/slugnorris/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer    io.Writer
	verbosity Verbosity
	dryRun    bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(verbosity Verbosity) *HumanFormatter {
	return &HumanFormatter{verbosity: verbosity}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, report *models.RunReport) error {
	f.writer = writer
	f.dryRun = report.DryRun

	if writer != nil && f.verbosity != Quiet && f.dryRun {
		fmt.Fprintf(writer, "Dry run: no changes will be made to %s\n", report.Root)
	}
	return nil
}

// Event prints one line per displayed event
func (f *HumanFormatter) Event(ev models.Event) error {
	if f.writer == nil || !f.verbosity.Shows(ev.Type) {
		return nil
	}
	_, err := fmt.Fprintln(f.writer, FormatEvent(ev))
	return err
}

// FormatEvent renders an event as a single log-style line
func FormatEvent(ev models.Event) string {
	switch ev.Type {
	case models.EventRenamed:
		return fmt.Sprintf("[rename] %s -> %s", ev.OldPath, ev.NewPath)
	case models.EventUnchanged:
		return fmt.Sprintf("[ok] %s", ev.Path)
	case models.EventIgnored:
		return fmt.Sprintf("[ignore] %s", ev.Path)
	case models.EventConflict:
		return fmt.Sprintf("[ERROR] (conflict preventing renaming) %s -> %s", ev.OldPath, ev.NewPath)
	case models.EventDenied:
		line := fmt.Sprintf("[ERROR] (access denied) %s -> %s", ev.OldPath, ev.NewPath)
		if ev.Err != nil {
			line += ": " + ev.Err.Error()
		}
		return line
	case models.EventUnreadable:
		line := fmt.Sprintf("[ERROR] (unreadable) %s", ev.Path)
		if ev.Err != nil {
			line += ": " + ev.Err.Error()
		}
		return line
	case models.EventWarn:
		return fmt.Sprintf("[WARNING] (path exceeds %d characters) %s", ev.Limit, ev.Path)
	case models.EventError:
		return fmt.Sprintf("[ERROR] (path exceeds %d characters) %s", ev.Limit, ev.Path)
	}
	return fmt.Sprintf("[%s] %s", ev.Type, ev.Subject())
}

// Complete finalizes output and displays summary
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}
	if f.verbosity == Quiet {
		return nil
	}

	s := report.Stats
	verb := "Renamed"
	if report.DryRun {
		verb = "Would rename"
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "  %-14s %d\n", verb+":", s.Renamed)
	fmt.Fprintf(f.writer, "  %-14s %d\n", "Unchanged:", s.Unchanged)
	fmt.Fprintf(f.writer, "  %-14s %d\n", "Ignored:", s.Ignored)
	if s.Conflicts+s.Denied+s.Unreadable > 0 {
		fmt.Fprintf(f.writer, "  %-14s %d\n", "Conflicts:", s.Conflicts)
		fmt.Fprintf(f.writer, "  %-14s %d\n", "Denied:", s.Denied)
		fmt.Fprintf(f.writer, "  %-14s %d\n", "Unreadable:", s.Unreadable)
	}
	if s.Warnings+s.LengthErrors > 0 {
		fmt.Fprintf(f.writer, "  %-14s %d warnings, %d errors\n", "Path length:", s.Warnings, s.LengthErrors)
	}
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)
	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
