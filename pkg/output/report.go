package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/slugnorris/pkg/models"
)

// WriteReport writes the full event log of a run to a file.
// Format can be "human" or "json".
func WriteReport(report *models.RunReport, filepath string, format string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeReportJSON(report, file)
	default: // "human"
		err = writeReportHuman(report, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeReportHuman(report *models.RunReport, w io.Writer) error {
	fmt.Fprintf(w, "Rename Report\n")
	fmt.Fprintf(w, "=============\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Run ID: %s\n", report.RunID)
	fmt.Fprintf(w, "Root: %s\n", report.Root)
	fmt.Fprintf(w, "Dry Run: %v\n", report.DryRun)
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	// Group by event type, failures first
	order := []models.EventType{
		models.EventConflict,
		models.EventDenied,
		models.EventUnreadable,
		models.EventError,
		models.EventWarn,
		models.EventRenamed,
		models.EventUnchanged,
		models.EventIgnored,
	}
	labels := map[models.EventType]string{
		models.EventConflict:   "Conflicts",
		models.EventDenied:     "Access Denied",
		models.EventUnreadable: "Unreadable Directories",
		models.EventError:      "Path Length Errors",
		models.EventWarn:       "Path Length Warnings",
		models.EventRenamed:    "Renamed",
		models.EventUnchanged:  "Unchanged",
		models.EventIgnored:    "Ignored",
	}

	byType := make(map[models.EventType][]models.Event)
	for _, ev := range report.Events {
		byType[ev.Type] = append(byType[ev.Type], ev)
	}

	for _, t := range order {
		events := byType[t]
		if len(events) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d)", labels[t], len(events))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, ev := range events {
			fmt.Fprintf(w, "  %s\n", FormatEvent(ev))
		}
		fmt.Fprintf(w, "\n")
	}

	_, err := fmt.Fprintf(w, "Duration: %s\n", report.Duration.Round(time.Millisecond))
	return err
}

func writeReportJSON(report *models.RunReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSONReport(report, true))
}
