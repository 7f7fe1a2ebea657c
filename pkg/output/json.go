package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/slugnorris/pkg/models"
)

// JSONFormatter writes newline-delimited JSON for automation and scripting:
// one object per event, then one summary object.
type JSONFormatter struct {
	writer    io.Writer
	encoder   *json.Encoder
	verbosity Verbosity
}

// JSONEvent represents a single event in the JSON output stream
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Path      string    `json:"path,omitempty"`
	OldPath   string    `json:"old_path,omitempty"`
	NewPath   string    `json:"new_path,omitempty"`
	Length    int       `json:"length,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JSONReportData represents the final report data
type JSONReportData struct {
	Type       string        `json:"type"`
	RunID      string        `json:"run_id"`
	Root       string        `json:"root"`
	DryRun     bool          `json:"dry_run"`
	Status     string        `json:"status"`
	OK         bool          `json:"ok"`
	Duration   string        `json:"duration"`
	DurationMs int64         `json:"duration_ms"`
	Stats      JSONStatsData `json:"stats"`
	Events     []JSONEvent   `json:"events,omitempty"`
}

// JSONStatsData represents statistics in JSON format
type JSONStatsData struct {
	Visited      int `json:"visited"`
	Renamed      int `json:"renamed"`
	Unchanged    int `json:"unchanged"`
	Ignored      int `json:"ignored"`
	Conflicts    int `json:"conflicts"`
	Denied       int `json:"denied"`
	Unreadable   int `json:"unreadable"`
	Warnings     int `json:"warnings"`
	LengthErrors int `json:"length_errors"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(verbosity Verbosity) *JSONFormatter {
	return &JSONFormatter{verbosity: verbosity}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, report *models.RunReport) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.encoder = json.NewEncoder(writer)
	return nil
}

// Event writes one JSON line per displayed event
func (f *JSONFormatter) Event(ev models.Event) error {
	if f.encoder == nil || !f.verbosity.Shows(ev.Type) {
		return nil
	}
	return f.encoder.Encode(toJSONEvent(ev))
}

// Complete writes the summary line
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.encoder == nil {
		f.encoder = json.NewEncoder(io.Discard)
	}
	return f.encoder.Encode(toJSONReport(report, false))
}

// Error writes an error line
func (f *JSONFormatter) Error(err error) error {
	if f.encoder == nil {
		return nil
	}
	return f.encoder.Encode(JSONEvent{
		Timestamp: time.Now(),
		Type:      "fatal",
		Error:     err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func toJSONEvent(ev models.Event) JSONEvent {
	out := JSONEvent{
		Timestamp: ev.Timestamp,
		Type:      string(ev.Type),
		Path:      ev.Path,
		OldPath:   ev.OldPath,
		NewPath:   ev.NewPath,
		Length:    ev.Length,
		Limit:     ev.Limit,
	}
	if ev.Err != nil {
		out.Error = ev.Err.Error()
	}
	return out
}

func toJSONReport(report *models.RunReport, withEvents bool) JSONReportData {
	s := report.Stats
	data := JSONReportData{
		Type:       "summary",
		RunID:      report.RunID,
		Root:       report.Root,
		DryRun:     report.DryRun,
		Status:     string(report.Status),
		OK:         report.OK,
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Visited:      s.Visited,
			Renamed:      s.Renamed,
			Unchanged:    s.Unchanged,
			Ignored:      s.Ignored,
			Conflicts:    s.Conflicts,
			Denied:       s.Denied,
			Unreadable:   s.Unreadable,
			Warnings:     s.Warnings,
			LengthErrors: s.LengthErrors,
		},
	}
	if withEvents {
		data.Events = make([]JSONEvent, 0, len(report.Events))
		for _, ev := range report.Events {
			data.Events = append(data.Events, toJSONEvent(ev))
		}
	}
	return data
}
