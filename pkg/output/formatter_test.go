package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/slugnorris/pkg/models"
)

func sampleReport() *models.RunReport {
	report := models.NewRunReport("run-1", "/data/My Photos", false)
	report.Record(models.NewRenameEvent(models.EventRenamed, "My Photos", "my-photos", nil))
	report.Record(models.NewPathEvent(models.EventUnchanged, "my-photos/a.jpg", nil))
	report.Record(models.NewPathEvent(models.EventIgnored, "my-photos/README.md", nil))
	report.Record(models.NewRenameEvent(models.EventConflict, "my-photos/B.jpg", "my-photos/b.jpg", nil))
	report.Record(models.NewLengthEvent(models.EventWarn, "my-photos/a.jpg", 15, 10))
	report.Finish()
	return report
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   models.Event
		want string
	}{
		{"Renamed", models.NewRenameEvent(models.EventRenamed, "A B", "a-b", nil), "[rename] A B -> a-b"},
		{"Unchanged", models.NewPathEvent(models.EventUnchanged, "a-b", nil), "[ok] a-b"},
		{"Ignored", models.NewPathEvent(models.EventIgnored, "README.md", nil), "[ignore] README.md"},
		{"Conflict", models.NewRenameEvent(models.EventConflict, "A", "a", nil), "[ERROR] (conflict preventing renaming) A -> a"},
		{"Denied", models.NewRenameEvent(models.EventDenied, "A", "a", nil), "[ERROR] (access denied) A -> a"},
		{"DeniedWithCause", models.NewRenameEvent(models.EventDenied, "A", "a", errors.New("permission denied")), "[ERROR] (access denied) A -> a: permission denied"},
		{"Unreadable", models.NewPathEvent(models.EventUnreadable, "locked", nil), "[ERROR] (unreadable) locked"},
		{"Warn", models.NewLengthEvent(models.EventWarn, "some/path", 9, 5), "[WARNING] (path exceeds 5 characters) some/path"},
		{"Error", models.NewLengthEvent(models.EventError, "some/path", 9, 5), "[ERROR] (path exceeds 5 characters) some/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEvent(tt.ev); got != tt.want {
				t.Errorf("FormatEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerbosityShows(t *testing.T) {
	tests := []struct {
		verbosity Verbosity
		eventType models.EventType
		want      bool
	}{
		{Normal, models.EventRenamed, true},
		{Normal, models.EventUnchanged, false},
		{Normal, models.EventIgnored, false},
		{Normal, models.EventWarn, true},
		{Normal, models.EventConflict, true},
		{Quiet, models.EventRenamed, false},
		{Quiet, models.EventWarn, false},
		{Quiet, models.EventDenied, true},
		{Quiet, models.EventError, true},
		{Verbose, models.EventUnchanged, true},
		{Verbose, models.EventIgnored, true},
	}

	for _, tt := range tests {
		if got := tt.verbosity.Shows(tt.eventType); got != tt.want {
			t.Errorf("Verbosity(%d).Shows(%s) = %v, want %v", tt.verbosity, tt.eventType, got, tt.want)
		}
	}
}

func TestHumanFormatter(t *testing.T) {
	t.Run("Normal", func(t *testing.T) {
		var buf bytes.Buffer
		report := sampleReport()

		f := NewHumanFormatter(Normal)
		f.Start(&buf, report)
		for _, ev := range report.Events {
			f.Event(ev)
		}
		f.Complete(report)

		out := buf.String()
		for _, want := range []string{
			"[rename] My Photos -> my-photos\n",
			"[ERROR] (conflict preventing renaming) my-photos/B.jpg -> my-photos/b.jpg\n",
			"[WARNING] (path exceeds 10 characters) my-photos/a.jpg\n",
			"Status: failed\n",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		for _, unwanted := range []string{"[ok]", "[ignore]", "Dry run"} {
			if strings.Contains(out, unwanted) {
				t.Errorf("output should not contain %q:\n%s", unwanted, out)
			}
		}
	})

	t.Run("QuietShowsFailuresOnly", func(t *testing.T) {
		var buf bytes.Buffer
		report := sampleReport()

		f := NewHumanFormatter(Quiet)
		f.Start(&buf, report)
		for _, ev := range report.Events {
			f.Event(ev)
		}
		f.Complete(report)

		want := "[ERROR] (conflict preventing renaming) my-photos/B.jpg -> my-photos/b.jpg\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("DryRunBanner", func(t *testing.T) {
		var buf bytes.Buffer
		report := models.NewRunReport("run-2", "/data", true)
		report.Finish()

		f := NewHumanFormatter(Normal)
		f.Start(&buf, report)
		f.Complete(report)

		out := buf.String()
		if !strings.HasPrefix(out, "Dry run: no changes will be made to /data\n") {
			t.Errorf("missing dry-run banner:\n%s", out)
		}
		if !strings.Contains(out, "Would rename:") {
			t.Errorf("dry-run summary should use the conditional verb:\n%s", out)
		}
	})
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()

	f := NewJSONFormatter(Normal)
	if err := f.Start(&buf, report); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for _, ev := range report.Events {
		if err := f.Event(ev); err != nil {
			t.Fatalf("Event() error = %v", err)
		}
	}
	if err := f.Complete(report); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// renamed, conflict, warn, summary
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}

	var first JSONEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON event: %v", err)
	}
	if first.Type != "renamed" || first.OldPath != "My Photos" || first.NewPath != "my-photos" {
		t.Errorf("first event = %+v", first)
	}

	var warn JSONEvent
	json.Unmarshal([]byte(lines[2]), &warn)
	if warn.Type != "warn" || warn.Length != 15 || warn.Limit != 10 {
		t.Errorf("warn event = %+v", warn)
	}

	var summary JSONReportData
	if err := json.Unmarshal([]byte(lines[3]), &summary); err != nil {
		t.Fatalf("invalid JSON summary: %v", err)
	}
	if summary.Type != "summary" || summary.RunID != "run-1" || summary.OK || summary.Status != "failed" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Stats.Conflicts != 1 || summary.Stats.Renamed != 1 || summary.Stats.Ignored != 1 {
		t.Errorf("summary stats = %+v", summary.Stats)
	}
	if len(summary.Events) != 0 {
		t.Errorf("streamed summary should not repeat events")
	}
}

func TestJSONFormatterError(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(Normal)
	f.Start(&buf, models.NewRunReport("run-3", "/data", false))
	f.Error(errors.New("boom"))

	var ev JSONEvent
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ev.Type != "fatal" || ev.Error != "boom" {
		t.Errorf("fatal event = %+v", ev)
	}
}

func TestWriteReport(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "slugnorris-report-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	report := sampleReport()

	t.Run("Human", func(t *testing.T) {
		path := filepath.Join(tempDir, "report.txt")
		if err := WriteReport(report, path, "human"); err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		out := string(data)

		conflicts := strings.Index(out, "Conflicts (1)")
		renamed := strings.Index(out, "Renamed (1)")
		if conflicts < 0 || renamed < 0 || conflicts > renamed {
			t.Errorf("failures should be listed before renames:\n%s", out)
		}
		if !strings.Contains(out, "  [ignore] my-photos/README.md\n") {
			t.Errorf("report should list ignored entries:\n%s", out)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(tempDir, "report.json")
		if err := WriteReport(report, path, "json"); err != nil {
			t.Fatalf("WriteReport() error = %v", err)
		}
		data, _ := os.ReadFile(path)

		var decoded JSONReportData
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON report: %v", err)
		}
		if len(decoded.Events) != len(report.Events) {
			t.Errorf("report has %d events, want %d", len(decoded.Events), len(report.Events))
		}
	})

	t.Run("BadPath", func(t *testing.T) {
		if err := WriteReport(report, filepath.Join(tempDir, "missing", "report.txt"), "human"); err == nil {
			t.Error("WriteReport() should fail for a missing directory")
		}
	})
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"a/very/long/path/name", 10, "...th/name"},
		{"exact", 5, "exact"},
		{"anything", 3, "anything"},
	}

	for _, tt := range tests {
		if got := truncatePath(tt.path, tt.maxLen); got != tt.want {
			t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("a buffer is not a terminal")
	}
}
