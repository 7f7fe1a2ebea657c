package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/slugnorris/pkg/models"
)

const progressTemplate = `{{ cycle . "⠋" "⠙" "⠹" "⠸" "⠼" "⠴" "⠦" "⠧" "⠇" "⠏" }} {{ counters . }} entries  {{ green (string . "renamed") }} renamed  {{ red (string . "failed") }} failed  {{ string . "current" }}`

// getUpdateInterval returns the progress refresh interval based on OS.
// Windows terminals have higher latency with ANSI sequences.
func getUpdateInterval() time.Duration {
	if runtime.GOOS == "windows" {
		return 300 * time.Millisecond
	}
	return 100 * time.Millisecond
}

// ProgressFormatter shows a live counter while the tree is walked and
// prints failures once the bar is finished.
type ProgressFormatter struct {
	writer    io.Writer
	verbosity Verbosity

	mu        sync.Mutex
	bar       *pb.ProgressBar
	renamed   int
	failed    int
	deferred  []models.Event
	termWidth int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(verbosity Verbosity) *ProgressFormatter {
	return &ProgressFormatter{verbosity: verbosity}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Start initializes the formatter and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, report *models.RunReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.termWidth = width
		}
	}
	if f.termWidth == 0 {
		f.termWidth = 120
	}

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(0)
	f.bar.SetWriter(writer)
	f.bar.SetWidth(f.termWidth)
	f.bar.SetRefreshRate(getUpdateInterval())
	f.bar.Set("renamed", "0")
	f.bar.Set("failed", "0")
	f.bar.Set("current", "")
	f.bar.Start()
	return nil
}

// Event advances the counter
func (f *ProgressFormatter) Event(ev models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return nil
	}

	switch ev.Type {
	case models.EventRenamed:
		f.renamed++
		f.bar.Set("renamed", fmt.Sprint(f.renamed))
	case models.EventWarn:
		if f.verbosity.Shows(ev.Type) {
			f.deferred = append(f.deferred, ev)
		}
		return nil
	case models.EventError:
		f.failed++
		f.bar.Set("failed", fmt.Sprint(f.failed))
		f.deferred = append(f.deferred, ev)
		return nil
	}
	if ev.Type.Failure() {
		f.failed++
		f.bar.Set("failed", fmt.Sprint(f.failed))
		f.deferred = append(f.deferred, ev)
	}

	f.bar.Set("current", truncatePath(ev.Subject(), f.termWidth/3))
	f.bar.Increment()
	return nil
}

// Complete stops the bar and prints the deferred lines and the summary
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil {
		f.bar.Set("current", "")
		f.bar.Finish()
	}
	if f.writer == nil {
		f.writer = io.Discard
	}

	for _, ev := range f.deferred {
		fmt.Fprintln(f.writer, FormatEvent(ev))
	}

	summary := NewHumanFormatter(f.verbosity)
	summary.writer = f.writer
	return summary.Complete(report)
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil && f.bar.IsStarted() {
		f.bar.Finish()
	}
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// truncatePath shortens a path to maxLen characters, keeping its end
func truncatePath(p string, maxLen int) string {
	runes := []rune(p)
	if maxLen <= 3 || len(runes) <= maxLen {
		return p
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
