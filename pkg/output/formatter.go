package output

import (
	"io"

	"github.com/sdejongh/slugnorris/pkg/models"
)

// Formatter renders the event stream of a rename run.
// Implementations include human-readable, JSON and progress-bar formatters.
type Formatter interface {
	// Start initializes the formatter for a new run
	Start(writer io.Writer, report *models.RunReport) error

	// Event reports one outcome as soon as it is known
	Event(ev models.Event) error

	// Complete finalizes output and displays the summary
	Complete(report *models.RunReport) error

	// Error reports a fatal error
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// Verbosity controls which events a formatter shows
type Verbosity int

const (
	// Normal shows renames, failures and length warnings
	Normal Verbosity = iota
	// Quiet shows failures only
	Quiet
	// Verbose additionally shows unchanged and ignored entries
	Verbose
)

// Shows reports whether an event of type t is displayed at verbosity v
func (v Verbosity) Shows(t models.EventType) bool {
	if t.Failure() {
		return true
	}
	switch v {
	case Quiet:
		return false
	case Verbose:
		return true
	default:
		return t != models.EventUnchanged && t != models.EventIgnored
	}
}
