package models

import (
	"time"
)

// RunReport represents the results of a rename run
type RunReport struct {
	// Run details
	RunID  string
	Root   string
	DryRun bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Events in visitation order
	Events []Event

	// OK is false as soon as any entry failed
	OK bool

	// Overall status
	Status RunStatus
}

// Statistics holds per-event-type counters
type Statistics struct {
	Visited      int
	Renamed      int
	Unchanged    int
	Ignored      int
	Conflicts    int
	Denied       int
	Unreadable   int
	Warnings     int
	LengthErrors int
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates every entry succeeded
	StatusSuccess RunStatus = "success"
	// StatusFailed indicates at least one entry failed
	StatusFailed RunStatus = "failed"
	// StatusAborted indicates a fatal precondition stopped the run
	StatusAborted RunStatus = "aborted"
)

// ExitCode returns the appropriate exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusFailed:
		return 1
	case StatusAborted:
		return 2
	default:
		return 2
	}
}

// NewRunReport creates an empty, successful report
func NewRunReport(runID, root string, dryRun bool) *RunReport {
	return &RunReport{
		RunID:     runID,
		Root:      root,
		DryRun:    dryRun,
		StartTime: time.Now(),
		OK:        true,
		Status:    StatusSuccess,
	}
}

// Record appends an event and updates the counters
func (r *RunReport) Record(ev Event) {
	r.Events = append(r.Events, ev)

	switch ev.Type {
	case EventIgnored:
		r.Stats.Ignored++
	case EventUnchanged:
		r.Stats.Unchanged++
		r.Stats.Visited++
	case EventRenamed:
		r.Stats.Renamed++
		r.Stats.Visited++
	case EventConflict:
		r.Stats.Conflicts++
		r.Stats.Visited++
	case EventDenied:
		r.Stats.Denied++
		r.Stats.Visited++
	case EventUnreadable:
		r.Stats.Unreadable++
	case EventWarn:
		r.Stats.Warnings++
	case EventError:
		r.Stats.LengthErrors++
	}

	if ev.Type.Failure() {
		r.Fail()
	}
}

// Fail marks the run as failed
func (r *RunReport) Fail() {
	r.OK = false
	r.Status = StatusFailed
}

// Finish stamps the end time
func (r *RunReport) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Decisions returns the rename-related events (renamed, unchanged, conflict,
// denied, ignored) in order. Dry and real runs over the same tree produce the
// same sequence.
func (r *RunReport) Decisions() []Event {
	var out []Event
	for _, ev := range r.Events {
		switch ev.Type {
		case EventWarn, EventError:
			continue
		}
		out = append(out, ev)
	}
	return out
}
