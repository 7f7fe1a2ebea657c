package models

import (
	"time"
)

// EventType categorizes a reported outcome
type EventType string

const (
	// EventIgnored is an entry skipped by ignore rules or recursion limits
	EventIgnored EventType = "ignored"
	// EventUnchanged is an entry whose name is already a slug
	EventUnchanged EventType = "unchanged"
	// EventRenamed is a committed rename
	EventRenamed EventType = "renamed"
	// EventConflict is a rename refused because the destination exists
	EventConflict EventType = "conflict"
	// EventDenied is a rename that every mechanism failed to perform
	EventDenied EventType = "denied"
	// EventUnreadable is a directory that could not be listed
	EventUnreadable EventType = "unreadable"
	// EventWarn is a path exceeding the warn limit
	EventWarn EventType = "warn"
	// EventError is a path exceeding the error limit
	EventError EventType = "error"
)

// Failure reports whether the event type fails the run
func (t EventType) Failure() bool {
	switch t {
	case EventConflict, EventDenied, EventUnreadable, EventError:
		return true
	default:
		return false
	}
}

// Event is one entry of the run's event stream
type Event struct {
	Type EventType
	// OldPath and NewPath are set for rename outcomes
	OldPath string
	NewPath string
	// Path is set for ignored, unchanged, unreadable and length events
	Path string
	// Length and Limit are set for warn and error events
	Length int
	Limit  int
	// Err carries the underlying cause for denied and unreadable events
	Err       error
	Timestamp time.Time
}

// NewRenameEvent creates an event describing a rename outcome
func NewRenameEvent(t EventType, oldPath, newPath string, err error) Event {
	return Event{
		Type:      t,
		OldPath:   oldPath,
		NewPath:   newPath,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// NewPathEvent creates an event about a single path
func NewPathEvent(t EventType, path string, err error) Event {
	return Event{
		Type:      t,
		Path:      path,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// NewLengthEvent creates a warn or error event for an over-long path
func NewLengthEvent(t EventType, path string, length, limit int) Event {
	return Event{
		Type:      t,
		Path:      path,
		Length:    length,
		Limit:     limit,
		Timestamp: time.Now(),
	}
}

// Subject returns the most relevant path of the event
func (e Event) Subject() string {
	if e.Path != "" {
		return e.Path
	}
	return e.OldPath
}
