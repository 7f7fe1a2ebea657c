package storage

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	// ErrUnsupported is returned when a backend lacks an optional primitive
	ErrUnsupported = errors.New("operation not supported by backend")
	// ErrNotExist is returned when a path does not exist
	ErrNotExist = errors.New("path does not exist")
	// ErrExist is returned when a destination already exists
	ErrExist = errors.New("path already exists")
)

// FileInfo represents metadata about a directory entry
type FileInfo struct {
	// Path is slash-separated and relative to the backend root
	Path  string
	Name  string
	IsDir bool
}

// Capabilities describes optional backend behavior
type Capabilities struct {
	// NativeRename is true when Rename maps to an atomic OS rename
	NativeRename bool
	// CaseInsensitive is true when names differing only in case collide
	CaseInsensitive bool
}

// Backend defines the interface for filesystem operations.
// Paths are slash-separated and relative to the backend root.
// Implementations include the local filesystem and an in-memory mirror.
type Backend interface {
	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// IsDir reports whether path is an existing directory
	IsDir(ctx context.Context, path string) (bool, error)

	// IsFile reports whether path is an existing regular file
	IsFile(ctx context.Context, path string) (bool, error)

	// List returns the direct children of a directory
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Rename atomically renames oldPath to newPath.
	// Returns ErrUnsupported when Capabilities().NativeRename is false.
	Rename(ctx context.Context, oldPath, newPath string) error

	// Move moves a single file
	Move(ctx context.Context, oldPath, newPath string) error

	// MoveDir moves a directory tree, creating the destination
	MoveDir(ctx context.Context, oldPath, newPath string) error

	// Create creates an empty file, truncating any existing one
	Create(ctx context.Context, path string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Capabilities reports optional behavior
	Capabilities() Capabilities

	// SysPath returns the OS path for path, or false for virtual backends
	SysPath(path string) (string, bool)

	// Close releases any resources held by the backend
	Close() error
}

// Clean normalizes a backend path: slash-separated, no leading slash, "." for the root
func Clean(p string) string {
	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// Join joins backend path elements
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}
