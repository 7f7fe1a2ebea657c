package models

// EntryKind distinguishes files from directories
type EntryKind string

const (
	// KindFile is a regular file
	KindFile EntryKind = "file"
	// KindDir is a directory
	KindDir EntryKind = "dir"
)

// PathEntry is a path discovered by listing a directory
type PathEntry struct {
	// Path is the slash-separated path relative to the backend root
	Path string
	// Kind tells whether the entry is a file or a directory
	Kind EntryKind
}

// IsDir reports whether the entry is a directory
func (e PathEntry) IsDir() bool {
	return e.Kind == KindDir
}

// RenameDecision is the outcome of slugging one entry
type RenameDecision struct {
	OldPath string
	NewPath string
	Kind    EntryKind
}

// Changed reports whether the decision requires a rename.
// An unchanged decision always has OldPath == NewPath.
func (d RenameDecision) Changed() bool {
	return d.OldPath != d.NewPath
}
