package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a path for the current platform
func NormalizePath(path string) string {
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// SplitRoot resolves the target of a run against cwd and splits it into the
// directory that anchors the backend and the start path inside it.
//
// A target naming the working directory (or a filesystem root) cannot be
// renamed in place: base is the target itself, start is "." and ignoreRoot
// is set. Any other target is anchored at its parent so that the root entry
// can be renamed like every other entry.
func SplitRoot(path, cwd string) (base, start string, ignoreRoot bool) {
	abs := path
	if !filepath.IsAbs(abs) && !IsUNCPath(abs) {
		abs = filepath.Join(cwd, abs)
	}
	abs = NormalizePath(abs)

	parent := filepath.Dir(abs)
	if abs == NormalizePath(cwd) || parent == abs {
		return abs, ".", true
	}
	return parent, filepath.Base(abs), false
}

// ValidatePath checks if a path is valid for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(path, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
