package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath        string
	caseInsensitive bool
}

// NewLocal creates a new local filesystem backend rooted at rootPath
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{
		rootPath:        absPath,
		caseInsensitive: detectCaseInsensitive(absPath),
	}, nil
}

// Root returns the absolute root directory
func (l *Local) Root() string {
	return l.rootPath
}

func (l *Local) full(path string) string {
	return filepath.Join(l.rootPath, filepath.FromSlash(Clean(path)))
}

// Exists checks if a file or directory exists. Symlinks are not followed,
// so a dangling link still counts as an existing name.
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(l.full(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// IsDir reports whether path is a directory (symlinks are not followed)
func (l *Local) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := os.Lstat(l.full(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat: %w", err)
	}
	return info.IsDir(), nil
}

// IsFile reports whether path exists and is not a directory. Symlinks count
// as files: their own name is renamed, their target is never visited.
func (l *Local) IsFile(ctx context.Context, path string) (bool, error) {
	info, err := os.Lstat(l.full(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat: %w", err)
	}
	return !info.IsDir(), nil
}

// List returns the direct children of a directory, sorted by name
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	dir := Clean(path)

	entries, err := os.ReadDir(l.full(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files = append(files, FileInfo{
			Path:  Join(dir, e.Name()),
			Name:  e.Name(),
			IsDir: e.IsDir(),
		})
	}

	return files, nil
}

// Rename atomically renames using the OS primitive
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := os.Rename(l.full(oldPath), l.full(newPath)); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// Move moves a file by copying it and removing the original.
// Modification time and permissions are preserved.
func (l *Local) Move(ctx context.Context, oldPath, newPath string) error {
	src := l.full(oldPath)
	dst := l.full(newPath)

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot move directory as file: %s", oldPath)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrExist, newPath)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return fmt.Errorf("failed to read link: %w", err)
		}
		if err := os.Symlink(target, dst); err != nil {
			return fmt.Errorf("failed to create link: %w", err)
		}
		return os.Remove(src)
	}

	if err := copyFile(src, dst, info); err != nil {
		os.Remove(dst)
		return err
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}
	return nil
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if written != info.Size() {
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", info.Size(), written)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}

// MoveDir moves a directory tree entry by entry, creating the destination
func (l *Local) MoveDir(ctx context.Context, oldPath, newPath string) error {
	info, err := os.Lstat(l.full(oldPath))
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot move file as directory: %s", oldPath)
	}

	if err := os.MkdirAll(l.full(newPath), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	children, err := l.List(ctx, oldPath)
	if err != nil {
		return err
	}
	for _, child := range children {
		target := Join(newPath, child.Name)
		if child.IsDir {
			err = l.MoveDir(ctx, child.Path, target)
		} else {
			err = l.Move(ctx, child.Path, target)
		}
		if err != nil {
			return err
		}
	}

	if err := os.Remove(l.full(oldPath)); err != nil {
		return fmt.Errorf("failed to remove source directory: %w", err)
	}
	return nil
}

// Create creates an empty file
func (l *Local) Create(ctx context.Context, path string) error {
	f, err := os.Create(l.full(path))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return f.Close()
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(l.full(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Capabilities reports native rename support and detected case sensitivity
func (l *Local) Capabilities() Capabilities {
	return Capabilities{
		NativeRename:    true,
		CaseInsensitive: l.caseInsensitive,
	}
}

// SysPath returns the OS path
func (l *Local) SysPath(path string) (string, bool) {
	return l.full(path), true
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

// detectCaseInsensitive stats the root under a case-swapped name. When the
// root name has no letters it falls back to the platform default.
func detectCaseInsensitive(root string) bool {
	base := filepath.Base(root)
	swapped := swapCase(base)
	if swapped == base {
		return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
	}

	orig, err := os.Stat(root)
	if err != nil {
		return false
	}
	alt, err := os.Stat(filepath.Join(filepath.Dir(root), swapped))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
		}
		return false
	}
	return os.SameFile(orig, alt)
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}
