package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Memory is an in-memory backend used as a dry-run sandbox.
// It holds structure only; files are always empty.
type Memory struct {
	fs              afero.Fs
	caseInsensitive bool
}

// NewMemory creates an empty in-memory backend. caseInsensitive should
// mirror the filesystem being simulated so that conflict checks and glob
// matching behave the same as on the real tree.
func NewMemory(caseInsensitive bool) *Memory {
	return &Memory{
		fs:              afero.NewMemMapFs(),
		caseInsensitive: caseInsensitive,
	}
}

func (m *Memory) abs(p string) string {
	return path.Join("/", Clean(p))
}

// Exists checks if a file or directory exists. On a case-insensitive mirror
// a name differing only in case counts as existing.
func (m *Memory) Exists(ctx context.Context, p string) (bool, error) {
	ok, err := afero.Exists(m.fs, m.abs(p))
	if err != nil || ok || !m.caseInsensitive {
		return ok, err
	}

	clean := Clean(p)
	if clean == "." {
		return false, nil
	}
	siblings, err := afero.ReadDir(m.fs, m.abs(path.Dir(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	name := path.Base(clean)
	for _, s := range siblings {
		if strings.EqualFold(s.Name(), name) {
			return true, nil
		}
	}
	return false, nil
}

// IsDir reports whether p is a directory
func (m *Memory) IsDir(ctx context.Context, p string) (bool, error) {
	ok, err := afero.IsDir(m.fs, m.abs(p))
	if err != nil && os.IsNotExist(err) {
		return false, nil
	}
	return ok, err
}

// IsFile reports whether p is a file
func (m *Memory) IsFile(ctx context.Context, p string) (bool, error) {
	info, err := m.fs.Stat(m.abs(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// List returns the direct children of a directory, sorted by name
func (m *Memory) List(ctx context.Context, p string) ([]FileInfo, error) {
	dir := Clean(p)
	infos, err := afero.ReadDir(m.fs, m.abs(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	files := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		files = append(files, FileInfo{
			Path:  Join(dir, info.Name()),
			Name:  info.Name(),
			IsDir: info.IsDir(),
		})
	}
	return files, nil
}

// Rename is not supported; callers fall back to Move and MoveDir
func (m *Memory) Rename(ctx context.Context, oldPath, newPath string) error {
	return ErrUnsupported
}

// Move moves a single file
func (m *Memory) Move(ctx context.Context, oldPath, newPath string) error {
	isFile, err := m.IsFile(ctx, oldPath)
	if err != nil {
		return err
	}
	if !isFile {
		return fmt.Errorf("cannot move non-file: %s", oldPath)
	}
	if ok, _ := afero.Exists(m.fs, m.abs(newPath)); ok {
		return fmt.Errorf("%w: %s", ErrExist, newPath)
	}
	if err := m.fs.Rename(m.abs(oldPath), m.abs(newPath)); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	return nil
}

// MoveDir moves a directory tree, creating the destination
func (m *Memory) MoveDir(ctx context.Context, oldPath, newPath string) error {
	isDir, err := m.IsDir(ctx, oldPath)
	if err != nil {
		return err
	}
	if !isDir {
		return fmt.Errorf("cannot move non-directory: %s", oldPath)
	}

	if err := m.fs.MkdirAll(m.abs(newPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	children, err := m.List(ctx, oldPath)
	if err != nil {
		return err
	}
	for _, child := range children {
		target := Join(newPath, child.Name)
		if child.IsDir {
			err = m.MoveDir(ctx, child.Path, target)
		} else {
			err = m.Move(ctx, child.Path, target)
		}
		if err != nil {
			return err
		}
	}

	if err := m.fs.Remove(m.abs(oldPath)); err != nil {
		return fmt.Errorf("failed to remove source directory: %w", err)
	}
	return nil
}

// Create creates an empty file
func (m *Memory) Create(ctx context.Context, p string) error {
	f, err := m.fs.Create(m.abs(p))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return f.Close()
}

// MkdirAll creates a directory and all necessary parents
func (m *Memory) MkdirAll(ctx context.Context, p string) error {
	if err := m.fs.MkdirAll(m.abs(p), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Capabilities reports no native rename and the simulated case sensitivity
func (m *Memory) Capabilities() Capabilities {
	return Capabilities{
		NativeRename:    false,
		CaseInsensitive: m.caseInsensitive,
	}
}

// SysPath returns false: memory paths have no OS counterpart
func (m *Memory) SysPath(p string) (string, bool) {
	return "", false
}

// Close releases resources
func (m *Memory) Close() error {
	return nil
}
