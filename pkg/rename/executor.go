package rename

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sdejongh/slugnorris/pkg/logging"
	"github.com/sdejongh/slugnorris/pkg/storage"
	"github.com/sdejongh/slugnorris/pkg/vcs"
)

// CommitResult is the outcome of one rename attempt
type CommitResult int

const (
	// Committed means the entry now lives at the new path
	Committed CommitResult = iota
	// Conflict means the destination already exists; nothing was touched
	Conflict
	// Denied means every mechanism failed
	Denied
)

func (r CommitResult) String() string {
	switch r {
	case Committed:
		return "committed"
	case Conflict:
		return "conflict"
	default:
		return "denied"
	}
}

// strategy is one rename mechanism. It returns storage.ErrUnsupported when
// it cannot handle the request, letting the next strategy try.
type strategy interface {
	name() string
	rename(ctx context.Context, oldPath, newPath string, isDir bool) error
}

// Executor commits rename decisions against a backend
type Executor struct {
	backend    storage.Backend
	strategies []strategy
	logger     logging.Logger
}

// NewExecutor creates an executor. When git is non-nil, history-preserving
// moves are attempted first for backends that expose OS paths.
func NewExecutor(backend storage.Backend, git *vcs.Git, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	var strategies []strategy
	if git != nil {
		strategies = append(strategies, &gitStrategy{backend: backend, git: git})
	}
	strategies = append(strategies,
		&nativeStrategy{backend: backend},
		&genericStrategy{backend: backend},
	)

	return &Executor{
		backend:    backend,
		strategies: strategies,
		logger:     logger,
	}
}

// Commit renames oldPath to newPath unless the destination already exists.
// On a case-insensitive backend a destination differing only in case is the
// entry itself and is not a conflict.
func (e *Executor) Commit(ctx context.Context, oldPath, newPath string) (CommitResult, error) {
	if oldPath == newPath {
		return Committed, nil
	}

	caseOnly := e.backend.Capabilities().CaseInsensitive && strings.EqualFold(oldPath, newPath)
	if !caseOnly {
		exists, err := e.backend.Exists(ctx, newPath)
		if err != nil {
			return Denied, err
		}
		if exists {
			return Conflict, nil
		}
	}

	isDir, err := e.backend.IsDir(ctx, oldPath)
	if err != nil {
		return Denied, err
	}

	if caseOnly {
		err = e.renameViaTemp(ctx, oldPath, newPath, isDir)
	} else {
		err = e.rename(ctx, oldPath, newPath, isDir)
	}
	if err != nil {
		return Denied, err
	}
	return Committed, nil
}

// rename tries each strategy in order until one succeeds
func (e *Executor) rename(ctx context.Context, oldPath, newPath string, isDir bool) error {
	var lastErr error
	for _, s := range e.strategies {
		err := s.rename(ctx, oldPath, newPath, isDir)
		if err == nil {
			e.logger.Debug(ctx, "rename committed", logging.Fields{
				"old":      oldPath,
				"new":      newPath,
				"strategy": s.name(),
			})
			return nil
		}
		if !errors.Is(err, storage.ErrUnsupported) {
			return fmt.Errorf("%s rename failed: %w", s.name(), err)
		}
		e.logger.Debug(ctx, "rename strategy skipped", logging.Fields{
			"old":      oldPath,
			"strategy": s.name(),
			"reason":   err.Error(),
		})
		lastErr = err
	}
	return fmt.Errorf("no rename mechanism available: %w", lastErr)
}

// renameViaTemp performs a case-only rename through an intermediate name so
// that case-insensitive filesystems register the new spelling.
func (e *Executor) renameViaTemp(ctx context.Context, oldPath, newPath string, isDir bool) error {
	tmp := path.Join(path.Dir(oldPath), "."+path.Base(newPath)+".slugnorris-tmp")
	if exists, err := e.backend.Exists(ctx, tmp); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: temporary name %s", storage.ErrExist, tmp)
	}

	if err := e.rename(ctx, oldPath, tmp, isDir); err != nil {
		return err
	}
	if err := e.rename(ctx, tmp, newPath, isDir); err != nil {
		if restoreErr := e.rename(ctx, tmp, oldPath, isDir); restoreErr != nil {
			e.logger.Error(ctx, "failed to restore entry after case-only rename", restoreErr, logging.Fields{
				"old":  oldPath,
				"temp": tmp,
			})
		}
		return err
	}
	return nil
}

// gitStrategy runs "git mv" so that tracked files keep their history.
// Untracked entries make git fail, which falls through to the next strategy.
type gitStrategy struct {
	backend storage.Backend
	git     *vcs.Git
}

func (s *gitStrategy) name() string { return "git" }

func (s *gitStrategy) rename(ctx context.Context, oldPath, newPath string, isDir bool) error {
	oldSys, ok := s.backend.SysPath(oldPath)
	if !ok {
		return storage.ErrUnsupported
	}
	newSys, _ := s.backend.SysPath(newPath)
	if filepath.Dir(oldSys) != filepath.Dir(newSys) {
		return storage.ErrUnsupported
	}

	if err := s.git.Move(ctx, filepath.Dir(oldSys), filepath.Base(oldSys), filepath.Base(newSys)); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnsupported, err)
	}
	return nil
}

// nativeStrategy uses the backend's own rename primitive
type nativeStrategy struct {
	backend storage.Backend
}

func (s *nativeStrategy) name() string { return "native" }

func (s *nativeStrategy) rename(ctx context.Context, oldPath, newPath string, isDir bool) error {
	if !s.backend.Capabilities().NativeRename {
		return storage.ErrUnsupported
	}
	err := s.backend.Rename(ctx, oldPath, newPath)
	if errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("%w: %v", storage.ErrUnsupported, err)
	}
	return err
}

// genericStrategy moves entry by entry, creating the destination directory
type genericStrategy struct {
	backend storage.Backend
}

func (s *genericStrategy) name() string { return "generic" }

func (s *genericStrategy) rename(ctx context.Context, oldPath, newPath string, isDir bool) error {
	if isDir {
		return s.backend.MoveDir(ctx, oldPath, newPath)
	}
	return s.backend.Move(ctx, oldPath, newPath)
}
