package storage

import (
	"context"
	"fmt"
)

// MirrorFailure records a subtree that could not be mirrored
type MirrorFailure struct {
	Path string
	Err  error
}

// MirrorResult summarizes a structural copy
type MirrorResult struct {
	Dirs   int
	Files  int
	Failed []MirrorFailure
}

// OK reports whether every subtree was mirrored
func (r *MirrorResult) OK() bool {
	return len(r.Failed) == 0
}

// Mirror copies the structure rooted at start from src into dst: every
// directory is recreated and every file becomes an empty file at the same
// path. A subtree that cannot be listed is recorded in the result and
// skipped; its siblings are still mirrored. The returned error is reserved
// for failures writing to dst or a missing start path.
func Mirror(ctx context.Context, src, dst Backend, start string) (*MirrorResult, error) {
	start = Clean(start)

	exists, err := src.Exists(ctx, start)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, start)
	}

	result := &MirrorResult{}
	if err := mirror(ctx, src, dst, start, result); err != nil {
		return result, err
	}
	return result, nil
}

func mirror(ctx context.Context, src, dst Backend, p string, result *MirrorResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	isDir, err := src.IsDir(ctx, p)
	if err != nil {
		result.Failed = append(result.Failed, MirrorFailure{Path: p, Err: err})
		return nil
	}

	if !isDir {
		if err := dst.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to mirror file %s: %w", p, err)
		}
		result.Files++
		return nil
	}

	if err := dst.MkdirAll(ctx, p); err != nil {
		return fmt.Errorf("failed to mirror directory %s: %w", p, err)
	}
	result.Dirs++

	children, err := src.List(ctx, p)
	if err != nil {
		result.Failed = append(result.Failed, MirrorFailure{Path: p, Err: err})
		return nil
	}
	for _, child := range children {
		if err := mirror(ctx, src, dst, child.Path, result); err != nil {
			return err
		}
	}
	return nil
}
