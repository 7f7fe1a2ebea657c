// Package vcs wraps the git command line for work-tree detection and
// history-preserving moves.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors returned by Check.
var (
	ErrGitNotFound = errors.New("git not found on PATH")
	ErrNotWorkTree = errors.New("not inside a git work tree")
)

// Runner executes a git subcommand in dir and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// CommandError is returned when git exits unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type execRunner struct {
	binary string
}

func (r execRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// Git runs git subcommands through a Runner
type Git struct {
	runner Runner
}

// New locates the git binary on PATH
func New() (*Git, error) {
	bin, err := exec.LookPath("git")
	if err != nil {
		return nil, ErrGitNotFound
	}
	return &Git{runner: execRunner{binary: bin}}, nil
}

// NewWithRunner creates a Git that delegates to r
func NewWithRunner(r Runner) *Git {
	return &Git{runner: r}
}

// InsideWorkTree reports whether dir is inside a git work tree. A non-zero
// exit from git means "no"; any other failure is returned.
func (g *Git) InsideWorkTree(ctx context.Context, dir string) (bool, error) {
	out, err := g.runner.Run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// Check returns nil when dir is inside a work tree, ErrNotWorkTree when it
// is not, and the underlying error when git could not be run.
func (g *Git) Check(ctx context.Context, dir string) error {
	inside, err := g.InsideWorkTree(ctx, dir)
	if err != nil {
		return err
	}
	if !inside {
		return ErrNotWorkTree
	}
	return nil
}

// Move runs "git mv" from dir. oldName and newName are relative to dir.
// Untracked paths make git fail; callers fall back to a plain rename.
func (g *Git) Move(ctx context.Context, dir, oldName, newName string) error {
	_, err := g.runner.Run(ctx, dir, "mv", "--", oldName, newName)
	return err
}

// Check is a convenience wrapper that locates git and checks dir.
func Check(ctx context.Context, dir string) error {
	g, err := New()
	if err != nil {
		return err
	}
	return g.Check(ctx, dir)
}
