package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/slugnorris/internal/platform"
	"github.com/sdejongh/slugnorris/pkg/config"
	"github.com/sdejongh/slugnorris/pkg/models"
	"github.com/sdejongh/slugnorris/pkg/vcs"
)

// target is a resolved run root: the directory anchoring the backend and the
// start path of the walk inside it
type target struct {
	Abs        string
	Base       string
	Start      string
	IgnoreRoot bool
	IsDir      bool
}

// resolveTarget validates the path argument and splits it for the backend
func resolveTarget(path string) (*target, error) {
	if err := platform.ValidatePath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("path does not exist: %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	base, start, ignoreRoot := platform.SplitRoot(path, cwd)
	return &target{
		Abs:        filepath.Join(base, filepath.FromSlash(start)),
		Base:       base,
		Start:      filepath.ToSlash(start),
		IgnoreRoot: ignoreRoot,
		IsDir:      info.IsDir(),
	}, nil
}

// checkGitSafety enforces the git work tree precondition. It returns the git
// handle to use for renames, nil when renames should not go through git.
func checkGitSafety(ctx context.Context, t *target, force bool) (*vcs.Git, error) {
	dir := t.Abs
	if !t.IsDir {
		dir = filepath.Dir(dir)
	}

	git, err := vcs.New()
	if err == nil {
		err = git.Check(ctx, dir)
	}

	switch {
	case err == nil:
		return git, nil
	case force:
		return nil, nil
	case errors.Is(err, vcs.ErrNotWorkTree):
		return nil, fmt.Errorf("%s is not inside a git repository: actions might be destructive and irreversible, run again with --force to proceed", t.Abs)
	default:
		return nil, fmt.Errorf("unable to determine whether path is within git repository (%w): run again with --force to proceed", err)
	}
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	return config.Load(globalFlags.ConfigFile)
}

// applyFlagsToConfig overrides config values with command-line flags.
// Repeatable rule flags extend the configured sets.
func applyFlagsToConfig(cfg *config.Config) {
	if renameFlags.MaxLength > 0 {
		cfg.Rename.MaxLength = renameFlags.MaxLength
	}
	if renameFlags.NumDigits > 0 {
		cfg.Rename.NumDigits = renameFlags.NumDigits
	}
	if renameFlags.WarnLimit > 0 {
		cfg.Limits.Warn = renameFlags.WarnLimit
	}
	if renameFlags.ErrorLimit > 0 {
		cfg.Limits.Error = renameFlags.ErrorLimit
	}

	cfg.Ignore.Globs = append(cfg.Ignore.Globs, renameFlags.IgnoreGlobs...)
	cfg.Ignore.Stems = append(cfg.Ignore.Stems, renameFlags.IgnoreStems...)
	cfg.Ignore.Extensions = append(cfg.Ignore.Extensions, renameFlags.IgnoreExts...)
	cfg.Rename.Prefixes = append(cfg.Rename.Prefixes, renameFlags.Prefixes...)
	cfg.Rename.Suffixes = append(cfg.Rename.Suffixes, renameFlags.Suffixes...)
	cfg.Rename.Extensions = append(cfg.Rename.Extensions, renameFlags.Extensions...)
	cfg.Rename.UnderscoreExtensions = append(cfg.Rename.UnderscoreExtensions, renameFlags.NoDashExts...)

	if renameFlags.Output != "" {
		cfg.Output.Format = renameFlags.Output
	}
	if renameFlags.Progress {
		cfg.Output.Progress = true
	}

	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
		cfg.Output.Verbose = false
	}
	if globalFlags.Verbose {
		cfg.Output.Verbose = true
		cfg.Output.Quiet = false
	}
}

// createRenameOperation creates a rename operation from configuration
func createRenameOperation(cfg *config.Config, t *target) (*models.RenameOperation, error) {
	operation := cfg.Operation(t.Abs)
	operation.ID = uuid.New().String()
	operation.DryRun = renameFlags.DryRun
	operation.NoRecurse = renameFlags.NoRecurse
	operation.IgnoreRoot = renameFlags.IgnoreRoot || t.IgnoreRoot
	operation.Force = renameFlags.Force
	operation.CreatedAt = time.Now()

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
