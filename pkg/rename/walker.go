package rename

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/sdejongh/slugnorris/pkg/logging"
	"github.com/sdejongh/slugnorris/pkg/models"
	"github.com/sdejongh/slugnorris/pkg/slug"
	"github.com/sdejongh/slugnorris/pkg/storage"
)

// EmitFunc receives every event as soon as it is known
type EmitFunc func(ev models.Event)

// Walker visits a tree depth-first, renaming each entry into its slug form.
// Directories are renamed before their children are listed, so child paths
// are always computed against the directory's current name.
type Walker struct {
	backend  storage.Backend
	executor *Executor
	op       *models.RenameOperation
	logger   logging.Logger
	emit     EmitFunc

	ignore     *IgnoreRules
	exts       *ExtensionSet
	underscore map[string]bool
	length     LengthPolicy
	slugOpts   slug.Options

	// root is the current path of the walk root, updated when it is renamed
	root string
}

// NewWalker creates a walker over backend
func NewWalker(
	backend storage.Backend,
	executor *Executor,
	op *models.RenameOperation,
	logger logging.Logger,
	emit EmitFunc,
) *Walker {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if emit == nil {
		emit = func(models.Event) {}
	}

	caseInsensitive := backend.Capabilities().CaseInsensitive
	underscore := make(map[string]bool, len(op.UnderscoreExtensions))
	for _, ext := range op.UnderscoreExtensions {
		underscore[strings.ToLower(dotted(ext))] = true
	}

	return &Walker{
		backend:    backend,
		executor:   executor,
		op:         op,
		logger:     logger,
		emit:       emit,
		ignore:     NewIgnoreRules(op.IgnoreStems, op.IgnoreExtensions, op.IgnoreGlobs, caseInsensitive),
		exts:       NewExtensionSet(op.Extensions, op.ExtensionMap, true),
		underscore: underscore,
		length:     LengthPolicy{Warn: op.WarnLimit, Error: op.ErrorLimit},
		slugOpts: slug.Options{
			Prefixes:  op.Prefixes,
			Suffixes:  op.Suffixes,
			SafeChars: op.SafeChars,
			MaxLength: op.MaxLength,
			Digits:    op.NumDigits,
		},
	}
}

// Visit processes p and, for directories, everything beneath it. root marks
// the entry the walk started from. It returns false if anything failed;
// failures never stop the traversal.
func (w *Walker) Visit(ctx context.Context, p string, root bool) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	p = storage.Clean(p)
	if root {
		w.root = p
	}

	isDir, err := w.backend.IsDir(ctx, p)
	if err != nil {
		w.emit(models.NewPathEvent(models.EventUnreadable, p, err))
		return false
	}

	if p != "." && w.ignore.Match(path.Base(p), w.relative(p), isDir) {
		w.emit(models.NewPathEvent(models.EventIgnored, p, nil))
		return true
	}

	if isDir {
		return w.visitDir(ctx, p, root)
	}

	isFile, err := w.backend.IsFile(ctx, p)
	if err != nil {
		w.emit(models.NewPathEvent(models.EventUnreadable, p, err))
		return false
	}
	if !isFile {
		// vanished since it was listed
		w.logger.Warn(ctx, "entry disappeared during traversal", logging.Fields{"path": p})
		return true
	}
	return w.visitFile(ctx, p)
}

func (w *Walker) visitFile(ctx context.Context, p string) bool {
	dir, name := path.Split(p)
	stem, ext := w.exts.Split(name)

	opts := w.slugOpts
	opts.Dashed = !w.underscore[strings.ToLower(ext)]

	newName := name
	if res := slug.Normalize(stem, opts); usable(res.Name()) {
		newName = res.Name() + w.exts.Canonical(ext)
	}

	_, ok := w.commit(ctx, p, storage.Join(dir, newName), models.KindFile)
	return ok
}

func (w *Walker) visitDir(ctx context.Context, p string, root bool) bool {
	ok := true
	current := p

	if !(root && w.op.IgnoreRoot) && p != "." {
		dir, name := path.Split(p)
		opts := w.slugOpts
		opts.Dashed = true

		newName := name
		if s := slug.Slugify(name, opts); usable(s) {
			newName = s
		}
		current, ok = w.commit(ctx, p, storage.Join(dir, newName), models.KindDir)
		if root {
			w.root = current
		}
	}

	if root && w.op.NoRecurse {
		w.emit(models.NewPathEvent(models.EventIgnored, current, nil))
		return ok
	}

	children, err := w.backend.List(ctx, current)
	if err != nil {
		w.logger.Error(ctx, "failed to list directory", err, logging.Fields{"path": current})
		w.emit(models.NewPathEvent(models.EventUnreadable, current, err))
		return false
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})

	for _, child := range children {
		if !w.Visit(ctx, child.Path, false) {
			ok = false
		}
	}
	return ok
}

// commit applies one decision and evaluates the length of the decided path,
// whether or not the rename went through. It returns the path the entry
// ends up at.
func (w *Walker) commit(ctx context.Context, oldPath, newPath string, kind models.EntryKind) (string, bool) {
	decision := models.RenameDecision{OldPath: oldPath, NewPath: newPath, Kind: kind}
	final := oldPath
	ok := true

	if !decision.Changed() {
		w.emit(models.NewPathEvent(models.EventUnchanged, oldPath, nil))
	} else {
		result, err := w.executor.Commit(ctx, oldPath, newPath)
		switch result {
		case Committed:
			final = newPath
			w.emit(models.NewRenameEvent(models.EventRenamed, oldPath, newPath, nil))
		case Conflict:
			ok = false
			w.emit(models.NewRenameEvent(models.EventConflict, oldPath, newPath, nil))
		default:
			ok = false
			w.logger.Error(ctx, "rename denied", err, logging.Fields{"old": oldPath, "new": newPath})
			w.emit(models.NewRenameEvent(models.EventDenied, oldPath, newPath, err))
		}
	}

	verdict := w.length.Evaluate(newPath)
	switch {
	case verdict.Fail:
		ok = false
		w.emit(models.NewLengthEvent(models.EventError, newPath, verdict.Length, verdict.Limit))
	case verdict.Warn:
		w.emit(models.NewLengthEvent(models.EventWarn, newPath, verdict.Length, verdict.Limit))
	}
	return final, ok
}

// relative returns p relative to the walk root; the root itself is its
// base name.
func (w *Walker) relative(p string) string {
	switch {
	case w.root == ".":
		return p
	case p == w.root:
		return path.Base(p)
	default:
		return strings.TrimPrefix(p, w.root+"/")
	}
}

// usable reports whether a slugged stem can be used as a name
func usable(stem string) bool {
	return stem != "" && stem != "." && stem != ".."
}
