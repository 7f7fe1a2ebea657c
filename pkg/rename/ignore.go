package rename

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreRules decides which entries are skipped before any slugging.
//
// Patterns support:
//   - Base name globs: *.tmp, .~lock*
//   - Directory-only patterns: node_modules/, build/
//   - Path patterns relative to the walk root: docs/**/draft-*
type IgnoreRules struct {
	stems           map[string]bool
	exts            map[string]bool
	globs           []string
	caseInsensitive bool
}

// NewIgnoreRules compiles ignore sets. Stems and globs match case-insensitively
// when caseInsensitive is set; extensions always do.
func NewIgnoreRules(stems, exts, globs []string, caseInsensitive bool) *IgnoreRules {
	r := &IgnoreRules{
		stems:           make(map[string]bool, len(stems)),
		exts:            make(map[string]bool, len(exts)),
		caseInsensitive: caseInsensitive,
	}
	for _, s := range stems {
		r.stems[r.fold(s)] = true
	}
	for _, e := range exts {
		r.exts[strings.ToLower(dotted(e))] = true
	}
	for _, g := range globs {
		dirOnly := strings.HasSuffix(g, "/")
		g = strings.TrimPrefix(path.Clean("/"+g), "/")
		if g == "" || !doublestar.ValidatePattern(g) {
			continue
		}
		if dirOnly {
			g += "/"
		}
		r.globs = append(r.globs, r.fold(g))
	}
	return r
}

// ValidateGlobs returns the first pattern that doublestar cannot parse
func ValidateGlobs(globs []string) (string, bool) {
	for _, g := range globs {
		if !doublestar.ValidatePattern(strings.TrimSuffix(g, "/")) {
			return g, false
		}
	}
	return "", true
}

func (r *IgnoreRules) fold(s string) string {
	if r.caseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

// Match reports whether an entry is ignored. name is the base name; rel is
// the slash-separated path relative to the walk root. Ignored extensions only
// apply to files.
func (r *IgnoreRules) Match(name, rel string, isDir bool) bool {
	if r.stems[r.fold(stemOf(name))] || r.stems[r.fold(name)] {
		return true
	}
	if !isDir {
		if ext := trailingExt(name); ext != "" && r.exts[strings.ToLower(ext)] {
			return true
		}
	}
	return r.matchGlobs(r.fold(name), r.fold(rel), isDir)
}

func (r *IgnoreRules) matchGlobs(name, rel string, isDir bool) bool {
	for _, g := range r.globs {
		if strings.HasSuffix(g, "/") {
			if !isDir {
				continue
			}
			g = strings.TrimSuffix(g, "/")
		}

		target := name
		if strings.Contains(g, "/") {
			target = rel
		}
		if ok, _ := doublestar.Match(g, target); ok {
			return true
		}
	}
	return false
}
