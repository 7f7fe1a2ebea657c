package rename

import (
	"mime"
	"strings"
)

// ExtensionSet decides which trailing extensions are recognized and how they
// are spelled after renaming.
type ExtensionSet struct {
	exact  map[string]bool
	folded map[string]bool
	remap  map[string]string
	mime   bool
}

// NewExtensionSet builds a set from configured extensions (leading period,
// exact spelling kept) and a remap table applied after recognition. When
// useMIME is set, any extension known to the MIME table is also recognized.
func NewExtensionSet(exts []string, remap map[string]string, useMIME bool) *ExtensionSet {
	s := &ExtensionSet{
		exact:  make(map[string]bool, len(exts)),
		folded: make(map[string]bool, len(exts)),
		remap:  make(map[string]string, len(remap)),
		mime:   useMIME,
	}
	for _, ext := range exts {
		ext = dotted(ext)
		s.exact[ext] = true
		s.folded[strings.ToLower(ext)] = true
	}
	for from, to := range remap {
		s.remap[strings.ToLower(dotted(from))] = dotted(to)
	}
	return s
}

func dotted(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Recognized reports whether ext (with leading period) is a known extension
func (s *ExtensionSet) Recognized(ext string) bool {
	if len(ext) < 2 {
		return false
	}
	if s.exact[ext] || s.folded[strings.ToLower(ext)] {
		return true
	}
	return s.mime && mime.TypeByExtension(ext) != ""
}

// Split separates name into stem and recognized extension. An unrecognized
// extension stays part of the stem and ext is empty.
func (s *ExtensionSet) Split(name string) (stem, ext string) {
	ext = trailingExt(name)
	if ext == "" || !s.Recognized(ext) {
		return name, ""
	}
	return name[:len(name)-len(ext)], ext
}

// Canonical returns the spelling ext is renamed to: the configured spelling
// when it matches exactly, otherwise lower case, then remapped.
func (s *ExtensionSet) Canonical(ext string) string {
	if ext == "" {
		return ""
	}
	out := ext
	if !s.exact[ext] {
		out = strings.ToLower(ext)
	}
	if to, ok := s.remap[strings.ToLower(out)]; ok {
		return to
	}
	return out
}

// trailingExt returns the last extension of name including its period.
// Leading periods do not start an extension, so ".bashrc" has none.
func trailingExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.TrimLeft(name[:i], ".") == "" {
		return ""
	}
	return name[i:]
}

// stemOf strips the trailing extension regardless of recognition
func stemOf(name string) string {
	return name[:len(name)-len(trailingExt(name))]
}
