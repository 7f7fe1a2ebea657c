package slug

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelBoundary   = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// splitWords lowercases a compound identifier and marks every word boundary
// with an underscore: "HTTPServer" -> "http_server", "myFile-v2" -> "my_file_v2".
func splitWords(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}

// transliterate coerces s to ASCII. Characters without an ASCII rendition
// are dropped.
func transliterate(s string) string {
	return unidecode.Unidecode(s)
}

// restrict lowercases s and replaces every byte outside [a-z0-9] and safe
// with sep. Both '-' and '_' become sep regardless of safe.
func restrict(s string, sep byte, safe string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		case c == '-' || c == '_':
			b.WriteByte(sep)
		case c < 0x80 && strings.IndexByte(safe, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte(sep)
		}
	}
	return b.String()
}

// collapse reduces runs of sep to one and trims sep from both ends
func collapse(s string, sep byte) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := true // drops leading separators
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == sep {
			if prev {
				continue
			}
			prev = true
		} else {
			prev = false
		}
		b.WriteByte(c)
	}
	return strings.TrimSuffix(b.String(), string(sep))
}
