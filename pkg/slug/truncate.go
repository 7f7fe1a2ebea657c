package slug

import "strings"

// shorten drops whole trailing segments from stem until it fits in max
// bytes. The first segment is always kept, even when it alone exceeds max.
func shorten(stem string, max int, sep byte) string {
	if len(stem) <= max {
		return stem
	}

	parts := strings.Split(stem, string(sep))
	out := parts[0]
	for _, part := range parts[1:] {
		if len(out)+1+len(part) > max {
			break
		}
		out += string(sep) + part
	}
	return out
}
