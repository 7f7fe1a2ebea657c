package slug

import "strings"

// Affixes is a stem split into preserved markers and the part to slugify
type Affixes struct {
	Prefix string
	Core   string
	Suffix string
}

// SplitAffixes extracts the longest run of prefix markers at the start of
// stem and the longest run of suffix markers at its end. Matching is
// anchored and greedy; at each position the longest marker wins. The core
// always keeps at least one character, so a stem made only of markers is
// never emptied.
func SplitAffixes(stem string, prefixes, suffixes []string) Affixes {
	start := 0
	for start < len(stem) {
		n := longestLeading(stem[start:], prefixes)
		if n == 0 || start+n >= len(stem) {
			break
		}
		start += n
	}

	end := len(stem)
	for end > start {
		n := longestTrailing(stem[start:end], suffixes)
		if n == 0 || end-n <= start {
			break
		}
		end -= n
	}

	return Affixes{
		Prefix: stem[:start],
		Core:   stem[start:end],
		Suffix: stem[end:],
	}
}

func longestLeading(s string, markers []string) int {
	best := 0
	for _, m := range markers {
		if len(m) > best && strings.HasPrefix(s, m) {
			best = len(m)
		}
	}
	return best
}

func longestTrailing(s string, markers []string) int {
	best := 0
	for _, m := range markers {
		if len(m) > best && strings.HasSuffix(s, m) {
			best = len(m)
		}
	}
	return best
}
