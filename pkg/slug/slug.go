// Package slug converts file and directory names into normalized, URL-safe
// slugs while preserving configured affixes.
//
// The transformation of a stem runs in a fixed order:
//   - split off prefix and suffix markers (kept verbatim)
//   - split the core into words at case changes and separators
//   - transliterate to ASCII and replace disallowed characters
//   - lowercase and join words with '-' (dashed) or '_' (underscored)
//   - optionally normalize a leading numeric token to a fixed width
//   - optionally drop trailing words until a length budget is met
//
// Normalize is pure: the same stem and options always yield the same result,
// and a slug fed back in comes out unchanged.
package slug

// Separators used by the two dash modes
const (
	Dash       = '-'
	Underscore = '_'
)

// DefaultSafeChars are the punctuation characters kept inside slugs.
// Periods survive so that version-like sequences such as "v1.2" do.
const DefaultSafeChars = "."

// Options configures Normalize
type Options struct {
	// Dashed selects '-' as separator; otherwise '_' is used
	Dashed bool
	// Prefixes and Suffixes are markers preserved at either end of the stem
	Prefixes []string
	Suffixes []string
	// SafeChars are ASCII punctuation characters kept as-is
	SafeChars string
	// MaxLength caps the stem length including affixes and digits, 0 = off
	MaxLength int
	// Digits is the width of a normalized leading number, 0 = off
	Digits int
}

// Separator returns the separator byte selected by the dash mode
func (o Options) Separator() byte {
	if o.Dashed {
		return Dash
	}
	return Underscore
}

// Result holds the components of a normalized name
type Result struct {
	Prefix    string
	Digits    string
	Stem      string
	Suffix    string
	Extension string
	Separator byte
}

// Name reassembles the stem part of the result, without the extension
func (r Result) Name() string {
	name := r.Prefix
	if r.Digits != "" {
		name += r.Digits + string(r.Separator)
	}
	return name + r.Stem + r.Suffix
}

// String reassembles the full name including the extension
func (r Result) String() string {
	return r.Name() + r.Extension
}

// Normalize converts stem into its slug form.
//
// An empty stem is returned unchanged. When the core (the stem without its
// affixes) contains nothing that survives slugification, it is kept verbatim
// rather than collapsing the name to its affixes.
func Normalize(stem string, opts Options) Result {
	sep := opts.Separator()
	if stem == "" {
		return Result{Separator: sep}
	}

	safe := opts.SafeChars
	affixes := SplitAffixes(stem, opts.Prefixes, opts.Suffixes)

	core := collapse(restrict(transliterate(splitWords(affixes.Core)), sep, safe), sep)
	if core == "" {
		return Result{
			Prefix:    affixes.Prefix,
			Stem:      affixes.Core,
			Suffix:    affixes.Suffix,
			Separator: sep,
		}
	}

	// Slugging can expose markers at either end of the core, as in
	// "(.)notes" -> ".-notes". They belong to the affixes, otherwise the
	// next run would split them off and change the name.
	prefix, suffix := affixes.Prefix, affixes.Suffix
	for {
		inner := SplitAffixes(core, opts.Prefixes, opts.Suffixes)
		if inner.Prefix == "" && inner.Suffix == "" {
			break
		}
		rest := collapse(inner.Core, sep)
		if rest == "" {
			break
		}
		prefix += inner.Prefix
		suffix = inner.Suffix + suffix
		core = rest
	}

	digits, core := extractLeadingDigits(core, sep, opts.Digits)

	if opts.MaxLength > 0 {
		budget := opts.MaxLength - len(prefix) - len(suffix)
		if digits != "" {
			budget -= len(digits) + 1
		}
		core = shorten(core, budget, sep)
	}

	return Result{
		Prefix:    prefix,
		Digits:    digits,
		Stem:      core,
		Suffix:    suffix,
		Separator: sep,
	}
}

// Slugify is a shorthand returning the reassembled stem of Normalize
func Slugify(stem string, opts Options) string {
	return Normalize(stem, opts).Name()
}
