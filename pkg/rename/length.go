package rename

import "unicode/utf8"

// LengthPolicy flags paths whose length exceeds optional limits.
// A zero limit is disabled.
type LengthPolicy struct {
	Warn  int
	Error int
}

// LengthVerdict is the outcome of evaluating one path
type LengthVerdict struct {
	Length int
	Limit  int
	Warn   bool
	Fail   bool
}

// Evaluate measures p in characters. An error-limit breach fails the entry
// and takes precedence over the warn limit.
func (p LengthPolicy) Evaluate(path string) LengthVerdict {
	n := utf8.RuneCountInString(path)
	v := LengthVerdict{Length: n}
	switch {
	case p.Error > 0 && n > p.Error:
		v.Fail = true
		v.Limit = p.Error
	case p.Warn > 0 && n > p.Warn:
		v.Warn = true
		v.Limit = p.Warn
	}
	return v
}
