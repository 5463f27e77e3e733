package event

import "strings"

// Topic is a hierarchical event name in dot-notation.
type Topic string

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments splits the topic on dots.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// Match reports whether the topic matches a subscription pattern.
// A pattern segment "*" matches exactly one topic segment; a trailing
// "**" matches any remainder (including none).
func (t Topic) Match(pattern Topic) bool {
	if pattern == t || pattern == "**" {
		return true
	}

	tsegs := t.Segments()
	psegs := pattern.Segments()

	for i, pseg := range psegs {
		if pseg == "**" {
			// Trailing multi-wildcard: the rest always matches.
			return i == len(psegs)-1
		}
		if i >= len(tsegs) {
			return false
		}
		if pseg != "*" && pseg != tsegs[i] {
			return false
		}
	}

	return len(tsegs) == len(psegs)
}
