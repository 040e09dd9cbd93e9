// Package anchor derives GitHub-compatible fragment identifiers from
// heading text.
package anchor

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger hands out slugs unique within one document. Repeated slugs get
// "-1", "-2", ... suffixes in order of appearance.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns a Slugger that has seen nothing.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns the unique slug for text. It returns "" (and records
// nothing) when text has no letters, digits, hyphens or underscores.
func (s *Slugger) Slug(text string) string {
	base := Base(text)
	if base == "" {
		return ""
	}

	count := s.seen[base]
	s.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// Seen reports whether slug has been handed out as a base slug.
func (s *Slugger) Seen(slug string) bool {
	return s.seen[slug] > 0
}

// Base converts text to a slug without duplicate tracking: lowercase,
// letters, digits, hyphens and underscores kept, spaces turned into single
// hyphens, other punctuation dropped and outer hyphens trimmed.
func Base(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	hyphen := false
	for _, ch := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_':
			buf.WriteRune(ch)
			hyphen = false
		case ch == '-' || unicode.IsSpace(ch):
			if !hyphen {
				buf.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.Trim(buf.String(), "-")
}
