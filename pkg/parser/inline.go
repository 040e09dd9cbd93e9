package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// InlineParser recognizes one span-level grammar.
type InlineParser interface {
	Named

	// Match returns the earliest position at or after from where the
	// grammar could start in src, or -1 if it cannot match again.
	Match(src string, from int) int

	// ParseInline parses at sc.Pos(), which is a position Match reported,
	// and advances the scanner past the consumed span. It returns false
	// if the grammar does not actually apply there.
	ParseInline(ctx *Context, sc *Scanner) (mdast.NodeID, bool)
}

// Delimiters is implemented by inline parsers whose spans open and close
// with fixed strings. The engine uses it to let a longer opener win over an
// enclosing span's terminator at the same position.
type Delimiters interface {
	Delimiters() (start, end string)
}

// Scanner is the inline engine's cursor over one source string.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Src returns the whole source string.
func (s *Scanner) Src() string { return s.src }

// Pos returns the cursor position.
func (s *Scanner) Pos() int { return s.pos }

// SetPos moves the cursor.
func (s *Scanner) SetPos(pos int) { s.pos = pos }

// Skip advances the cursor by n bytes.
func (s *Scanner) Skip(n int) { s.pos += n }

// Rest returns the unscanned remainder.
func (s *Scanner) Rest() string { return s.src[s.pos:] }

// HasPrefix reports whether the remainder starts with prefix.
func (s *Scanner) HasPrefix(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// AtEnd reports whether the cursor reached the end of the source.
func (s *Scanner) AtEnd() bool { return s.pos >= len(s.src) }

// candidate caches the next match position of one inline parser.
type candidate struct {
	parser InlineParser
	at     int
}

// ParseInline runs the inline engine over text and returns the produced
// nodes, all marked inline.
func (c *Context) ParseInline(text string) []mdast.NodeID {
	return c.ParseInlineUntil(NewScanner(text), "")
}

// ParseInlineUntil runs the inline engine from the scanner's cursor until
// the unescaped terminator end is found or the source is exhausted. The
// terminator itself is left for the caller to consume. An empty end means
// parse to the end of the source.
func (c *Context) ParseInlineUntil(sc *Scanner, end string) []mdast.NodeID {
	src := sc.src
	var out []mdast.NodeID

	cands := make([]candidate, 0, len(c.inlines))
	for _, ip := range c.inlines {
		cands = append(cands, candidate{parser: ip, at: -2})
	}

	for sc.pos < len(src) {
		stop := len(src)
		if end != "" {
			if at := IndexUnescaped(src, sc.pos, end); at >= 0 {
				stop = at
			}
		}

		// Earliest match wins and among parsers the earlier registered one
		// does. The terminator wins ties unless a longer delimiter that
		// closes later opens there: *a **b** c* nests strong inside em.
		best, bestIdx := stop, -1
		live := cands[:0]
		for _, cand := range cands {
			if cand.at < sc.pos {
				cand.at = cand.parser.Match(src, sc.pos)
				if cand.at < 0 {
					continue
				}
			}
			live = append(live, cand)
			if cand.at < best || (bestIdx < 0 && cand.at == stop && opensOver(cand.parser, src, stop, end)) {
				best, bestIdx = cand.at, len(live)-1
			}
		}
		cands = live

		if best > sc.pos {
			out = c.appendText(out, Unescape(src[sc.pos:best]))
			sc.pos = best
		}
		if bestIdx < 0 {
			break
		}

		node, ok := cands[bestIdx].parser.ParseInline(c, sc)
		if !ok || sc.pos <= best {
			// Treat one character as escaped text and move on.
			sc.pos = best
			_, size := utf8.DecodeRuneInString(src[sc.pos:])
			out = c.appendText(out, src[sc.pos:sc.pos+size])
			sc.pos += size
			cands[bestIdx].at = -2
			continue
		}
		c.markInline(node)
		out = append(out, node)
	}

	return out
}

// opensOver reports whether p opens a span at the terminator position at
// with a delimiter longer than the terminator, and that span closes later.
func opensOver(p InlineParser, src string, at int, end string) bool {
	d, ok := p.(Delimiters)
	if !ok || end == "" || at >= len(src) {
		return false
	}
	start, closer := d.Delimiters()
	if len(start) <= len(end) || !strings.HasPrefix(src[at:], start) {
		return false
	}
	return IndexUnescaped(src, at+len(start), closer) >= 0
}

// markInline tags id and every descendant not yet tagged as inline.
func (c *Context) markInline(id mdast.NodeID) {
	node := c.Tree.Node(id)
	if node.Inline {
		return
	}
	node.Inline = true
	for _, child := range node.Children {
		c.markInline(child)
	}
}

// appendText adds text to out, merging with a trailing text leaf.
func (c *Context) appendText(out []mdast.NodeID, text string) []mdast.NodeID {
	if text == "" {
		return out
	}
	if n := len(out); n > 0 {
		if last := c.Tree.Node(out[n-1]); last.IsText() {
			last.Text += text
			return out
		}
	}
	id := c.Tree.NewText(text)
	c.Tree.SetInline(id)
	return append(out, id)
}

// IndexUnescaped returns the index of the first occurrence of needle in
// src at or after from that is not preceded by an odd run of backslashes,
// or -1.
func IndexUnescaped(src string, from int, needle string) int {
	for from <= len(src) {
		idx := strings.Index(src[from:], needle)
		if idx < 0 {
			return -1
		}
		at := from + idx
		if !isEscaped(src, at) {
			return at
		}
		from = at + 1
	}
	return -1
}

func isEscaped(src string, at int) bool {
	count := 0
	for i := at - 1; i >= 0 && src[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// Unescape removes the backslash from every backslash escape of an ASCII
// punctuation character.
func Unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var buf strings.Builder
	buf.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && isASCIIPunct(text[i+1]) {
			i++
		}
		buf.WriteByte(text[i])
	}
	return buf.String()
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}
