package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// Numbering classes of ordered list markers.
const (
	classBullet      = '*'
	classDigits      = '1'
	classLowerRoman  = 'i'
	classUpperRoman  = 'I'
	classLowerLetter = 'a'
	classUpperLetter = 'A'
)

var (
	bulletMarker  = regexp.MustCompile(`^([*+-]) +`)
	orderedMarker = regexp.MustCompile(`^([0-9]+|[A-Za-z]+)([.)]) +`)
	lowerRoman    = regexp.MustCompile(`^[ivxlcdm]+$`)
	upperRoman    = regexp.MustCompile(`^[IVXLCDM]+$`)
)

// marker describes the list marker found at the start of a line.
type marker struct {
	// style identifies the list a marker belongs to; a change of style
	// starts a new list.
	style string

	// class is the numbering class ('1', 'i', 'I', 'a', 'A') or '*'.
	class byte

	// value is the literal numeral or letter of an ordered marker.
	value string

	// length is the byte length of the marker including trailing spaces.
	length int
}

// ListParser parses bulleted (ul) or ordered (ol) lists.
type ListParser struct {
	ordered bool
}

// NewBulletListParser returns the ul grammar.
func NewBulletListParser() *ListParser { return &ListParser{} }

// NewOrderedListParser returns the ol grammar.
func NewOrderedListParser() *ListParser { return &ListParser{ordered: true} }

// Name implements Named.
func (p *ListParser) Name() string {
	if p.ordered {
		return "ol"
	}
	return "ul"
}

// marker recognizes the list marker at the start of line. prev is the class
// of the list being continued, or 0 for a first item.
func (p *ListParser) marker(line string, prev byte) (marker, bool) {
	if !p.ordered {
		m := bulletMarker.FindStringSubmatch(line)
		if m == nil {
			return marker{}, false
		}
		return marker{style: m[1], class: classBullet, length: len(m[0])}, true
	}

	m := orderedMarker.FindStringSubmatch(line)
	if m == nil {
		return marker{}, false
	}
	class, ok := numberingClass(m[1], prev)
	if !ok {
		return marker{}, false
	}
	return marker{
		style:  string(class) + m[2],
		class:  class,
		value:  m[1],
		length: len(m[0]),
	}, true
}

// numberingClass classifies an ordered marker value. A single letter
// continues a letter list; otherwise i, v and x read as roman numerals.
func numberingClass(value string, prev byte) (byte, bool) {
	if value[0] >= '0' && value[0] <= '9' {
		return classDigits, true
	}

	if len(value) == 1 {
		lower := value[0] >= 'a' && value[0] <= 'z'
		switch {
		case prev == classLowerLetter && lower:
			return classLowerLetter, true
		case prev == classUpperLetter && !lower:
			return classUpperLetter, true
		case strings.ContainsAny(value, "ivx"):
			return classLowerRoman, true
		case strings.ContainsAny(value, "IVX"):
			return classUpperRoman, true
		case lower:
			return classLowerLetter, true
		default:
			return classUpperLetter, true
		}
	}

	switch {
	case lowerRoman.MatchString(value):
		return classLowerRoman, true
	case upperRoman.MatchString(value):
		return classUpperRoman, true
	default:
		return 0, false
	}
}

// listItem is one collected item: its lines and the marker that opened it.
type listItem struct {
	lines  []string
	marker marker
}

// ParseBlock implements BlockParser.
func (p *ListParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	first, ok := p.marker(lines[0], 0)
	if !ok {
		return mdast.NoNode, 0
	}

	items, consumed := p.collect(lines, first)
	items, consumed = deblank(items, consumed)

	loose := false
	for _, item := range items {
		if containsBlank(item.lines) {
			loose = true
			break
		}
	}

	list := ctx.element(p.Name())
	if p.ordered {
		node := ctx.Tree.Node(list)
		node.SetAttr("type", string(first.class))
		node.SetAttr("start", first.value)
	}

	for _, item := range items {
		body := dedentItem(item)
		if loose && !isBlank(body[len(body)-1]) {
			body = append(body, "")
		}
		li := ctx.element("li", ctx.ParseBlocks(body)...)
		ctx.Tree.Append(list, li)
	}
	return list, consumed
}

// collect gathers consecutive items sharing the first item's style. An item
// runs through following blank or space-indented lines.
func (p *ListParser) collect(lines []string, first marker) ([]listItem, int) {
	var items []listItem
	pos := 0
	for pos < len(lines) {
		m, ok := p.marker(lines[pos], first.class)
		if !ok || m.style != first.style {
			break
		}

		item := listItem{lines: []string{lines[pos]}, marker: m}
		pos++
		for pos < len(lines) && (isBlank(lines[pos]) || strings.HasPrefix(lines[pos], " ")) {
			item.lines = append(item.lines, lines[pos])
			pos++
		}
		items = append(items, item)
	}
	return items, pos
}

// deblank hands trailing blank lines of the final item back to the caller
// when more than one item was collected; they end the list.
func deblank(items []listItem, consumed int) ([]listItem, int) {
	if len(items) < 2 {
		return items, consumed
	}
	last := &items[len(items)-1]
	for len(last.lines) > 1 && isBlank(last.lines[len(last.lines)-1]) {
		last.lines = last.lines[:len(last.lines)-1]
		consumed--
	}
	return items, consumed
}

// dedentItem strips the marker from the first line and the common
// indentation (2 when there is none to measure) from the rest.
func dedentItem(item listItem) []string {
	body := make([]string, 0, len(item.lines))
	body = append(body, item.lines[0][item.marker.length:])
	return append(body, dedent(item.lines[1:], 2)...)
}

func containsBlank(lines []string) bool {
	for _, line := range lines {
		if isBlank(line) {
			return true
		}
	}
	return false
}
