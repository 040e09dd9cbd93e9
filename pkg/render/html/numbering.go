package html

import (
	"strconv"
	"strings"
)

var romanValues = map[byte]int{
	'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000,
}

// ListStart returns the ordinal of an ordered list's first marker given its
// numbering class ("1", "a", "A", "i", "I"). Unparseable markers give 1.
func ListStart(class, marker string) int {
	if marker == "" {
		return 1
	}

	var n int
	switch class {
	case "a", "A":
		n = letterValue(strings.ToLower(marker))
	case "i", "I":
		n = romanValue(strings.ToLower(marker))
	default:
		n, _ = strconv.Atoi(marker)
	}
	if n < 1 {
		return 1
	}
	return n
}

// letterValue reads a, b, ..., z, aa, ab, ... as 1, 2, ..., 26, 27, 28, ...
func letterValue(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return 0
		}
		n = n*26 + int(s[i]-'a'+1)
	}
	return n
}

func romanValue(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	return total
}
