// Package langdetect guesses the language of untagged fenced code blocks.
// Guesses come from shebangs, a small set of telltale patterns and finally
// the go-enry classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined with confidence.
const Unknown = "text"

// classifierCandidates limits the go-enry classifier to languages that
// commonly appear in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// rule recognizes one language from telltale content.
type rule struct {
	lang  string
	match func(src string, trimmed []byte) bool
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{"go", func(_ string, t []byte) bool {
		return bytes.HasPrefix(t, []byte("package "))
	}},
	{"python", looksLikePython},
	{"html", func(_ string, t []byte) bool {
		return containsAny(strings.ToLower(string(t)), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_ string, t []byte) bool {
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) &&
			bytes.Contains(t, []byte(`"`))
	}},
	{"dockerfile", func(s string, t []byte) bool {
		return bytes.HasPrefix(t, []byte("FROM ")) ||
			(strings.Contains(s, "\nFROM ") && strings.Contains(s, "\nRUN ")) ||
			(strings.Contains(s, "WORKDIR ") && strings.Contains(s, "COPY "))
	}},
	{"sql", func(s string, _ []byte) bool {
		upper := strings.ToUpper(strings.TrimSpace(s))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s string, _ []byte) bool {
		return containsAny(s, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(s string, _ []byte) bool {
		return containsAny(s, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", looksLikeYAML},
}

// Detect returns a fence tag for content, or Unknown.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return tag(lang)
	}

	src := string(content)
	trimmed := bytes.TrimSpace(content)
	for _, r := range rules {
		if r.match(src, trimmed) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return tag(lang)
	}
	return Unknown
}

// DetectLines is Detect over the lines of a code block.
func DetectLines(lines []string) string {
	return Detect([]byte(strings.Join(lines, "\n")))
}

func looksLikePython(src string, _ []byte) bool {
	if strings.Contains(src, "def ") && strings.Contains(src, "):") {
		return true
	}
	if strings.Contains(src, "import ") && !strings.Contains(src, "import (") &&
		(strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ")) {
		return true
	}
	return containsAny(src, "__name__", "__main__")
}

// looksLikeYAML counts "key: value" lines and root list items; two or more
// make a document.
func looksLikeYAML(src string, _ []byte) bool {
	count := 0
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// tag converts a go-enry language name to a fence tag.
func tag(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
