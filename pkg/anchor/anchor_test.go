package anchor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/pkg/anchor"
)

func TestBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Hello World", "hello-world"},
		{"What's new?", "whats-new"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"snake_case stays", "snake_case-stays"},
		{"a -- b", "a-b"},
		{"Ünïcode Überschrift", "ünïcode-überschrift"},
		{"v1.2.3 release", "v123-release"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, anchor.Base(tt.text))
		})
	}
}

func TestSlugger_Duplicates(t *testing.T) {
	t.Parallel()

	s := anchor.NewSlugger()
	assert.Equal(t, "intro", s.Slug("Intro"))
	assert.Equal(t, "intro-1", s.Slug("Intro"))
	assert.Equal(t, "intro-2", s.Slug("intro!"))
	assert.Equal(t, "usage", s.Slug("Usage"))
	assert.True(t, s.Seen("intro"))
	assert.False(t, s.Seen("missing"))
}

func TestSlugger_EmptyRecordsNothing(t *testing.T) {
	t.Parallel()

	s := anchor.NewSlugger()
	assert.Empty(t, s.Slug("???"))
	assert.False(t, s.Seen(""))
}
