package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/parser"
)

type named string

func (n named) Name() string { return string(n) }

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(r *parser.Registry[named]) error
		want   []string
		errMsg string
	}{
		{
			name: "appends in order",
			setup: func(r *parser.Registry[named]) error {
				r.MustRegister("a", "")
				return r.Register("b", "")
			},
			want: []string{"a", "b"},
		},
		{
			name: "inserts before anchor",
			setup: func(r *parser.Registry[named]) error {
				r.MustRegister("a", "")
				r.MustRegister("c", "")
				return r.Register("b", "c")
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "inserts before first",
			setup: func(r *parser.Registry[named]) error {
				r.MustRegister("b", "")
				return r.Register("a", "b")
			},
			want: []string{"a", "b"},
		},
		{
			name: "re-registering replaces in place",
			setup: func(r *parser.Registry[named]) error {
				r.MustRegister("a", "")
				r.MustRegister("b", "")
				return r.Register("a", "b")
			},
			want: []string{"a", "b"},
		},
		{
			name: "unknown anchor fails",
			setup: func(r *parser.Registry[named]) error {
				r.MustRegister("a", "")
				return r.Register("b", "missing")
			},
			want:   []string{"a"},
			errMsg: `no such parser: "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := parser.NewRegistry[named]()
			err := tt.setup(reg)
			if tt.errMsg != "" {
				require.EqualError(t, err, tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, reg.Names())
			assert.Equal(t, len(tt.want), reg.Len())
		})
	}
}

func TestRegistry_NoSuchParserError(t *testing.T) {
	t.Parallel()

	reg := parser.NewRegistry[named]()
	err := reg.Register("x", "nope")

	require.ErrorIs(t, err, parser.ErrNoSuchParser)
	var nsp *parser.NoSuchParserError
	require.True(t, errors.As(err, &nsp))
	assert.Equal(t, "nope", nsp.Name)

	assert.Panics(t, func() { reg.MustRegister("y", "nope") })
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := parser.NewRegistry[named]()
	reg.MustRegister("a", "")

	got, ok := reg.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, named("a"), got)

	_, ok = reg.Lookup("b")
	assert.False(t, ok)
}

func TestRegistry_AllIsSnapshot(t *testing.T) {
	t.Parallel()

	reg := parser.NewRegistry[named]()
	reg.MustRegister("a", "")
	all := reg.All()
	reg.MustRegister("b", "")

	assert.Equal(t, []named{"a"}, all)
	assert.Equal(t, []named{"a", "b"}, reg.All())
}

func TestNew_BuiltinOrder(t *testing.T) {
	t.Parallel()

	p := parser.New()
	assert.Equal(t, []string{
		"fence", "heading", "code", "blockquote", "hr", "ul", "ol",
		"footnotedef", "linkdef", "html", "htmltag", "table",
	}, p.Blocks.Names())
	assert.Equal(t, []string{
		"code", "image", "footnote", "link", "strong", "em", "del", "sub", "sup",
	}, p.Inlines.Names())
	assert.Equal(t, []string{"omit", "verbatim", "config", "code"}, p.Fences.Names())
}
