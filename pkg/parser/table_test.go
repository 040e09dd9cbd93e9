package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/pkg/parser"
)

func TestParse_Tables(t *testing.T) {
	t.Parallel()

	runDumpCases(t, []dumpCase{
		{
			name: "header with alignments",
			src:  "| A | B | C |\n|:--|--:|:-:|\n| 1 | 2 | 3 |\n",
			want: `table[thead[tr[th{style=text-align: left}["A"] th{style=text-align: right}["B"] th{style=text-align: center}["C"]]] ` +
				`tbody[tr[td{style=text-align: left}["1"] td{style=text-align: right}["2"] td{style=text-align: center}["3"]]]]`,
		},
		{
			name: "no alignment row",
			src:  "| a | b |\n| c | d |\n",
			want: `table[tbody[tr[td["a"] td["b"]] tr[td["c"] td["d"]]]]`,
		},
		{
			name: "leading alignment row without header",
			src:  "|---|:--|\n| a | b |\n",
			want: `table[tbody[tr[td["a"] td{style=text-align: left}["b"]]]]`,
		},
		{
			name: "rows keep their own cell count",
			src:  "| a | b |\n|---|---|\n| 1 |\n| 1 | 2 | 3 |\n",
			want: `table[thead[tr[th["a"] th["b"]]] tbody[tr[td["1"]] tr[td["1"] td["2"] td["3"]]]]`,
		},
		{
			name: "inline markup and escaped pipes in cells",
			src:  "| *x* | a \\| b |\n",
			want: `table[tbody[tr[td[em["x"]] td["a | b"]]]]`,
		},
		{
			name: "alignment row alone is text",
			src:  "|---|\n\n",
			want: `p["|---|"]`,
		},
	})
}

func TestSplitRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{line: "| a | b |", want: []string{"a", "b"}},
		{line: "|a|b", want: []string{"a", "b"}},
		{line: `| a \| b | c |`, want: []string{`a \| b`, "c"}},
		{line: "| | x |", want: []string{"", "x"}},
		{line: `| a \|`, want: []string{`a \|`}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parser.SplitRow(tt.line))
		})
	}
}
