package parser_test

import "testing"

func TestParse_Lists(t *testing.T) {
	t.Parallel()

	runDumpCases(t, []dumpCase{
		{
			name: "tight bullets",
			src:  "* a\n* b\n",
			want: `ul[li["a"] li["b"]]`,
		},
		{
			name: "loose bullets",
			src:  "* a\n\n* b\n",
			want: `ul[li[p["a"]] li[p["b"]]]`,
		},
		{
			name: "bullet style change starts a new list",
			src:  "* a\n- b",
			want: `ul[li["a"]] ul[li["b"]]`,
		},
		{
			name: "nested list",
			src:  "* a\n  * b",
			want: `ul[li["a" ul[li["b"]]]]`,
		},
		{
			name: "continuation line",
			src:  "- a\n  more\n- b",
			want: `ul[li["a\nmore"] li["b"]]`,
		},
		{
			name: "inline markup in items",
			src:  "+ *x*\n+ y",
			want: `ul[li[em["x"]] li["y"]]`,
		},
		{
			name: "digits",
			src:  "1. a\n2. b\n",
			want: `ol{start=1,type=1}[li["a"] li["b"]]`,
		},
		{
			name: "start number",
			src:  "3) a\n4) b",
			want: `ol{start=3,type=1}[li["a"] li["b"]]`,
		},
		{
			name: "letters",
			src:  "b) x\nc) y",
			want: `ol{start=b,type=a}[li["x"] li["y"]]`,
		},
		{
			name: "upper letters",
			src:  "A. x\nB. y",
			want: `ol{start=A,type=A}[li["x"] li["y"]]`,
		},
		{
			name: "roman",
			src:  "i. x\nii. y",
			want: `ol{start=i,type=i}[li["x"] li["y"]]`,
		},
		{
			name: "upper roman",
			src:  "IV. x\nV. y",
			want: `ol{start=IV,type=I}[li["x"] li["y"]]`,
		},
		{
			name: "letter list continues through i",
			src:  "h. x\ni. y",
			want: `ol{start=h,type=a}[li["x"] li["y"]]`,
		},
		{
			name: "delimiter change starts a new list",
			src:  "1. a\n2) b",
			want: `ol{start=1,type=1}[li["a"]] ol{start=2,type=1}[li["b"]]`,
		},
		{
			name: "multi-letter non roman is text",
			src:  "ab. x\n\n",
			want: `p["ab. x"]`,
		},
		{
			name: "marker needs a space",
			src:  "1.x\n\n",
			want: `p["1.x"]`,
		},
	})
}
