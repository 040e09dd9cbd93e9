package parser_test

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/mdast"
	"github.com/yaklabco/gomdtree/pkg/parser"
)

// asideParser turns "!!! text" lines into numbered aside elements.
type asideParser struct{}

type asidesKey struct{}

func (asideParser) Name() string { return "aside" }

func (asideParser) Init(ctx *parser.Context) {
	ctx.SetValue(asidesKey{}, &[]mdast.NodeID{})
}

func (asideParser) ParseBlock(ctx *parser.Context, lines []string) (mdast.NodeID, int) {
	text, ok := strings.CutPrefix(lines[0], "!!! ")
	if !ok {
		return mdast.NoNode, 0
	}
	id := ctx.Tree.NewElement("aside", ctx.ParseInline(text)...)
	asides := ctx.Value(asidesKey{}).(*[]mdast.NodeID)
	*asides = append(*asides, id)
	return id, 1
}

func (asideParser) Postprocess(ctx *parser.Context) {
	for i, id := range *ctx.Value(asidesKey{}).(*[]mdast.NodeID) {
		ctx.Tree.Node(id).SetAttr("n", strconv.Itoa(i+1))
	}
}

// declineParser matches "@" but never accepts it.
type declineParser struct{}

func (declineParser) Name() string { return "at" }

func (declineParser) Match(src string, from int) int {
	idx := strings.IndexByte(src[from:], '@')
	if idx < 0 {
		return -1
	}
	return from + idx
}

func (declineParser) ParseInline(*parser.Context, *parser.Scanner) (mdast.NodeID, bool) {
	return mdast.NoNode, false
}

// upperFence renders its body upper-cased.
type upperFence struct{}

func (upperFence) Name() string { return "upper" }

func (upperFence) HandleFence(ctx *parser.Context, _ string, lines []string) mdast.NodeID {
	return ctx.Tree.NewElement("div", ctx.Tree.NewText(strings.ToUpper(strings.Join(lines, " "))))
}

// recorder logs when its postprocessing runs.
type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Name() string { return r.name }

func (recorder) ParseBlock(*parser.Context, []string) (mdast.NodeID, int) { return mdast.NoNode, 0 }

func (recorder) Match(string, int) int { return -1 }

func (recorder) ParseInline(*parser.Context, *parser.Scanner) (mdast.NodeID, bool) {
	return mdast.NoNode, false
}

func (r recorder) Postprocess(*parser.Context) { *r.log = append(*r.log, r.name) }

func TestParser_BlockExtension(t *testing.T) {
	t.Parallel()

	p := parser.New()
	require.NoError(t, p.Blocks.Register(asideParser{}, "fence"))
	assert.Equal(t, "aside", p.Blocks.Names()[0])

	src := "!!! *one*\n!!! two"
	want := `aside{n=1}[em["one"]] aside{n=2}["two"]`
	assert.Equal(t, want, p.Parse(src).Dump())
	assert.Equal(t, want, p.Parse(src).Dump(), "state must not leak between parses")
}

func TestParser_InlineExtension(t *testing.T) {
	t.Parallel()

	src := "a ==b== c"
	assert.Equal(t, `"a ==b== c"`, dump(t, src))

	p := parser.New()
	require.NoError(t, p.Inlines.Register(parser.NewDelimited("mark", "mark", "==", "=="), "strong"))
	assert.Equal(t, `"a " mark["b"] " c"`, p.Parse(src).Dump())

	err := p.Inlines.Register(parser.NewDelimited("ins", "ins", "++", "++"), "underline")
	require.ErrorIs(t, err, parser.ErrNoSuchParser)
}

func TestParser_DecliningInlineFallsBackToText(t *testing.T) {
	t.Parallel()

	p := parser.New()
	p.Inlines.MustRegister(declineParser{}, "")

	doc := p.Parse("a@b@c *d*")
	assert.Equal(t, `"a@b@c " em["d"]`, doc.Dump())
	assert.Len(t, doc.Roots, 2)
}

func TestParser_FenceExtension(t *testing.T) {
	t.Parallel()

	p := parser.New()
	p.Fences.MustRegister(upperFence{}, "code")

	assert.Equal(t, `div["HI THERE"]`, p.Parse("```upper\nhi\nthere\n```").Dump())
	assert.Equal(t, `codeblock{lang=lower}["hi"]`, p.Parse("```lower\nhi\n```").Dump())
}

func TestParser_PostprocessOrder(t *testing.T) {
	t.Parallel()

	var log []string
	p := parser.New()
	p.Inlines.MustRegister(recorder{name: "inline", log: &log}, "code")
	p.Blocks.MustRegister(recorder{name: "block-b", log: &log}, "")
	p.Blocks.MustRegister(recorder{name: "block-a", log: &log}, "fence")

	p.Parse("text")
	assert.Equal(t, []string{"block-a", "block-b", "inline"}, log)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	assert.Equal(t, parser.DefaultOptions(), parser.New().Options())
	assert.Equal(t, parser.DefaultOptions(),
		parser.New(parser.WithTabWidth(0), parser.WithMaxNesting(-1)).Options())

	got := parser.New(
		parser.WithTabMode(parser.TabsFirst),
		parser.WithTabWidth(2),
		parser.WithHeadingIDs(true),
		parser.WithLanguageDetection(true),
		parser.WithMaxNesting(8),
	).Options()
	assert.Equal(t, parser.Options{
		TabMode:         parser.TabsFirst,
		TabWidth:        2,
		HeadingIDs:      true,
		DetectLanguages: true,
		MaxNesting:      8,
	}, got)
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	got := parser.New(parser.WithConfig(config.ParserConfig{
		Tabs:       config.TabsFirst,
		TabWidth:   8,
		HeadingIDs: config.Bool(true),
		MaxNesting: 16,
	})).Options()

	assert.Equal(t, parser.TabsFirst, got.TabMode)
	assert.Equal(t, 8, got.TabWidth)
	assert.True(t, got.HeadingIDs)
	assert.False(t, got.DetectLanguages)
	assert.Equal(t, 16, got.MaxNesting)

	assert.Equal(t, parser.DefaultOptions(),
		parser.New(parser.WithConfig(config.ParserConfig{})).Options())
}

func TestParser_Render(t *testing.T) {
	t.Parallel()

	dumper := parser.RenderFunc(func(doc *mdast.Document) (string, error) {
		return doc.Dump(), nil
	})

	out, err := parser.New().Render("# T\n```config\ntitle: x\n```\n", dumper)
	require.NoError(t, err)
	assert.Equal(t, `h1["T"]`, out.Body)
	assert.Equal(t, map[string]any{"title": "x", "body": `h1["T"]`}, out.Map())
}

func TestParser_RenderError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	failing := parser.RenderFunc(func(*mdast.Document) (string, error) {
		return "", errBoom
	})

	out, err := parser.New().Render("x", failing)
	require.ErrorIs(t, err, errBoom)
	assert.EqualError(t, err, "render document: boom")
	assert.Nil(t, out)
}

func TestOutput_Map(t *testing.T) {
	t.Parallel()

	cfg := map[string]any{"title": "t", "body": "config body"}
	out := &parser.Output{Body: "<p>x</p>", Config: cfg}

	assert.Equal(t, map[string]any{"title": "t", "body": "<p>x</p>"}, out.Map())
	assert.Equal(t, "config body", cfg["body"], "config must not be modified")
	assert.Equal(t, map[string]any{"body": ""}, (&parser.Output{}).Map())
}

func TestParser_GrammarInfo(t *testing.T) {
	t.Parallel()

	info := parser.New().GrammarInfo()
	require.Len(t, info, 25)
	assert.Equal(t, config.GrammarInfo{Kind: "block", Name: "fence"}, info[0])
	assert.Equal(t, config.GrammarInfo{Kind: "inline", Name: "code"}, info[12])
	assert.Equal(t, config.GrammarInfo{Kind: "fence", Name: "code"}, info[24])
}

func TestParser_ConcurrentParses(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.WithHeadingIDs(true))
	src := "# A\n\nx[^n] [l](ref)\n\n[^n]: note\n[ref]: /r\n"
	want := p.Parse(src).Dump()

	const workers = 8
	got := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = p.Parse(src).Dump()
		}()
	}
	wg.Wait()

	for i := range workers {
		assert.Equal(t, want, got[i])
	}
}
