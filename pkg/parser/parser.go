// Package parser turns markdown text into an mdast tree.
//
// Parsing runs in three stages: the line normalizer prepares the input,
// the block engine and the inline engine build the tree by trying the
// registered grammars in precedence order, and finally every grammar that
// implements Postprocessor gets to rewrite the finished tree (footnote
// numbering, reference substitution, heading ids).
//
// A Parser holds the registries and may be shared by concurrent parses;
// all document-scoped state lives in the Context created for each parse.
package parser

import (
	"fmt"
	"maps"

	"github.com/yaklabco/gomdtree/pkg/config"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

// DefaultMaxNesting bounds block recursion when no limit is configured.
const DefaultMaxNesting = 64

// Options control parsing.
type Options struct {
	TabMode  TabMode
	TabWidth int

	// HeadingIDs assigns slug ids to headings.
	HeadingIDs bool

	// DetectLanguages tags untagged fenced code with a guessed language.
	DetectLanguages bool

	// MaxNesting is the block recursion depth past which nested lines are
	// treated as plain text.
	MaxNesting int
}

// DefaultOptions returns the options New starts from.
func DefaultOptions() Options {
	return Options{
		TabMode:    TabsAll,
		TabWidth:   DefaultTabWidth,
		MaxNesting: DefaultMaxNesting,
	}
}

// Option configures a Parser.
type Option func(*Options)

// WithTabMode selects tab expansion.
func WithTabMode(mode TabMode) Option {
	return func(o *Options) { o.TabMode = mode }
}

// WithTabWidth sets the number of spaces a tab expands to.
func WithTabWidth(width int) Option {
	return func(o *Options) { o.TabWidth = width }
}

// WithHeadingIDs enables heading ids.
func WithHeadingIDs(enabled bool) Option {
	return func(o *Options) { o.HeadingIDs = enabled }
}

// WithLanguageDetection enables language guessing for untagged fences.
func WithLanguageDetection(enabled bool) Option {
	return func(o *Options) { o.DetectLanguages = enabled }
}

// WithMaxNesting sets the block recursion limit.
func WithMaxNesting(depth int) Option {
	return func(o *Options) { o.MaxNesting = depth }
}

// WithConfig applies the parser section of a configuration. Zero values
// keep the current setting.
func WithConfig(cfg config.ParserConfig) Option {
	return func(o *Options) {
		if cfg.Tabs != "" {
			o.TabMode = TabMode(cfg.Tabs)
		}
		if cfg.TabWidth > 0 {
			o.TabWidth = cfg.TabWidth
		}
		if cfg.HeadingIDs != nil {
			o.HeadingIDs = *cfg.HeadingIDs
		}
		if cfg.DetectLanguages != nil {
			o.DetectLanguages = *cfg.DetectLanguages
		}
		if cfg.MaxNesting > 0 {
			o.MaxNesting = cfg.MaxNesting
		}
	}
}

// Parser holds the grammar registries.
type Parser struct {
	// Blocks holds the block grammars in precedence order.
	Blocks *Registry[BlockParser]

	// Inlines holds the inline grammars in precedence order. Grammars whose
	// opening delimiter is a prefix of another's must come after it.
	Inlines *Registry[InlineParser]

	// Fences maps fence types to handlers.
	Fences *Registry[FenceHandler]

	opts Options
}

// New returns a Parser with the built-in grammars registered.
func New(opts ...Option) *Parser {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxNesting <= 0 {
		o.MaxNesting = DefaultMaxNesting
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}

	p := &Parser{
		Blocks:  NewRegistry[BlockParser](),
		Inlines: NewRegistry[InlineParser](),
		Fences:  NewRegistry[FenceHandler](),
		opts:    o,
	}

	for _, bp := range []BlockParser{
		FenceParser{},
		HeadingParser{},
		IndentedCodeParser{},
		BlockquoteParser{},
		RuleParser{},
		NewBulletListParser(),
		NewOrderedListParser(),
		FootnoteDefinitionParser{},
		LinkDefinitionParser{},
		HTMLBlockParser{},
		HTMLTagParser{},
		TableParser{},
	} {
		p.Blocks.MustRegister(bp, "")
	}

	for _, ip := range []InlineParser{
		NewCapture("code", "code", "`", "`", true),
		NewImageParser(),
		NewCitationParser(),
		NewLinkParser(),
		NewDelimited("strong", "strong", "**", "**"),
		NewDelimited("em", "em", "*", "*"),
		NewDelimited("del", "del", "~~", "~~"),
		NewDelimited("sub", "sub", "~", "~"),
		NewDelimited("sup", "sup", "^", "^"),
	} {
		p.Inlines.MustRegister(ip, "")
	}

	for _, fh := range []FenceHandler{
		OmitFence{},
		VerbatimFence{},
		ConfigFence{},
		CodeFence{},
	} {
		p.Fences.MustRegister(fh, "")
	}

	return p
}

// Options returns the options the parser was built with.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses text into a document. Parsing never fails: input no grammar
// recognizes becomes text.
func (p *Parser) Parse(text string) *mdast.Document {
	ctx := newContext(p)
	ctx.roots = ctx.ParseBlocks(NormalizeLines(text, p.opts.TabMode, p.opts.TabWidth))
	ctx.postprocess()

	return &mdast.Document{
		Tree:   ctx.Tree,
		Roots:  ctx.roots,
		Config: ctx.config,
	}
}

// postprocess runs block then inline postprocessors in registry order.
func (c *Context) postprocess() {
	for _, bp := range c.blocks {
		if pp, ok := bp.(Postprocessor); ok {
			pp.Postprocess(c)
		}
	}
	for _, ip := range c.inlines {
		if pp, ok := ip.(Postprocessor); ok {
			pp.Postprocess(c)
		}
	}
}

// Renderer turns a finished document into output text.
type Renderer interface {
	Render(doc *mdast.Document) (string, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(doc *mdast.Document) (string, error)

// Render implements Renderer.
func (f RenderFunc) Render(doc *mdast.Document) (string, error) {
	return f(doc)
}

// Output is a rendered document with its configuration.
type Output struct {
	Body   string
	Config map[string]any
}

// Map merges the configuration with the body under the "body" key.
// A config key named "body" is overridden.
func (o *Output) Map() map[string]any {
	out := make(map[string]any, len(o.Config)+1)
	maps.Copy(out, o.Config)
	out["body"] = o.Body
	return out
}

// Render parses text and renders the result with r.
func (p *Parser) Render(text string, r Renderer) (*Output, error) {
	doc := p.Parse(text)
	body, err := r.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return &Output{Body: body, Config: doc.Config}, nil
}

// GrammarInfo lists the registered grammars in precedence order, for
// documentation.
func (p *Parser) GrammarInfo() []config.GrammarInfo {
	var out []config.GrammarInfo
	for _, name := range p.Blocks.Names() {
		out = append(out, config.GrammarInfo{Kind: "block", Name: name})
	}
	for _, name := range p.Inlines.Names() {
		out = append(out, config.GrammarInfo{Kind: "inline", Name: name})
	}
	for _, name := range p.Fences.Names() {
		out = append(out, config.GrammarInfo{Kind: "fence", Name: name})
	}
	return out
}
