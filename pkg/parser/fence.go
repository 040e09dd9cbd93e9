package parser

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtree/pkg/langdetect"
	"github.com/yaklabco/gomdtree/pkg/mdast"
)

const fenceMarker = "```"

// FenceHandler turns the body of a fenced block into a node. Handlers are
// selected by the first word of the text following the opening fence.
type FenceHandler interface {
	Named
	HandleFence(ctx *Context, info string, lines []string) mdast.NodeID
}

// FenceParser parses ``` fenced blocks and delegates their bodies to the
// handler registered for the fence type.
type FenceParser struct{}

// Name implements Named.
func (FenceParser) Name() string { return "fence" }

// ParseBlock implements BlockParser. A fence without a closing line runs
// to the end of the input.
func (FenceParser) ParseBlock(ctx *Context, lines []string) (mdast.NodeID, int) {
	if !strings.HasPrefix(lines[0], fenceMarker) {
		return mdast.NoNode, 0
	}
	info := strings.TrimSpace(lines[0][len(fenceMarker):])

	body := lines[1:]
	consumed := len(lines)
	for i, line := range body {
		if strings.HasPrefix(line, fenceMarker) {
			body = body[:i]
			consumed = i + 2
			break
		}
	}

	kind := info
	if fields := strings.Fields(info); len(fields) > 0 {
		kind = fields[0]
	}
	handler, ok := ctx.fences.Lookup(kind)
	if !ok || kind == "" {
		handler, _ = ctx.fences.Lookup(CodeFence{}.Name())
	}
	return handler.HandleFence(ctx, info, body), consumed
}

// OmitFence discards its body.
type OmitFence struct{}

// Name implements Named.
func (OmitFence) Name() string { return "omit" }

// HandleFence implements FenceHandler.
func (OmitFence) HandleFence(ctx *Context, _ string, _ []string) mdast.NodeID {
	return ctx.Tree.Omit()
}

// VerbatimFence passes its body through unmodified.
type VerbatimFence struct{}

// Name implements Named.
func (VerbatimFence) Name() string { return "verbatim" }

// HandleFence implements FenceHandler.
func (VerbatimFence) HandleFence(ctx *Context, _ string, lines []string) mdast.NodeID {
	return ctx.element(mdast.NameVerbatim, ctx.textLines(lines)...)
}

// ConfigFence reads "key: value" lines into the document configuration.
// Values that parse as numbers are stored as int64 or float64.
type ConfigFence struct{}

// Name implements Named.
func (ConfigFence) Name() string { return "config" }

// HandleFence implements FenceHandler.
func (ConfigFence) HandleFence(ctx *Context, _ string, lines []string) mdast.NodeID {
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		ctx.SetConfig(key, configValue(strings.TrimSpace(value)))
	}
	return ctx.Tree.Omit()
}

func configValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// CodeFence is the fallback handler: a code block tagged with the fence
// type. A body line starting with an escaped fence marker is unescaped.
type CodeFence struct{}

// Name implements Named.
func (CodeFence) Name() string { return "code" }

// HandleFence implements FenceHandler.
func (CodeFence) HandleFence(ctx *Context, info string, lines []string) mdast.NodeID {
	code := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, `\`+fenceMarker) {
			line = line[1:]
		}
		code[i] = line
	}

	node := ctx.element(mdast.NameCodeBlock, ctx.textLines(code)...)

	lang := info
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = fields[0]
	}
	if lang == "" && ctx.Options().DetectLanguages {
		if guess := langdetect.Detect([]byte(strings.Join(code, "\n"))); guess != langdetect.Unknown {
			lang = guess
		}
	}
	if lang != "" {
		ctx.Tree.Node(node).SetAttr("lang", lang)
	}
	return node
}
