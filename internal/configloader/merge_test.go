package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdtree/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Parser.HeadingIDs = config.Bool(true)
	base.Ignore = []string{"a"}

	override := &config.Config{
		Parser: config.ParserConfig{
			Tabs:       config.TabsFirst,
			HeadingIDs: config.Bool(false),
		},
		Output: config.OutputConfig{Extension: ".htm"},
		Ignore: []string{"b", "c"},
	}

	got := merge(base, override)

	assert.Equal(t, config.TabsFirst, got.Parser.Tabs)
	assert.Equal(t, config.DefaultTabWidth, got.Parser.TabWidth)
	assert.False(t, config.Enabled(got.Parser.HeadingIDs), "set false overrides true")
	assert.NotNil(t, got.Parser.DetectLanguages)
	assert.Equal(t, ".htm", got.Output.Extension)
	assert.Equal(t, config.FormatHTML, got.Output.Format)
	assert.Equal(t, []string{"b", "c"}, got.Ignore)

	assert.True(t, config.Enabled(base.Parser.HeadingIDs), "base is not modified")
	assert.Equal(t, []string{"a"}, base.Ignore)

	override.Ignore[0] = "changed"
	assert.Equal(t, []string{"b", "c"}, got.Ignore, "result does not alias override")
}

func TestMerge_UnsetKeepsBase(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Output.Standalone = config.Bool(true)
	base.Ignore = []string{"a"}

	got := merge(base, &config.Config{})
	assert.Equal(t, base, got)
	assert.NotSame(t, base, got)
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, cfg, merge(nil, cfg))
	assert.Equal(t, cfg, merge(cfg, nil))
	assert.Nil(t, merge(nil, nil))
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	got := MergeAll(
		config.NewConfig(),
		&config.Config{Output: config.OutputConfig{Format: config.FormatJSON}},
		&config.Config{Output: config.OutputConfig{Format: config.FormatAST, Dir: "out"}},
	)
	assert.Equal(t, config.FormatAST, got.Output.Format)
	assert.Equal(t, "out", got.Output.Dir)
}
