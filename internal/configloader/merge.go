package configloader

import (
	"slices"

	"github.com/yaklabco/gomdtree/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - strings and numbers: override wins when non-zero
//   - optional booleans: override wins when set, so a file can turn a
//     flag off again
//   - slices: override replaces base when non-nil
//
// Neither argument is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	p, o := &result.Parser, override.Parser
	if o.Tabs != "" {
		p.Tabs = o.Tabs
	}
	if o.TabWidth != 0 {
		p.TabWidth = o.TabWidth
	}
	if o.MaxNesting != 0 {
		p.MaxNesting = o.MaxNesting
	}
	p.HeadingIDs = mergeBool(p.HeadingIDs, o.HeadingIDs)
	p.DetectLanguages = mergeBool(p.DetectLanguages, o.DetectLanguages)

	out, oo := &result.Output, override.Output
	if oo.Format != "" {
		out.Format = oo.Format
	}
	if oo.Extension != "" {
		out.Extension = oo.Extension
	}
	if oo.Dir != "" {
		out.Dir = oo.Dir
	}
	out.Standalone = mergeBool(out.Standalone, oo.Standalone)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	return result
}

func mergeBool(base, override *bool) *bool {
	if override == nil {
		return base
	}
	return config.Bool(*override)
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0].Clone()
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
