// Package runner parses and renders many markdown files concurrently.
package runner

import "github.com/yaklabco/gomdtree/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and is the root that output paths
	// are computed relative to. Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase source extensions, with leading dot.
	// Empty means DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories, relative to
	// WorkingDir. "*" stays within a path segment; "**" crosses segments.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs is the number of workers; 0 or negative means runtime.NumCPU().
	Jobs int

	// OutputDir receives one file per source. Empty keeps rendered output
	// in memory on each FileOutcome.
	OutputDir string

	// OutputExt replaces the source extension of written files.
	OutputExt string
}

// DefaultExtensions returns the markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// OptionsFromConfig fills the run options a configuration controls.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:        paths,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutputDir:    cfg.Output.Dir,
		OutputExt:    cfg.Output.Extension,
	}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
