package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// matcher decides which discovered paths are kept.
type matcher struct {
	workDir    string
	extensions []string
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	m := &matcher{workDir: workDir}
	for _, ext := range opts.extensions() {
		m.extensions = append(m.extensions, strings.ToLower(ext))
	}
	for _, pattern := range opts.ExcludeGlobs {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// excluded matches path, and its base name, against the ignore patterns.
// Directories also match patterns such as "vendor/**".
func (m *matcher) excluded(path string, dir bool) bool {
	rel := m.rel(path)
	base := filepath.Base(path)
	for _, g := range m.exclude {
		if g.Match(rel) || g.Match(base) || (dir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}

func (m *matcher) source(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(m.extensions, ext) && !m.excluded(path, false)
}

// Discover returns the sorted, deduplicated absolute paths of the markdown
// files named by opts. Hidden files and directories found while walking are
// skipped; paths named explicitly are not.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.source(abs) {
				add(abs)
			}
			continue
		}

		found, err := walk(ctx, abs, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root string, m *matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || (path != root && m.excluded(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks || m.excluded(path, true) {
					return nil
				}
				sub, err := walk(ctx, target, m, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.source(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}
