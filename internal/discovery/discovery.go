// Package discovery expands command-line paths into the template files to lint.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/herb/pkg/core"
)

// Options controls how file discovery behaves.
type Options struct {
	// Paths are files, directories or glob patterns. Empty means BaseDir.
	Paths []string

	// BaseDir anchors relative paths and the matcher. Defaults to ".".
	BaseDir string

	// Matcher applies the linter's include/exclude patterns to files found
	// in directories and globs. Files named explicitly are only subject to
	// its excludes. Nil accepts everything.
	Matcher *core.PatternMatcher
}

// Discover returns the files selected by opts, deduplicated and sorted.
func Discover(opts Options) ([]string, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{baseDir}
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", baseDir, err)
	}

	d := &discoverer{base: base, matcher: opts.Matcher, seen: make(map[string]bool)}
	for _, p := range paths {
		if err := d.expand(p); err != nil {
			return nil, err
		}
	}

	sort.Strings(d.result)
	return d.result, nil
}

type discoverer struct {
	base    string
	matcher *core.PatternMatcher
	seen    map[string]bool
	result  []string
}

func (d *discoverer) expand(p string) error {
	info, err := os.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return d.walk(p)
	case err == nil:
		if d.excluded(p) {
			return nil
		}
		d.add(p)
		return nil
	case !os.IsNotExist(err):
		return err
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
		return fmt.Errorf("invalid path or pattern %q", p)
	}
	matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expanding %s: %w", p, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", p)
	}
	for _, m := range matches {
		if d.matches(m) {
			d.add(m)
		}
	}
	return nil
}

// walk adds every file below dir the matcher accepts.
func (d *discoverer) walk(dir string) error {
	return doublestar.GlobWalk(os.DirFS(dir), "**", func(rel string, entry fs.DirEntry) error {
		if entry.IsDir() {
			return nil
		}
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if d.matches(path) {
			d.add(path)
		}
		return nil
	})
}

func (d *discoverer) matches(path string) bool {
	return d.matcher.Match(d.relative(path))
}

// excluded applies only the exclude patterns, for explicitly named files.
func (d *discoverer) excluded(path string) bool {
	if d.matcher == nil || len(d.matcher.Exclude) == 0 {
		return false
	}
	only := &core.PatternMatcher{Exclude: d.matcher.Exclude}
	return !only.Match(d.relative(path))
}

// relative returns path relative to the base directory, or path itself
// when it lies outside.
func (d *discoverer) relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(d.base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func (d *discoverer) add(path string) {
	clean := filepath.Clean(path)
	if d.seen[clean] {
		return
	}
	d.seen[clean] = true
	d.result = append(d.result, clean)
}

// MatchFunc returns a predicate applying m to paths relative to baseDir,
// for filtering file events the same way Discover filters directories.
func MatchFunc(baseDir string, m *core.PatternMatcher) func(path string) bool {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		base = baseDir
	}
	d := &discoverer{base: base, matcher: m}
	return d.matches
}
