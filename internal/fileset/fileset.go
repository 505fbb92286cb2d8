// Package fileset decides which files the rewriter scans. Candidates come
// either from a build report's asset names or from globbing the public
// directory, and are narrowed by an ordered whitelist of glob patterns.
//
// Patterns are applied in order. A plain pattern adds the candidates it
// matches; a pattern prefixed with "!" removes previously added candidates
// that match it. Patterns support "**" for any number of directories.
//
// Wildcards do not match hidden names (a path segment starting with "."). A
// hidden file or directory is selected only when the pattern spells out the
// leading dot for that segment, as in ".well-known/*.html".
package fileset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quantmind-br/assetrev/internal/stats"
)

// ErrBadPattern indicates a whitelist entry is not a valid glob
var ErrBadPattern = errors.New("invalid whitelist pattern")

// Resolve returns the files to process, relative to publicPath. When report
// is non-nil its asset names are filtered; otherwise publicPath is globbed.
func Resolve(publicPath string, report *stats.Report, whitelist []string) ([]string, error) {
	if report != nil {
		return Filter(report.AssetNames(), whitelist)
	}
	return Glob(publicPath, whitelist)
}

// Filter returns the names selected by patterns, deduplicated, in the order
// they were first selected.
func Filter(names []string, patterns []string) ([]string, error) {
	return apply(patterns, func(pattern string) ([]string, error) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, badPattern(pattern)
		}
		var matched []string
		for _, name := range names {
			clean := trimDotSlash(name)
			if ok, _ := doublestar.Match(pattern, clean); ok && visible(pattern, clean) {
				matched = append(matched, name)
			}
		}
		return matched, nil
	})
}

// Glob returns the regular files below dir selected by patterns, as
// slash-separated paths relative to dir. A missing dir yields no files.
func Glob(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	return apply(patterns, func(pattern string) ([]string, error) {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, badPattern(pattern)
			}
			return nil, fmt.Errorf("glob %q in %s: %w", pattern, dir, err)
		}
		visibleMatches := matches[:0]
		for _, m := range matches {
			if visible(pattern, m) {
				visibleMatches = append(visibleMatches, m)
			}
		}
		return visibleMatches, nil
	})
}

func apply(patterns []string, include func(pattern string) ([]string, error)) ([]string, error) {
	var selected []string
	seen := make(map[string]bool)

	for _, p := range patterns {
		if negated, ok := strings.CutPrefix(p, "!"); ok {
			negated = trimDotSlash(negated)
			if !doublestar.ValidatePattern(negated) {
				return nil, badPattern(p)
			}
			kept := selected[:0]
			for _, name := range selected {
				if ok, _ := doublestar.Match(negated, trimDotSlash(name)); ok {
					delete(seen, name)
					continue
				}
				kept = append(kept, name)
			}
			selected = kept
			continue
		}

		matches, err := include(trimDotSlash(p))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				selected = append(selected, m)
			}
		}
	}

	return selected, nil
}

// visible reports whether every hidden segment of name is named by a
// pattern segment that itself starts with a dot.
func visible(pattern, name string) bool {
	var dotted []string
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, ".") {
			dotted = append(dotted, seg)
		}
	}

	for _, seg := range strings.Split(name, "/") {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		named := false
		for _, d := range dotted {
			if ok, _ := doublestar.Match(d, seg); ok {
				named = true
				break
			}
		}
		if !named {
			return false
		}
	}
	return true
}

func trimDotSlash(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func badPattern(p string) error {
	return fmt.Errorf("%w: %q", ErrBadPattern, p)
}
