// SPDX-License-Identifier: MPL-2.0

// Package ignore compiles manifest ignore patterns into a pure predicate
// used during the archive tree walk.
//
// A pattern excludes a path when it matches the base name, the whole
// slash-relative path, or any single path component — so a directory
// pattern excludes the directory's entire subtree. Patterns may also be
// doublestar-compatible globs (e.g. "**/*.log", "docs/*.tmp").
//
// The predicate never touches the filesystem and never mutates the source
// tree; callers decide what to do with matched paths.
package ignore

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// compiledArtifactExts are the file extensions excluded by the
// compiled-artifact filter.
var compiledArtifactExts = []string{".pyc", ".pyo"}

// bytecodeCacheDir is the directory excluded wholesale by the
// compiled-artifact filter.
const bytecodeCacheDir = "__pycache__"

// Matcher reports whether a slash-relative path is excluded from the
// archive tree walk.
type Matcher struct {
	patterns []string
	cleanPyc bool
}

// New compiles the given patterns into a Matcher. When cleanPyc is set the
// Matcher additionally excludes compiled Python artifacts (*.pyc, *.pyo
// files and __pycache__ directories).
func New(patterns []string, cleanPyc bool) *Matcher {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &Matcher{patterns: cleaned, cleanPyc: cleanPyc}
}

// Match reports whether rel, a slash-separated path relative to the project
// root, is excluded. Directory matches propagate: once a component matches
// a pattern, every descendant of that directory matches too.
func (m *Matcher) Match(rel string) bool {
	rel = strings.Trim(path.Clean(rel), "/")
	if rel == "" || rel == "." {
		return false
	}

	if m.cleanPyc && isCompiledArtifact(rel) {
		return true
	}

	base := path.Base(rel)
	for _, pat := range m.patterns {
		if pat == rel || pat == base {
			return true
		}
		if componentMatch(rel, pat) {
			return true
		}
		// Glob patterns, tried against both the full relative path and the
		// base name so "*.log" behaves the way ignore files train people to
		// expect.
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}

// componentMatch reports whether any path component of rel equals pat, or
// whether pat is a path prefix of rel. Either way the pattern names a
// directory somewhere above rel, so rel is inside an excluded subtree.
func componentMatch(rel, pat string) bool {
	if strings.HasPrefix(rel, pat+"/") {
		return true
	}
	for _, part := range strings.Split(rel, "/") {
		if part == pat {
			return true
		}
	}
	return false
}

// isCompiledArtifact reports whether rel is a compiled Python artifact or
// lives inside a bytecode cache directory.
func isCompiledArtifact(rel string) bool {
	for _, ext := range compiledArtifactExts {
		if strings.HasSuffix(rel, ext) {
			return true
		}
	}
	for _, part := range strings.Split(rel, "/") {
		if part == bytecodeCacheDir {
			return true
		}
	}
	return false
}
