// SPDX-License-Identifier: MPL-2.0

package ignore

import "testing"

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		cleanPyc bool
		rel      string
		want     bool
	}{
		{name: "no patterns matches nothing", rel: "pkg/cli.py", want: false},
		{name: "base name match", patterns: []string{"secrets.txt"}, rel: "conf/secrets.txt", want: true},
		{name: "full path match", patterns: []string{"docs/draft.md"}, rel: "docs/draft.md", want: true},
		{name: "directory excludes subtree", patterns: []string{"venv"}, rel: "venv/lib/python/site.py", want: true},
		{name: "nested directory component", patterns: []string{"env"}, rel: "tools/env/bin/activate", want: true},
		{name: "directory pattern with slash", patterns: []string{"build/"}, rel: "build/out.bin", want: true},
		{name: "sibling of excluded directory survives", patterns: []string{"venv"}, rel: "pkg/venv.py", want: false},
		{name: "glob on base name", patterns: []string{"*.log"}, rel: "logs/app.log", want: true},
		{name: "doublestar glob", patterns: []string{"**/*.tmp"}, rel: "a/b/c/d.tmp", want: true},
		{name: "glob misses other extension", patterns: []string{"*.log"}, rel: "logs/app.txt", want: false},
		{name: "pyc excluded when clean_pyc", cleanPyc: true, rel: "pkg/cli.pyc", want: true},
		{name: "pyo excluded when clean_pyc", cleanPyc: true, rel: "pkg/cli.pyo", want: true},
		{name: "pycache excluded when clean_pyc", cleanPyc: true, rel: "pkg/__pycache__/cli.cpython-311.pyc", want: true},
		{name: "pyc kept without clean_pyc", cleanPyc: false, rel: "pkg/cli.pyc", want: false},
		{name: "py source never a compiled artifact", cleanPyc: true, rel: "pkg/cli.py", want: false},
		{name: "root is never excluded", patterns: []string{"anything"}, rel: ".", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New(tt.patterns, tt.cleanPyc)
			if got := m.Match(tt.rel); got != tt.want {
				t.Errorf("New(%v, %v).Match(%q) = %v, want %v", tt.patterns, tt.cleanPyc, tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatcher_SubtreePropagation(t *testing.T) {
	t.Parallel()

	m := New([]string{"vendor_src"}, false)

	// Every descendant of a matched directory must match, at any depth.
	for _, rel := range []string{
		"vendor_src",
		"vendor_src/pkg",
		"vendor_src/pkg/deep/nested/file.py",
	} {
		if !m.Match(rel) {
			t.Errorf("Match(%q) = false, want true (inside excluded subtree)", rel)
		}
	}
}
