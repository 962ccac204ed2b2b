// SPDX-License-Identifier: MPL-2.0

// Package buildfile loads and normalizes the zapper build manifest.
//
// A build manifest is a YAML document at the project root declaring one or
// more build targets under the reserved "zapper" key:
//
//	zapper:
//	  entry_point: "pkg.cli:main"
//	  requirements:
//	    - requests
//
// The namespace value may be a single mapping or an ordered sequence of
// mappings; both normalize to the same internal representation (always a
// list of targets). The manifest is read once per invocation and is
// immutable afterwards.
package buildfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// NamespaceKey is the reserved root key that holds the target declarations.
const NamespaceKey = "zapper"

// DefaultRequirementsFile is the conventional dependency declaration file
// consumed when a target does not name one explicitly.
const DefaultRequirementsFile = "requirements.txt"

// appNameSuffix is appended to the source directory basename when a target
// does not declare its own app_name.
const appNameSuffix = ".pyz"

// manifestFileNames are the accepted build file names, in precedence order.
var manifestFileNames = []string{"build", "build.yml", "build.yaml"}

type (
	// Target is one independently buildable packaging unit declared in the
	// build manifest. Every field except EntryPoint has a safe default, so a
	// minimal manifest only needs an entry point.
	Target struct {
		// EntryPoint is the "module.path:callable extra,args" expression
		// invoked when the produced archive is executed.
		EntryPoint string `yaml:"entry_point"`
		// AppName overrides the output artifact name. Defaults to the source
		// directory basename plus ".pyz".
		AppName string `yaml:"app_name"`
		// Requirements are literal dependency specifiers handed to the
		// installer, in declaration order.
		Requirements []string `yaml:"requirements"`
		// RequirementsTxt is the path to a dependency declaration file.
		// Relative paths resolve against the project root. Defaults to
		// "requirements.txt" when that file exists.
		RequirementsTxt string `yaml:"requirements_txt"`
		// Ignore are path patterns excluded from the archive tree walk.
		Ignore []string `yaml:"ignore"`
		// CleanPyc additionally excludes compiled Python artifacts from the
		// archive when set.
		CleanPyc bool `yaml:"clean_pyc"`
	}

	// Manifest is the parsed, normalized build manifest.
	Manifest struct {
		// Path is the absolute path of the build file that was loaded.
		Path string
		// SrcDir is the absolute project root the manifest was found in.
		SrcDir string
		// Targets are the declared build targets in manifest order. Always
		// at least one element.
		Targets []Target
	}
)

// Locate returns the path of the build file in srcDir, trying the accepted
// names in precedence order. Returns a ManifestMissingError if none exists.
func Locate(srcDir string) (string, error) {
	for _, name := range manifestFileNames {
		path := filepath.Join(srcDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &ManifestMissingError{Dir: srcDir}
}

// Load locates, parses, and normalizes the build manifest in srcDir.
//
// The value under the namespace key may be a single target mapping or a
// sequence of them; Load always produces a non-empty Targets slice with
// per-target defaults applied. Manifest-level failures are fatal to the
// whole invocation: ManifestMissingError when no build file exists,
// ManifestMalformedError when the document cannot be parsed, and
// NamespaceMissingError when the reserved key is absent.
func Load(srcDir string) (*Manifest, error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, &ManifestMalformedError{Path: srcDir, Cause: err}
	}

	path, err := Locate(absSrc)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestMalformedError{Path: path, Cause: err}
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestMalformedError{Path: path, Cause: err}
	}

	raw, ok := doc[NamespaceKey]
	if !ok {
		return nil, &NamespaceMissingError{Path: path}
	}

	targets, err := decodeTargets(path, raw)
	if err != nil {
		return nil, err
	}

	for i := range targets {
		applyDefaults(absSrc, &targets[i])
	}

	return &Manifest{
		Path:    path,
		SrcDir:  absSrc,
		Targets: targets,
	}, nil
}

// decodeTargets normalizes the namespace value into a target list. A single
// mapping is wrapped as a one-element sequence; a sequence is used as-is.
func decodeTargets(path string, raw any) ([]Target, error) {
	// Round-trip through YAML so the single-vs-list polymorphism is decided
	// once, here, and the rest of the pipeline only ever sees a list.
	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return nil, &ManifestMalformedError{Path: path, Cause: err}
	}

	if _, isList := raw.([]any); isList {
		var targets []Target
		if err := yaml.Unmarshal(encoded, &targets); err != nil {
			return nil, &ManifestMalformedError{Path: path, Cause: err}
		}
		return targets, nil
	}

	var target Target
	if err := yaml.Unmarshal(encoded, &target); err != nil {
		return nil, &ManifestMalformedError{Path: path, Cause: err}
	}
	return []Target{target}, nil
}

// applyDefaults populates the optional target fields that have conventional
// defaults. EntryPoint is deliberately left alone: a missing or malformed
// entry point is a per-target build failure, not a manifest-level one, so
// sibling targets still build.
func applyDefaults(srcDir string, t *Target) {
	if t.AppName == "" {
		t.AppName = filepath.Base(filepath.Clean(srcDir)) + appNameSuffix
	}

	if t.RequirementsTxt != "" {
		if !filepath.IsAbs(t.RequirementsTxt) {
			t.RequirementsTxt = filepath.Join(srcDir, t.RequirementsTxt)
		}
		return
	}

	conventional := filepath.Join(srcDir, DefaultRequirementsFile)
	if info, err := os.Stat(conventional); err == nil && !info.IsDir() {
		t.RequirementsTxt = conventional
	}
}

// manifestNameList renders the accepted build file names for error messages.
func manifestNameList() string {
	return strings.Join(manifestFileNames, ", ")
}
