// SPDX-License-Identifier: MPL-2.0

// Package builder orchestrates the per-target build pipeline: entry-point
// parsing, ignore compilation, dependency vendoring, and archive assembly.
//
// Targets are independent. BuildAll runs them sequentially in manifest
// order and records each failure without aborting the run, so one malformed
// target never blocks its siblings.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"zapper-cli/pkg/buildfile"
	"zapper-cli/pkg/entrypoint"
	"zapper-cli/pkg/ignore"
	"zapper-cli/pkg/pipdeps"
	"zapper-cli/pkg/zipapp"
)

type (
	// Builder runs build targets against a source project.
	Builder struct {
		// Installer vendors dependencies. The zero value searches PATH.
		Installer pipdeps.Installer
		// Shebang is the interpreter directive for produced archives.
		// Empty means the assembler default.
		Shebang string
		// DefaultIgnore are patterns applied to every target in addition to
		// the target's own ignore list.
		DefaultIgnore []string
		// Logger receives per-step diagnostics. Nil means the process
		// default logger.
		Logger *log.Logger
	}

	// Result is the outcome of one target's build.
	Result struct {
		// Index is the target's position in manifest order.
		Index int
		// AppName is the target's resolved artifact name.
		AppName string
		// ArchivePath is the absolute path of the produced archive. Empty
		// when the build failed.
		ArchivePath string
		// Err is the failure, nil on success.
		Err error
	}
)

// Failed reports whether this target's build failed.
func (r Result) Failed() bool { return r.Err != nil }

// logger returns the configured logger or the process default.
func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

// Build runs the full pipeline for a single target and returns the produced
// archive path. destPath follows the same rules as BuildAll.
func (b *Builder) Build(ctx context.Context, srcDir, destPath string, target buildfile.Target) (string, error) {
	logger := b.logger().With("app", target.AppName)

	spec, err := entrypoint.Parse(target.EntryPoint)
	if err != nil {
		return "", err
	}
	logger.Debug("resolved entry point", "module", spec.Module, "callable", spec.Callable)

	matcher := ignore.New(append(append([]string{}, b.DefaultIgnore...), target.Ignore...), target.CleanPyc)

	specs, err := pipdeps.EffectiveRequirements(target.Requirements, target.RequirementsTxt)
	if err != nil {
		return "", err
	}

	var vendorDir string
	if len(specs) > 0 {
		vendorDir, err = os.MkdirTemp("", "zapper-vendor-*")
		if err != nil {
			return "", fmt.Errorf("failed to create vendor directory: %w", err)
		}
		defer os.RemoveAll(vendorDir)

		logger.Debug("vendoring dependencies", "count", len(specs))
		if err := b.Installer.Install(ctx, specs, vendorDir); err != nil {
			return "", err
		}
	}

	bootstrap, err := spec.Render(zipapp.VendorEntryDir)
	if err != nil {
		return "", err
	}

	dest, err := resolveDest(srcDir, destPath, target.AppName)
	if err != nil {
		return "", err
	}

	logger.Debug("assembling archive", "dest", dest)
	return zipapp.Assemble(zipapp.Options{
		SrcDir:    srcDir,
		Dest:      dest,
		Shebang:   b.Shebang,
		Bootstrap: bootstrap,
		VendorDir: vendorDir,
		Exclude:   matcher.Match,
	})
}

// BuildAll builds every target sequentially in manifest order. A failed
// target is recorded in its Result and its siblings still build. destPath
// may be empty (archives land next to the project root), an existing
// directory (archives land inside it under each target's app name), or a
// file path (only sensible for single-target manifests).
func (b *Builder) BuildAll(ctx context.Context, manifest *buildfile.Manifest, destPath string) []Result {
	results := make([]Result, 0, len(manifest.Targets))
	for i, target := range manifest.Targets {
		archivePath, err := b.Build(ctx, manifest.SrcDir, destPath, target)
		if err != nil {
			b.logger().Error("target failed", "app", target.AppName, "index", i, "err", err)
		} else {
			b.logger().Debug("target built", "app", target.AppName, "archive", archivePath)
		}
		results = append(results, Result{
			Index:       i,
			AppName:     target.AppName,
			ArchivePath: archivePath,
			Err:         err,
		})
	}
	return results
}

// resolveDest maps the user-supplied destination to a concrete archive
// path. An empty destPath places the archive next to the project root; a
// directory places it inside under appName; anything else is taken as the
// literal archive path.
func resolveDest(srcDir, destPath, appName string) (string, error) {
	if destPath == "" {
		parent := filepath.Dir(filepath.Clean(srcDir))
		return filepath.Abs(filepath.Join(parent, appName))
	}

	info, err := os.Stat(destPath)
	switch {
	case err == nil && info.IsDir():
		return filepath.Abs(filepath.Join(destPath, appName))
	case err == nil:
		return filepath.Abs(destPath)
	case os.IsNotExist(err):
		// A trailing separator names a directory that does not exist yet.
		if strings.HasSuffix(destPath, string(os.PathSeparator)) || strings.HasSuffix(destPath, "/") {
			return filepath.Abs(filepath.Join(destPath, appName))
		}
		return filepath.Abs(destPath)
	default:
		return "", fmt.Errorf("failed to stat destination %q: %w", destPath, err)
	}
}
