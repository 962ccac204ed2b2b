// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"zapper-cli/internal/config"
	"zapper-cli/internal/issue"
	"zapper-cli/pkg/buildfile"
	"zapper-cli/pkg/builder"
	"zapper-cli/pkg/pipdeps"
	"zapper-cli/pkg/types"
)

// runBuild loads the manifest from srcPath and builds every declared target.
// Manifest-level errors abort the invocation; per-target failures are
// reported individually and only affect the exit code.
func runBuild(ctx context.Context, srcPath, destPath string) error {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "zapper",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	srcDir, err := filepath.Abs(srcPath)
	if err != nil {
		return &ExitError{Code: types.ExitCode(1), Err: fmt.Errorf("failed to resolve source path %q: %w", srcPath, err)}
	}
	if info, statErr := os.Stat(srcDir); statErr != nil || !info.IsDir() {
		return &ExitError{
			Code: types.ExitCode(1),
			Err:  fmt.Errorf("source path %q is not a directory", srcPath),
		}
	}

	manifest, err := buildfile.Load(srcDir)
	if err != nil {
		reportIssue(cfg, err)
		return &ExitError{Code: types.ExitCode(1), Err: err}
	}
	logger.Debug("loaded manifest", "path", manifest.Path, "targets", len(manifest.Targets))

	b := &builder.Builder{
		Installer:     pipdeps.Installer{Path: string(cfg.Installer)},
		Shebang:       string(cfg.Shebang),
		DefaultIgnore: cfg.IgnorePatterns(),
		Logger:        logger,
	}

	results := b.BuildAll(ctx, manifest, destPath)

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
			fmt.Printf("%s %s: %s\n",
				ErrorStyle.Render("✗"),
				res.AppName,
				formatErrorForDisplay(res.Err, verbose))
			reportIssue(cfg, res.Err)
			continue
		}
		fmt.Printf("%s %s %s\n",
			SuccessStyle.Render("✓"),
			res.AppName,
			SubtitleStyle.Render(res.ArchivePath))
	}

	if failed > 0 {
		return &ExitError{
			Code: types.ExitCode(1),
			Err:  fmt.Errorf("%d of %d target(s) failed", failed, len(results)),
		}
	}
	return nil
}

// reportIssue renders the issue catalog entry matching err, when one exists.
func reportIssue(cfg *config.Config, err error) {
	id, ok := issue.Classify(err)
	if !ok {
		return
	}
	rendered, renderErr := issue.Get(id).Render(glamourStyle(cfg))
	if renderErr != nil {
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func glamourStyle(cfg *config.Config) string {
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeLight:
		return "light"
	default:
		return "dark"
	}
}
