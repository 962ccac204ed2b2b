// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for zapper.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"zapper-cli/internal/config"
	"zapper-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// appConfig is the loaded tool configuration, resolved once per run.
	appConfig *config.Config

	// rootCmd represents the base command; running it builds the project.
	rootCmd = &cobra.Command{
		Use:   "zapper SRC_PATH [DEST_PATH]",
		Short: "Package Python projects into self-executing zip archives",
		Long: TitleStyle.Render("zapper") + SubtitleStyle.Render(" - Package Python projects into self-executing zip archives") + `

zapper reads a declarative build manifest from a project directory and
produces one self-executing archive per declared target: a zip payload
with a generated __main__.py bootstrap, vendored pip dependencies, and a
shebang line so the result runs directly on any machine with Python.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Add a 'build' (or build.yml/build.yaml) file to your project root
  2. Declare at least an entry_point under the 'zapper' key
  3. Run: zapper /path/to/project

` + SubtitleStyle.Render("Examples:") + `
  zapper .                      Build into the parent directory
  zapper ./proj /tmp/out/       Build into an explicit directory
  zapper ./proj /tmp/out.pyz    Build to an explicit file path
  zapper config show            Show current configuration`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destPath := ""
			if len(args) == 2 {
				destPath = args[1]
			}
			return runBuild(cmd.Context(), args[0], destPath)
		},
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/zapper/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	appConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
