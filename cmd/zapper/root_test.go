// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"zapper-cli/internal/issue"
	"zapper-cli/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("2 of 3 target(s) failed")
	err := &ExitError{Code: types.ExitCode(1), Err: cause}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want cause message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError does not wrap its cause")
	}

	bare := &ExitError{Code: types.ExitCode(3)}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want \"exit status 3\"", bare.Error())
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load build manifest").
		WithSuggestion("Create a build file").
		Wrap(errors.New("no manifest")).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if got == "" || got == actionable.Error() {
		// Format(false) appends suggestions, so it must differ from Error().
		t.Errorf("formatErrorForDisplay(actionable) = %q, want formatted output", got)
	}
}
