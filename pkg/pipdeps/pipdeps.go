// SPDX-License-Identifier: MPL-2.0

// Package pipdeps materializes a target's declared dependencies into an
// isolated vendor directory by invoking the external pip installer.
//
// The installer is treated as a stateless external service: one invocation
// per target, its own target directory, no shared state between calls.
// Dependency resolution and version solving are entirely pip's problem;
// this package only owns the invocation contract.
package pipdeps

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var (
	// ErrInstallerUnavailable is the sentinel error wrapped by
	// InstallerUnavailableError.
	ErrInstallerUnavailable = errors.New("installer unavailable")
	// ErrInstallFailed is the sentinel error wrapped by InstallError.
	ErrInstallFailed = errors.New("dependency install failed")
)

type (
	// Installer locates and invokes the external pip executable.
	// The zero value searches PATH for the platform's pip binary.
	Installer struct {
		// Path overrides the pip executable location. Empty means search
		// PATH for "pip" ("pip.exe" on Windows).
		Path string
	}

	// InstallerUnavailableError is returned when the pip executable cannot
	// be located. It wraps ErrInstallerUnavailable for errors.Is()
	// compatibility.
	InstallerUnavailableError struct {
		Name  string
		Cause error
	}

	// InstallError is returned when the installer exits non-zero. It carries
	// the installer's combined output so the failure surfaces with pip's own
	// diagnostics. It wraps ErrInstallFailed for errors.Is() compatibility.
	InstallError struct {
		Specs  []string
		Output string
		Cause  error
	}
)

// Error implements the error interface for InstallerUnavailableError.
func (e *InstallerUnavailableError) Error() string {
	return fmt.Sprintf("required program %q not found: %v", e.Name, e.Cause)
}

// Unwrap returns ErrInstallerUnavailable for errors.Is() compatibility.
func (e *InstallerUnavailableError) Unwrap() error { return ErrInstallerUnavailable }

// Error implements the error interface for InstallError.
func (e *InstallError) Error() string {
	msg := fmt.Sprintf("failed to install %s", strings.Join(e.Specs, ", "))
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Unwrap returns the wrapped errors for errors.Is() compatibility with both
// ErrInstallFailed and the underlying exec error.
func (e *InstallError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInstallFailed}
	}
	return []error{ErrInstallFailed, e.Cause}
}

// installerName returns the platform-specific pip executable name.
func installerName() string {
	if runtime.GOOS == "windows" {
		return "pip.exe"
	}
	return "pip"
}

// Resolve returns the absolute path of the pip executable, honoring the
// Path override. Returns an InstallerUnavailableError when pip cannot be
// located.
func (i *Installer) Resolve() (string, error) {
	name := i.Path
	if name == "" {
		name = installerName()
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", &InstallerUnavailableError{Name: name, Cause: err}
	}
	return bin, nil
}

// Install materializes every specifier into targetDir with a single
// installer invocation, isolated from the user's environment config.
// An empty specifier list is a no-op: pip is neither located nor invoked.
// The context bounds the installer process; callers own timeout policy.
func (i *Installer) Install(ctx context.Context, specs []string, targetDir string) error {
	if len(specs) == 0 {
		return nil
	}

	bin, err := i.Resolve()
	if err != nil {
		return err
	}

	args := append([]string{"install", "--isolated", "--target", targetDir}, specs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &InstallError{Specs: specs, Output: string(out), Cause: err}
	}
	return nil
}
