// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultShebang is the interpreter directive used when the config does
	// not declare one.
	DefaultShebang ShebangDirective = "#!/usr/bin/env python"
)

var (
	// ErrInvalidInstallerPath is returned when an InstallerPath value is whitespace-only.
	ErrInvalidInstallerPath = errors.New("invalid installer path")
	// ErrInvalidShebangDirective is the sentinel error wrapped by InvalidShebangDirectiveError.
	ErrInvalidShebangDirective = errors.New("invalid shebang directive")
	// ErrInvalidIgnorePattern is returned when an ignore pattern is whitespace-only.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// InstallerPath represents a filesystem path or executable name for the
	// pip installer. The zero value ("") is valid and means "search PATH".
	InstallerPath string

	// InvalidInstallerPathError is returned when an InstallerPath value is
	// non-empty but whitespace-only.
	InvalidInstallerPathError struct {
		Value InstallerPath
	}

	// ShebangDirective is the interpreter line written at the top of
	// produced archives. The zero value ("") is valid and means "use the
	// default directive"; non-zero values must start with "#!".
	ShebangDirective string

	// InvalidShebangDirectiveError is returned when a ShebangDirective value
	// does not start with "#!". It wraps ErrInvalidShebangDirective for
	// errors.Is() compatibility.
	InvalidShebangDirectiveError struct {
		Value ShebangDirective
	}

	// IgnorePattern is a path pattern excluded from every target's archive.
	// A valid pattern must be non-empty and not whitespace-only.
	IgnorePattern string

	// InvalidIgnorePatternError is returned when an IgnorePattern value is
	// empty or whitespace-only. It wraps ErrInvalidIgnorePattern for
	// errors.Is() compatibility.
	InvalidIgnorePatternError struct {
		Value IgnorePattern
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Installer overrides the pip executable used for vendoring.
		Installer InstallerPath `json:"installer" mapstructure:"installer"`
		// Shebang is the interpreter directive for produced archives.
		Shebang ShebangDirective `json:"shebang" mapstructure:"shebang"`
		// DefaultIgnore lists patterns excluded from every target's archive
		// in addition to the target's own ignore list.
		DefaultIgnore []IgnorePattern `json:"default_ignore" mapstructure:"default_ignore"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the InstallerPath.
func (p InstallerPath) String() string { return string(p) }

// IsValid returns whether the InstallerPath is valid.
// The zero value ("") is valid (means "search PATH").
// Non-zero values must not be whitespace-only.
func (p InstallerPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidInstallerPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInstallerPathError.
func (e *InvalidInstallerPathError) Error() string {
	return fmt.Sprintf("invalid installer path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidInstallerPath for errors.Is() compatibility.
func (e *InvalidInstallerPathError) Unwrap() error { return ErrInvalidInstallerPath }

// String returns the string representation of the ShebangDirective.
func (s ShebangDirective) String() string { return string(s) }

// IsValid returns whether the ShebangDirective is valid.
// The zero value ("") is valid (means "use the default directive").
// Non-zero values must start with "#!".
func (s ShebangDirective) IsValid() (bool, []error) {
	if s == "" {
		return true, nil
	}
	if !strings.HasPrefix(string(s), "#!") {
		return false, []error{&InvalidShebangDirectiveError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShebangDirectiveError.
func (e *InvalidShebangDirectiveError) Error() string {
	return fmt.Sprintf("invalid shebang directive %q: must start with \"#!\"", e.Value)
}

// Unwrap returns ErrInvalidShebangDirective for errors.Is() compatibility.
func (e *InvalidShebangDirectiveError) Unwrap() error { return ErrInvalidShebangDirective }

// String returns the string representation of the IgnorePattern.
func (p IgnorePattern) String() string { return string(p) }

// IsValid returns whether the IgnorePattern is valid.
// A valid pattern must be non-empty and not whitespace-only.
func (p IgnorePattern) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidIgnorePatternError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidIgnorePatternError.
func (e *InvalidIgnorePatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidIgnorePattern for errors.Is() compatibility.
func (e *InvalidIgnorePatternError) Unwrap() error { return ErrInvalidIgnorePattern }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Installer.IsValid(), Shebang.IsValid(), each DefaultIgnore
// pattern's IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Installer.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Shebang.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, pattern := range c.DefaultIgnore {
		if valid, fieldErrs := pattern.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IgnorePatterns returns the default ignore patterns as plain strings for
// handing to the ignore filter.
func (c Config) IgnorePatterns() []string {
	patterns := make([]string, len(c.DefaultIgnore))
	for i, p := range c.DefaultIgnore {
		patterns[i] = string(p)
	}
	return patterns
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Installer:     "", // Will search PATH if empty
		Shebang:       DefaultShebang,
		DefaultIgnore: []IgnorePattern{"venv", "env"},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
