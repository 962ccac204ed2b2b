// SPDX-License-Identifier: MPL-2.0

package buildfile

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestMissing is the sentinel error wrapped by ManifestMissingError.
	ErrManifestMissing = errors.New("build manifest missing")
	// ErrManifestMalformed is the sentinel error wrapped by ManifestMalformedError.
	ErrManifestMalformed = errors.New("build manifest malformed")
	// ErrNamespaceMissing is the sentinel error wrapped by NamespaceMissingError.
	ErrNamespaceMissing = errors.New("manifest namespace key missing")
)

type (
	// ManifestMissingError is returned when no build file exists in the
	// project root. It wraps ErrManifestMissing for errors.Is() compatibility.
	ManifestMissingError struct {
		Dir string
	}

	// ManifestMalformedError is returned when the build file cannot be
	// parsed as structured data, or when the namespace value has the wrong
	// shape. It wraps ErrManifestMalformed for errors.Is() compatibility.
	ManifestMalformedError struct {
		Path  string
		Cause error
	}

	// NamespaceMissingError is returned when the build file parses but does
	// not contain the reserved namespace key. It wraps ErrNamespaceMissing
	// for errors.Is() compatibility.
	NamespaceMissingError struct {
		Path string
	}
)

// Error implements the error interface for ManifestMissingError.
func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("no build file (%s) found in %s", manifestNameList(), e.Dir)
}

// Unwrap returns ErrManifestMissing for errors.Is() compatibility.
func (e *ManifestMissingError) Unwrap() error { return ErrManifestMissing }

// Error implements the error interface for ManifestMalformedError.
func (e *ManifestMalformedError) Error() string {
	return fmt.Sprintf("build file %s is malformed: %v", e.Path, e.Cause)
}

// Unwrap returns the wrapped errors for errors.Is() compatibility with both
// ErrManifestMalformed and the underlying parse error.
func (e *ManifestMalformedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrManifestMalformed}
	}
	return []error{ErrManifestMalformed, e.Cause}
}

// Error implements the error interface for NamespaceMissingError.
func (e *NamespaceMissingError) Error() string {
	return fmt.Sprintf("build file %s does not contain a %q key", e.Path, NamespaceKey)
}

// Unwrap returns ErrNamespaceMissing for errors.Is() compatibility.
func (e *NamespaceMissingError) Unwrap() error { return ErrNamespaceMissing }
