// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"zapper-cli/pkg/buildfile"
	"zapper-cli/pkg/entrypoint"
	"zapper-cli/pkg/pipdeps"
	"zapper-cli/pkg/zipapp"
)

// Classify maps a pipeline error to its issue catalog entry. The sentinel
// order matters: ErrNamespaceMissing and ErrManifestMalformed are checked
// before the generic manifest sentinel so the most specific issue wins.
func Classify(err error) (Id, bool) {
	switch {
	case errors.Is(err, buildfile.ErrNamespaceMissing):
		return NamespaceMissingId, true
	case errors.Is(err, buildfile.ErrManifestMalformed):
		return ManifestMalformedId, true
	case errors.Is(err, buildfile.ErrManifestMissing):
		return ManifestMissingId, true
	case errors.Is(err, entrypoint.ErrMalformed):
		return EntryPointMalformedId, true
	case errors.Is(err, pipdeps.ErrInstallerUnavailable):
		return InstallerUnavailableId, true
	case errors.Is(err, pipdeps.ErrInstallFailed):
		return DependencyInstallFailedId, true
	case errors.Is(err, zipapp.ErrArchiveWrite):
		return ArchiveWriteFailedId, true
	default:
		return 0, false
	}
}
