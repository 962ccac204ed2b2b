// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation: actionable errors
// carrying operation/resource/suggestion context, and a catalog of known
// failure classes rendered as styled markdown.
package issue
