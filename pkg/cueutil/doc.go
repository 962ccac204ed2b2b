// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities: user-facing error
// formatting with JSON-path context, and input size guards for files parsed
// with the CUE toolchain.
package cueutil
