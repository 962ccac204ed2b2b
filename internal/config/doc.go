// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/zapper/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/zapper/config.cue on macOS, %APPDATA%\zapper\config.cue
// on Windows). The package covers installer selection, the archive interpreter
// directive, default ignore patterns, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
