// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfigFile writes contents as the config file inside dir.
func writeConfigFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Shebang != defaults.Shebang {
		t.Errorf("Shebang = %q, want default %q", cfg.Shebang, defaults.Shebang)
	}
	if cfg.Installer != "" {
		t.Errorf("Installer = %q, want empty (search PATH)", cfg.Installer)
	}
	if len(cfg.DefaultIgnore) != len(defaults.DefaultIgnore) {
		t.Errorf("DefaultIgnore = %v, want defaults %v", cfg.DefaultIgnore, defaults.DefaultIgnore)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want auto", cfg.UI.ColorScheme)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `
installer: "pip3"
shebang: "#!/usr/bin/env python3"
default_ignore: ["venv", ".git", "*.log"]

ui: {
	color_scheme: "dark"
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Installer != "pip3" {
		t.Errorf("Installer = %q, want pip3", cfg.Installer)
	}
	if cfg.Shebang != "#!/usr/bin/env python3" {
		t.Errorf("Shebang = %q", cfg.Shebang)
	}
	if len(cfg.DefaultIgnore) != 3 || cfg.DefaultIgnore[2] != "*.log" {
		t.Errorf("DefaultIgnore = %v", cfg.DefaultIgnore)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark || !cfg.UI.Verbose {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`installer: "/opt/python/bin/pip"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Installer != "/opt/python/bin/pip" {
		t.Errorf("Installer = %q", cfg.Installer)
	}
	// Unset fields still fall back to defaults.
	if cfg.Shebang != DefaultShebang {
		t.Errorf("Shebang = %q, want default", cfg.Shebang)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    func(t *testing.T) LoadOptions
		wantSub string
	}{
		{
			name: "explicit config file missing",
			opts: func(t *testing.T) LoadOptions {
				return LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")}
			},
			wantSub: "config file not found",
		},
		{
			name: "invalid CUE syntax",
			opts: func(t *testing.T) LoadOptions {
				dir := t.TempDir()
				writeConfigFile(t, dir, `installer: "unterminated`)
				return LoadOptions{ConfigDirPath: dir}
			},
			wantSub: "load configuration",
		},
		{
			name: "schema violation",
			opts: func(t *testing.T) LoadOptions {
				dir := t.TempDir()
				writeConfigFile(t, dir, `shebang: "python without magic"`)
				return LoadOptions{ConfigDirPath: dir}
			},
			wantSub: "load configuration",
		},
		{
			name: "unknown color scheme",
			opts: func(t *testing.T) LoadOptions {
				dir := t.TempDir()
				writeConfigFile(t, dir, `ui: color_scheme: "neon"`)
				return LoadOptions{ConfigDirPath: dir}
			},
			wantSub: "load configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewProvider().Load(context.Background(), tt.opts(t))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Load() error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); err == nil {
		t.Error("Load() with canceled context error = nil")
	}
}

func TestCreateDefaultConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	cfgPath := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Creating again must not clobber the existing file.
	if err := os.WriteFile(cfgPath, []byte(`shebang: "#!/usr/bin/env pypy"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Shebang != "#!/usr/bin/env pypy" {
		t.Errorf("Shebang = %q, want user edit preserved", cfg.Shebang)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	want := DefaultConfig()
	want.Installer = "pip3"
	want.DefaultIgnore = []IgnorePattern{"venv", "dist"}
	want.UI.ColorScheme = ColorSchemeLight

	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Installer != want.Installer || got.UI.ColorScheme != want.UI.ColorScheme {
		t.Errorf("Load() after Save() = %+v, want %+v", got, want)
	}
	if len(got.DefaultIgnore) != 2 || got.DefaultIgnore[1] != "dist" {
		t.Errorf("DefaultIgnore = %v, want %v", got.DefaultIgnore, want.DefaultIgnore)
	}
}
