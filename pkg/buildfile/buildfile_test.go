// SPDX-License-Identifier: MPL-2.0

package buildfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeManifest creates a project dir containing a build file with the given
// content and returns the dir.
func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_SingleTargetNormalization(t *testing.T) {
	t.Parallel()

	single := writeManifest(t, "build.yml", `
zapper:
  entry_point: "pkg.cli:main"
`)
	list := writeManifest(t, "build.yml", `
zapper:
  - entry_point: "pkg.cli:main"
`)

	mSingle, err := Load(single)
	if err != nil {
		t.Fatalf("Load(single) error = %v", err)
	}
	mList, err := Load(list)
	if err != nil {
		t.Fatalf("Load(list) error = %v", err)
	}

	if len(mSingle.Targets) != 1 {
		t.Fatalf("Load(single) produced %d targets, want 1", len(mSingle.Targets))
	}
	if len(mList.Targets) != 1 {
		t.Fatalf("Load(list) produced %d targets, want 1", len(mList.Targets))
	}

	// Normalization is representation-invariant: the same mapping loaded as
	// a single value or a one-element list yields equivalent targets modulo
	// the per-directory app_name default.
	ts, tl := mSingle.Targets[0], mList.Targets[0]
	ts.AppName, tl.AppName = "", ""
	if !reflect.DeepEqual(ts, tl) {
		t.Errorf("single form target = %+v, list form target = %+v", ts, tl)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "build.yml", `
zapper:
  entry_point: "pkg.cli:main"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := m.Targets[0]
	wantName := filepath.Base(dir) + ".pyz"
	if target.AppName != wantName {
		t.Errorf("AppName = %q, want %q", target.AppName, wantName)
	}
	if target.CleanPyc {
		t.Error("CleanPyc defaulted to true, want false")
	}
	if len(target.Ignore) != 0 {
		t.Errorf("Ignore defaulted to %v, want empty", target.Ignore)
	}
	if target.RequirementsTxt != "" {
		t.Errorf("RequirementsTxt = %q, want empty (no requirements.txt present)", target.RequirementsTxt)
	}
}

func TestLoad_RequirementsTxtDefaults(t *testing.T) {
	t.Parallel()

	t.Run("conventional file picked up when present", func(t *testing.T) {
		t.Parallel()
		dir := writeManifest(t, "build.yml", `
zapper:
  entry_point: "pkg.cli:main"
`)
		if err := os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("requests\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		m, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := filepath.Join(m.SrcDir, "requirements.txt")
		if m.Targets[0].RequirementsTxt != want {
			t.Errorf("RequirementsTxt = %q, want %q", m.Targets[0].RequirementsTxt, want)
		}
	})

	t.Run("relative declaration resolves against src", func(t *testing.T) {
		t.Parallel()
		dir := writeManifest(t, "build.yml", `
zapper:
  entry_point: "pkg.cli:main"
  requirements_txt: deps/reqs.txt
`)

		m, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		want := filepath.Join(m.SrcDir, "deps", "reqs.txt")
		if m.Targets[0].RequirementsTxt != want {
			t.Errorf("RequirementsTxt = %q, want %q", m.Targets[0].RequirementsTxt, want)
		}
	})
}

func TestLoad_MultiTargetOrder(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, "build.yml", `
zapper:
  - entry_point: "pkg.cli:main"
    app_name: first.pyz
  - entry_point: "pkg.worker:run"
    app_name: second.pyz
    requirements:
      - requests
      - flask
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(m.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(m.Targets))
	}
	if m.Targets[0].AppName != "first.pyz" || m.Targets[1].AppName != "second.pyz" {
		t.Errorf("target order not preserved: %q, %q", m.Targets[0].AppName, m.Targets[1].AppName)
	}
	if !reflect.DeepEqual(m.Targets[1].Requirements, []string{"requests", "flask"}) {
		t.Errorf("Requirements = %v, want [requests flask]", m.Targets[1].Requirements)
	}
}

func TestLoad_FileNamePrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"build", "build.yml"} {
		content := "zapper:\n  app_name: " + name + "\n  entry_point: \"m:f\"\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Targets[0].AppName != "build" {
		t.Errorf("loaded %q, want the bare 'build' file to win", m.Targets[0].AppName)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		sentinel error
	}{
		{
			name: "missing build file",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			sentinel: ErrManifestMissing,
		},
		{
			name: "unparseable document",
			setup: func(t *testing.T) string {
				return writeManifest(t, "build.yml", "zapper: [unclosed\n\t{")
			},
			sentinel: ErrManifestMalformed,
		},
		{
			name: "namespace value has wrong shape",
			setup: func(t *testing.T) string {
				return writeManifest(t, "build.yml", "zapper: 42\n")
			},
			sentinel: ErrManifestMalformed,
		},
		{
			name: "namespace key absent",
			setup: func(t *testing.T) string {
				return writeManifest(t, "build.yml", "other: {entry_point: \"m:f\"}\n")
			},
			sentinel: ErrNamespaceMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.setup(t))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Load() error = %v, want wrap of %v", err, tt.sentinel)
			}
		})
	}
}
