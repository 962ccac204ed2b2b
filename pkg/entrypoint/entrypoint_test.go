// SPDX-License-Identifier: MPL-2.0

package entrypoint

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		want    *Spec
		wantErr bool
	}{
		{
			name: "module and callable",
			expr: "pkg.cli:main",
			want: &Spec{Module: "pkg.cli", Callable: "main"},
		},
		{
			name: "deeply dotted module",
			expr: "a.b.c.d:run",
			want: &Spec{Module: "a.b.c.d", Callable: "run"},
		},
		{
			name: "single extra argument",
			expr: "pkg.cli:main serve",
			want: &Spec{Module: "pkg.cli", Callable: "main", Args: []string{"serve"}},
		},
		{
			name: "comma-separated arguments",
			expr: "pkg.cli:main extra,params",
			want: &Spec{Module: "pkg.cli", Callable: "main", Args: []string{"extra", "params"}},
		},
		{
			name: "whitespace around expression",
			expr: "  pkg.cli:main  foo,bar  ",
			want: &Spec{Module: "pkg.cli", Callable: "main", Args: []string{"foo", "bar"}},
		},
		{
			name:    "missing separator",
			expr:    "pkg.cli.main",
			wantErr: true,
		},
		{
			name:    "empty module path",
			expr:    ":main",
			wantErr: true,
		},
		{
			name:    "empty callable",
			expr:    "pkg.cli: foo,bar",
			wantErr: true,
		},
		{
			name:    "empty expression",
			expr:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) error = nil, want error", tt.expr)
				}
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("Parse(%q) error = %v, does not wrap ErrMalformed", tt.expr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.expr, got, tt.want)
			}
		})
	}
}

var (
	importRe = regexp.MustCompile(`importlib\.import_module\("([^"]+)"\)`)
	lookupRe = regexp.MustCompile(`getattr\(module, "([^"]+)"\)`)
	callRe   = regexp.MustCompile(`entry\(([^)]*)\)`)
)

// reparse extracts the module, callable, and argument list back out of a
// rendered bootstrap.
func reparse(t *testing.T, source string) *Spec {
	t.Helper()

	importMatch := importRe.FindStringSubmatch(source)
	lookupMatch := lookupRe.FindStringSubmatch(source)
	callMatch := callRe.FindStringSubmatch(source)
	if importMatch == nil || lookupMatch == nil || callMatch == nil {
		t.Fatalf("bootstrap does not contain the expected invocation:\n%s", source)
	}

	var args []string
	if argList := strings.TrimSpace(callMatch[1]); argList != "" {
		for _, arg := range strings.Split(argList, ",") {
			args = append(args, strings.Trim(strings.TrimSpace(arg), `"`))
		}
	}

	return &Spec{Module: importMatch[1], Callable: lookupMatch[1], Args: args}
}

func TestRender_RoundTrip(t *testing.T) {
	t.Parallel()

	exprs := []string{
		"pkg.cli:main",
		"a.b.c:run",
		"pkg.cli:main serve",
		"pkg.cli:main extra,params",
		"tool.app:start one,two,three",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()
			spec, err := Parse(expr)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", expr, err)
			}

			source, err := spec.Render("vendor")
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			got := reparse(t, source)
			if !reflect.DeepEqual(got, spec) {
				t.Errorf("round trip = %+v, want %+v", got, spec)
			}
		})
	}
}

func TestRender_Contents(t *testing.T) {
	t.Parallel()

	spec := &Spec{Module: "pkg.cli", Callable: "main"}
	source, err := spec.Render("vendor")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`"vendor"`,
		"sys.path.insert",
		"SystemExit(result if isinstance(result, int) else 0)",
		"entry()",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("bootstrap missing %q:\n%s", want, source)
		}
	}
}
