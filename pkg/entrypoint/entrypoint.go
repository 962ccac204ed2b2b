// SPDX-License-Identifier: MPL-2.0

// Package entrypoint parses entry-point expressions and renders the
// bootstrap module embedded in produced archives.
//
// An entry-point expression has the form:
//
//	module.path:callable extra,params
//
// The part before the first ':' is the dotted module path; the remainder
// splits on the first whitespace run into the callable name and an optional
// comma-separated list of literal arguments. The rendered bootstrap defers
// all symbol binding to the target runtime: it is a pure lookup-and-call
// shim that imports the module, resolves the callable, forwards the literal
// arguments as positional strings, and exits with the callable's return
// value when it is an integer (anything else maps to exit code 0).
package entrypoint

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrMalformed is the sentinel error wrapped by MalformedError.
var ErrMalformed = errors.New("malformed entry point")

//go:embed bootstrap.py.tmpl
var bootstrapSource string

var bootstrapTemplate = template.Must(template.New("bootstrap").Parse(bootstrapSource))

type (
	// Spec is the parsed form of an entry-point expression.
	Spec struct {
		// Module is the dotted module path to import.
		Module string
		// Callable is the attribute looked up on the imported module.
		Callable string
		// Args are literal extra arguments forwarded to the callable as
		// positional strings, in declaration order. May be empty.
		Args []string
	}

	// MalformedError is returned when an entry-point expression cannot be
	// parsed. It wraps ErrMalformed for errors.Is() compatibility.
	MalformedError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface for MalformedError.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%q is a malformed entry point: %s (expected \"module.path:callable extra,args\")", e.Value, e.Reason)
}

// Unwrap returns ErrMalformed for errors.Is() compatibility.
func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Parse parses an entry-point expression into a Spec.
// The module path and callable name must both be non-empty; an expression
// with no ':' separator is rejected.
func Parse(expr string) (*Spec, error) {
	trimmed := strings.TrimSpace(expr)

	modulePart, rest, found := strings.Cut(trimmed, ":")
	if !found {
		return nil, &MalformedError{Value: expr, Reason: "missing ':' separator"}
	}

	module := strings.TrimSpace(modulePart)
	if module == "" {
		return nil, &MalformedError{Value: expr, Reason: "empty module path"}
	}

	callable, argPart := rest, ""
	if i := strings.IndexFunc(rest, isSpace); i >= 0 {
		callable, argPart = rest[:i], rest[i:]
	}
	callable = strings.TrimSpace(callable)
	if callable == "" {
		return nil, &MalformedError{Value: expr, Reason: "empty callable name"}
	}

	var args []string
	if argPart = strings.TrimSpace(argPart); argPart != "" {
		for _, arg := range strings.Split(argPart, ",") {
			args = append(args, strings.TrimSpace(arg))
		}
	}

	return &Spec{Module: module, Callable: callable, Args: args}, nil
}

// String reassembles the canonical expression form of the Spec.
func (s *Spec) String() string {
	expr := s.Module + ":" + s.Callable
	if len(s.Args) > 0 {
		expr += " " + strings.Join(s.Args, ",")
	}
	return expr
}

// Render produces the bootstrap module source for this Spec. The vendorDir
// argument is the archive-internal directory the bootstrap pushes onto the
// module search path before delegating to the real entry point.
func (s *Spec) Render(vendorDir string) (string, error) {
	var sb strings.Builder
	err := bootstrapTemplate.Execute(&sb, struct {
		Module    string
		Callable  string
		ArgList   string
		VendorDir string
	}{
		Module:    s.Module,
		Callable:  s.Callable,
		ArgList:   pythonArgList(s.Args),
		VendorDir: vendorDir,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render bootstrap module: %w", err)
	}
	return sb.String(), nil
}

// pythonArgList renders the literal arguments as a Python call argument
// list, one quoted string per argument.
func pythonArgList(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		escaped := strings.ReplaceAll(arg, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		quoted[i] = `"` + escaped + `"`
	}
	return strings.Join(quoted, ", ")
}

// isSpace reports whether r is an ASCII whitespace rune. Entry-point
// expressions come from YAML scalars, so this is the full set seen in
// practice.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
