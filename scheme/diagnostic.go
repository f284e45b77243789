package scheme

import (
	"errors"
	"fmt"

	"github.com/broady/svcgen/decl"
)

// Code is a machine-readable diagnostic identifier.
type Code string

const (
	CodeInvalidReturnType     Code = "InvalidReturnType"
	CodeUnresolvableParser    Code = "UnresolvableParser"
	CodeContentTypeMismatch   Code = "ContentTypeMismatch"
	CodeOptionalURLParameter  Code = "OptionalURLParameter"
	CodeMissingURLPlaceholder Code = "MissingURLPlaceholder"
	CodeMissingHTTPVerb       Code = "MissingHTTPVerb"
)

// Severity tells errors apart from warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a derivation finding bound to a declaration's source location.
// Errors abort derivation of the method or service they belong to; warnings
// are collected on the Context and derivation continues.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Source   decl.Source
}

func (d *Diagnostic) Error() string {
	prefix := ""
	if d.Severity == SeverityWarning {
		prefix = "warning: "
	}
	return fmt.Sprintf("%s: %s[ServiceGenerator] %s", d.Source, prefix, d.Message)
}

func newError(code Code, src decl.Source, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Source:   src,
	}
}

// Is matches any Diagnostic carrying the same code, so errors.Is finds a
// code anywhere in a joined or wrapped error tree.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)
	return ok && t.Code == d.Code
}

// IsCode reports whether err is, or wraps, a Diagnostic with the given code.
func IsCode(err error, code Code) bool {
	return errors.Is(err, &Diagnostic{Code: code})
}
