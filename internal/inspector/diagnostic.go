package inspector

import "fmt"

// DiagnosticCode identifies an advisory event raised during inspection.
type DiagnosticCode string

const (
	// CodeEmptyArray: an empty array produced no field.
	CodeEmptyArray DiagnosticCode = "empty_array"
	// CodeNullValue: a null value produced a leaf without a type.
	CodeNullValue DiagnosticCode = "null_value"
	// CodeUnsupportedValue: a binary or opaque value produced an UNSUPPORTED leaf.
	CodeUnsupportedValue DiagnosticCode = "unsupported_value"
)

// Diagnostic is an advisory event. It never changes the shape of the
// returned document beyond the absence of the affected field.
type Diagnostic struct {
	Code    DiagnosticCode
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %s: %s", d.Code, d.Path, d.Message)
}
