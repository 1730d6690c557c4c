package diag

// Diagnostic is a single report produced by a pipeline phase.
// Declarations are identified by their canonical path; there are no
// source spans here, the input arrives pre-parsed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string
	Message  string
	Notes    []string
}
