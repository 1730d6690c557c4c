package diag

// Reporter is the minimal contract phases use to surface diagnostics.
// Implementations: BagReporter (collects), ConsoleReporter (prints),
// NopReporter (drops).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores every diagnostic in a Bag.
type BagReporter struct {
	Bag *Bag
}

// NewBagReporter builds a reporter backed by a fresh bag with the given cap.
func NewBagReporter(max int) *BagReporter {
	return &BagReporter{Bag: NewBag(max)}
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// Warn is a shortcut for reporting a warning about a declaration.
func Warn(r Reporter, code Code, path, msg string, notes ...string) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{Severity: SevWarning, Code: code, Path: path, Message: msg, Notes: notes})
}

// Error is a shortcut for reporting an error about a declaration.
func Error(r Reporter, code Code, path, msg string, notes ...string) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{Severity: SevError, Code: code, Path: path, Message: msg, Notes: notes})
}
