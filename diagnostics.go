package gamebook

import (
	"errors"
	"fmt"
	"sync"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic kinds that do not stop a run.
const (
	KindMissingTerminalLabel = "missing-terminal-label"
	KindMissingLink          = "missing-link"
)

// Diagnostic kinds for fatal errors.
const (
	KindDuplicateLabel        = "duplicate-label"
	KindEmptyBody             = "empty-body"
	KindPinningOrder          = "pinning-order"
	KindNonContiguousLabeling = "non-contiguous-labeling"
	KindUnresolvedLink        = "unresolved-link"
	KindUndefinedMacro        = "undefined-macro"
	KindEmptyManuscript       = "empty-manuscript"
	KindInternal              = "internal"
)

// Diagnostic is one message produced during a run.
type Diagnostic struct {
	Severity Severity
	Kind     string
	Subject  string // label or macro name, may be empty
	Line     int    // 1-based input line, 0 when unknown
	Message  string
}

func (d Diagnostic) String() string {
	s := d.Severity.String() + ": " + d.Message
	if d.Subject != "" {
		s += fmt.Sprintf(" %q", d.Subject)
	}
	if d.Line > 0 {
		s += fmt.Sprintf(" (line %d)", d.Line)
	}
	return s
}

// Sink receives diagnostics as a run produces them.
type Sink interface {
	Report(d Diagnostic)
}

// Diagnostics is a Sink that keeps every record in arrival order.
// Safe for concurrent use so one collector can serve a batch of runs.
type Diagnostics struct {
	mu      sync.Mutex
	records []Diagnostic
}

// Report appends d.
func (c *Diagnostics) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, d)
}

// All returns a copy of every record.
func (c *Diagnostics) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.records))
	copy(out, c.records)
	return out
}

// Warnings returns the records with SeverityWarning.
func (c *Diagnostics) Warnings() []Diagnostic {
	return c.filter(SeverityWarning)
}

// Fatals returns the records with SeverityFatal.
func (c *Diagnostics) Fatals() []Diagnostic {
	return c.filter(SeverityFatal)
}

func (c *Diagnostics) filter(sev Severity) []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Diagnostic
	for _, d := range c.records {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// discardSink drops every diagnostic.
type discardSink struct{}

func (discardSink) Report(Diagnostic) {}

// fatalKinds pairs every manuscript sentinel with its diagnostic kind.
var fatalKinds = []struct {
	err  error
	kind string
}{
	{ErrDuplicateLabel, KindDuplicateLabel},
	{ErrEmptyBody, KindEmptyBody},
	{ErrPinningOrder, KindPinningOrder},
	{ErrNonContiguousLabeling, KindNonContiguousLabeling},
	{ErrUnresolvedLink, KindUnresolvedLink},
	{ErrUndefinedMacro, KindUndefinedMacro},
	{ErrEmptyManuscript, KindEmptyManuscript},
}

// FatalKinds returns the kind of every manuscript error, KindInternal
// excluded.
func FatalKinds() []string {
	kinds := make([]string, len(fatalKinds))
	for i, fk := range fatalKinds {
		kinds[i] = fk.kind
	}
	return kinds
}

// fatalDiagnostic converts a fatal run error into a Diagnostic.
func fatalDiagnostic(err error) Diagnostic {
	d := Diagnostic{Severity: SeverityFatal, Kind: KindInternal, Message: err.Error()}
	var me *ManuscriptError
	if errors.As(err, &me) {
		d.Subject = me.Subject
		d.Line = me.Line
		d.Message = me.Err.Error()
	}
	for _, fk := range fatalKinds {
		if errors.Is(err, fk.err) {
			d.Kind = fk.kind
			break
		}
	}
	return d
}

// KindOf returns the diagnostic kind of a fatal run error, KindInternal
// when err is not a manuscript error.
func KindOf(err error) string {
	return fatalDiagnostic(err).Kind
}
