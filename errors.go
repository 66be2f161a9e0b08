package gamebook

import (
	"errors"
	"fmt"
)

// Sentinel errors for manuscript inconsistencies. All of them are fatal:
// the run stops and no output is produced.
var (
	ErrEmptyManuscript       = errors.New("manuscript has no paragraphs")
	ErrDuplicateLabel        = errors.New("duplicate paragraph label")
	ErrEmptyBody             = errors.New("paragraph body is empty")
	ErrPinningOrder          = errors.New("pinning order violation")
	ErrNonContiguousLabeling = errors.New("paragraph labels are not contiguous")
	ErrUnresolvedLink        = errors.New("link target not found")
	ErrUndefinedMacro        = errors.New("macro is not defined")
)

// Sentinel errors for options and rendering.
var (
	ErrInvalidSyntax        = errors.New("invalid manuscript syntax")
	ErrInvalidFirstPosition = errors.New("invalid first paragraph number")
	ErrInvalidFormat        = errors.New("invalid output format")
	ErrInvalidPageSize      = errors.New("invalid page size")
	ErrHTMLConversion       = errors.New("HTML conversion failed")
	ErrStyleNotFound        = errors.New("style not found")
	ErrInvalidAssetPath     = errors.New("invalid asset path")
	ErrBrowserConnect       = errors.New("failed to connect to browser")
	ErrPageCreate           = errors.New("failed to create browser page")
	ErrPageLoad             = errors.New("failed to load page")
	ErrPDFGeneration        = errors.New("PDF generation failed")
)

// ManuscriptError reports a fatal manuscript inconsistency together with the
// offending label or macro name. Line is the 1-based input line when known.
type ManuscriptError struct {
	Err     error
	Subject string
	Line    int
}

func (e *ManuscriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %q (line %d)", e.Err, e.Subject, e.Line)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Subject)
}

func (e *ManuscriptError) Unwrap() error {
	return e.Err
}

// IsManuscriptError reports whether err stems from the manuscript content
// rather than from options, I/O or rendering.
func IsManuscriptError(err error) bool {
	var me *ManuscriptError
	return errors.As(err, &me) || errors.Is(err, ErrEmptyManuscript)
}

func manuscriptErr(kind error, subject string, line int) error {
	return &ManuscriptError{Err: kind, Subject: subject, Line: line}
}
