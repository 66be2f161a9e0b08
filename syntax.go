package gamebook

import (
	"fmt"
	"strings"
)

// Default manuscript markers.
const (
	DefaultMacroSigil     = "*"
	DefaultParagraphSigil = "●"
	DefaultTerminalLabel  = "★LAST★"
	DefaultLinkDelimiter  = "##"
	DefaultMacroOpen      = "#{{"
	DefaultMacroClose     = "}}"
)

// Syntax holds the markers that structure a manuscript.
//
// A macro definition line starts with MacroSigil followed by "name:text".
// A paragraph line starts with ParagraphSigil followed by the label; the sigil
// written twice marks a pinned paragraph. Links are labels wrapped in
// LinkDelimiter on both sides, placeholders are names between MacroOpen and
// MacroClose.
type Syntax struct {
	MacroSigil     string
	ParagraphSigil string
	TerminalLabel  string
	LinkDelimiter  string
	MacroOpen      string
	MacroClose     string
}

// DefaultSyntax returns the standard manuscript markers.
func DefaultSyntax() Syntax {
	return Syntax{
		MacroSigil:     DefaultMacroSigil,
		ParagraphSigil: DefaultParagraphSigil,
		TerminalLabel:  DefaultTerminalLabel,
		LinkDelimiter:  DefaultLinkDelimiter,
		MacroOpen:      DefaultMacroOpen,
		MacroClose:     DefaultMacroClose,
	}
}

// Validate checks that every marker is set and that markers which share a
// line position cannot be confused with each other.
func (s Syntax) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"macro sigil", s.MacroSigil},
		{"paragraph sigil", s.ParagraphSigil},
		{"terminal label", s.TerminalLabel},
		{"link delimiter", s.LinkDelimiter},
		{"macro open", s.MacroOpen},
		{"macro close", s.MacroClose},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidSyntax, f.name)
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidSyntax, f.name)
		}
	}

	// Line-start markers: a body line may begin with a link or a placeholder.
	pairs := []struct {
		a, b         string
		aName, bName string
	}{
		{s.MacroSigil, s.ParagraphSigil, "macro sigil", "paragraph sigil"},
		{s.ParagraphSigil, s.LinkDelimiter, "paragraph sigil", "link delimiter"},
		{s.ParagraphSigil, s.MacroOpen, "paragraph sigil", "macro open"},
		{s.MacroSigil, s.LinkDelimiter, "macro sigil", "link delimiter"},
		{s.MacroSigil, s.MacroOpen, "macro sigil", "macro open"},
	}
	for _, p := range pairs {
		if overlap(p.a, p.b) {
			return fmt.Errorf("%w: %s %q and %s %q overlap", ErrInvalidSyntax, p.aName, p.a, p.bName, p.b)
		}
	}
	if s.MacroOpen == s.LinkDelimiter {
		return fmt.Errorf("%w: macro open and link delimiter are both %q", ErrInvalidSyntax, s.MacroOpen)
	}
	return nil
}

// overlap reports whether one marker starts with the other.
func overlap(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// withDefaults fills empty markers from DefaultSyntax.
func (s Syntax) withDefaults() Syntax {
	d := DefaultSyntax()
	if s.MacroSigil == "" {
		s.MacroSigil = d.MacroSigil
	}
	if s.ParagraphSigil == "" {
		s.ParagraphSigil = d.ParagraphSigil
	}
	if s.TerminalLabel == "" {
		s.TerminalLabel = d.TerminalLabel
	}
	if s.LinkDelimiter == "" {
		s.LinkDelimiter = d.LinkDelimiter
	}
	if s.MacroOpen == "" {
		s.MacroOpen = d.MacroOpen
	}
	if s.MacroClose == "" {
		s.MacroClose = d.MacroClose
	}
	return s
}
