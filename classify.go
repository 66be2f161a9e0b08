package gamebook

import (
	"regexp"
)

// Line is the result of classifying one manuscript line. It is one of
// MacroDefinition, ParagraphStart or BodyLine.
type Line interface {
	isLine()
}

// MacroDefinition is a "*NAME:text" line.
type MacroDefinition struct {
	Name string
	Text string
}

// ParagraphStart opens a new paragraph.
type ParagraphStart struct {
	Label  string
	Pinned bool
}

// BodyLine is any other line, kept verbatim including its line terminator.
type BodyLine struct {
	Text string
}

func (MacroDefinition) isLine() {}
func (ParagraphStart) isLine()  {}
func (BodyLine) isLine()        {}

// Classifier turns raw lines into Line values. It holds only compiled
// patterns and is safe for concurrent use.
type Classifier struct {
	define    *regexp.Regexp
	pinned    *regexp.Regexp
	paragraph *regexp.Regexp
}

// NewClassifier compiles the line patterns for the given syntax.
// Empty markers fall back to DefaultSyntax.
func NewClassifier(s Syntax) *Classifier {
	s = s.withDefaults()
	macro := regexp.QuoteMeta(s.MacroSigil)
	para := regexp.QuoteMeta(s.ParagraphSigil)
	return &Classifier{
		define:    regexp.MustCompile(`^` + macro + `([^:\r\n]+):([^\r\n]+)`),
		pinned:    regexp.MustCompile(`^` + para + para + `([^\r\n]+)`),
		paragraph: regexp.MustCompile(`^` + para + `([^\r\n]+)`),
	}
}

// Classify reports what kind of line this is. Macro definitions win over
// paragraph markers, and a doubled paragraph sigil wins over a single one.
// Anything that matches no pattern is a body line.
func (c *Classifier) Classify(line string) Line {
	if m := c.define.FindStringSubmatch(line); m != nil {
		return MacroDefinition{Name: m[1], Text: m[2]}
	}
	if m := c.pinned.FindStringSubmatch(line); m != nil {
		return ParagraphStart{Label: m[1], Pinned: true}
	}
	if m := c.paragraph.FindStringSubmatch(line); m != nil {
		return ParagraphStart{Label: m[1]}
	}
	return BodyLine{Text: line}
}
