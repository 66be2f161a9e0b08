package gamebook

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MacroTable maps macro names to their replacement text. A later definition
// of the same name replaces the earlier one.
type MacroTable map[string]string

// Define records name as expanding to text.
func (t MacroTable) Define(name, text string) {
	t[name] = text
}

// Lookup returns the text for name.
func (t MacroTable) Lookup(name string) (string, bool) {
	text, ok := t[name]
	return text, ok
}

// MacroExpander replaces placeholders with macro text.
type MacroExpander struct {
	pattern    *regexp.Regexp
	openDelim  string
	closeDelim string
}

// NewMacroExpander builds an expander for the placeholder delimiters of s.
func NewMacroExpander(s Syntax) *MacroExpander {
	s = s.withDefaults()
	r, _ := utf8.DecodeRuneInString(s.MacroClose)
	stop := regexp.QuoteMeta(string(r))
	return &MacroExpander{
		pattern:    regexp.MustCompile(regexp.QuoteMeta(s.MacroOpen) + `([^` + stop + `]+)` + regexp.QuoteMeta(s.MacroClose)),
		openDelim:  s.MacroOpen,
		closeDelim: s.MacroClose,
	}
}

// Expand returns a copy of body with every placeholder replaced.
//
// Each line is rescanned after every replacement so macro text may itself
// contain placeholders. There is no cycle detection: a self-referencing
// macro keeps expanding until ctx is done.
func (e *MacroExpander) Expand(ctx context.Context, body []string, table MacroTable) ([]string, error) {
	out := make([]string, len(body))
	for i, line := range body {
		for {
			m := e.pattern.FindStringSubmatch(line)
			if m == nil {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			name := m[1]
			text, ok := table.Lookup(name)
			if !ok {
				return nil, manuscriptErr(ErrUndefinedMacro, name, 0)
			}
			line = strings.ReplaceAll(line, e.openDelim+name+e.closeDelim, text)
		}
		out[i] = line
	}
	return out, nil
}

