package gamebook

import (
	"fmt"
	"slices"
	"strconv"
)

// DefaultFirstPosition is the number given to the first paragraph.
const DefaultFirstPosition = 1

// paragraph is one labeled block of the manuscript while it is being built.
type paragraph struct {
	label  string
	pinned bool
	line   int // input line of the paragraph marker
	body   []string
}

// Store holds the paragraphs of one manuscript in declaration order.
// It is owned by a single pipeline run and is not safe for concurrent use.
type Store struct {
	terminal string
	first    int

	order   []*paragraph
	byLabel map[string]*paragraph
	pinned  []string
	current *paragraph

	sawTerminal bool
}

// NewStore creates an empty store. terminal is the reserved label of the
// last paragraph; first is the number of the first position.
func NewStore(terminal string, first int) *Store {
	return &Store{
		terminal: terminal,
		first:    first,
		byLabel:  make(map[string]*paragraph),
	}
}

// Declare opens a new paragraph. line is the 1-based input line of the
// marker, or 0 when unknown.
//
// Checks run in this order: duplicate label, empty body of the open
// paragraph, then pinning rules (an ordinary paragraph needs a pinned one
// before it, and the terminal label must be pinned).
func (s *Store) Declare(label string, pinned bool, line int) error {
	if _, exists := s.byLabel[label]; exists {
		return manuscriptErr(ErrDuplicateLabel, label, line)
	}
	if s.current != nil && len(s.current.body) == 0 {
		return manuscriptErr(ErrEmptyBody, s.current.label, s.current.line)
	}
	if !pinned {
		if len(s.pinned) == 0 {
			return &ManuscriptError{
				Err:     fmt.Errorf("%w: the first paragraph must be pinned", ErrPinningOrder),
				Subject: label,
				Line:    line,
			}
		}
		if label == s.terminal {
			return &ManuscriptError{
				Err:     fmt.Errorf("%w: the terminal label must be pinned", ErrPinningOrder),
				Subject: label,
				Line:    line,
			}
		}
	}

	p := &paragraph{label: label, pinned: pinned, line: line}
	s.order = append(s.order, p)
	s.byLabel[label] = p
	if pinned {
		s.pinned = append(s.pinned, label)
	}
	if label == s.terminal {
		s.sawTerminal = true
	}
	s.current = p
	return nil
}

// Append adds a body line to the open paragraph. Lines before the first
// paragraph marker are dropped.
func (s *Store) Append(text string) {
	if s.current == nil {
		return
	}
	s.current.body = append(s.current.body, text)
}

// Rename moves a paragraph under a new label. Pinned status and position in
// declaration order are kept.
func (s *Store) Rename(oldLabel, newLabel string) error {
	p, ok := s.byLabel[oldLabel]
	if !ok {
		return fmt.Errorf("rename: unknown label %q", oldLabel)
	}
	if oldLabel == newLabel {
		return nil
	}
	if other, exists := s.byLabel[newLabel]; exists {
		return manuscriptErr(ErrDuplicateLabel, newLabel, other.line)
	}

	delete(s.byLabel, oldLabel)
	p.label = newLabel
	s.byLabel[newLabel] = p
	if i := slices.Index(s.pinned, oldLabel); i >= 0 {
		s.pinned[i] = newLabel
	}
	return nil
}

// Count returns the number of paragraphs.
func (s *Store) Count() int {
	return len(s.order)
}

// Labels returns every label in declaration order.
func (s *Store) Labels() []string {
	labels := make([]string, len(s.order))
	for i, p := range s.order {
		labels[i] = p.label
	}
	return labels
}

// Pinned returns the pinned labels in declaration order.
func (s *Store) Pinned() []string {
	return slices.Clone(s.pinned)
}

// IsPinned reports whether label names a pinned paragraph.
func (s *Store) IsPinned(label string) bool {
	p, ok := s.byLabel[label]
	return ok && p.pinned
}

// Body returns a copy of the body lines of label.
func (s *Store) Body(label string) ([]string, bool) {
	p, ok := s.byLabel[label]
	if !ok {
		return nil, false
	}
	return slices.Clone(p.body), true
}

// setBody replaces the body of label with lines.
func (s *Store) setBody(label string, lines []string) {
	if p, ok := s.byLabel[label]; ok {
		p.body = lines
	}
}

// line returns the input line where label was declared, 0 when unknown.
func (s *Store) line(label string) int {
	if p, ok := s.byLabel[label]; ok {
		return p.line
	}
	return 0
}

// HasTerminal reports whether the terminal label was declared.
func (s *Store) HasTerminal() bool {
	return s.sawTerminal
}

// FirstPosition returns the number of the first position.
func (s *Store) FirstPosition() int {
	return s.first
}

// LastPosition returns FirstPosition + Count - 1.
func (s *Store) LastPosition() int {
	return s.first + len(s.order) - 1
}

// LastLabel returns the decimal numeral of the last position, which the
// terminal label is renamed to.
func (s *Store) LastLabel() string {
	return strconv.Itoa(s.LastPosition())
}
