package gamebook

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestStore_Declare
// ---------------------------------------------------------------------------

func TestStore_Declare(t *testing.T) {
	t.Parallel()

	type decl struct {
		label  string
		pinned bool
		body   []string
	}

	tests := []struct {
		name        string
		decls       []decl
		wantErr     error
		wantSubject string
		wantLine    int
	}{
		{
			name: "pinned then ordinary",
			decls: []decl{
				{"1", true, []string{"a\n"}},
				{"cave", false, []string{"b\n"}},
			},
		},
		{
			name: "duplicate label",
			decls: []decl{
				{"1", true, []string{"a\n"}},
				{"5", false, []string{"b\n"}},
				{"5", false, nil},
			},
			wantErr:     ErrDuplicateLabel,
			wantSubject: "5",
			wantLine:    3,
		},
		{
			name: "duplicate checked before empty body",
			decls: []decl{
				{"1", true, nil},
				{"1", true, nil},
			},
			wantErr:     ErrDuplicateLabel,
			wantSubject: "1",
			wantLine:    2,
		},
		{
			name: "empty body of previous paragraph",
			decls: []decl{
				{"1", true, nil},
				{"2", false, nil},
			},
			wantErr:     ErrEmptyBody,
			wantSubject: "1",
			wantLine:    1,
		},
		{
			name: "ordinary before any pinned",
			decls: []decl{
				{"cave", false, nil},
			},
			wantErr:     ErrPinningOrder,
			wantSubject: "cave",
			wantLine:    1,
		},
		{
			name: "terminal declared ordinary",
			decls: []decl{
				{"1", true, []string{"a\n"}},
				{DefaultTerminalLabel, false, nil},
			},
			wantErr:     ErrPinningOrder,
			wantSubject: DefaultTerminalLabel,
			wantLine:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStore(DefaultTerminalLabel, DefaultFirstPosition)
			var err error
			for i, d := range tt.decls {
				if err = s.Declare(d.label, d.pinned, i+1); err != nil {
					break
				}
				for _, line := range d.body {
					s.Append(line)
				}
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Declare() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Declare() error = %v, want %v", err, tt.wantErr)
			}
			var me *ManuscriptError
			if !errors.As(err, &me) {
				t.Fatalf("Declare() error %T is not a *ManuscriptError", err)
			}
			if me.Subject != tt.wantSubject || me.Line != tt.wantLine {
				t.Errorf("ManuscriptError = {%q, line %d}, want {%q, line %d}",
					me.Subject, me.Line, tt.wantSubject, tt.wantLine)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStore_Accessors
// ---------------------------------------------------------------------------

func TestStore_Accessors(t *testing.T) {
	t.Parallel()

	s := NewStore(DefaultTerminalLabel, 10)
	s.Append("preamble dropped\n")
	mustDeclare(t, s, "10", true)
	s.Append("start\n")
	mustDeclare(t, s, "north", false)
	s.Append("n1\n")
	s.Append("n2\n")
	mustDeclare(t, s, DefaultTerminalLabel, true)
	s.Append("end\n")

	if got := s.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if diff := cmp.Diff([]string{"10", "north", DefaultTerminalLabel}, s.Labels()); diff != "" {
		t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"10", DefaultTerminalLabel}, s.Pinned()); diff != "" {
		t.Errorf("Pinned() mismatch (-want +got):\n%s", diff)
	}
	if !s.IsPinned("10") || s.IsPinned("north") || s.IsPinned("missing") {
		t.Error("IsPinned() wrong")
	}
	if !s.HasTerminal() {
		t.Error("HasTerminal() = false, want true")
	}
	if s.FirstPosition() != 10 || s.LastPosition() != 12 || s.LastLabel() != "12" {
		t.Errorf("positions = %d..%d (%q), want 10..12", s.FirstPosition(), s.LastPosition(), s.LastLabel())
	}

	body, ok := s.Body("10")
	if !ok {
		t.Fatal("Body(10) not found")
	}
	if diff := cmp.Diff([]string{"start\n"}, body); diff != "" {
		t.Errorf("Body(10) mismatch (-want +got):\n%s", diff)
	}

	body[0] = "mutated"
	again, _ := s.Body("10")
	if again[0] != "start\n" {
		t.Error("Body() returned the stored slice, not a copy")
	}

	if _, ok := s.Body("missing"); ok {
		t.Error("Body(missing) ok = true")
	}
}

func TestStore_Rename(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T) *Store {
		t.Helper()
		s := NewStore(DefaultTerminalLabel, DefaultFirstPosition)
		mustDeclare(t, s, "1", true)
		s.Append("a\n")
		mustDeclare(t, s, "2", false)
		s.Append("b\n")
		mustDeclare(t, s, DefaultTerminalLabel, true)
		s.Append("c\n")
		return s
	}

	t.Run("keeps order and pinned status", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		if err := s.Rename(DefaultTerminalLabel, "3"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if diff := cmp.Diff([]string{"1", "2", "3"}, s.Labels()); diff != "" {
			t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
		}
		if !s.IsPinned("3") {
			t.Error("renamed paragraph lost its pinned status")
		}
		if diff := cmp.Diff([]string{"1", "3"}, s.Pinned()); diff != "" {
			t.Errorf("Pinned() mismatch (-want +got):\n%s", diff)
		}
		if body, _ := s.Body("3"); len(body) != 1 || body[0] != "c\n" {
			t.Errorf("Body(3) = %q", body)
		}
	})

	t.Run("target already exists", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		err := s.Rename(DefaultTerminalLabel, "2")
		if !errors.Is(err, ErrDuplicateLabel) {
			t.Fatalf("Rename() error = %v, want ErrDuplicateLabel", err)
		}
		if diff := cmp.Diff([]string{"1", "2", DefaultTerminalLabel}, s.Labels()); diff != "" {
			t.Errorf("failed Rename changed labels (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown label", func(t *testing.T) {
		t.Parallel()

		if err := newStore(t).Rename("nope", "9"); err == nil {
			t.Fatal("Rename(nope) expected error")
		}
	})

	t.Run("same label is a no-op", func(t *testing.T) {
		t.Parallel()

		if err := newStore(t).Rename("2", "2"); err != nil {
			t.Fatalf("Rename(2, 2) error = %v", err)
		}
	})
}

func mustDeclare(t *testing.T, s *Store, label string, pinned bool) {
	t.Helper()
	if err := s.Declare(label, pinned, 0); err != nil {
		t.Fatalf("Declare(%q) error = %v", label, err)
	}
}
