package gamebook

import (
	"errors"
	"testing"
)

func TestSyntax_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Syntax)
		wantErr bool
	}{
		{"default is valid", func(*Syntax) {}, false},
		{"custom sigils", func(s *Syntax) { s.MacroSigil = "@"; s.ParagraphSigil = "§" }, false},
		{"empty macro sigil", func(s *Syntax) { s.MacroSigil = "" }, true},
		{"empty terminal label", func(s *Syntax) { s.TerminalLabel = "" }, true},
		{"line break in delimiter", func(s *Syntax) { s.LinkDelimiter = "#\n" }, true},
		{"paragraph sigil prefixes macro sigil", func(s *Syntax) { s.MacroSigil = "●x" }, true},
		{"macro sigil prefixes paragraph sigil", func(s *Syntax) { s.ParagraphSigil = "**" }, true},
		{"macro open equals link delimiter", func(s *Syntax) { s.MacroOpen = "##" }, true},
		{"paragraph sigil prefixes link delimiter", func(s *Syntax) { s.ParagraphSigil = "#" }, true},
		{"paragraph sigil prefixes macro open", func(s *Syntax) { s.ParagraphSigil = "#{"; s.LinkDelimiter = "[[" }, true},
		{"link delimiter prefixes paragraph sigil", func(s *Syntax) { s.ParagraphSigil = "##x" }, true},
		{"macro sigil prefixes link delimiter", func(s *Syntax) { s.MacroSigil = "#" }, true},
		{"macro sigil prefixes macro open", func(s *Syntax) { s.MacroSigil = "#{"; s.LinkDelimiter = "[[" }, true},
		{"sigils apart from link delimiter", func(s *Syntax) { s.ParagraphSigil = "§"; s.LinkDelimiter = "[[" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := DefaultSyntax()
			tt.modify(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSyntax) {
				t.Errorf("Validate() error = %v, want ErrInvalidSyntax", err)
			}
		})
	}
}

func TestSyntax_WithDefaults(t *testing.T) {
	t.Parallel()

	got := Syntax{ParagraphSigil: "§"}.withDefaults()
	want := DefaultSyntax()
	want.ParagraphSigil = "§"
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}
}
