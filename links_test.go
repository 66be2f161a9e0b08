package gamebook

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// lookupOf resolves labels from a fixed table.
func lookupOf(table map[string]int) func(string) (int, bool) {
	return func(label string) (int, bool) {
		pos, ok := table[label]
		return pos, ok
	}
}

func TestReferenceResolver_Resolve(t *testing.T) {
	t.Parallel()

	r := NewReferenceResolver(DefaultSyntax())
	table := map[string]int{"north": 7, "south": 3, "★LAST★": 12, "1": 1}

	tests := []struct {
		name      string
		body      []string
		want      []string
		wantLinks []int
	}{
		{
			name:      "single link",
			body:      []string{"Go north: ##north##.\n"},
			want:      []string{"Go north: 7.\n"},
			wantLinks: []int{7},
		},
		{
			name:      "two links on one line resolve independently",
			body:      []string{"North ##north##, south ##south##.\n"},
			want:      []string{"North 7, south 3.\n"},
			wantLinks: []int{7, 3},
		},
		{
			name:      "links across lines keep order",
			body:      []string{"##south##\n", "then ##★LAST★##\n"},
			want:      []string{"3\n", "then 12\n"},
			wantLinks: []int{3, 12},
		},
		{
			name:      "no links",
			body:      []string{"The end.\n"},
			want:      []string{"The end.\n"},
			wantLinks: nil,
		},
		{
			name:      "single hash is not a delimiter",
			body:      []string{"#north# and #{{HERO}}\n"},
			want:      []string{"#north# and #{{HERO}}\n"},
			wantLinks: nil,
		},
		{
			name:      "numeric label",
			body:      []string{"Back to ##1##.\r\n"},
			want:      []string{"Back to 1.\r\n"},
			wantLinks: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := append([]string(nil), tt.body...)
			got, links, err := r.Resolve(input, lookupOf(table))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() body mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantLinks, links); diff != "" {
				t.Errorf("Resolve() links mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.body, input); diff != "" {
				t.Errorf("Resolve() modified its input (-want +got):\n%s", diff)
			}
			if n := r.CountLinks(got); n != 0 {
				t.Errorf("CountLinks(resolved) = %d, want 0", n)
			}
		})
	}
}

func TestReferenceResolver_Unresolved(t *testing.T) {
	t.Parallel()

	r := NewReferenceResolver(DefaultSyntax())
	_, _, err := r.Resolve([]string{"ok ##north##\n", "bad ##nowhere##\n"}, lookupOf(map[string]int{"north": 2}))

	if !errors.Is(err, ErrUnresolvedLink) {
		t.Fatalf("Resolve() error = %v, want ErrUnresolvedLink", err)
	}
	var me *ManuscriptError
	if !errors.As(err, &me) || me.Subject != "nowhere" {
		t.Errorf("Resolve() error = %v, want subject %q", err, "nowhere")
	}
}

func TestReferenceResolver_CountLinks(t *testing.T) {
	t.Parallel()

	r := NewReferenceResolver(DefaultSyntax())
	body := []string{"##a## ##b##\n", "none\n", "##c##\n"}
	if got := r.CountLinks(body); got != 3 {
		t.Errorf("CountLinks() = %d, want 3", got)
	}
}

func TestReferenceResolver_CustomDelimiter(t *testing.T) {
	t.Parallel()

	r := NewReferenceResolver(Syntax{LinkDelimiter: "[["})
	got, _, err := r.Resolve([]string{"to [[x[[ now\n"}, lookupOf(map[string]int{"x": 5}))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0] != "to 5 now\n" {
		t.Errorf("Resolve() = %q, want %q", got[0], "to 5 now\n")
	}
}
