package yamlutil_test

// Notes:
// - TestInputSizeLimit changes the package-level MaxInputSize and does not
//   run in parallel.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-gamebook/internal/yamlutil"
)

type testSection struct {
	Title string `yaml:"title"`
	First *int   `yaml:"first"`
}

type testConfig struct {
	HTML  testSection `yaml:"html"`
	Level string      `yaml:"level"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		dest    any
		wantErr error
		wantMsg string
		check   func(t *testing.T, v any)
	}{
		{
			name: "known fields",
			data: "html:\n  title: \"The Cave\"\n  first: 0\nlevel: debug\n",
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.HTML.Title != "The Cave" || cfg.Level != "debug" {
					t.Errorf("decoded = %+v", cfg)
				}
				if cfg.HTML.First == nil || *cfg.HTML.First != 0 {
					t.Errorf("First = %v, want pointer to 0", cfg.HTML.First)
				}
			},
		},
		{
			name: "unicode values",
			data: "html:\n  title: \"★LAST★\"\n",
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*testConfig).HTML.Title; got != "★LAST★" {
					t.Errorf("Title = %q", got)
				}
			},
		},
		{
			name:    "unknown nested field names the field",
			data:    "html:\n  title: x\n  footer: y\n",
			dest:    &testConfig{},
			wantMsg: "footer",
		},
		{
			name:    "syntax error is prefixed",
			data:    "html: [unclosed",
			dest:    &testConfig{},
			wantMsg: "yamlutil:",
		},
		{
			name:    "empty data",
			data:    "",
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    "level: info",
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict([]byte(tt.data), tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantMsg)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })
	yamlutil.MaxInputSize = 32

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte("level: info\n"), &cfg); err != nil {
		t.Fatalf("small input error = %v", err)
	}

	big := "level: " + strings.Repeat("x", 40) + "\n"
	err := yamlutil.UnmarshalStrict([]byte(big), &cfg)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}
}
