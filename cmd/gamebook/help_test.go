package main

// Notes:
// - printUsage/printConvertUsage: we test that required content is present,
//   not the exact layout.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range []string{"Usage: gamebook", "Commands:", "convert", "version", "help"} {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

func TestPrintConvertUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printConvertUsage(&buf)
	output := buf.String()

	required := []string{
		"Usage: gamebook convert",
		"Input/Output:", "Numbering:", "Rendering:", "Logging:", "Output Control:",
		"--output", "--format", "--workers", "--seed", "--stable", "--first",
		"--title", "--style", "--asset-path", "--page-size", "--timeout",
		"--log-file", "--log-level", "--quiet", "--verbose",
		"GAMEBOOK_SEED", "★LAST★",
	}
	for _, s := range required {
		if !strings.Contains(output, s) {
			t.Errorf("printConvertUsage output should contain %q", s)
		}
	}
}

func TestPrintConvertUsage_ListsEveryEnvVar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printConvertUsage(&buf)
	for name := range knownEnvVars {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("help does not list %s", name)
		}
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"no topic", nil, "Commands:", nil},
		{"convert", []string{"convert"}, "Usage: gamebook convert", nil},
		{"version", []string{"version"}, "Usage: gamebook version", nil},
		{"help", []string{"help"}, "Commands:", nil},
		{"unknown", []string{"shuffle"}, "", ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("", nil, nil)
			err := runHelp(tt.args, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runHelp() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want %q", env.stdout, tt.want)
			}
		})
	}
}
