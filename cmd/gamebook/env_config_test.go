package main

// Notes:
// - loadEnvConfig: we test every variable through an injected getenv, so
//   the tests run in parallel without t.Setenv.
// - Unparsable numbers are errors, not silently ignored.
// - applyEnvConfig: we test that set values override the config file and
//   that seed and stable replace each other.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-gamebook/internal/config"
)

func getenvFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	cfg, err := loadEnvConfig(getenvFrom(map[string]string{
		"GAMEBOOK_CONFIG":     "book",
		"GAMEBOOK_FORMAT":     "pdf",
		"GAMEBOOK_SEED":       "42",
		"GAMEBOOK_FIRST":      "0",
		"GAMEBOOK_STYLE":      "print",
		"GAMEBOOK_TITLE":      "The Cave",
		"GAMEBOOK_PAGE_SIZE":  "a4",
		"GAMEBOOK_TIMEOUT":    "2m",
		"GAMEBOOK_OUTPUT_DIR": "/out",
		"GAMEBOOK_WORKERS":    "3",
		"GAMEBOOK_LOG_FILE":   "run.log",
		"GAMEBOOK_LOG_LEVEL":  "debug",
	}))
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigPath", cfg.ConfigPath, "book"},
		{"Format", cfg.Format, "pdf"},
		{"Style", cfg.Style, "print"},
		{"Title", cfg.Title, "The Cave"},
		{"PageSize", cfg.PageSize, "a4"},
		{"Timeout", cfg.Timeout, "2m"},
		{"OutputDir", cfg.OutputDir, "/out"},
		{"LogFile", cfg.LogFile, "run.log"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Seed)
	}
	if cfg.First == nil || *cfg.First != 0 {
		t.Errorf("First = %v, want 0", cfg.First)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Stable {
		t.Error("Stable = true, want false")
	}
}

func TestLoadEnvConfig_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := loadEnvConfig(getenvFrom(nil))
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}
	if cfg.Seed != nil || cfg.First != nil || cfg.Stable || cfg.Workers != 0 {
		t.Errorf("empty environment set values: %+v", cfg)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"seed not a number", "GAMEBOOK_SEED", "abc"},
		{"negative seed", "GAMEBOOK_SEED", "-1"},
		{"stable not a bool", "GAMEBOOK_STABLE", "maybe"},
		{"first not a number", "GAMEBOOK_FIRST", "one"},
		{"workers not a number", "GAMEBOOK_WORKERS", "many"},
		{"negative workers", "GAMEBOOK_WORKERS", "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadEnvConfig(getenvFrom(map[string]string{tt.key: tt.value}))
			if !errors.Is(err, ErrInvalidEnv) {
				t.Fatalf("error = %v, want ErrInvalidEnv", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q does not name %s", err, tt.key)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"GAMEBOOK_SEEED=1",
		"GAMEBOOK_SEED=1",
		"HOME=/root",
		"GAMEBOOK_FORMAT=pdf",
	})

	out := buf.String()
	if !strings.Contains(out, "GAMEBOOK_SEEED") {
		t.Errorf("output %q misses the typo", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("output %q should hold exactly one warning", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override the config", func(t *testing.T) {
		t.Parallel()

		first := 0
		cfg := &config.Config{
			Output: config.OutputConfig{Format: "text", DefaultDir: "/cfg"},
			HTML:   config.HTMLConfig{Title: "Config", Style: "default"},
		}
		applyEnvConfig(&envConfig{
			Format:   "html",
			First:    &first,
			Title:    "Env",
			PageSize: "legal",
			LogLevel: "warn",
		}, cfg)

		if cfg.Output.Format != "html" {
			t.Errorf("Format = %q, want html", cfg.Output.Format)
		}
		if cfg.Output.DefaultDir != "/cfg" {
			t.Errorf("DefaultDir = %q, want the config value", cfg.Output.DefaultDir)
		}
		if cfg.HTML.Title != "Env" || cfg.HTML.Style != "default" {
			t.Errorf("HTML = %+v", cfg.HTML)
		}
		if cfg.Numbering.First == nil || *cfg.Numbering.First != 0 {
			t.Errorf("First = %v, want 0", cfg.Numbering.First)
		}
		if cfg.PDF.PageSize != "legal" || cfg.Log.Level != "warn" {
			t.Errorf("PDF = %+v, Log = %+v", cfg.PDF, cfg.Log)
		}
	})

	t.Run("seed replaces stable", func(t *testing.T) {
		t.Parallel()

		seed := uint64(9)
		cfg := &config.Config{Shuffle: config.ShuffleConfig{Stable: true}}
		applyEnvConfig(&envConfig{Seed: &seed}, cfg)
		if cfg.Shuffle.Stable || cfg.Shuffle.Seed == nil || *cfg.Shuffle.Seed != 9 {
			t.Errorf("Shuffle = %+v, want seed 9", cfg.Shuffle)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("stable replaces seed", func(t *testing.T) {
		t.Parallel()

		seed := uint64(9)
		cfg := &config.Config{Shuffle: config.ShuffleConfig{Seed: &seed}}
		applyEnvConfig(&envConfig{Stable: true}, cfg)
		if !cfg.Shuffle.Stable || cfg.Shuffle.Seed != nil {
			t.Errorf("Shuffle = %+v, want stable", cfg.Shuffle)
		}
	})
}
