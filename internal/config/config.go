package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-gamebook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxSigilLength    = 8    // "●", "*", "##"
	MaxLabelLength    = 64   // terminal label such as "★LAST★"
	MaxTitleLength    = 200  // HTML/PDF document title
	MaxStyleLength    = 2048 // style name or path
	MaxPathLength     = 4096 // output dir, log file
	MaxPageSizeLength = 10   // "letter", "a4", "legal"
)

// ConfigDirName is the directory searched under the user config directory.
const ConfigDirName = "go-gamebook"

// Config holds all configuration for manuscript conversion.
type Config struct {
	Syntax    SyntaxConfig    `yaml:"syntax"`
	Numbering NumberingConfig `yaml:"numbering"`
	Shuffle   ShuffleConfig   `yaml:"shuffle"`
	Output    OutputConfig    `yaml:"output"`
	HTML      HTMLConfig      `yaml:"html"`
	PDF       PDFConfig       `yaml:"pdf"`
	Assets    AssetsConfig    `yaml:"assets"`
	Log       LogConfig       `yaml:"log"`
}

// SyntaxConfig overrides manuscript markers. Empty fields keep the defaults.
type SyntaxConfig struct {
	MacroSigil     string `yaml:"macroSigil"`
	ParagraphSigil string `yaml:"paragraphSigil"`
	TerminalLabel  string `yaml:"terminalLabel"`
	LinkDelimiter  string `yaml:"linkDelimiter"`
	MacroOpen      string `yaml:"macroOpen"`
	MacroClose     string `yaml:"macroClose"`
}

// NumberingConfig defines paragraph numbering.
type NumberingConfig struct {
	First *int `yaml:"first"` // nil = 1
}

// ShuffleConfig selects how the shuffle is seeded.
type ShuffleConfig struct {
	Seed   *uint64 `yaml:"seed"`   // fixed seed; nil = random
	Stable bool    `yaml:"stable"` // derive the seed from the manuscript
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // "text", "html", "pdf" (default: "text")
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// HTMLConfig defines HTML rendering options, also used for PDF.
type HTMLConfig struct {
	Title string `yaml:"title"`
	Style string `yaml:"style"` // style name, CSS file path, or raw CSS
}

// PDFConfig defines PDF page settings.
type PDFConfig struct {
	PageSize string `yaml:"pageSize"` // "letter", "a4", "legal" (default: "letter")
	Timeout  string `yaml:"timeout"`  // conversion time limit, e.g. "45s" (default: 30s)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines the run log.
type LogConfig struct {
	File  string `yaml:"file"`  // empty = no log
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (default: "info")
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Syntax markers
	sigils := []struct {
		name  string
		value string
	}{
		{"syntax.macroSigil", c.Syntax.MacroSigil},
		{"syntax.paragraphSigil", c.Syntax.ParagraphSigil},
		{"syntax.linkDelimiter", c.Syntax.LinkDelimiter},
		{"syntax.macroOpen", c.Syntax.MacroOpen},
		{"syntax.macroClose", c.Syntax.MacroClose},
	}
	for _, s := range sigils {
		if err := validateFieldLength(s.name, s.value, MaxSigilLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("syntax.terminalLabel", c.Syntax.TerminalLabel, MaxLabelLength); err != nil {
		return err
	}
	if err := c.Syntax.validateOverlap(); err != nil {
		return err
	}

	// Numbering and shuffle
	if c.Numbering.First != nil && *c.Numbering.First < 0 {
		return fmt.Errorf("%w: numbering.first must be >= 0, got %d", ErrInvalidValue, *c.Numbering.First)
	}
	if c.Shuffle.Seed != nil && c.Shuffle.Stable {
		return fmt.Errorf("%w: shuffle.seed and shuffle.stable are mutually exclusive", ErrInvalidValue)
	}

	// Output, HTML and PDF fields
	if err := validateEnum("output.format", c.Output.Format, "text", "txt", "html", "htm", "pdf"); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("html.title", c.HTML.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("html.style", c.HTML.Style, MaxStyleLength); err != nil {
		return err
	}

	if err := validateFieldLength("pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateEnum("pdf.pageSize", c.PDF.PageSize, "letter", "a4", "legal"); err != nil {
		return err
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}
	return validateEnum("log.level", c.Log.Level, "debug", "info", "warn", "error")
}

// validateOverlap rejects line-start markers where one begins with the
// other. Only markers set here are compared; the converter checks the
// result once defaults are filled in.
func (s SyntaxConfig) validateOverlap() error {
	pairs := [][2]struct{ name, value string }{
		{{"syntax.macroSigil", s.MacroSigil}, {"syntax.paragraphSigil", s.ParagraphSigil}},
		{{"syntax.paragraphSigil", s.ParagraphSigil}, {"syntax.linkDelimiter", s.LinkDelimiter}},
		{{"syntax.paragraphSigil", s.ParagraphSigil}, {"syntax.macroOpen", s.MacroOpen}},
		{{"syntax.macroSigil", s.MacroSigil}, {"syntax.linkDelimiter", s.LinkDelimiter}},
		{{"syntax.macroSigil", s.MacroSigil}, {"syntax.macroOpen", s.MacroOpen}},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if a.value == "" || b.value == "" {
			continue
		}
		if strings.HasPrefix(a.value, b.value) || strings.HasPrefix(b.value, a.value) {
			return fmt.Errorf("%w: %s %q and %s %q overlap", ErrInvalidValue, a.name, a.value, b.name, b.value)
		}
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q: %v", ErrInvalidValue, p.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidValue, p.Timeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	v := strings.ToLower(value)
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns a configuration where every field keeps the
// converter default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns the files tried for a config name, in order: the
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	// Current directory first (both extensions)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	// Then the user config directory (both extensions)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
