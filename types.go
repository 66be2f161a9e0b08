package gamebook

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Format selects the rendering produced by Convert.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat converts a user-facing name to a Format.
// The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q (must be text, html, or pdf)", ErrInvalidFormat, s)
}

// Extension returns the file extension written for f, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatPDF:
		return ".pdf"
	default:
		return ".txt"
	}
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// ValidatePageSize checks that size names a supported page size.
// The empty string is accepted and means letter.
func ValidatePageSize(size string) error {
	if size == "" {
		return nil
	}
	if _, ok := pageDimensions[strings.ToLower(size)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, size)
	}
	return nil
}

// Input is one manuscript to convert.
type Input struct {
	Manuscript string // full manuscript text
	Title      string // document title for HTML/PDF; overrides WithTitle
	Format     Format // empty means text
}

// Result holds the outcome of a successful conversion.
type Result struct {
	Paragraphs  []Paragraph  // resolved paragraphs in ascending position
	Diagnostics []Diagnostic // warnings produced by the run
	Seed        uint64       // seed of the shuffle; 0 when WithRandomSource was used
	Fingerprint string       // BLAKE3 digest of the manuscript
	Text        []byte       // set for FormatText
	HTML        []byte       // set for FormatHTML and FormatPDF
	PDF         []byte       // set for FormatPDF
}

// Output returns the bytes of the requested format.
func (r *Result) Output(f Format) []byte {
	switch f {
	case FormatHTML:
		return r.HTML
	case FormatPDF:
		return r.PDF
	default:
		return r.Text
	}
}

// Option configures a Converter.
type Option func(*Converter)

// seedMode tells how each run picks its random source.
type seedMode int

const (
	seedRandom seedMode = iota
	seedFixed
	seedStable
	seedSource
)

// converterConfig holds Converter configuration.
type converterConfig struct {
	syntax     Syntax
	first      int
	seedMode   seedMode
	seed       uint64
	source     RandomSource
	sink       Sink
	logger     *zap.Logger
	styleInput string
	assetPath  string
	title      string
	pageSize   string
	timeout    time.Duration
}

// Default time limit of one conversion.
const defaultTimeout = 30 * time.Second

// WithSyntax sets the manuscript sigils. Empty fields keep their defaults.
func WithSyntax(s Syntax) Option {
	return func(c *Converter) {
		c.cfg.syntax = s.withDefaults()
	}
}

// WithFirstPosition sets the number given to the first paragraph.
func WithFirstPosition(n int) Option {
	return func(c *Converter) {
		c.cfg.first = n
	}
}

// WithRandomSource makes every run draw from src. src is consumed
// sequentially, so the Converter must not then run conversions concurrently.
func WithRandomSource(src RandomSource) Option {
	return func(c *Converter) {
		c.cfg.seedMode = seedSource
		c.cfg.source = src
	}
}

// WithSeed makes every run shuffle from a fresh source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *Converter) {
		c.cfg.seedMode = seedFixed
		c.cfg.seed = seed
	}
}

// WithStableSeed derives each run's seed from the manuscript content, so the
// same manuscript always gets the same numbering.
func WithStableSeed() Option {
	return func(c *Converter) {
		c.cfg.seedMode = seedStable
	}
}

// WithDiagnostics sets a sink that receives every diagnostic of every run,
// in addition to the warnings returned in Result.
func WithDiagnostics(sink Sink) Option {
	return func(c *Converter) {
		if sink != nil {
			c.cfg.sink = sink
		}
	}
}

// WithLogger sets the logger for stage transitions and diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithStyle sets the stylesheet for HTML and PDF output.
// Accepts a style name ("default", "print"), a file path ("./custom.css"),
// or raw CSS content ("body { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory searched for styles before the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTitle sets the default document title for HTML and PDF output.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithPageSize sets the PDF page size: letter, a4 or legal.
func WithPageSize(size string) Option {
	return func(c *Converter) {
		c.cfg.pageSize = strings.ToLower(size)
	}
}

// WithTimeout limits how long one conversion may run, PDF rendering
// included. It also stops a macro that keeps expanding into itself.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		if d > 0 {
			c.cfg.timeout = d
		}
	}
}
