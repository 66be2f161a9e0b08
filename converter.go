package gamebook

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-gamebook/internal/fileutil"
	"github.com/alnah/go-gamebook/internal/fingerprint"
	"github.com/alnah/go-gamebook/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter turns manuscripts into numbered gamebooks.
// Create with NewConverter, use Convert for conversion, and Close when done.
//
// A Converter may run conversions concurrently unless WithRandomSource was
// given: each run then draws from the same source.
type Converter struct {
	cfg           converterConfig
	assetLoader   AssetLoader
	resolvedStyle string
	assembler     *pipeline.DocumentAssembler
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Returns an error when an option is invalid or the style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			syntax:  DefaultSyntax(),
			first:   DefaultFirstPosition,
			sink:    discardSink{},
			logger:  zap.NewNop(),
			timeout: defaultTimeout,
		},
		assembler:   pipeline.NewDocumentAssembler(pipeline.NewGoldmarkConverter()),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.syntax.Validate(); err != nil {
		return nil, err
	}
	if c.cfg.first < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidFirstPosition, c.cfg.first)
	}
	if err := ValidatePageSize(c.cfg.pageSize); err != nil {
		return nil, err
	}
	if c.cfg.seedMode == seedSource && c.cfg.source == nil {
		c.cfg.seedMode = seedRandom
	}

	loader, err := NewAssetLoader(c.cfg.assetPath)
	if err != nil {
		return nil, err
	}
	c.assetLoader = loader

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Resolve runs the relabeling engine on lines (each keeping its line
// terminator) and returns the paragraphs in ascending position order.
// Warnings go to the sink given with WithDiagnostics.
func (c *Converter) Resolve(ctx context.Context, lines []string) ([]Paragraph, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	rng, _ := c.randomSource(strings.Join(lines, ""))
	r := newRun(c.cfg.syntax, c.cfg.first, rng, c.cfg.sink, c.cfg.logger)
	return r.execute(ctx, lines)
}

// Convert resolves input.Manuscript and renders it in input.Format.
// The context is used for cancellation; the WithTimeout limit bounds the
// whole conversion.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	format, err := ParseFormat(string(input.Format))
	if err != nil {
		return nil, err
	}

	rng, seed := c.randomSource(input.Manuscript)
	collected := &Diagnostics{}
	sink := teeSink{collected, c.cfg.sink}

	logger := c.cfg.logger.With(zap.Uint64("seed", seed))
	r := newRun(c.cfg.syntax, c.cfg.first, rng, sink, logger)
	paragraphs, err := r.execute(ctx, SplitLines(input.Manuscript))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Paragraphs:  paragraphs,
		Diagnostics: collected.Warnings(),
		Seed:        seed,
		Fingerprint: fingerprint.Sum(input.Manuscript),
	}

	if format == FormatText {
		res.Text = FormatParagraphs(c.cfg.syntax.ParagraphSigil, paragraphs)
		return res, nil
	}

	title := input.Title
	if title == "" {
		title = c.cfg.title
	}
	htmlContent, err := c.renderHTML(ctx, title, paragraphs)
	if err != nil {
		return nil, err
	}
	res.HTML = []byte(htmlContent)
	if format == FormatHTML {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{PageSize: c.cfg.pageSize})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// withTimeout bounds ctx by the converter timeout. A shorter deadline
// already on ctx wins.
func (c *Converter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.timeout)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// randomSource picks the source of one run and the seed it reports.
func (c *Converter) randomSource(manuscript string) (RandomSource, uint64) {
	var seed uint64
	switch c.cfg.seedMode {
	case seedSource:
		return c.cfg.source, 0
	case seedFixed:
		seed = c.cfg.seed
	case seedStable:
		seed = fingerprint.Seed(manuscript)
	default:
		seed = rand.Uint64()
	}
	return NewSeededSource(seed), seed
}

// renderHTML lays out paragraphs as one HTML page with the style injected.
func (c *Converter) renderHTML(ctx context.Context, title string, paragraphs []Paragraph) (string, error) {
	sections := make([]pipeline.Paragraph, len(paragraphs))
	for i, p := range paragraphs {
		sections[i] = pipeline.Paragraph{Number: p.Position, Body: strings.Join(p.marked, "")}
	}

	htmlContent, err := c.assembler.Assemble(ctx, title, sections)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.resolvedStyle)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return htmlContent, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. No style input means the embedded default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.resolvedStyle = css
	return nil
}

// teeSink forwards every diagnostic to each sink in turn.
type teeSink []Sink

func (t teeSink) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}
