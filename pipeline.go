package gamebook

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-gamebook/internal/pipeline"
)

// Stage is a step of a run. Stages only move forward.
type Stage int

const (
	StageNew Stage = iota
	StageParsed
	StageTerminalResolved
	StageShuffled
	StageLinksResolved
	StageMacrosExpanded
	StageEmitted
)

var stageNames = [...]string{
	StageNew:              "new",
	StageParsed:           "parsed",
	StageTerminalResolved: "terminal-resolved",
	StageShuffled:         "shuffled",
	StageLinksResolved:    "links-resolved",
	StageMacrosExpanded:   "macros-expanded",
	StageEmitted:          "emitted",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

// Paragraph is one numbered paragraph of the resolved gamebook.
type Paragraph struct {
	Position int
	Label    string   // label in the manuscript
	Body     []string // final text, line terminators kept
	Links    []int    // positions linked to, in order of appearance

	marked []string // Body with link placeholders, for HTML
}

// run is the single-shot state of one manuscript conversion.
type run struct {
	syntax     Syntax
	classifier *Classifier
	resolver   *ReferenceResolver
	expander   *MacroExpander
	shuffler   *Shuffler
	sink       Sink
	logger     *zap.Logger

	stage   Stage
	store   *Store
	macros  MacroTable
	renames map[string]string
	mapping *Mapping
	links   map[string][]int
	output  []Paragraph
}

func newRun(syntax Syntax, first int, rng RandomSource, sink Sink, logger *zap.Logger) *run {
	return &run{
		syntax:     syntax,
		classifier: NewClassifier(syntax),
		resolver:   NewReferenceResolver(syntax).withFormat(pipeline.MarkLink),
		expander:   NewMacroExpander(syntax),
		shuffler:   NewShuffler(rng),
		sink:       sink,
		logger:     logger,
		store:      NewStore(syntax.TerminalLabel, first),
		macros:     make(MacroTable),
		renames:    make(map[string]string),
		links:      make(map[string][]int),
	}
}

// execute moves the run through every stage. The first fatal error stops
// it; nothing is returned then.
func (r *run) execute(ctx context.Context, lines []string) ([]Paragraph, error) {
	steps := []struct {
		next Stage
		fn   func(context.Context) error
	}{
		{StageParsed, func(context.Context) error { return r.parse(lines) }},
		{StageTerminalResolved, r.resolveTerminal},
		{StageShuffled, r.shuffle},
		{StageLinksResolved, r.resolveLinks},
		{StageMacrosExpanded, r.expandMacros},
		{StageEmitted, r.emit},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("stage start", zap.Stringer("stage", step.next))
		if err := step.fn(ctx); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				r.fatal(err)
			}
			return nil, err
		}
		r.stage = step.next
		r.logger.Debug("stage done", zap.Stringer("stage", step.next))
	}
	return r.output, nil
}

func (r *run) parse(lines []string) error {
	for i, line := range lines {
		switch l := r.classifier.Classify(line).(type) {
		case MacroDefinition:
			r.logger.Debug("macro defined", zap.String("name", l.Name), zap.String("text", l.Text))
			r.macros.Define(l.Name, l.Text)
		case ParagraphStart:
			r.logger.Debug("paragraph declared", zap.String("label", l.Label), zap.Bool("pinned", l.Pinned))
			if err := r.store.Declare(l.Label, l.Pinned, i+1); err != nil {
				return err
			}
		case BodyLine:
			r.store.Append(l.Text)
		}
	}
	if r.store.Count() == 0 {
		return ErrEmptyManuscript
	}
	r.logger.Debug("manuscript parsed",
		zap.Int("paragraphs", r.store.Count()),
		zap.Int("macros", len(r.macros)))
	return nil
}

func (r *run) resolveTerminal(context.Context) error {
	if !r.store.HasTerminal() {
		r.warn(Diagnostic{
			Kind:    KindMissingTerminalLabel,
			Subject: r.syntax.TerminalLabel,
			Message: "terminal paragraph label not found",
		})
		return nil
	}
	last := r.store.LastLabel()
	if err := r.store.Rename(r.syntax.TerminalLabel, last); err != nil {
		return err
	}
	r.renames[r.syntax.TerminalLabel] = last
	r.logger.Debug("terminal label resolved", zap.String("position", last))
	return nil
}

func (r *run) shuffle(context.Context) error {
	m, err := r.shuffler.Shuffle(r.store)
	if err != nil {
		return err
	}
	r.mapping = m
	return nil
}

// lookup resolves a link label: renamed labels first, then the shuffle.
func (r *run) lookup(label string) (int, bool) {
	if renamed, ok := r.renames[label]; ok {
		pos, err := strconv.Atoi(renamed)
		return pos, err == nil
	}
	return r.mapping.Position(label)
}

func (r *run) resolveLinks(context.Context) error {
	for _, label := range r.store.Labels() {
		body, _ := r.store.Body(label)
		out, links, err := r.resolver.Resolve(body, r.lookup)
		if err != nil {
			return r.atParagraph(err, label)
		}
		if len(links) == 0 {
			r.warn(Diagnostic{
				Kind:    KindMissingLink,
				Subject: r.displayLabel(label),
				Line:    r.store.line(label),
				Message: "no link found in paragraph body",
			})
		}
		r.store.setBody(label, out)
		r.links[label] = links
	}
	return nil
}

func (r *run) expandMacros(ctx context.Context) error {
	for _, label := range r.store.Labels() {
		body, _ := r.store.Body(label)
		out, err := r.expander.Expand(ctx, body, r.macros)
		if err != nil {
			return r.atParagraph(err, label)
		}
		r.store.setBody(label, out)
	}
	return nil
}

func (r *run) emit(context.Context) error {
	out := make([]Paragraph, 0, r.mapping.Len())
	for pos := r.mapping.First(); pos <= r.mapping.Last(); pos++ {
		label, ok := r.mapping.Label(pos)
		if !ok {
			return fmt.Errorf("no paragraph at position %d", pos)
		}
		marked, _ := r.store.Body(label)
		body := make([]string, len(marked))
		for i, line := range marked {
			body[i] = pipeline.StripLinkMarkers(line)
		}
		out = append(out, Paragraph{
			Position: pos,
			Label:    r.displayLabel(label),
			Body:     body,
			Links:    r.links[label],
			marked:   marked,
		})
	}
	r.output = out
	return nil
}

// displayLabel maps a renamed label back to the one written in the manuscript.
func (r *run) displayLabel(label string) string {
	for old, renamed := range r.renames {
		if renamed == label {
			return old
		}
	}
	return label
}

// atParagraph fills in the declaring line of label when err has none.
func (r *run) atParagraph(err error, label string) error {
	var me *ManuscriptError
	if errors.As(err, &me) && me.Line == 0 {
		me.Line = r.store.line(label)
	}
	return err
}

func (r *run) warn(d Diagnostic) {
	d.Severity = SeverityWarning
	r.logger.Warn(d.Message, zap.String("kind", d.Kind), zap.String("subject", d.Subject), zap.Int("line", d.Line))
	r.sink.Report(d)
}

func (r *run) fatal(err error) {
	d := fatalDiagnostic(err)
	r.logger.Error(d.Message,
		zap.String("kind", d.Kind),
		zap.String("subject", d.Subject),
		zap.Int("line", d.Line),
		zap.Stringer("stage", r.stage+1))
	r.sink.Report(d)
}

// SplitLines splits text into lines that keep their terminators, the form
// the pipeline consumes. A trailing empty piece is dropped.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
