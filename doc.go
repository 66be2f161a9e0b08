// Package gamebook numbers the paragraphs of a gamebook manuscript.
//
// A manuscript is plain text made of labeled paragraphs that refer to each
// other by label and share named text macros:
//
//	*HERO:Ariane
//	●●1
//	#{{HERO}} wakes up. Go north (##north##) or south (##south##).
//	●north
//	A wall. Back to ##1##.
//	●south
//	A door. Open it: ##★LAST★##.
//	●●★LAST★
//	The end.
//
// Conversion shuffles the ordinary paragraphs onto random positions, keeps
// pinned paragraphs (●●) on the position named by their label, gives the
// ★LAST★ paragraph the last position, rewrites every ##label## to the
// number it landed on and expands every #{{NAME}} placeholder.
//
// # Quick Start
//
//	conv, err := gamebook.NewConverter(gamebook.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, gamebook.Input{Manuscript: text})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Text)
//
// Errors caused by the manuscript unwrap to one of ErrDuplicateLabel,
// ErrEmptyBody, ErrPinningOrder, ErrNonContiguousLabeling, ErrUnresolvedLink,
// ErrUndefinedMacro or ErrEmptyManuscript; errors.As with *ManuscriptError
// gives the label and input line. Warnings (a missing ★LAST★ paragraph, a
// paragraph without links) do not stop the run and come back in
// Result.Diagnostics.
//
// # Randomness
//
// By default each run draws a fresh seed, reported in Result.Seed. WithSeed
// reproduces a numbering, WithStableSeed derives the seed from the
// manuscript itself, and WithRandomSource injects any source.
//
// # Output Formats
//
// Input.Format selects FormatText (the manuscript layout, one ●N marker per
// paragraph), FormatHTML (one section per paragraph, links turned into
// anchors, bodies rendered as Markdown) or FormatPDF (the HTML printed by
// headless Chrome through go-rod).
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). Set ROD_NO_SANDBOX=1 in
// containers and CI, and ROD_BROWSER_BIN to use a custom binary.
package gamebook
