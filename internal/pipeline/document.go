package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// SectionIDPrefix prefixes the id attribute of every paragraph section.
const SectionIDPrefix = "p-"

// ErrDocumentRender indicates the document template failed to execute.
var ErrDocumentRender = errors.New("document template rendering failed")

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{- if .Title}}
<h1 class="gamebook-title">{{.Title}}</h1>
{{- end}}
{{- range .Sections}}
<section class="paragraph" id="{{$.IDPrefix}}{{.Number}}">
<h2 class="paragraph-number">{{.Number}}</h2>
{{.Body}}</section>
{{- end}}
</body>
</html>
`

// SectionData is one numbered paragraph, body already converted to HTML.
type SectionData struct {
	Number int
	Body   template.HTML
}

// DocumentData holds everything rendered into the final HTML page.
type DocumentData struct {
	Title    string
	Sections []SectionData
	IDPrefix string
}

// Paragraph is the input of the document assembler: a position and its body
// text, links still wrapped in placeholders.
type Paragraph struct {
	Number int
	Body   string
}

// DocumentAssembler converts paragraphs and lays them out as one HTML page.
type DocumentAssembler struct {
	converter HTMLConverter
	tmpl      *template.Template
}

// NewDocumentAssembler creates an assembler that converts bodies with conv.
func NewDocumentAssembler(conv HTMLConverter) *DocumentAssembler {
	return &DocumentAssembler{
		converter: conv,
		tmpl:      template.Must(template.New("document").Parse(documentTemplate)),
	}
}

// Assemble renders every paragraph and returns the complete HTML document
// with link placeholders turned into anchors.
func (a *DocumentAssembler) Assemble(ctx context.Context, title string, paragraphs []Paragraph) (string, error) {
	data := DocumentData{
		Title:    title,
		Sections: make([]SectionData, 0, len(paragraphs)),
		IDPrefix: SectionIDPrefix,
	}
	for _, p := range paragraphs {
		body, err := a.converter.ToHTML(ctx, p.Body)
		if err != nil {
			return "", fmt.Errorf("paragraph %d: %w", p.Number, err)
		}
		// #nosec G203 -- goldmark output without WithUnsafe escapes raw HTML
		data.Sections = append(data.Sections, SectionData{Number: p.Number, Body: template.HTML(body)})
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return ConvertLinkPlaceholders(buf.String()), nil
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
