// Package pipeline renders resolved gamebook paragraphs to HTML.
//
// This package handles the presentation stages that run after numbering:
//   - Link markers that survive Markdown conversion and become anchors
//   - Paragraph body Markdown to HTML conversion via Goldmark
//   - Assembly of numbered sections into one HTML document
//   - CSS injection into that document
//
// PDF generation is handled separately by the root gamebook package using
// headless Chrome (go-rod).
package pipeline
