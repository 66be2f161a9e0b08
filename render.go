package gamebook

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// WriteParagraphs writes paragraphs in the manuscript layout: a marker line
// made of sigil and the position, then the body. A body that does not end
// with a line break gets one.
func WriteParagraphs(w io.Writer, sigil string, paragraphs []Paragraph) error {
	bw := bufio.NewWriter(w)
	for _, p := range paragraphs {
		if _, err := bw.WriteString(sigil + strconv.Itoa(p.Position) + "\n"); err != nil {
			return err
		}
		body := strings.Join(p.Body, "")
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		if _, err := bw.WriteString(body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatParagraphs returns what WriteParagraphs would write.
func FormatParagraphs(sigil string, paragraphs []Paragraph) []byte {
	var buf bytes.Buffer
	_ = WriteParagraphs(&buf, sigil, paragraphs) // bytes.Buffer never fails
	return buf.Bytes()
}
