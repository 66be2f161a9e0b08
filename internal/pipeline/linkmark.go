package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Link placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged (no WithUnsafe needed) and are turned
// into anchors after HTML generation.
const (
	LinkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	LinkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

var markedLink = regexp.MustCompile(LinkStartPlaceholder + `([0-9]+)` + LinkEndPlaceholder)

// MarkLink writes pos wrapped in link placeholders.
func MarkLink(pos int) string {
	return LinkStartPlaceholder + strconv.Itoa(pos) + LinkEndPlaceholder
}

// StripLinkMarkers unwraps marked numbers, leaving the bare numbers. Other
// placeholder characters are kept.
func StripLinkMarkers(content string) string {
	if !strings.Contains(content, LinkStartPlaceholder) {
		return content
	}
	return markedLink.ReplaceAllString(content, "$1")
}

// ConvertLinkPlaceholders turns marked numbers into anchors pointing at the
// section of that paragraph.
func ConvertLinkPlaceholders(content string) string {
	return markedLink.ReplaceAllString(content, `<a class="turn-to" href="#`+SectionIDPrefix+`$1">$1</a>`)
}
