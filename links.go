package gamebook

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// ReferenceResolver rewrites link tokens to final paragraph numbers.
type ReferenceResolver struct {
	pattern *regexp.Regexp
	format  func(pos int) string
}

// NewReferenceResolver builds a resolver for the link delimiter of s.
// Resolved positions are written as bare decimal numerals.
func NewReferenceResolver(s Syntax) *ReferenceResolver {
	s = s.withDefaults()
	d := regexp.QuoteMeta(s.LinkDelimiter)
	r, _ := utf8.DecodeRuneInString(s.LinkDelimiter)
	stop := regexp.QuoteMeta(string(r))
	return &ReferenceResolver{
		pattern: regexp.MustCompile(d + `([^` + stop + `\r\n]+)` + d),
		format:  strconv.Itoa,
	}
}

// withFormat returns a copy of r that writes positions through format.
func (r *ReferenceResolver) withFormat(format func(pos int) string) *ReferenceResolver {
	c := *r
	c.format = format
	return &c
}

// Resolve returns a rewritten copy of body where every link token is
// replaced by the position lookup gives for its label, and the positions
// linked to, in order of appearance. body itself is left untouched.
//
// The first label lookup cannot place fails the whole body with
// ErrUnresolvedLink.
func (r *ReferenceResolver) Resolve(body []string, lookup func(label string) (int, bool)) ([]string, []int, error) {
	out := make([]string, len(body))
	var links []int
	for i, line := range body {
		var missing string
		out[i] = r.pattern.ReplaceAllStringFunc(line, func(tok string) string {
			if missing != "" {
				return tok
			}
			label := r.pattern.FindStringSubmatch(tok)[1]
			pos, ok := lookup(label)
			if !ok {
				missing = label
				return tok
			}
			links = append(links, pos)
			return r.format(pos)
		})
		if missing != "" {
			return nil, nil, manuscriptErr(ErrUnresolvedLink, missing, 0)
		}
	}
	return out, links, nil
}

// CountLinks returns the number of link tokens in body.
func (r *ReferenceResolver) CountLinks(body []string) int {
	n := 0
	for _, line := range body {
		n += len(r.pattern.FindAllStringIndex(line, -1))
	}
	return n
}
