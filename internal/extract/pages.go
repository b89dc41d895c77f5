package extract

import (
	"regexp"
	"strings"
)

var (
	pageMention   = regexp.MustCompile(`(?i)\b(?:page|p\. |p\.|pg\.)\s*(\d+)(?:\s*-\s*(\d+))?\b`)
	bracketedPage = regexp.MustCompile(`\[p\. (\d+(?:-\d+)?)\]`)
)

// FormatPageReferences rewrites page mentions such as "page 12", "pg.3" or
// "p. 4 - 6" to "[p. 12]", "[p. 3]" and "[p. 4-6]". Mentions already inside
// brackets keep their brackets, so the function is idempotent.
func FormatPageReferences(text string) string {
	matches := pageMention.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		ref := "p. " + text[m[2]:m[3]]
		if m[4] >= 0 {
			ref += "-" + text[m[4]:m[5]]
		}
		b.WriteString(text[last:start])
		if start > 0 && text[start-1] == '[' && end < len(text) && text[end] == ']' {
			b.WriteString(ref)
		} else {
			b.WriteString("[" + ref + "]")
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// PageReference returns the first bracketed page reference in text, such as
// "p. 12", or "" when there is none.
func PageReference(text string) string {
	if m := bracketedPage.FindStringSubmatch(text); m != nil {
		return "p. " + m[1]
	}
	return ""
}
