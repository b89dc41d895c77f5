// Package report renders a compilation as Markdown, HTML and XLSX.
package report

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/charterreview/internal/compilation"
	"github.com/dgallion1/charterreview/internal/extract"
)

// Title is the report's top-level heading.
const Title = "Charter Application Review Comments Compilation"

// Markdown renders res. Sections appear in the order res.Sections returns
// them; comments within a subsection are sorted by reviewer, keeping merge
// order for equal names.
func Markdown(res *compilation.Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", Title)
	if res.School != "" {
		fmt.Fprintf(&b, "## School Name: %s\n\n", res.School)
	}
	for _, sec := range res.Sections() {
		fmt.Fprintf(&b, "## %s\n\n", sec.Key.Title)
		for _, kind := range extract.Kinds {
			comments := sortedByReviewer(sec.Comments(kind))
			if len(comments) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", kind.Heading())
			for _, c := range comments {
				b.WriteString(bullet(c))
			}
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}

func sortedByReviewer(cs []extract.Comment) []extract.Comment {
	out := append([]extract.Comment(nil), cs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Reviewer < out[j].Reviewer })
	return out
}

// bullet renders one list item. Continuation lines are indented so they stay
// inside the item.
func bullet(c extract.Comment) string {
	lines := strings.Split(c.Text, "\n")
	var b strings.Builder
	fmt.Fprintf(&b, "- %s: %s\n", c.Reviewer, lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(&b, "  %s\n", l)
	}
	return b.String()
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DefaultOutputName returns "<School>_CompiledReviews.md" with the school
// name made safe for a file name.
func DefaultOutputName(school string) string {
	stem := strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(school), "_"), "_.")
	if stem == "" {
		stem = "Charter"
	}
	return stem + "_CompiledReviews.md"
}
