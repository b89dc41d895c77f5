// Package segment partitions a document's line stream into per-section buffers.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/charterreview/internal/boilerplate"
	"github.com/dgallion1/charterreview/internal/doctree"
	"github.com/dgallion1/charterreview/internal/sections"
)

// Strategy names how sections were found in a document.
type Strategy string

const (
	HeaderAnchored  Strategy = "header"
	PatternAnchored Strategy = "pattern"
	TableAnchored   Strategy = "table"
	None            Strategy = "none"
)

// SectionUnresolvedError reports content whose section could not be identified.
// It is not fatal: the content is filed under General Comments.
type SectionUnresolvedError struct {
	Header string
}

func (e *SectionUnresolvedError) Error() string {
	if e.Header == "" {
		return "section unresolved"
	}
	return fmt.Sprintf("section unresolved for %q", e.Header)
}

// Section is the text collected for one section of one document.
type Section struct {
	Key        sections.Key
	Lines      []string
	Unresolved bool   // Key is the General Comments fallback
	Header     string // Marker text for pattern-anchored blocks
}

// Result is the segmentation of one document.
type Result struct {
	Strategy Strategy
	Sections []Section
	Filtered int // Template lines dropped from section buffers
}

// Segmenter holds the profile and boilerplate set shared by every document of a batch.
type Segmenter struct {
	Profile     *sections.Profile
	Boilerplate *boilerplate.Set
}

// Segment tries the header-anchored, pattern-anchored and table-anchored
// strategies in turn and returns the first that finds any section.
func (s *Segmenter) Segment(lines doctree.LineStream) Result {
	var res Result
	if res.Sections = s.byHeaders(lines, &res.Filtered); len(res.Sections) > 0 {
		res.Strategy = HeaderAnchored
		return res
	}
	if res.Sections = s.byPattern(lines, &res.Filtered); len(res.Sections) > 0 {
		res.Strategy = PatternAnchored
		return res
	}
	if res.Sections = s.byTables(lines, &res.Filtered); len(res.Sections) > 0 {
		res.Strategy = TableAnchored
		return res
	}
	return Result{Strategy: None}
}

// keep reports whether a physical line belongs in a section buffer. Template
// text is dropped and counted; structural labels stay because the classifier
// keys on them.
func (s *Segmenter) keep(line string, filtered *int) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if boilerplate.IsStructuralLabel(line) {
		return true
	}
	if s.Boilerplate.IsBoilerplate(line) {
		*filtered++
		return false
	}
	return true
}

// row filters the cells of a table row line by line and rejoins them with
// tabs, so a cell spanning several paragraphs stays one cell and an emptied
// cell keeps its column. It reports false when no cell has text left.
func (s *Segmenter) row(l doctree.Line, filtered *int) (string, bool) {
	cells := l.Cells
	if cells == nil {
		cells = strings.Split(l.Text, "\t")
	}
	out := make([]string, len(cells))
	nonEmpty := false
	for i, cell := range cells {
		var kept []string
		for _, line := range strings.Split(cell, "\n") {
			if s.keep(line, filtered) {
				kept = append(kept, strings.TrimSpace(line))
			}
		}
		out[i] = strings.Join(kept, "\n")
		nonEmpty = nonEmpty || len(kept) > 0
	}
	return strings.Join(out, "\t"), nonEmpty
}

// byHeaders opens a new section at every line that exactly equals a known
// alias. Lines before the first header are ignored. Paragraphs are split into
// physical lines; table rows are kept whole.
func (s *Segmenter) byHeaders(lines doctree.LineStream, filtered *int) []Section {
	var secs []Section
	open := -1
	for _, l := range lines {
		if l.IsRow() {
			if key, ok := s.Profile.Lookup(l.Text); ok {
				secs = append(secs, Section{Key: key})
				open = len(secs) - 1
				continue
			}
			if open < 0 {
				continue
			}
			if text, ok := s.row(l, filtered); ok {
				secs[open].Lines = append(secs[open].Lines, text)
			}
			continue
		}
		for _, line := range strings.Split(l.Text, "\n") {
			if key, ok := s.Profile.Lookup(line); ok {
				secs = append(secs, Section{Key: key})
				open = len(secs) - 1
				continue
			}
			if open >= 0 && s.keep(line, filtered) {
				secs[open].Lines = append(secs[open].Lines, line)
			}
		}
	}
	return secs
}

var (
	markerPattern  = regexp.MustCompile(`Section\s+\d+.*?Evaluation\s+Comments:|Addendum\s+[A-Z]\s+Evaluation\s+Comments:`)
	numberedTitle  = regexp.MustCompile(`^\s*\d+\.?\s+(.+)`)
	addendumHeader = regexp.MustCompile(`(?i)addendum`)
)

const (
	titleWindow    = 500
	titleLines     = 10
	addendumWindow = 300
)

// byPattern splits the text at "Section N ... Evaluation Comments:" markers
// and names each block from the lines just before its marker.
func (s *Segmenter) byPattern(lines doctree.LineStream, filtered *int) []Section {
	content := lines.Text()
	locs := markerPattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	secs := make([]Section, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		header := content[loc[0]:loc[1]]
		sec := Section{Header: header}

		key, ok := s.resolveMarker(content, loc[0], header)
		if ok {
			sec.Key = key
		} else {
			sec.Key = sections.GeneralKey()
			sec.Unresolved = true
		}

		sec.Lines = s.between(lines, loc[1], end, filtered)
		secs = append(secs, sec)
	}
	return secs
}

// between collects the section lines for the byte range [from, to) of
// lines.Text(). Rows lying wholly inside the range stay whole; paragraphs and
// rows cut by a marker contribute their physical lines.
func (s *Segmenter) between(lines doctree.LineStream, from, to int, filtered *int) []string {
	var out []string
	start := 0
	for _, l := range lines {
		end := start + len(l.Text)
		lo, hi := max(from, start), min(to, end)
		next := end + 1
		if lo >= hi {
			start = next
			continue
		}
		if l.IsRow() && lo == start && hi == end {
			if text, ok := s.row(l, filtered); ok {
				out = append(out, text)
			}
		} else {
			for _, line := range strings.Split(l.Text[lo-start:hi-start], "\n") {
				if s.keep(line, filtered) {
					out = append(out, line)
				}
			}
		}
		start = next
	}
	return out
}

func (s *Segmenter) resolveMarker(content string, start int, header string) (sections.Key, bool) {
	if addendumHeader.MatchString(header) {
		name := lastLine(content[clampStart(start-addendumWindow, content, start):start])
		if name == "" {
			name = strings.TrimSuffix(strings.TrimSpace(header), ":")
		}
		return sections.AdHocKey(name), true
	}
	context := content[clampStart(start-titleWindow, content, start):start]
	return s.titleBefore(context)
}

// clampStart keeps a window start inside content and on a rune boundary.
func clampStart(i int, content string, limit int) int {
	if i < 0 {
		return 0
	}
	for i < limit && !isRuneStart(content[i]) {
		i++
	}
	return i
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// titleBefore scans the last lines of context, nearest first, for a numbered
// title or any line naming a known section.
func (s *Segmenter) titleBefore(context string) (sections.Key, bool) {
	lines := strings.Split(context, "\n")
	if len(lines) > titleLines {
		lines = lines[len(lines)-titleLines:]
	}
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if m := numberedTitle.FindStringSubmatch(line); m != nil {
			if key, ok := s.Profile.Match(strings.TrimSpace(m[1])); ok {
				return key, true
			}
			continue
		}
		if key, ok := s.Profile.Match(line); ok {
			return key, true
		}
	}
	return sections.Key{}, false
}

func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

// byTables treats each table as a comment block belonging to the nearest
// preceding paragraph that names a section. Tables with no such paragraph go
// to General Comments. Blocks with the same key are merged.
func (s *Segmenter) byTables(lines doctree.LineStream, filtered *int) []Section {
	var secs []Section
	index := make(map[sections.Key]int)
	current, named := sections.Key{}, false
	lastTable := doctree.NoTable
	target := -1

	for _, l := range lines {
		if !l.IsRow() {
			if key, ok := s.paragraphKey(l.Text); ok {
				current, named = key, true
			}
			lastTable = doctree.NoTable
			continue
		}
		if l.Table != lastTable {
			lastTable = l.Table
			key := sections.GeneralKey()
			if named {
				key = current
			}
			i, ok := index[key]
			if !ok {
				secs = append(secs, Section{Key: key, Unresolved: !named})
				i = len(secs) - 1
				index[key] = i
			}
			target = i
		}
		if text, ok := s.row(l, filtered); ok {
			secs[target].Lines = append(secs[target].Lines, text)
		}
	}
	return secs
}

// paragraphKey resolves a body paragraph that could be a section title.
func (s *Segmenter) paragraphKey(text string) (sections.Key, bool) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, "\n") {
		return sections.Key{}, false
	}
	if key, ok := s.Profile.Lookup(text); ok {
		return key, true
	}
	if m := numberedTitle.FindStringSubmatch(text); m != nil {
		return s.Profile.Match(strings.TrimSpace(m[1]))
	}
	return s.Profile.Match(text)
}
