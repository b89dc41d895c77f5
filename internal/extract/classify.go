package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/charterreview/internal/boilerplate"
	"github.com/dgallion1/charterreview/internal/textnorm"
)

// Style names a line shape the classifier recognizes.
type Style string

const (
	RunBlock   Style = "run-block"
	Tokenized  Style = "tokenized"
	Label      Style = "label"
	HeaderRows Style = "header-rows"
)

// Policy orders the styles when more than one could match a section.
type Policy string

const (
	RunBlockFirst Policy = "run-block-first"
	LabelFirst    Policy = "label-first"
)

// ParsePolicy accepts a policy name; empty selects RunBlockFirst.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case RunBlockFirst, "":
		return RunBlockFirst, nil
	case LabelFirst:
		return LabelFirst, nil
	}
	return "", fmt.Errorf("unknown classify policy %q", s)
}

// Chain returns the styles tried for p, in order.
func (p Policy) Chain() []Style {
	if p == LabelFirst {
		return []Style{Label, Tokenized, RunBlock, HeaderRows}
	}
	return []Style{RunBlock, Tokenized, Label, HeaderRows}
}

// Classifier extracts fragments from the lines of one section. It holds no
// per-document state and is safe for concurrent use.
type Classifier struct {
	Policy      Policy
	Boilerplate *boilerplate.Set
}

// Classify tries each style of the policy chain and returns the fragments of
// the first one that yields anything after post-processing. A section that
// matches no style yields nil and an empty style.
//
// Table rows arrive as one tab-joined line whose cells may span several
// paragraphs. The row styles read them whole; the block styles see one
// physical line per paragraph.
func (c *Classifier) Classify(lines []string) ([]Fragment, Style) {
	physical := physicalLines(lines)
	for _, style := range c.Policy.Chain() {
		var raw []Fragment
		switch style {
		case RunBlock:
			raw = runBlocks(physical)
		case Tokenized:
			raw = c.tokenizedRows(lines)
		case Label:
			raw = labelBlocks(physical)
		case HeaderRows:
			raw = headerRows(lines)
		}
		if out := c.finish(raw); len(out) > 0 {
			return out, style
		}
	}
	return nil, ""
}

// finish formats page mentions, drops empty and template fragments, and
// removes repeats within a kind.
func (c *Classifier) finish(raw []Fragment) []Fragment {
	var out []Fragment
	seen := make(map[Fragment]bool)
	for _, f := range raw {
		f.Text = FormatPageReferences(strings.TrimSpace(f.Text))
		if c.Boilerplate.IsBoilerplate(f.Text) || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func fold(s string) string {
	return textnorm.Fold(s)
}

func physicalLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.Split(l, "\n")...)
	}
	return out
}

// runBlocks reads literal "Strengths" and "Concerns and Additional Questions"
// lines as block openers. Every other line inside a block is one comment.
func runBlocks(lines []string) []Fragment {
	var out []Fragment
	var open Kind
	for _, line := range lines {
		switch fold(line) {
		case "strengths":
			open = Strength
			continue
		case "concerns and additional questions", "concerns":
			open = Concern
			continue
		case "":
			continue
		}
		if open != "" {
			out = append(out, Fragment{Kind: open, Text: line})
		}
	}
	return out
}

var rowFields = regexp.MustCompile(`\s{2,}`)

// rowParts splits a row into at most three fields. Table rows split on every
// tab so an empty cell keeps its column. Other lines split on runs of two or
// more spaces.
func rowParts(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.SplitN(line, "\t", 3)
	}
	return rowFields.Split(strings.TrimSpace(line), 3)
}

// tokenizedRows reads "type, reference, comment" rows. Once any row of the
// section has three fields, two-field rows are read as type and comment.
func (c *Classifier) tokenizedRows(lines []string) []Fragment {
	var rows [][]string
	threeColumn := false
	for _, line := range lines {
		candidates := []string{line}
		if !strings.Contains(line, "\t") {
			candidates = strings.Split(line, "\n")
		}
		for _, cand := range candidates {
			if strings.TrimSpace(cand) == "" {
				continue
			}
			parts := rowParts(cand)
			threeColumn = threeColumn || len(parts) >= 3
			rows = append(rows, parts)
		}
	}

	var out []Fragment
	for _, parts := range rows {
		var typ, ref, comment string
		switch {
		case len(parts) >= 3:
			typ, ref, comment = parts[0], parts[1], parts[2]
		case len(parts) == 2 && threeColumn:
			typ, comment = parts[0], parts[1]
		default:
			continue
		}
		typ = strings.TrimSpace(typ)
		ref = strings.TrimSpace(ref)
		comment = strings.TrimSpace(comment)

		if isHeaderRow(typ, ref, comment) {
			continue
		}
		if c.Boilerplate.IsBoilerplate(comment) {
			continue
		}
		kind := rowKind(typ)
		if kind == "" {
			continue
		}
		if ref != "" && !c.Boilerplate.IsBoilerplate(ref) {
			comment += referenceSuffix(ref)
		}
		out = append(out, Fragment{Kind: kind, Text: comment})
	}
	return out
}

// isHeaderRow matches the column titles of a comment table.
func isHeaderRow(typ, ref, comment string) bool {
	return textnorm.EqualFold(typ, "type") ||
		textnorm.EqualFold(ref, "reference") ||
		textnorm.EqualFold(comment, "comment")
}

func rowKind(typ string) Kind {
	switch {
	case textnorm.ContainsFold(typ, "strength"):
		return Strength
	case textnorm.ContainsFold(typ, "concern"),
		textnorm.ContainsFold(typ, "question"),
		textnorm.ContainsFold(typ, "follow up"):
		return Concern
	}
	return ""
}

const maxShortReference = 20

// referenceSuffix renders a reference column value appended to its comment.
func referenceSuffix(ref string) string {
	digits := strings.NewReplacer(".", "", "p", "", " ", "").Replace(ref)
	if digits != "" && isDigits(digits) {
		page := strings.TrimSpace(strings.NewReplacer("p.", "", "p", "").Replace(ref))
		return " [p. " + page + "]"
	}
	if len(ref) < maxShortReference {
		return " [" + ref + "]"
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var (
	strengthLabel = regexp.MustCompile(`(?i)^strength\s*:\s*(.*)$`)
	concernLabel  = regexp.MustCompile(`(?i)^(?:concern|question|follow up|improvement)\s*:\s*(.*)$`)
)

// labelBlocks is a line state machine: a label line opens a block, text after
// its colon seeds it, and unlabeled lines continue the open block.
func labelBlocks(lines []string) []Fragment {
	var out []Fragment
	var cur *Fragment
	var buf []string

	flush := func() {
		if cur != nil {
			cur.Text = strings.Join(buf, "\n")
			out = append(out, *cur)
		}
		cur, buf = nil, nil
	}
	start := func(k Kind, seed string) {
		flush()
		cur = &Fragment{Kind: k}
		if seed = strings.TrimSpace(seed); seed != "" {
			buf = append(buf, seed)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch folded := fold(line); {
		case folded == "strength":
			start(Strength, "")
		case folded == "concern", folded == "question", folded == "follow up", folded == "improvement":
			start(Concern, "")
		default:
			if m := strengthLabel.FindStringSubmatch(line); m != nil {
				start(Strength, m[1])
			} else if m := concernLabel.FindStringSubmatch(line); m != nil {
				start(Concern, m[1])
			} else if cur != nil {
				buf = append(buf, line)
			}
		}
	}
	flush()
	return out
}

// headerRows reads tab-joined table rows whose first cell names the column
// kind. Rows after a kind row without one of their own continue that kind.
// Page reference cells are skipped wherever they sit.
func headerRows(lines []string) []Fragment {
	var out []Fragment
	var kind Kind
	for _, line := range lines {
		if !strings.Contains(line, "\t") {
			continue
		}
		cells := strings.Split(line, "\t")
		first := fold(cells[0])
		rest := cells
		switch {
		case strings.Contains(first, "strength"):
			kind, rest = Strength, cells[1:]
		case strings.Contains(first, "concern"), strings.Contains(first, "question"):
			kind, rest = Concern, cells[1:]
		}
		if kind == "" {
			continue
		}
		for _, cell := range rest {
			cell = strings.TrimSpace(cell)
			if cell == "" || boilerplate.IsStructuralLabel(cell) {
				continue
			}
			if len(rest) > 1 && isReferenceCell(cell) {
				continue
			}
			out = append(out, Fragment{Kind: kind, Text: cell})
		}
	}
	return out
}

func isReferenceCell(cell string) bool {
	return strings.HasPrefix(strings.ToLower(cell), "p.") || isDigits(cell)
}
