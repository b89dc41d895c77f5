package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/charterreview/internal/doctree"
)

// CellStrategy selects how form-field values are merged into cell text.
type CellStrategy string

const (
	// CellSubstitute places each field's value where the field occurs.
	CellSubstitute CellStrategy = "substitute"
	// CellAppend keeps the plain cell text and appends field values not
	// already present, separated by a space.
	CellAppend CellStrategy = "append"
)

// ParseCellStrategy validates a configured strategy name. Empty means substitute.
func ParseCellStrategy(s string) (CellStrategy, error) {
	switch CellStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CellSubstitute:
		return CellSubstitute, nil
	case CellAppend:
		return CellAppend, nil
	}
	return "", fmt.Errorf("unknown cell strategy %q", s)
}

// LinearizeTable returns one tab-joined line per non-empty row.
func LinearizeTable(t *doctree.Table, strategy CellStrategy) []string {
	rows := LinearizeRows(t, strategy)
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = RowText(r)
	}
	return out
}

// RowText joins cell texts with tabs and trims the result.
func RowText(cells []string) string {
	return strings.TrimSpace(strings.Join(cells, "\t"))
}

// LinearizeRows returns the cell texts of every row that has any content.
// A row whose joined text is blank is dropped.
func LinearizeRows(t *doctree.Table, strategy CellStrategy) [][]string {
	var rows [][]string
	for _, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = CellText(c, strategy)
		}
		if RowText(cells) == "" {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

// CellText joins a cell's trimmed paragraph texts and nested table rows with newlines.
func CellText(c *doctree.Cell, strategy CellStrategy) string {
	var parts []string
	for _, b := range c.Content {
		switch blk := b.(type) {
		case *doctree.Paragraph:
			if strategy == CellAppend {
				parts = appendParagraph(parts, blk)
				continue
			}
			if text := ParagraphText(blk); text != "" {
				parts = append(parts, text)
			}
		case *doctree.Table:
			if nested := LinearizeTable(blk, strategy); len(nested) > 0 {
				parts = append(parts, strings.Join(nested, "\n"))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// appendParagraph adds a paragraph's plain text, then any field value not
// already collected for the cell, joined to the previous text with a space.
func appendParagraph(parts []string, p *doctree.Paragraph) []string {
	base := plainText(p)
	for _, tok := range fieldTokens(p) {
		if !isSymbol(tok) && (strings.Contains(base, tok) || containsPart(parts, tok)) {
			continue
		}
		if base == "" {
			base = tok
		} else {
			base += " " + tok
		}
	}
	if base == "" {
		return parts
	}
	return append(parts, base)
}

func isSymbol(s string) bool {
	return s == doctree.Checked || s == doctree.Unchecked
}

func containsPart(parts []string, s string) bool {
	for _, p := range parts {
		if p == s {
			return true
		}
	}
	return false
}
