package parser

import (
	"strings"

	"github.com/dgallion1/charterreview/internal/doctree"
)

// Gather flattens a document body into a LineStream. Body paragraphs become
// one line each when non-empty; each table contributes its rows in place.
func Gather(doc *doctree.Document, strategy CellStrategy) doctree.LineStream {
	var lines doctree.LineStream
	table := 0
	for _, b := range doc.Body {
		switch blk := b.(type) {
		case *doctree.Paragraph:
			if text := ParagraphText(blk); text != "" {
				lines = append(lines, doctree.Line{Text: text, Table: doctree.NoTable})
			}
		case *doctree.Table:
			for _, row := range LinearizeRows(blk, strategy) {
				lines = append(lines, doctree.Line{
					Text:  RowText(row),
					Table: table,
					Cells: row,
				})
			}
			table++
		}
	}
	return lines
}

// ParagraphText returns the trimmed text of a paragraph with every form field
// substituted at its position.
func ParagraphText(p *doctree.Paragraph) string {
	var w textWriter
	w.inlines(p.Inlines)
	return strings.TrimSpace(w.String())
}

// textWriter builds paragraph text. Checkbox symbols are kept one space away
// from neighbouring text so a box stays attached to its label.
type textWriter struct {
	sb        strings.Builder
	afterMark bool
}

func (w *textWriter) String() string {
	return w.sb.String()
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	if w.afterMark && !startsWithSpace(s) {
		w.sb.WriteByte(' ')
	}
	w.afterMark = false
	w.sb.WriteString(s)
}

func (w *textWriter) mark(symbol string) {
	cur := w.sb.String()
	if cur != "" && !endsWithSpace(cur) {
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(symbol)
	w.afterMark = true
}

func (w *textWriter) inlines(in []doctree.Inline) {
	for _, n := range in {
		switch v := n.(type) {
		case *doctree.Text:
			w.text(v.Value)
		case *doctree.Tab:
			w.text("\t")
		case *doctree.Break:
			w.text("\n")
		case *doctree.CheckboxControl:
			w.mark(doctree.Symbol(v.Checked))
			var inner textWriter
			inner.inlines(v.Content)
			w.text(strings.TrimSpace(inner.String()))
		case *doctree.ContentControl:
			w.inlines(v.Content)
		case *doctree.LegacyField:
			if v.Kind == doctree.FieldCheckbox {
				w.mark(v.Token())
			} else {
				w.text(v.Value)
			}
		}
	}
}

// plainText returns paragraph text without any form-field values. Content
// control text is kept; checkbox symbols and legacy field values are not.
func plainText(p *doctree.Paragraph) string {
	var sb strings.Builder
	var walk func(in []doctree.Inline)
	walk = func(in []doctree.Inline) {
		for _, n := range in {
			switch v := n.(type) {
			case *doctree.Text:
				sb.WriteString(v.Value)
			case *doctree.Tab:
				sb.WriteByte('\t')
			case *doctree.Break:
				sb.WriteByte('\n')
			case *doctree.CheckboxControl:
				walk(v.Content)
			case *doctree.ContentControl:
				walk(v.Content)
			}
		}
	}
	walk(p.Inlines)
	return strings.TrimSpace(sb.String())
}

// fieldTokens returns the resolved values of every form field in a paragraph,
// in order. Checkbox labels are already part of the plain text, so a checkbox
// yields only its symbol.
func fieldTokens(p *doctree.Paragraph) []string {
	var out []string
	var walk func(in []doctree.Inline)
	walk = func(in []doctree.Inline) {
		for _, n := range in {
			switch v := n.(type) {
			case *doctree.CheckboxControl:
				out = append(out, doctree.Symbol(v.Checked))
			case *doctree.ContentControl:
				walk(v.Content)
			case *doctree.LegacyField:
				if tok := strings.TrimSpace(v.Token()); tok != "" {
					out = append(out, tok)
				}
			}
		}
	}
	walk(p.Inlines)
	return out
}

func startsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r", rune(s[0]))
}

func endsWithSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\n\r", rune(s[len(s)-1]))
}
