package doctree

import "strings"

// Checkbox symbols substituted for resolved checkbox fields.
const (
	Checked   = "☒"
	Unchecked = "☐"
)

// Document is one parsed source file. It is not modified after the reader returns it.
type Document struct {
	Name string  // Source file name
	Body []Block // Top-level paragraphs and tables in body order
}

// Block is a body-level element: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// Paragraph yields at most one line of text.
type Paragraph struct {
	Inlines []Inline
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []*Row
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []*Cell
}

// Cell holds paragraphs and nested tables in source order.
type Cell struct {
	Content []Block
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

// Inline is a paragraph-level node: *Text, *Tab, *Break, *CheckboxControl,
// *ContentControl or *LegacyField.
type Inline interface {
	isInline()
}

// Text is literal run text.
type Text struct {
	Value string
}

// Tab is a w:tab inside a run.
type Tab struct{}

// Break is a w:br or w:cr inside a run.
type Break struct{}

// CheckboxControl is a content-control checkbox (w:sdt carrying a checked state).
type CheckboxControl struct {
	Checked bool
	Content []Inline // Text the control wraps, usually its label
}

// ContentControl is a content control without a checkbox; its content is read in place.
type ContentControl struct {
	Content []Inline
}

// FieldKind distinguishes legacy form field variants.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldCheckbox
)

// LegacyField is a pre-2007 form field (w:ffData).
type LegacyField struct {
	Kind    FieldKind
	Value   string // Result or default text for FieldText
	Checked bool   // State for FieldCheckbox
}

func (*Text) isInline()            {}
func (*Tab) isInline()             {}
func (*Break) isInline()           {}
func (*CheckboxControl) isInline() {}
func (*ContentControl) isInline()  {}
func (*LegacyField) isInline()     {}

// Symbol returns the checkbox glyph for a checked state.
func Symbol(checked bool) string {
	if checked {
		return Checked
	}
	return Unchecked
}

// Token returns the literal text a legacy field resolves to.
func (f *LegacyField) Token() string {
	if f.Kind == FieldCheckbox {
		return Symbol(f.Checked)
	}
	return f.Value
}

// NoTable marks a Line that came from a body paragraph.
const NoTable = -1

// Line is one LineStream entry: a paragraph's text or a table row with its
// cells tab-joined.
type Line struct {
	Text  string
	Table int      // Index of the top-level table the row came from, or NoTable
	Cells []string // Cell texts for table rows
}

// IsRow reports whether the line came from a table row.
func (l Line) IsRow() bool {
	return l.Table != NoTable
}

// LineStream is the flattened, order-preserving text of a document.
type LineStream []Line

// Strings returns the entry texts in order.
func (s LineStream) Strings() []string {
	out := make([]string, len(s))
	for i, l := range s {
		out[i] = l.Text
	}
	return out
}

// Text joins all entries with newlines.
func (s LineStream) Text() string {
	return strings.Join(s.Strings(), "\n")
}
