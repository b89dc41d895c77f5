package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/charterreview/internal/doctree"
)

// Namespaces used by WordprocessingML parts.
const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceW14 = "http://schemas.microsoft.com/office/word/2010/wordml"
)

const documentPart = "word/document.xml"

// ErrNoDocumentPart is returned when the package has no main document part.
var ErrNoDocumentPart = errors.New("missing " + documentPart)

// DocumentReadError reports a file that could not be read as an OOXML package.
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DocumentReadError{Path: filename, Err: err}
	}
	return ReadDocument(bytes.NewReader(data), int64(len(data)), filename)
}

// ReadFile opens and parses a .docx file from disk.
func ReadFile(path string) (*doctree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentReadError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &DocumentReadError{Path: path, Err: err}
	}
	doc, err := ReadDocument(f, info.Size(), filepath.Base(path))
	if err != nil {
		var dre *DocumentReadError
		if errors.As(err, &dre) {
			dre.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// ReadDocument parses the main document part of an OOXML package.
func ReadDocument(r io.ReaderAt, size int64, name string) (*doctree.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: fmt.Errorf("open package: %w", err)}
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, &DocumentReadError{Path: name, Err: ErrNoDocumentPart}
	}

	rc, err := part.Open()
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: fmt.Errorf("open %s: %w", documentPart, err)}
	}
	defer rc.Close()

	root, err := decodeTree(rc)
	if err != nil {
		return nil, &DocumentReadError{Path: name, Err: fmt.Errorf("parse %s: %w", documentPart, err)}
	}

	doc := &doctree.Document{Name: name}
	if body := root.child("body"); body != nil {
		doc.Body = buildBlocks(body.children)
	}
	return doc, nil
}

// node is a minimal element tree. Only w:t and w:delText character data is kept.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	children []*node
}

func (n *node) child(local string) *node {
	for _, c := range n.children {
		if c.name.Local == local {
			return c
		}
	}
	return nil
}

// attr returns the first attribute with the given local name in w14 or w.
func (n *node) attr(local string) (string, bool) {
	for _, space := range []string{NamespaceW14, NamespaceW} {
		for _, a := range n.attrs {
			if a.Name.Local == local && a.Name.Space == space {
				return a.Value, true
			}
		}
	}
	for _, a := range n.attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// find returns the first descendant (depth-first, document order) with the given local name.
func (n *node) find(local string) *node {
	for _, c := range n.children {
		if c.name.Local == local {
			return c
		}
		if found := c.find(local); found != nil {
			return found
		}
	}
	return nil
}

func decodeTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	root := &node{}
	stack := []*node{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Attr}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unbalanced end element %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top := stack[len(stack)-1]
			if top.name.Local == "t" {
				top.text += string(t)
			}
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("unexpected end of document")
	}
	doc := root.child("document")
	if doc == nil {
		return nil, fmt.Errorf("no document element")
	}
	return doc, nil
}

// buildBlocks converts body or cell children into blocks. Block-level content
// controls and custom XML wrappers are unwrapped in place.
func buildBlocks(children []*node) []doctree.Block {
	var blocks []doctree.Block
	for _, c := range children {
		switch c.name.Local {
		case "p":
			blocks = append(blocks, &doctree.Paragraph{Inlines: buildInlines(c.children)})
		case "tbl":
			blocks = append(blocks, buildTable(c))
		case "sdt":
			content := c.child("sdtContent")
			if content == nil {
				continue
			}
			inner := buildBlocks(content.children)
			if checked, ok := controlChecked(c); ok {
				inner = withCheckbox(inner, checked)
			}
			blocks = append(blocks, inner...)
		case "customXml":
			blocks = append(blocks, buildBlocks(c.children)...)
		}
	}
	return blocks
}

// withCheckbox puts the state of a block-level checkbox control in front of
// the first paragraph it wraps.
func withCheckbox(blocks []doctree.Block, checked bool) []doctree.Block {
	box := &doctree.CheckboxControl{Checked: checked}
	for _, b := range blocks {
		if p, ok := b.(*doctree.Paragraph); ok {
			p.Inlines = append([]doctree.Inline{box}, p.Inlines...)
			return blocks
		}
	}
	return append([]doctree.Block{&doctree.Paragraph{Inlines: []doctree.Inline{box}}}, blocks...)
}

func buildTable(tbl *node) *doctree.Table {
	t := &doctree.Table{}
	for _, tr := range unwrapped(tbl.children, "tr") {
		row := &doctree.Row{}
		for _, tc := range unwrapped(tr.children, "tc") {
			row.Cells = append(row.Cells, &doctree.Cell{Content: buildBlocks(tc.children)})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// unwrapped returns direct children with the given local name, looking
// through row- and cell-level content controls.
func unwrapped(children []*node, local string) []*node {
	var out []*node
	for _, c := range children {
		switch c.name.Local {
		case local:
			out = append(out, c)
		case "sdt":
			if content := c.child("sdtContent"); content != nil {
				out = append(out, unwrapped(content.children, local)...)
			}
		case "customXml":
			out = append(out, unwrapped(c.children, local)...)
		}
	}
	return out
}

// skipped lists property and instruction subtrees that never contribute text.
var skipped = map[string]bool{
	"pPr":       true,
	"rPr":       true,
	"sdtPr":     true,
	"sdtEndPr":  true,
	"instrText": true,
	"delText":   true,
	"tbl":       true,
}

func buildInlines(children []*node) []doctree.Inline {
	var out []doctree.Inline
	for _, c := range children {
		if skipped[c.name.Local] {
			continue
		}
		switch c.name.Local {
		case "t":
			out = append(out, &doctree.Text{Value: c.text})
		case "tab":
			out = append(out, &doctree.Tab{})
		case "br", "cr":
			out = append(out, &doctree.Break{})
		case "sdt":
			out = append(out, buildControl(c))
		case "ffData":
			out = append(out, buildLegacyField(c))
		default:
			// Runs, hyperlinks, field wrappers, insertions and paragraphs
			// nested in content controls all contribute their children.
			out = append(out, buildInlines(c.children)...)
		}
	}
	return out
}

func buildControl(sdt *node) doctree.Inline {
	var content []doctree.Inline
	if c := sdt.child("sdtContent"); c != nil {
		content = buildInlines(c.children)
	}
	if checked, ok := controlChecked(sdt); ok {
		return &doctree.CheckboxControl{Checked: checked, Content: content}
	}
	return &doctree.ContentControl{Content: content}
}

// controlChecked reads the checked state of a content control. The second
// result is false when the control is not a checkbox.
func controlChecked(sdt *node) (bool, bool) {
	pr := sdt.child("sdtPr")
	if pr == nil {
		return false, false
	}
	checked := pr.find("checked")
	if checked == nil {
		return false, false
	}
	val, ok := checked.attr("val")
	return !ok || truthy(val), true
}

// buildLegacyField resolves w:ffData. The first of checkBox, a non-empty
// result, or a non-empty default in document order decides the value.
func buildLegacyField(ff *node) doctree.Inline {
	var walk func(n *node) (*doctree.LegacyField, bool)
	walk = func(n *node) (*doctree.LegacyField, bool) {
		for _, c := range n.children {
			switch c.name.Local {
			case "checkBox":
				return &doctree.LegacyField{Kind: doctree.FieldCheckbox, Checked: checkBoxState(c)}, true
			case "result", "default":
				if val, _ := c.attr("val"); val != "" {
					return &doctree.LegacyField{Kind: doctree.FieldText, Value: val}, true
				}
			}
			if f, ok := walk(c); ok {
				return f, true
			}
		}
		return nil, false
	}
	if f, ok := walk(ff); ok {
		return f
	}
	return &doctree.LegacyField{Kind: doctree.FieldText}
}

// checkBoxState reads w:checked, falling back to w:default. A w:checked
// element without a value means checked.
func checkBoxState(cb *node) bool {
	if c := cb.child("checked"); c != nil {
		val, ok := c.attr("val")
		return !ok || truthy(val)
	}
	if d := cb.child("default"); d != nil {
		val, _ := d.attr("val")
		return truthy(val)
	}
	return false
}

func truthy(val string) bool {
	switch val {
	case "1", "true", "on", "True":
		return true
	}
	return false
}
