// Package boilerplate recognizes template text that reviewers did not write.
package boilerplate

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/charterreview/internal/doctree"
	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/dgallion1/charterreview/internal/textnorm"
	"github.com/fumiama/go-docx"
)

// StructuralLabels are form headings and placeholders treated as boilerplate
// in every template, matched case-insensitively.
var StructuralLabels = []string{
	"strengths",
	"concerns and additional questions",
	"concerns",
	"reference",
	"references",
	"meets the standard",
	"partially meets the standard",
	"does not meet the standard",
	"type",
	"comment",
	"strength",
	"concern",
	"question",
	"follow up",
	"choose type",
	"enter comment here.",
	"click or tap here to enter text.",
}

var labelSet = func() map[string]bool {
	m := make(map[string]bool, len(StructuralLabels))
	for _, l := range StructuralLabels {
		m[textnorm.Fold(l)] = true
	}
	return m
}()

// IsStructuralLabel reports whether text is one of StructuralLabels.
func IsStructuralLabel(text string) bool {
	return labelSet[textnorm.Fold(text)]
}

// TemplateLoadError reports a template that could not be read.
type TemplateLoadError struct {
	Path string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("load template %s: %v", e.Path, e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// Set is a read-only membership oracle once built. A nil *Set only knows
// the structural labels.
type Set struct {
	members   map[string]struct{}
	templates int
}

// New returns a set holding the given fragments.
func New(fragments ...string) *Set {
	s := &Set{members: make(map[string]struct{})}
	for _, f := range fragments {
		s.Add(f)
	}
	return s
}

// Add records the trimmed fragment and each non-empty line inside it.
func (s *Set) Add(fragment string) {
	text := strings.TrimSpace(fragment)
	if text == "" {
		return
	}
	s.members[text] = struct{}{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			s.members[line] = struct{}{}
		}
	}
}

// IsBoilerplate reports whether text is blank, a template fragment, or a
// structural label. Leading and trailing whitespace is ignored.
func (s *Set) IsBoilerplate(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	if s != nil {
		if _, ok := s.members[text]; ok {
			return true
		}
	}
	return IsStructuralLabel(text)
}

// Len returns the number of distinct fragments.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Templates returns how many templates were loaded into the set.
func (s *Set) Templates() int {
	if s == nil {
		return 0
	}
	return s.templates
}

// AddDocument records every paragraph text, cell text and cell line of doc.
func (s *Set) AddDocument(doc *doctree.Document, strategy parser.CellStrategy) {
	s.addBlocks(doc.Body, strategy)
}

func (s *Set) addBlocks(blocks []doctree.Block, strategy parser.CellStrategy) {
	for _, b := range blocks {
		switch blk := b.(type) {
		case *doctree.Paragraph:
			s.Add(parser.ParagraphText(blk))
		case *doctree.Table:
			for _, row := range blk.Rows {
				for _, cell := range row.Cells {
					s.Add(parser.CellText(cell, strategy))
					s.addBlocks(cell.Content, strategy)
				}
			}
		}
	}
}

// Load builds a set from template files. Templates that fail to load are
// returned as TemplateLoadErrors and skipped; the rest still contribute.
func Load(paths []string, strategy parser.CellStrategy, log *slog.Logger) (*Set, []error) {
	s := New()
	var errs []error
	for _, path := range paths {
		if err := s.LoadFile(path, strategy, log); err != nil {
			errs = append(errs, err)
			continue
		}
	}
	return s, errs
}

// LoadDir loads every supported template in dir.
func LoadDir(dir string, strategy parser.CellStrategy, log *slog.Logger) (*Set, []error) {
	paths, err := parser.Discover(dir)
	if err != nil {
		return New(), []error{&TemplateLoadError{Path: dir, Err: err}}
	}
	return Load(paths, strategy, log)
}

// LoadFile adds one template. Text is read twice: once through the form-field
// aware reader, and once through go-docx's object model.
func (s *Set) LoadFile(path string, strategy parser.CellStrategy, log *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &TemplateLoadError{Path: path, Err: err}
	}
	doc, err := parser.ReadDocument(bytes.NewReader(data), int64(len(data)), filepath.Base(path))
	if err != nil {
		return &TemplateLoadError{Path: path, Err: err}
	}
	s.AddDocument(doc, strategy)
	s.templates++

	if err := s.addObjectModel(data); err != nil && log != nil {
		log.Warn("object model pass skipped", "template", path, "error", err)
	}
	return nil
}

// addObjectModel adds paragraph and cell text as go-docx exposes it. Runs
// nested in content controls are invisible here, so this adds the label-only
// forms of cells whose controls the primary pass resolved.
func (s *Set) addObjectModel(data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("go-docx: %v", r)
		}
	}()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("parse docx: %w", err)
	}
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			s.Add(docxParagraphText(v))
		case *docx.Table:
			s.addDocxTable(v)
		}
	}
	return nil
}

func (s *Set) addDocxTable(t *docx.Table) {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if text := docxParagraphText(p); text != "" {
					parts = append(parts, text)
				}
			}
			s.Add(strings.Join(parts, "\n"))
			for _, nested := range cell.Tables {
				s.addDocxTable(nested)
			}
		}
	}
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		var run *docx.Run
		switch v := child.(type) {
		case *docx.Run:
			run = v
		case *docx.Hyperlink:
			run = &v.Run
		default:
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteByte('\t')
			case *docx.BarterRabbet:
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
