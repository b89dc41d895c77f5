// Package testdocx builds minimal .docx packages for tests.
package testdocx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`

const documentTail = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:body></w:document>`

// Document wraps body XML in a w:document element.
func Document(body string) string {
	return documentHead + body + documentTail
}

// Package returns the bytes of a .docx whose word/document.xml is documentXML.
// An empty documentXML omits the part.
func Package(t testing.TB, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rels},
	}
	if documentXML != "" {
		files = append(files, struct{ name, body string }{"word/document.xml", documentXML})
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// Write stores a .docx built from body XML in dir and returns its path.
func Write(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Package(t, Document(body)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// P returns a paragraph with one run per text.
func P(texts ...string) string {
	s := "<w:p>"
	for _, t := range texts {
		s += `<w:r><w:t xml:space="preserve">` + t + `</w:t></w:r>`
	}
	return s + "</w:p>"
}

// Row returns a table row holding cells, each given as raw cell-content XML.
func Row(cells ...string) string {
	s := "<w:tr>"
	for _, c := range cells {
		s += "<w:tc>" + c + "</w:tc>"
	}
	return s + "</w:tr>"
}

// TextRow returns a table row with one single-paragraph cell per text.
func TextRow(texts ...string) string {
	cells := make([]string, len(texts))
	for i, t := range texts {
		cells[i] = P(t)
	}
	return Row(cells...)
}

// Table wraps rows in a w:tbl.
func Table(rows ...string) string {
	s := "<w:tbl>"
	for _, r := range rows {
		s += r
	}
	return s + "</w:tbl>"
}
