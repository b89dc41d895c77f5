// Package meta derives reviewer and school names for a review document.
package meta

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dgallion1/charterreview/internal/extract"
)

// Source selects where the reviewer name comes from.
type Source string

const (
	FromFile     Source = "filename"
	FromDocument Source = "document"
	// Auto prefers the file name and falls back to the document text.
	Auto Source = "auto"
)

// ParseSource accepts a source name; empty selects Auto.
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case FromFile:
		return FromFile, nil
	case FromDocument:
		return FromDocument, nil
	case Auto, "":
		return Auto, nil
	}
	return "", fmt.Errorf("unknown reviewer source %q", s)
}

// Metadata identifies who reviewed which application.
type Metadata struct {
	Reviewer string
	School   string
}

// NoMatchError reports a file name outside the <School>_Eval_<Reviewer>.docx convention.
type NoMatchError struct {
	Filename string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("file name %q does not match <School>_Eval_<Reviewer>.docx", e.Filename)
}

var filenamePattern = regexp.MustCompile(`(?i)^(.+)_Ev(?:al|anl)_(.+)\.docx$`)

// FromFilename splits a conventional file name. Underscores inside either
// part become spaces.
func FromFilename(name string) (Metadata, error) {
	base := filepath.Base(name)
	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return Metadata{}, &NoMatchError{Filename: base}
	}
	return Metadata{
		School:   clean(m[1]),
		Reviewer: clean(m[2]),
	}, nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
}

var (
	reviewerField   = regexp.MustCompile(`(?i)Reviewer['’‘]?s?\s+Name\s*\n\s*(.+)`)
	datePattern     = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	leadingDigit    = regexp.MustCompile(`^\d`)
	schoolField     = regexp.MustCompile(`(?i)Proposed\s+Charter\s+School\s+Name\s*\n\s*(.+)`)
	schoolLabelLine = regexp.MustCompile(`(?i)School\s+Name[:\s]+(.+)`)
)

// reviewerLookahead is how many lines after a "Reviewer Name" label are searched.
const reviewerLookahead = 4

// reviewDateLabel is the form label that sits where the name is expected in
// some template revisions.
const reviewDateLabel = "Review Team Initial Date"

// FromText reads the reviewer and school fields of the evaluation form.
// Fields that are not found are left empty.
func FromText(text string) Metadata {
	return Metadata{Reviewer: reviewerFromText(text), School: schoolFromText(text)}
}

func reviewerFromText(text string) string {
	if m := reviewerField.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(datePattern.Split(m[1], 2)[0])
		name = strings.TrimSpace(strings.SplitN(name, "\t", 2)[0])
		if name != "" && !strings.EqualFold(name, reviewDateLabel) {
			return name
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "reviewer") || !strings.Contains(lower, "name") {
			continue
		}
		// Table rows carry the value in the next cell.
		if cells := strings.Split(line, "\t"); len(cells) > 1 {
			if name := candidateName(cells[1]); name != "" {
				return name
			}
		}
		for j := i + 1; j < len(lines) && j <= i+reviewerLookahead; j++ {
			if name := candidateName(lines[j]); name != "" {
				return name
			}
		}
	}
	return ""
}

func candidateName(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 2 || leadingDigit.MatchString(s) || strings.EqualFold(s, reviewDateLabel) {
		return ""
	}
	return s
}

func schoolFromText(text string) string {
	if m := schoolField.FindStringSubmatch(text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	if m := schoolLabelLine.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Resolve combines the file name and document text according to src and
// fills anything still missing with placeholders. A NoMatchError is returned
// alongside usable metadata when the file name was consulted and did not fit
// the convention.
func Resolve(src Source, filename, text string) (Metadata, error) {
	var md Metadata
	var err error

	switch src {
	case FromFile:
		md, err = FromFilename(filename)
	case FromDocument:
		md = FromText(text)
	default:
		md, err = FromFilename(filename)
		doc := FromText(text)
		if md.Reviewer == "" {
			md.Reviewer = doc.Reviewer
		}
		if md.School == "" {
			md.School = doc.School
		}
	}

	if md.Reviewer == "" {
		md.Reviewer = extract.UnknownReviewer
	}
	if md.School == "" {
		md.School = extract.UnknownSchool
	}
	return md, err
}
