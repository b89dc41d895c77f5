package extract

import (
	"strings"
	"unicode/utf8"
)

// Placeholders used when metadata is missing.
const (
	UnknownReviewer = "Unknown Reviewer"
	UnknownSchool   = "Unknown School"
)

var validKinds = map[Kind]bool{
	Strength: true,
	Concern:  true,
}

// MaxCommentLength bounds a single comment. Longer text is almost always a
// whole form pasted into one cell.
const MaxCommentLength = 4000

// ValidateComment checks a comment before it is compiled. Returns true if valid.
func ValidateComment(c *Comment) bool {
	if c == nil {
		return false
	}
	text := strings.TrimSpace(c.Text)
	if text == "" || utf8.RuneCountInString(text) > MaxCommentLength {
		return false
	}
	if !validKinds[c.Kind] {
		return false
	}
	if c.Section.ID == "" || c.Section.Title == "" {
		return false
	}
	c.Text = text
	// Missing reviewer degrades to the placeholder.
	if strings.TrimSpace(c.Reviewer) == "" {
		c.Reviewer = UnknownReviewer
	}
	return true
}
