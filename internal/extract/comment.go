// Package extract classifies section text into strength and concern comments.
package extract

import (
	"fmt"
	"strings"

	"github.com/dgallion1/charterreview/internal/sections"
)

// Kind is the comment category.
type Kind string

const (
	Strength Kind = "strength"
	Concern  Kind = "concern"
)

// Kinds lists the comment kinds in report order.
var Kinds = []Kind{Strength, Concern}

// Heading returns the report subheading for k.
func (k Kind) Heading() string {
	switch k {
	case Strength:
		return "Strengths"
	case Concern:
		return "Concerns"
	}
	return string(k)
}

// Fragment is a classified piece of section text before it is attributed.
type Fragment struct {
	Kind Kind
	Text string
}

// Comment is one attributed reviewer comment.
type Comment struct {
	Reviewer      string       `json:"reviewer"`
	Section       sections.Key `json:"section"`
	Kind          Kind         `json:"kind"`
	Text          string       `json:"text"`
	PageReference string       `json:"page_reference,omitempty"`
}

// Attribute turns fragments from one section into comments by reviewer.
func Attribute(reviewer string, section sections.Key, frags []Fragment) []Comment {
	out := make([]Comment, 0, len(frags))
	for _, f := range frags {
		out = append(out, Comment{
			Reviewer:      reviewer,
			Section:       section,
			Kind:          f.Kind,
			Text:          f.Text,
			PageReference: PageReference(f.Text),
		})
	}
	return out
}

func (c Comment) String() string {
	return fmt.Sprintf("%s/%s %s: %s", c.Section.Title, c.Kind, c.Reviewer, strings.ReplaceAll(c.Text, "\n", " "))
}
