package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one node of a rendered report's outline.
type Heading struct {
	Level    int
	Title    string
	Items    int // List items directly under this heading
	Children []*Heading
}

// Outline parses Markdown and nests its headings by level.
func Outline(src []byte) []*Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	root := &Heading{}
	stack := []*Heading{root}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			h := &Heading{Level: node.Level, Title: headingText(node, src)}
			for len(stack) > 1 && stack[len(stack)-1].Level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, h)
			stack = append(stack, h)
		case *ast.List:
			stack[len(stack)-1].Items += node.ChildCount()
		}
	}
	return root.Children
}

func headingText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			continue
		}
		buf.WriteString(headingText(c, src))
	}
	return strings.TrimSpace(buf.String())
}

// Validate checks that md has the report's shape: one title heading, section
// headings under it, and only Strengths or Concerns subsections holding
// comments.
func Validate(md []byte) error {
	top := Outline(md)
	if len(top) != 1 || top[0].Level != 1 || top[0].Title != Title {
		return fmt.Errorf("report must start with a single %q heading", Title)
	}
	for _, sec := range top[0].Children {
		if sec.Level != 2 {
			return fmt.Errorf("heading %q: expected level 2, got %d", sec.Title, sec.Level)
		}
		if sec.Items > 0 {
			return fmt.Errorf("section %q: comments outside a subsection", sec.Title)
		}
		for _, sub := range sec.Children {
			if sub.Title != "Strengths" && sub.Title != "Concerns" {
				return fmt.Errorf("section %q: unexpected subsection %q", sec.Title, sub.Title)
			}
			if sub.Items == 0 {
				return fmt.Errorf("section %q: empty %s", sec.Title, sub.Title)
			}
		}
	}
	return nil
}

// HTML converts a Markdown report to an HTML fragment.
func HTML(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
