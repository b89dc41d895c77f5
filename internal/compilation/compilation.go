// Package compilation accumulates comments from every document of a batch.
package compilation

import (
	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/sections"
)

// Section is one non-empty report section.
type Section struct {
	Key       sections.Key
	Strengths []extract.Comment
	Concerns  []extract.Comment
}

// Comments returns the list for kind.
func (s Section) Comments(kind extract.Kind) []extract.Comment {
	if kind == extract.Strength {
		return s.Strengths
	}
	return s.Concerns
}

type dedupKey struct {
	section string
	kind    extract.Kind
	text    string
}

// Counts summarizes what Add saw.
type Counts struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Rejected   int `json:"rejected"`
}

// Result maps section keys to their deduplicated comments. The first comment
// added with a given text in a section and kind is kept; later ones are
// counted as duplicates. Callers merge documents in a fixed order to make the
// kept attribution deterministic. Result is not safe for concurrent use.
type Result struct {
	School string

	profile *sections.Profile
	entries map[string]*Section
	adHoc   []string
	general bool
	seen    map[dedupKey]bool
	counts  Counts
}

// New returns an empty result ordered by profile.
func New(profile *sections.Profile) *Result {
	return &Result{
		profile: profile,
		entries: make(map[string]*Section),
		seen:    make(map[dedupKey]bool),
	}
}

// Add merges one comment and reports whether it was kept.
func (r *Result) Add(c extract.Comment) bool {
	if !extract.ValidateComment(&c) {
		r.counts.Rejected++
		return false
	}
	k := dedupKey{section: c.Section.ID, kind: c.Kind, text: c.Text}
	if r.seen[k] {
		r.counts.Duplicates++
		return false
	}
	r.seen[k] = true

	e, ok := r.entries[c.Section.ID]
	if !ok {
		e = &Section{Key: c.Section}
		r.entries[c.Section.ID] = e
		switch {
		case c.Section.Kind == sections.General:
			r.general = true
		case !r.canonical(c.Section.ID):
			r.adHoc = append(r.adHoc, c.Section.ID)
		}
	}
	if c.Kind == extract.Strength {
		e.Strengths = append(e.Strengths, c)
	} else {
		e.Concerns = append(e.Concerns, c)
	}
	r.counts.Added++
	return true
}

// AddAll merges comments in order and returns how many were kept.
func (r *Result) AddAll(cs []extract.Comment) int {
	n := 0
	for _, c := range cs {
		if r.Add(c) {
			n++
		}
	}
	return n
}

func (r *Result) canonical(id string) bool {
	if r.profile == nil {
		return false
	}
	_, ok := r.profile.ByID(id)
	return ok
}

// Sections returns the non-empty sections: canonical ones in profile order,
// then ad hoc ones in the order first seen, then General Comments.
func (r *Result) Sections() []Section {
	var out []Section
	if r.profile != nil {
		for _, k := range r.profile.Keys() {
			if e, ok := r.entries[k.ID]; ok {
				out = append(out, *e)
			}
		}
	}
	for _, id := range r.adHoc {
		out = append(out, *r.entries[id])
	}
	if r.general {
		out = append(out, *r.entries[sections.GeneralKey().ID])
	}
	return out
}

// Len returns the number of kept comments.
func (r *Result) Len() int {
	return r.counts.Added
}

// Counts returns the merge counters.
func (r *Result) Counts() Counts {
	return r.counts
}
