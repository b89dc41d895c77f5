package compilation

import (
	"testing"

	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standard(t *testing.T) *sections.Profile {
	t.Helper()
	p, err := sections.Builtin().Get(sections.Standard)
	require.NoError(t, err)
	return p
}

func key(t *testing.T, p *sections.Profile, id string) sections.Key {
	t.Helper()
	k, ok := p.ByID(id)
	require.True(t, ok, id)
	return k
}

func TestAdd_FirstSeenWinsAcrossReviewers(t *testing.T) {
	p := standard(t)
	r := New(p)
	budget := key(t, p, "20-Budget")

	// Documents are merged in file name order; Adams sorts before Baker.
	assert.True(t, r.Add(extract.Comment{Reviewer: "Adams", Section: budget, Kind: extract.Concern, Text: "Budget narrative incomplete"}))
	assert.False(t, r.Add(extract.Comment{Reviewer: "Baker", Section: budget, Kind: extract.Concern, Text: "Budget narrative incomplete"}))

	secs := r.Sections()
	require.Len(t, secs, 1)
	require.Len(t, secs[0].Concerns, 1)
	assert.Equal(t, "Adams", secs[0].Concerns[0].Reviewer)
	assert.Equal(t, Counts{Added: 1, Duplicates: 1}, r.Counts())
}

func TestAdd_DedupIsPerSectionAndKind(t *testing.T) {
	p := standard(t)
	r := New(p)
	budget := key(t, p, "20-Budget")
	mission := key(t, p, "01-Mission")
	text := "Needs more detail"

	assert.True(t, r.Add(extract.Comment{Reviewer: "A", Section: budget, Kind: extract.Concern, Text: text}))
	assert.True(t, r.Add(extract.Comment{Reviewer: "A", Section: budget, Kind: extract.Strength, Text: text}))
	assert.True(t, r.Add(extract.Comment{Reviewer: "A", Section: mission, Kind: extract.Concern, Text: text}))
	assert.False(t, r.Add(extract.Comment{Reviewer: "B", Section: mission, Kind: extract.Concern, Text: text}))
	assert.Equal(t, 3, r.Len())
}

func TestAdd_RejectsInvalid(t *testing.T) {
	r := New(standard(t))
	assert.False(t, r.Add(extract.Comment{Reviewer: "A", Section: sections.GeneralKey(), Kind: extract.Strength, Text: "  "}))
	assert.False(t, r.Add(extract.Comment{Reviewer: "A", Kind: extract.Strength, Text: "No section"}))
	assert.Equal(t, 2, r.Counts().Rejected)
	assert.Empty(t, r.Sections())
}

func TestSections_Order(t *testing.T) {
	p := standard(t)
	r := New(p)
	addendum := sections.AdHocKey("Addendum A: Virtual Instruction")
	other := sections.AdHocKey("Addendum B: Conversion")

	r.AddAll([]extract.Comment{
		{Reviewer: "A", Section: sections.GeneralKey(), Kind: extract.Strength, Text: "general"},
		{Reviewer: "A", Section: addendum, Kind: extract.Concern, Text: "addendum a"},
		{Reviewer: "A", Section: key(t, p, "20-Budget"), Kind: extract.Concern, Text: "budget"},
		{Reviewer: "A", Section: other, Kind: extract.Concern, Text: "addendum b"},
		{Reviewer: "A", Section: key(t, p, "03-Ed Design"), Kind: extract.Strength, Text: "design"},
	})

	var titles []string
	for _, s := range r.Sections() {
		titles = append(titles, s.Key.Title)
	}
	assert.Equal(t, []string{
		"Section 3: Educational Program Design",
		"Section 20: Budget",
		"Addendum A: Virtual Instruction",
		"Addendum B: Conversion",
		"General Comments",
	}, titles)
}

func TestAdd_FillsMissingReviewer(t *testing.T) {
	r := New(standard(t))
	r.Add(extract.Comment{Section: sections.GeneralKey(), Kind: extract.Strength, Text: "anonymous"})
	secs := r.Sections()
	require.Len(t, secs, 1)
	assert.Equal(t, extract.UnknownReviewer, secs[0].Comments(extract.Strength)[0].Reviewer)
}
