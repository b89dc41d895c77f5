package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/charterreview/internal/doctree"
	"github.com/dgallion1/charterreview/internal/testdocx"
)

const (
	legacyCheckedBox = `<w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:name w:val="Check1"/>` +
		`<w:enabled/><w:checkBox><w:sizeAuto/><w:default w:val="0"/><w:checked w:val="1"/></w:checkBox>` +
		`</w:ffData></w:fldChar></w:r><w:r><w:instrText xml:space="preserve"> FORMCHECKBOX </w:instrText></w:r>` +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r>`
)

func gatherBody(t *testing.T, body string, strategy CellStrategy) doctree.LineStream {
	t.Helper()
	return Gather(parseBody(t, body), strategy)
}

func TestGather_BodyOrderPreserved(t *testing.T) {
	body := testdocx.P("First") +
		testdocx.Table(testdocx.TextRow("r1a", "r1b"), testdocx.TextRow("r2a", "r2b")) +
		testdocx.P("Middle") +
		testdocx.Table(testdocx.TextRow("only")) +
		testdocx.P("Last")

	lines := gatherBody(t, body, CellSubstitute)
	want := []string{"First", "r1a\tr1b", "r2a\tr2b", "Middle", "only", "Last"}
	got := lines.Strings()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if lines[0].IsRow() || !lines[1].IsRow() || lines[1].Table != 0 || lines[4].Table != 1 {
		t.Errorf("unexpected line origins: %+v", lines)
	}
}

func TestGather_EmptyParagraphsAndRowsDropped(t *testing.T) {
	body := testdocx.P("  ") + testdocx.P("") +
		testdocx.Table(testdocx.TextRow("", " "), testdocx.TextRow("x", "")) +
		testdocx.P("kept")
	got := gatherBody(t, body, CellSubstitute).Strings()
	if len(got) != 2 || got[0] != "x" || got[1] != "kept" {
		t.Errorf("unexpected lines: %q", got)
	}
}

func TestGather_TabsAndBreaks(t *testing.T) {
	body := `<w:p><w:r><w:t>Type</w:t><w:tab/><w:t>Ref</w:t><w:br/><w:t>Next</w:t></w:r></w:p>`
	got := gatherBody(t, body, CellSubstitute).Strings()
	if len(got) != 1 || got[0] != "Type\tRef\nNext" {
		t.Errorf("unexpected lines: %q", got)
	}
}

func TestGather_CheckboxContentControl(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  string
	}{
		{"checked one", `<w14:checked w14:val="1"/>`, "☒ Yes"},
		{"checked true", `<w14:checked w14:val="true"/>`, "☒ Yes"},
		{"unchecked", `<w14:checked w14:val="0"/>`, "☐ Yes"},
		{"missing value", `<w14:checked/>`, "☒ Yes"},
		{"w namespace value", `<w14:checked w:val="on"/>`, "☒ Yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `<w:p><w:sdt><w:sdtPr><w14:checkbox>` + tt.state +
				`</w14:checkbox></w:sdtPr><w:sdtContent><w:r><w:t>Yes</w:t></w:r></w:sdtContent></w:sdt></w:p>`
			got := gatherBody(t, body, CellSubstitute).Strings()
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGather_CheckboxInTableCell(t *testing.T) {
	// Content control wrapping a nested paragraph, as Word writes for some forms.
	cell := `<w:p><w:sdt><w:sdtPr><w14:checkbox><w14:checked w14:val="1"/></w14:checkbox></w:sdtPr>` +
		`<w:sdtContent><w:p><w:r><w:t>Yes</w:t></w:r></w:p></w:sdtContent></w:sdt></w:p>`
	body := testdocx.Table(testdocx.Row(cell, testdocx.P("Regular text")))
	got := gatherBody(t, body, CellSubstitute).Strings()
	if len(got) != 1 || got[0] != "☒ Yes\tRegular text" {
		t.Errorf("unexpected lines: %q", got)
	}
}

func TestGather_BlockLevelCheckboxControl(t *testing.T) {
	control := func(val, content string) string {
		return `<w:sdt><w:sdtPr><w14:checkbox><w14:checked w14:val="` + val + `"/></w14:checkbox></w:sdtPr>` +
			`<w:sdtContent>` + content + `</w:sdtContent></w:sdt>`
	}
	body := control("1", testdocx.P("Meets the Standard")) +
		control("0", testdocx.P("Does Not Meet the Standard")+testdocx.P("Second paragraph")) +
		testdocx.Table(testdocx.Row(control("1", testdocx.P("Partially Meets")), testdocx.P("Notes")))

	got := gatherBody(t, body, CellSubstitute).Strings()
	want := []string{
		"☒ Meets the Standard",
		"☐ Does Not Meet the Standard",
		"Second paragraph",
		"☒ Partially Meets\tNotes",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGather_PlainContentControl(t *testing.T) {
	body := `<w:p><w:r><w:t xml:space="preserve">Name: </w:t></w:r><w:sdt><w:sdtPr><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Jane Doe</w:t></w:r></w:sdtContent></w:sdt></w:p>`
	got := gatherBody(t, body, CellSubstitute).Strings()
	if len(got) != 1 || got[0] != "Name: Jane Doe" {
		t.Errorf("unexpected lines: %q", got)
	}
}

func TestGather_LegacyCheckboxNextToLabel(t *testing.T) {
	cell := `<w:p>` + legacyCheckedBox + `<w:r><w:t>Meets Standard</w:t></w:r></w:p>`
	body := testdocx.Table(testdocx.Row(cell))
	got := gatherBody(t, body, CellSubstitute).Strings()
	if len(got) != 1 || got[0] != "☒ Meets Standard" {
		t.Errorf("expected %q, got %q", "☒ Meets Standard", got)
	}
}

func TestGather_LegacyFieldValues(t *testing.T) {
	tests := []struct {
		name   string
		ffData string
		want   string
	}{
		{"checkbox default only", `<w:checkBox><w:default w:val="1"/></w:checkBox>`, "☒"},
		{"checkbox checked overrides default", `<w:checkBox><w:default w:val="1"/><w:checked w:val="0"/></w:checkBox>`, "☐"},
		{"checkbox without state", `<w:checkBox><w:sizeAuto/></w:checkBox>`, "☐"},
		{"checkbox bare checked", `<w:checkBox><w:default w:val="0"/><w:checked/></w:checkBox>`, "☒"},
		{"text default", `<w:textInput><w:default w:val="Draft"/></w:textInput>`, "Draft"},
		{"dropdown result", `<w:ddList><w:result w:val="2"/></w:ddList>`, "2"},
		{"empty text", `<w:textInput><w:maxLength w:val="20"/></w:textInput>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `<w:p><w:r><w:t>A</w:t></w:r><w:r><w:fldChar w:fldCharType="begin"><w:ffData>` +
				tt.ffData + `</w:ffData></w:fldChar></w:r><w:r><w:t>B</w:t></w:r></w:p>`
			got := gatherBody(t, body, CellSubstitute).Strings()
			want := "A" + tt.want + "B"
			if strings.HasPrefix(tt.want, "☒") || strings.HasPrefix(tt.want, "☐") {
				want = "A " + tt.want + " B"
			}
			if len(got) != 1 || got[0] != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestGather_CheckboxResolutionIsBinary(t *testing.T) {
	values := []string{"1", "0", "true", "false", "on", "off", "True", "TRUE", "yes", ""}
	for _, v := range values {
		body := `<w:p><w:sdt><w:sdtPr><w14:checkbox><w14:checked w14:val="` + v +
			`"/></w14:checkbox></w:sdtPr><w:sdtContent/></w:sdt></w:p>`
		got := gatherBody(t, body, CellSubstitute).Strings()
		if len(got) != 1 {
			t.Fatalf("value %q: expected one line, got %q", v, got)
		}
		checked := strings.Count(got[0], doctree.Checked)
		unchecked := strings.Count(got[0], doctree.Unchecked)
		if checked+unchecked != 1 {
			t.Errorf("value %q: expected exactly one symbol, got %q", v, got[0])
		}
	}
}

func TestGather_NestedTableInCell(t *testing.T) {
	nested := testdocx.Table(testdocx.TextRow("n1", "n2"), testdocx.TextRow("n3", "n4"))
	body := testdocx.Table(testdocx.Row(testdocx.P("outer")+nested, testdocx.P("right")))
	got := gatherBody(t, body, CellSubstitute).Strings()
	want := "outer\nn1\tn2\nn3\tn4\tright"
	if len(got) != 1 || got[0] != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCellText_AppendStrategy(t *testing.T) {
	cell := `<w:p><w:r><w:t>Meets Standard</w:t></w:r>` + legacyCheckedBox + `</w:p>`
	body := testdocx.Table(testdocx.Row(cell))

	got := gatherBody(t, body, CellAppend).Strings()
	if len(got) != 1 || got[0] != "Meets Standard ☒" {
		t.Errorf("expected %q, got %q", "Meets Standard ☒", got)
	}
}

func TestCellText_AppendSkipsDuplicateValues(t *testing.T) {
	// Text field whose displayed result already appears in the run text.
	cell := `<w:p><w:r><w:fldChar w:fldCharType="begin"><w:ffData><w:textInput><w:default w:val="12"/>` +
		`</w:textInput></w:ffData></w:fldChar></w:r><w:r><w:fldChar w:fldCharType="separate"/></w:r>` +
		`<w:r><w:t>12</w:t></w:r><w:r><w:fldChar w:fldCharType="end"/></w:r></w:p>`
	body := testdocx.Table(testdocx.Row(cell))
	got := gatherBody(t, body, CellAppend).Strings()
	if len(got) != 1 || got[0] != "12" {
		t.Errorf("expected %q, got %q", "12", got)
	}
}

func TestParseCellStrategy(t *testing.T) {
	for in, want := range map[string]CellStrategy{"": CellSubstitute, "Append": CellAppend, "substitute": CellSubstitute} {
		got, err := ParseCellStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseCellStrategy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseCellStrategy("merge"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
