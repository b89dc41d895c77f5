package sections

import (
	"os"
	"path/filepath"
	"testing"
)

func mustGet(t *testing.T, at AppType) *Profile {
	t.Helper()
	p, err := Builtin().Get(at)
	if err != nil {
		t.Fatalf("get %s: %v", at, err)
	}
	return p
}

func TestBuiltinProfileSizes(t *testing.T) {
	tests := map[AppType]int{Standard: 22, Virtual: 18, HighPerforming: 12}
	for at, want := range tests {
		if got := mustGet(t, at).Len(); got != want {
			t.Errorf("%s: expected %d sections, got %d", at, want, got)
		}
	}
}

func TestTitleIsFirstAlias(t *testing.T) {
	p := mustGet(t, Standard)
	k, ok := p.ByID("05-Assessment")
	if !ok {
		t.Fatal("05-Assessment missing")
	}
	if k.Title != "Section 5: Student Performance" {
		t.Errorf("expected first alias as title, got %q", k.Title)
	}
	if k.Position != 5 || k.Kind != Canonical {
		t.Errorf("unexpected key %+v", k)
	}
}

func TestLookup_ManyAliasesOneKey(t *testing.T) {
	p := mustGet(t, Standard)
	for _, alias := range []string{
		"Section 5: Student Performance",
		"5. Student Performance, Assessment and Evaluation",
		"5.  Student   Performance",
		"\t5. Student Performance ",
	} {
		k, ok := p.Lookup(alias)
		if !ok || k.ID != "05-Assessment" {
			t.Errorf("Lookup(%q) = %+v, %v", alias, k, ok)
		}
	}
	if _, ok := p.Lookup("Student Performance overview"); ok {
		t.Error("exact lookup should not match partial text")
	}
}

func TestMatch_Bidirectional(t *testing.T) {
	p := mustGet(t, Standard)
	tests := []struct {
		text string
		want string
	}{
		{"Mission, Guiding Principles and Purpose", "01-Mission"},
		{"Section 20: Budget - Evaluation", "20-Budget"},
		{"BUDGET", "20-Budget"},
		{"Transportation Service", "17-Transportation"},
		{"financial management and oversight", "21-Fiscal Management"},
	}
	for _, tt := range tests {
		k, ok := p.Match(tt.text)
		if !ok || k.ID != tt.want {
			t.Errorf("Match(%q) = %q, %v; want %q", tt.text, k.ID, ok, tt.want)
		}
	}
}

func TestMatch_ShortTextDoesNotMatchInsideAlias(t *testing.T) {
	p := mustGet(t, Standard)
	for _, text := range []string{"a", "an", "Section", ""} {
		if k, ok := p.Match(text); ok {
			t.Errorf("Match(%q) unexpectedly matched %q", text, k.ID)
		}
	}
}

func TestMatch_FirstSectionWins(t *testing.T) {
	// "Student Performance" is contained in 05's aliases; 04 comes first but does not match.
	p := mustGet(t, Standard)
	k, ok := p.Match("Student Performance")
	if !ok || k.ID != "05-Assessment" {
		t.Errorf("expected 05-Assessment, got %q", k.ID)
	}
}

func TestHighPerformingKeysShareIDs(t *testing.T) {
	p := mustGet(t, HighPerforming)
	k, ok := p.Lookup("Section 4: Student Performance")
	if !ok || k.ID != "05-Assessment" || k.Position != 4 {
		t.Errorf("unexpected key %+v", k)
	}
}

func TestSpecialKeys(t *testing.T) {
	g := GeneralKey()
	if g.Title != "General Comments" || g.Kind != General {
		t.Errorf("unexpected general key %+v", g)
	}
	a := AdHocKey("  Addendum A:  Virtual Instruction ")
	if a.Title != "Addendum A: Virtual Instruction" || a.Kind != AdHoc {
		t.Errorf("unexpected ad hoc key %+v", a)
	}
	if AdHocKey("X") != AdHocKey(" X ") {
		t.Error("ad hoc keys should be comparable after normalization")
	}
}

func TestParseAppType(t *testing.T) {
	tests := map[string]AppType{
		"standard": Standard, "1": Standard, "Virtual": Virtual, "2": Virtual,
		"high_performing": HighPerforming, "3": HighPerforming, "auto": Auto,
	}
	for in, want := range tests {
		got, err := ParseAppType(in)
		if err != nil || got != want {
			t.Errorf("ParseAppType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseAppType("charter"); err == nil {
		t.Error("expected error")
	}
}

func TestDetectApplicationType(t *testing.T) {
	tests := map[string]AppType{
		"Florida Charter School VIRTUAL APPLICATION Evaluation":   Virtual,
		"High Performing System Replication Application":          HighPerforming,
		"Model Florida Charter School Application Evaluation Form": Standard,
	}
	for text, want := range tests {
		if got := DetectApplicationType(text); got != want {
			t.Errorf("DetectApplicationType(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestLoadRegistry_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	data := `profiles:
  virtual:
    name: Virtual 2026
    sections:
      - id: 01-Mission
        short: Mission
        aliases: ["Section 1: Mission", "1. Mission"]
      - id: 02-Budget
        aliases: ["Section 2: Budget"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	v, _ := r.Get(Virtual)
	if v.Len() != 2 || v.Name != "Virtual 2026" {
		t.Errorf("override not applied: %d sections, name %q", v.Len(), v.Name)
	}
	s, _ := r.Get(Standard)
	if s.Len() != 22 {
		t.Errorf("standard profile should be untouched, got %d", s.Len())
	}
	if k, ok := v.Lookup("1. Mission"); !ok || k.ID != "01-Mission" {
		t.Errorf("lookup in override failed: %+v", k)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown.yaml":   "profiles:\n  charter:\n    sections:\n      - id: a\n        aliases: [x]\n",
		"empty.yaml":     "profiles:\n  standard:\n    sections: []\n",
		"dup.yaml":       "profiles:\n  standard:\n    sections:\n      - id: a\n        aliases: [x]\n      - id: a\n        aliases: [y]\n",
		"malformed.yaml": "profiles: [",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRegistry(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadRegistry(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
