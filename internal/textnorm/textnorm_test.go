package textnorm

import "testing"

func TestCollapse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Section 1:\tMission  ", "Section 1: Mission"},
		{"a\n\nb", "a b"},
		{"", ""},
		{"café", "café"},
	}
	for _, tt := range tests {
		if got := Collapse(tt.in); got != tt.want {
			t.Errorf("Collapse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	if !EqualFold("STRENGTHS", " strengths ") {
		t.Error("expected case-insensitive match")
	}
	if !ContainsFold("5. Student Performance, Assessment", "student  PERFORMANCE") {
		t.Error("expected folded containment")
	}
	if ContainsFold("Budget", "Facilities") {
		t.Error("unexpected containment")
	}
}
