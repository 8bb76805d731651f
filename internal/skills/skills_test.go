package skills

import (
	"testing"
)

func TestGap(t *testing.T) {
	tests := []struct {
		current, required Level
		want              int
	}{
		{Novice, Advanced, 3},
		{Intermediate, Advanced, 1},
		{Advanced, Advanced, 0},
		{Expert, Beginner, 0},
	}
	for _, tt := range tests {
		if got := Gap(tt.current, tt.required); got != tt.want {
			t.Errorf("Gap(%s, %s) = %d, want %d", tt.current, tt.required, got, tt.want)
		}
	}
}

func TestSubLevel(t *testing.T) {
	tests := []struct {
		target Level
		want   Level
	}{
		{Expert, Advanced},
		{Advanced, Intermediate},
		{Intermediate, Beginner},
		{Beginner, Beginner},
		{Novice, Beginner},
	}
	for _, tt := range tests {
		if got := SubLevel(tt.target); got != tt.want {
			t.Errorf("SubLevel(%s) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range AllLevels() {
		got, err := ParseLevel(l.String())
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", l.String(), err)
		}
		if got != l {
			t.Errorf("ParseLevel(%q) = %s, want %s", l.String(), got, l)
		}
	}

	got, err := ParseLevel("  advanced ")
	if err != nil || got != Advanced {
		t.Errorf("ParseLevel lower-case: got %s, %v", got, err)
	}

	if _, err := ParseLevel("wizard"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("intermediate")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l != Intermediate {
		t.Errorf("got %s, want INTERMEDIATE", l)
	}
	b, err := Expert.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "EXPERT" {
		t.Errorf("got %q, want EXPERT", b)
	}
	if _, err := Level(42).MarshalText(); err == nil {
		t.Error("expected error for out-of-range level")
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Machine Learning":       "machine learning",
		"  machine   LEARNING  ": "machine learning",
		"SQL":                    "sql",
		"":                       "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTaxonomy_Recognized(t *testing.T) {
	tax := DefaultTaxonomy()
	if !tax.Recognized("machine learning") {
		t.Error("expected machine learning to be recognized")
	}
	if tax.Recognized("Quantum Telepathy") {
		t.Error("Quantum Telepathy must not be recognized")
	}
	name, ok := tax.Canonical("  python ")
	if !ok || name != "Python" {
		t.Errorf("Canonical(python) = %q, %v", name, ok)
	}
}

func TestTaxonomy_With(t *testing.T) {
	base := DefaultTaxonomy()
	ext := base.With("Pandas", "Python")

	if !ext.Recognized("pandas") {
		t.Error("extended taxonomy should recognize Pandas")
	}
	if base.Recognized("pandas") {
		t.Error("With must not mutate the receiver")
	}
	if ext.Category("Pandas") != CategoryOther {
		t.Errorf("new skill category = %q, want other", ext.Category("Pandas"))
	}
	if ext.Category("Python") != CategoryProgramming {
		t.Errorf("existing skill category changed to %q", ext.Category("Python"))
	}
}

func TestTaxonomy_Implied(t *testing.T) {
	tax := DefaultTaxonomy()
	got := tax.Implied("Machine Learning")
	want := []string{"Python", "Statistics", "Data Analysis"}
	if len(got) != len(want) {
		t.Fatalf("Implied(ML) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Implied(ML)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(tax.Implied("Python")) != 0 {
		t.Error("Python should have no implied prerequisites")
	}

	// Every implied prerequisite must itself be recognized.
	for name := range builtinImplied {
		for _, p := range tax.Implied(name) {
			if !tax.Recognized(p) {
				t.Errorf("implied prerequisite %q of %q is not recognized", p, name)
			}
		}
	}
}

func TestTaxonomy_ByCategory(t *testing.T) {
	tax := DefaultTaxonomy()
	for _, c := range AllCategories() {
		if len(tax.ByCategory(c)) == 0 {
			t.Errorf("category %q has no skills", c)
		}
	}
}
