package layout

import "testing"

func TestMarkHyphenPointsUsesSimplePoints(t *testing.T) {
	dict := WordDict{
		"hyphenation": []HyphenPoint{
			{}, {}, {Hyphens: 1}, {}, {}, {}, {}, {Hyphens: 1}, {}, {},
		},
	}
	hyph := MapHyphenator{"en": dict}
	u := []rune("hyphenation")
	langOf := func(i int) string { return "en" }

	marks := markHyphenPoints(u, langOf, hyph)
	if len(marks) != len(u) {
		t.Fatalf("len(marks) = %d, want %d", len(marks), len(u))
	}
	if !marks[2] {
		t.Errorf("marks[2] = false, want a hyphen point at the odd-count entry")
	}
	if !marks[7] {
		t.Errorf("marks[7] = false, want a hyphen point at the second odd-count entry")
	}
	count := 0
	for _, m := range marks {
		if m {
			count++
		}
	}
	if count != 2 {
		t.Errorf("found %d marks, want exactly 2", count)
	}
}

func TestMarkHyphenPointsIgnoresComplexAndEvenEntries(t *testing.T) {
	dict := WordDict{
		"cat": []HyphenPoint{
			{Hyphens: 2},                  // even count, ignored
			{Hyphens: 1, Replacement: "k"}, // complex, ignored
		},
	}
	hyph := MapHyphenator{"en": dict}
	u := []rune("cat")
	marks := markHyphenPoints(u, func(int) string { return "en" }, hyph)
	for i, m := range marks {
		if m {
			t.Errorf("marks[%d] = true, want no marks for even/complex entries", i)
		}
	}
}

func TestMarkHyphenPointsSkipsWordsWithUserHyphen(t *testing.T) {
	dict := WordDict{"abcde": []HyphenPoint{{}, {}, {Hyphens: 1}, {}}}
	hyph := MapHyphenator{"en": dict}
	u := []rune{'a', 'b', softHyphen, 'c', 'd', 'e'}
	marks := markHyphenPoints(u, func(int) string { return "en" }, hyph)
	for i, m := range marks {
		if m {
			t.Errorf("marks[%d] = true, want no dictionary marks once a soft hyphen is already present", i)
		}
	}
}

func TestMarkHyphenPointsNoLanguageNoDictionary(t *testing.T) {
	u := []rune("hyphenation")
	marks := markHyphenPoints(u, func(int) string { return "" }, MapHyphenator{})
	for i, m := range marks {
		if m {
			t.Errorf("marks[%d] = true, want no marks when no language tag is present", i)
		}
	}
}

func TestMarkHyphenPointsNilHyphenator(t *testing.T) {
	u := []rune("hyphenation")
	marks := markHyphenPoints(u, func(int) string { return "en" }, nil)
	if len(marks) != len(u) {
		t.Fatalf("len(marks) = %d, want %d", len(marks), len(u))
	}
	for i, m := range marks {
		if m {
			t.Errorf("marks[%d] = true, want no marks with a nil hyphenator", i)
		}
	}
}
