package catalog

import (
	"testing"
)

func TestRatingCategory(t *testing.T) {
	cases := map[string]string{
		"TV-Y":     "Kids",
		"TV-Y7":    "Kids",
		"TV-Y7-FV": "Kids",
		"TV-G":     "Kids",
		"G":        "Kids",
		"PG":       "Family",
		"TV-PG":    "Family",
		"PG-13":    "Teen",
		"TV-14":    "Teen",
		"R":        "Adult",
		"TV-MA":    "Adult",
		"NC-17":    "Adult",
		"NR":       "Adult",
		"UR":       "Adult",
		"74 min":   "",
		"":         "",
	}
	for rating, want := range cases {
		if got := RatingCategory(rating); got != want {
			t.Errorf("RatingCategory(%q) = %q, want %q", rating, got, want)
		}
	}
}

func TestParseDateAdded(t *testing.T) {
	d := ParseDateAdded("September 9, 2021")
	if d == nil {
		t.Fatal("expected a parsed date")
	}
	if d.Year() != 2021 || d.Month() != 9 || d.Day() != 9 {
		t.Fatalf("unexpected date: %v", d)
	}

	if ParseDateAdded(" January 1, 2020") == nil {
		t.Fatal("expected leading whitespace to be tolerated")
	}
	if ParseDateAdded("2021-09-09") != nil {
		t.Fatal("expected ISO dates to fail the free-text layout")
	}
	if ParseDateAdded("") != nil {
		t.Fatal("expected blank to parse to nil")
	}
}

func TestParseDurationMinutes(t *testing.T) {
	if v := ParseDurationMinutes("90 min"); v == nil || *v != 90 {
		t.Fatalf("90 min: got %v", v)
	}
	if v := ParseDurationMinutes("1 Season"); v == nil || *v != 600 {
		t.Fatalf("1 Season: got %v", v)
	}
	if v := ParseDurationMinutes("2 Seasons"); v == nil || *v != 1200 {
		t.Fatalf("2 Seasons: got %v", v)
	}
	// Unit matching is case-insensitive.
	if v := ParseDurationMinutes("3 SEASONS"); v == nil || *v != 1800 {
		t.Fatalf("3 SEASONS: got %v", v)
	}
	if v := ParseDurationMinutes("90 episodes"); v != nil {
		t.Fatalf("unknown unit should yield nil, got %v", *v)
	}
	if v := ParseDurationMinutes(""); v != nil {
		t.Fatalf("blank should yield nil, got %v", *v)
	}
	if v := ParseDurationMinutes("min"); v != nil {
		t.Fatalf("unit without value should yield nil, got %v", *v)
	}
}

func TestSplitMultiValued(t *testing.T) {
	got := SplitMultiValued("United States, France , ,Japan")
	want := []string{"United States", "France", "Japan"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if SplitMultiValued("") != nil {
		t.Fatal("expected nil for blank input")
	}
}

func TestSplitMultiValued_NoCaseFolding(t *testing.T) {
	got := SplitMultiValued("USA, usa")
	if len(got) != 2 || got[0] == got[1] {
		t.Fatalf("expected USA and usa to stay distinct, got %v", got)
	}
}

func TestParseGross(t *testing.T) {
	if v := ParseGross("28,341,469"); v != 28.341469 {
		t.Fatalf("got %v", v)
	}
	if v := ParseGross(""); v != 0 {
		t.Fatalf("blank should be 0, got %v", v)
	}
	if v := ParseGross("n/a"); v != 0 {
		t.Fatalf("malformed should be 0, got %v", v)
	}
}

func TestMode(t *testing.T) {
	if got := mode([]string{"a", "b", "b", "a", "b"}); got != "b" {
		t.Fatalf("got %q", got)
	}
	// First-seen wins ties, blanks are ignored.
	if got := mode([]string{"", "x", "y", "x", "y"}); got != "x" {
		t.Fatalf("got %q", got)
	}
	if got := mode(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}
