package catalog

import (
	"strconv"
	"strings"
	"time"
)

// dateAddedLayout matches free-text dates like "September 9, 2021".
const dateAddedLayout = "January 2, 2006"

// ratingCategories maps content rating codes to coarse categories.
// Ratings outside this table produce no category.
var ratingCategories = map[string]string{
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
}

// RatingCategory returns the coarse category for a rating code, or "" when
// the code is unmapped. Pure lookup, never fails.
func RatingCategory(rating string) string {
	return ratingCategories[rating]
}

// ParseDateAdded parses a free-text date like "September 9, 2021".
// Returns nil on failure rather than an error so malformed rows coerce to
// a null date instead of aborting the load.
func ParseDateAdded(s string) *time.Time {
	t, err := time.Parse(dateAddedLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// ParseDurationMinutes converts free-text durations to minutes:
// "90 min" -> 90, "2 Seasons" -> 1200 (each season counts as 600 minutes).
// Any other or missing unit yields nil.
func ParseDurationMinutes(s string) *float64 {
	value, unit := splitDuration(s)
	if value == nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "min":
		return value
	case "season", "seasons":
		m := *value * 10 * 60
		return &m
	default:
		return nil
	}
}

// splitDuration extracts the first run of digits and the first run of
// letters, mirroring the source's regex extraction.
func splitDuration(s string) (*float64, string) {
	var digits, letters strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			break
		}
	}
	inLetters := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isLetter {
			letters.WriteRune(r)
			inLetters = true
		} else if inLetters {
			break
		}
	}
	if digits.Len() == 0 {
		return nil, letters.String()
	}
	v, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return nil, letters.String()
	}
	return &v, letters.String()
}

// SplitMultiValued splits a comma-separated multi-valued field into trimmed
// tokens, dropping empties. Values are not case-folded: "USA" and "usa"
// remain distinct.
func SplitMultiValued(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseGross converts a comma-grouped numeric string like "28,341,469" to
// millions of dollars. Blank or malformed values yield 0.
func ParseGross(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 1e6
}

// mode returns the most frequent non-blank value, first-seen winning ties.
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	var best string
	bestCount := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
