// Package pipeline implements the explode-aggregate-rank transformations
// behind every catalog breakdown: multi-valued fields are exploded into one
// row per value, grouped, and ranked into top-N summaries with an overflow
// bucket.
package pipeline

import (
	"math"
	"sort"

	"movie-trends-dashboard/internal/models"
)

// Field selects which multi-valued column to explode.
type Field int

const (
	FieldCountry Field = iota
	FieldGenre
)

// Metric selects how exploded rows are aggregated per group.
type Metric int

const (
	// CountDistinctTitles counts unique titles per group. A title listing
	// the same trimmed token twice is counted once; tokens differing only
	// in case stay distinct groups.
	CountDistinctTitles Metric = iota
	// SumDurationHours sums duration minutes / 60 per group.
	SumDurationHours
)

// ExplodedRow pairs a source title with a single value of its exploded
// field. Many rows share the same source title.
type ExplodedRow struct {
	Title *models.TitleRecord
	Value string
}

// Explode turns each record into one row per value of the chosen field.
// Records whose field is empty contribute no rows and are silently omitted
// from this view.
func Explode(records []models.TitleRecord, field Field) []ExplodedRow {
	var rows []ExplodedRow
	for i := range records {
		values := records[i].Countries
		if field == FieldGenre {
			values = records[i].Genres
		}
		for _, v := range values {
			rows = append(rows, ExplodedRow{Title: &records[i], Value: v})
		}
	}
	return rows
}

// AggregateByGroup groups exploded rows by value and computes the metric
// per group. Buckets come back in first-encounter order, which TopN relies
// on for stable tie-breaking.
func AggregateByGroup(rows []ExplodedRow, metric Metric) []models.AggregateBucket {
	order := make([]string, 0)
	sums := make(map[string]float64)
	seen := make(map[string]map[string]struct{})

	for _, row := range rows {
		if _, ok := sums[row.Value]; !ok {
			sums[row.Value] = 0
			order = append(order, row.Value)
		}
		switch metric {
		case CountDistinctTitles:
			titles := seen[row.Value]
			if titles == nil {
				titles = make(map[string]struct{})
				seen[row.Value] = titles
			}
			if _, dup := titles[row.Title.Title]; dup {
				continue
			}
			titles[row.Title.Title] = struct{}{}
			sums[row.Value]++
		case SumDurationHours:
			sums[row.Value] += row.Title.DurationHours()
		}
	}

	buckets := make([]models.AggregateBucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, models.AggregateBucket{Key: key, Metric: sums[key]})
	}
	return buckets
}

// TopN ranks buckets descending by metric and keeps the n largest; the
// remainder is summed into a single synthetic "Other" bucket (nil when
// nothing overflows). Percentages are computed against the grand total
// before splitting so top and other shares stay comparable. Ties keep the
// buckets' original order.
func TopN(buckets []models.AggregateBucket, n int) ([]models.AggregateBucket, *models.AggregateBucket) {
	if len(buckets) == 0 || n <= 0 {
		return nil, nil
	}

	var total float64
	for _, b := range buckets {
		total += b.Metric
	}

	ranked := make([]models.AggregateBucket, len(buckets))
	copy(ranked, buckets)
	for i := range ranked {
		ranked[i].Percentage = roundPct(ranked[i].Metric, total)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metric > ranked[j].Metric
	})

	if len(ranked) <= n {
		return ranked, nil
	}

	top := ranked[:n]
	other := models.AggregateBucket{Key: "Other"}
	for _, b := range ranked[n:] {
		other.Metric += b.Metric
		other.Percentage += b.Percentage
	}
	return top, &other
}

func roundPct(metric, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(metric/total*100*100) / 100
}

// FilterByRange keeps records whose getter value lies in [lo, hi]. An
// inverted range (lo > hi) yields an empty result, never a swapped one.
// Records for which the getter reports no value are excluded.
func FilterByRange(records []models.TitleRecord, getter func(*models.TitleRecord) (float64, bool), lo, hi float64) []models.TitleRecord {
	var out []models.TitleRecord
	if lo > hi {
		return out
	}
	for i := range records {
		v, ok := getter(&records[i])
		if !ok {
			continue
		}
		if v >= lo && v <= hi {
			out = append(out, records[i])
		}
	}
	return out
}

// DateAddedValue adapts DateAdded for FilterByRange using unix seconds.
func DateAddedValue(t *models.TitleRecord) (float64, bool) {
	if t.DateAdded == nil {
		return 0, false
	}
	return float64(t.DateAdded.Unix()), true
}

// ReleaseYearValue adapts ReleaseYear for FilterByRange.
func ReleaseYearValue(t *models.TitleRecord) (float64, bool) {
	return float64(t.ReleaseYear), true
}
