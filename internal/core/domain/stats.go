package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stats summarises the index values of a set of records.
type Stats struct {
	// Count is the number of records.
	Count int `json:"count"`

	// DistinctEntities counts unique stock codes. Names can change over
	// time; the code is canonical.
	DistinctEntities int `json:"distinct_entities"`

	// Scored counts the records that carry a score. Mean, Max and Min
	// cover only those, and are NaN when Scored is zero.
	Scored int `json:"scored"`

	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`

	// MinYear and MaxYear bound the years covered by the records.
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
}

// MarshalJSON writes missing aggregates as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	type plain Stats
	return json.Marshal(struct {
		plain
		Mean *float64 `json:"mean"`
		Max  *float64 `json:"max"`
		Min  *float64 `json:"min"`
	}{plain(s), ScorePtr(s.Mean), ScorePtr(s.Max), ScorePtr(s.Min)})
}

// FormatMean renders the mean with two decimals.
func (s Stats) FormatMean() string { return FormatScore(s.Mean) }

// FormatMax renders the maximum with two decimals.
func (s Stats) FormatMax() string { return FormatScore(s.Max) }

// FormatMin renders the minimum with two decimals.
func (s Stats) FormatMin() string { return FormatScore(s.Min) }

// YearRange renders "min-max", or a single year when both are equal.
func (s Stats) YearRange() string {
	if s.MinYear == s.MaxYear {
		return strconv.Itoa(s.MinYear)
	}
	return strconv.Itoa(s.MinYear) + "-" + strconv.Itoa(s.MaxYear)
}

// Headline renders "N records | M companies | years: a-b", naming the
// selected year instead of the range when the filter is set.
func (s Stats) Headline(year YearFilter) string {
	scope := "years: " + s.YearRange()
	if !year.IsAll() {
		scope = "year: " + year.String()
	}
	return fmt.Sprintf("%d records | %d companies | %s", s.Count, s.DistinctEntities, scope)
}

// Spread renders the mean, max and min with two decimals.
func (s Stats) Spread() string {
	return fmt.Sprintf("mean %s | max %s | min %s", s.FormatMean(), s.FormatMax(), s.FormatMin())
}

// TrendPoint is one year of an entity's index series.
type TrendPoint struct {
	Year       int     `json:"year"`
	IndexValue float64 `json:"index_value"`
}

// MarshalJSON writes a missing score as null.
func (p TrendPoint) MarshalJSON() ([]byte, error) {
	type plain TrendPoint
	return json.Marshal(struct {
		plain
		IndexValue *float64 `json:"index_value"`
	}{plain(p), ScorePtr(p.IndexValue)})
}

// TrendSeries is one entity's index values in ascending year order.
type TrendSeries struct {
	EntityName string       `json:"entity_name"`
	StockCode  string       `json:"stock_code"`
	Points     []TrendPoint `json:"points"`
}
