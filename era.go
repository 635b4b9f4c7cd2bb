package main

import (
	"sort"
)

// Record is one participant-period observation flowing through the career
// pipeline. For the careers article the entity is a franchise and the period
// is a season, with Raw holding that season's points per game.
type Record struct {
	Entity  string
	Period  int
	Raw     float64
	Outcome float64

	// Filled in by the pipeline stages
	Adjusted    float64
	Rank        int
	Top1        bool
	Top3        bool
	Top5        bool
	CareerGames int
	CareerValue float64
}

// adjustForEra removes the period baseline: for every period the median Raw
// across all entities active in that period is subtracted, so Adjusted is
// centered on the league of the day rather than the league of today. After
// this runs, the median Adjusted within any period is ~0.
func adjustForEra(records []Record) {
	byPeriod := make(map[int][]float64)
	for _, r := range records {
		byPeriod[r.Period] = append(byPeriod[r.Period], r.Raw)
	}
	medians := make(map[int]float64, len(byPeriod))
	for period, vals := range byPeriod {
		medians[period] = median(vals)
	}
	for i := range records {
		records[i].Adjusted = records[i].Raw - medians[records[i].Period]
	}
}

// median of an even-sized sample is the mean of the two middle values.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
