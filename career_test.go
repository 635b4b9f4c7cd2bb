package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateCareersRunningTotals(t *testing.T) {
	records := []Record{
		{Entity: "B", Period: 2001, Adjusted: -1},
		{Entity: "A", Period: 2000, Adjusted: 2},
		{Entity: "A", Period: 2002, Adjusted: -0.5},
		{Entity: "A", Period: 2001, Adjusted: 3},
		{Entity: "B", Period: 2000, Adjusted: 4},
	}
	accumulateCareers(records)

	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, r := range records {
		// The running count goes up by exactly one per record
		counts[r.Entity]++
		require.Equal(t, counts[r.Entity], r.CareerGames, "%s period %d", r.Entity, r.Period)
		sums[r.Entity] += r.Adjusted
		assert.InDelta(t, sums[r.Entity], r.CareerValue, 1e-9)
	}
	// Final running sum equals the plain sum of adjusted values
	assert.InDelta(t, 4.5, finalCareerValue(records, "A"), 1e-9)
	assert.InDelta(t, 3.0, finalCareerValue(records, "B"), 1e-9)
}

func TestAccumulateCareersPreservesPeriodOrder(t *testing.T) {
	records := []Record{
		{Entity: "A", Period: 2002, Adjusted: 1},
		{Entity: "A", Period: 2000, Adjusted: 1},
		{Entity: "A", Period: 2001, Adjusted: 1},
	}
	accumulateCareers(records)
	for i, r := range records {
		assert.Equal(t, 2000+i, r.Period)
		assert.Equal(t, i+1, r.CareerGames)
	}
}

func TestSummarizeCareers(t *testing.T) {
	records := []Record{
		{Entity: "A", Period: 2000, Adjusted: 2, Outcome: 1, Top1: true, Top3: true, Top5: true},
		{Entity: "A", Period: 2001, Adjusted: 1, Outcome: 0, Top3: true, Top5: true},
		{Entity: "B", Period: 2000, Adjusted: -1, Outcome: 0.5, Top5: true},
		{Entity: "B", Period: 2001, Adjusted: -2, Outcome: 0.5},
	}
	accumulateCareers(records)
	summaries := summarizeCareers(records)
	require.Len(t, summaries, 2)

	// Sorted by cumulative value descending
	assert.Equal(t, "A", summaries[0].Entity)
	assert.Equal(t, 2, summaries[0].Periods)
	assert.InDelta(t, 3.0, summaries[0].CareerValue, 1e-9)
	assert.InDelta(t, 0.5, summaries[0].WinRate, 1e-9)
	assert.InDelta(t, 0.5, summaries[0].Top1Rate, 1e-9)
	assert.InDelta(t, 1.0, summaries[0].Top3Rate, 1e-9)

	assert.Equal(t, "B", summaries[1].Entity)
	assert.InDelta(t, -3.0, summaries[1].CareerValue, 1e-9)
	assert.InDelta(t, 0.5, summaries[1].WinRate, 1e-9)
	assert.InDelta(t, 0.0, summaries[1].Top1Rate, 1e-9)
	assert.InDelta(t, 0.5, summaries[1].Top5Rate, 1e-9)
}

func TestBuildCareerRecords(t *testing.T) {
	rows := []TeamGame{
		{Team: "KC", Season: 2020, Week: 1, PointsFor: 30, Outcome: 1},
		{Team: "KC", Season: 2020, Week: 2, PointsFor: 20, Outcome: 0},
		{Team: "DEN", Season: 2020, Week: 1, PointsFor: 10, Outcome: 0},
		{Team: "KC", Season: 2021, Week: 1, PointsFor: 28, Outcome: 1},
	}
	records := buildCareerRecords(rows)
	require.Len(t, records, 3)

	// One record per franchise per season, period-ordered
	assert.Equal(t, "DEN", records[0].Entity)
	assert.Equal(t, 2020, records[0].Period)
	assert.Equal(t, "KC", records[1].Entity)
	assert.InDelta(t, 25.0, records[1].Raw, 1e-9)
	assert.InDelta(t, 0.5, records[1].Outcome, 1e-9)
	assert.Equal(t, 2021, records[2].Period)
	assert.InDelta(t, 28.0, records[2].Raw, 1e-9)
}

func finalCareerValue(records []Record, entity string) float64 {
	var v float64
	for _, r := range records {
		if r.Entity == entity {
			v = r.CareerValue
		}
	}
	return v
}
