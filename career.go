package main

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CareerSummary is the one-row-per-entity output of the careers article.
type CareerSummary struct {
	Entity      string  `json:"entity"`
	Periods     int     `json:"periods"`
	CareerValue float64 `json:"career_value"`
	WinRate     float64 `json:"win_rate"`
	Top1Rate    float64 `json:"top1_rate"`
	Top3Rate    float64 `json:"top3_rate"`
	Top5Rate    float64 `json:"top5_rate"`
}

// accumulateCareers walks each entity's records in period order and fills in
// the running count and the running sum of era-adjusted value. The count goes
// up by exactly one per record, and the final running sum equals the plain
// sum of that entity's adjusted values.
func accumulateCareers(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Entity != records[j].Entity {
			return records[i].Entity < records[j].Entity
		}
		return records[i].Period < records[j].Period
	})
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for i := range records {
		e := records[i].Entity
		counts[e]++
		sums[e] += records[i].Adjusted
		records[i].CareerGames = counts[e]
		records[i].CareerValue = sums[e]
	}
}

// summarizeCareers reduces the accumulated records to one row per entity,
// sorted by cumulative era-adjusted value descending.
func summarizeCareers(records []Record) []CareerSummary {
	type agg struct {
		outcomes []float64
		top1     []float64
		top3     []float64
		top5     []float64
		periods  int
		value    float64
	}
	byEntity := make(map[string]*agg)
	for _, r := range records {
		a, ok := byEntity[r.Entity]
		if !ok {
			a = &agg{}
			byEntity[r.Entity] = a
		}
		a.periods++
		a.value = r.CareerValue // records arrive in period order per entity
		a.outcomes = append(a.outcomes, r.Outcome)
		a.top1 = append(a.top1, boolToFloat(r.Top1))
		a.top3 = append(a.top3, boolToFloat(r.Top3))
		a.top5 = append(a.top5, boolToFloat(r.Top5))
	}
	out := make([]CareerSummary, 0, len(byEntity))
	for entity, a := range byEntity {
		out = append(out, CareerSummary{
			Entity:      entity,
			Periods:     a.periods,
			CareerValue: a.value,
			WinRate:     stat.Mean(a.outcomes, nil),
			Top1Rate:    stat.Mean(a.top1, nil),
			Top3Rate:    stat.Mean(a.top3, nil),
			Top5Rate:    stat.Mean(a.top5, nil),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CareerValue != out[j].CareerValue {
			return out[i].CareerValue > out[j].CareerValue
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// buildCareerRecords collapses long-form team-games to one record per
// franchise per season: Raw is that season's scoring rate, Outcome the
// season win rate.
func buildCareerRecords(rows []TeamGame) []Record {
	type key struct {
		team   string
		season int
	}
	type agg struct {
		games    int
		points   int
		outcomes float64
	}
	byTeamSeason := make(map[key]*agg)
	for _, r := range rows {
		k := key{r.Team, r.Season}
		a, ok := byTeamSeason[k]
		if !ok {
			a = &agg{}
			byTeamSeason[k] = a
		}
		a.games++
		a.points += r.PointsFor
		a.outcomes += r.Outcome
	}
	records := make([]Record, 0, len(byTeamSeason))
	for k, a := range byTeamSeason {
		records = append(records, Record{
			Entity:  k.team,
			Period:  k.season,
			Raw:     float64(a.points) / float64(a.games),
			Outcome: a.outcomes / float64(a.games),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Period != records[j].Period {
			return records[i].Period < records[j].Period
		}
		return records[i].Entity < records[j].Entity
	})
	return records
}
