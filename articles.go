package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CareersResult is everything the careers article produces: the full
// accumulated table, the one-row-per-franchise summaries, and the chart.
type CareersResult struct {
	RunID     string          `json:"run_id"`
	Seasons   [2]int          `json:"seasons"`
	Records   []Record        `json:"-"`
	Summaries []CareerSummary `json:"summaries"`
	ChartFile string          `json:"chart_file,omitempty"`
}

// PoeResult is the points-over-expected article output.
type PoeResult struct {
	RunID        string        `json:"run_id"`
	Model        *PoeModel     `json:"model"`
	Samples      int           `json:"samples"`
	Correlations []Correlation `json:"correlations"`
	ChartFile    string        `json:"chart_file,omitempty"`
}

// MatchupProb is one scheduled game with the model's home win probability.
type MatchupProb struct {
	Season   int     `json:"season"`
	Week     int     `json:"week"`
	HomeTeam string  `json:"home_team"`
	AwayTeam string  `json:"away_team"`
	HomeWin  float64 `json:"home_win"`
}

// RatingsResult is the incremental ratings article output.
type RatingsResult struct {
	RunID     string        `json:"run_id"`
	Set       *RatingSet    `json:"-"`
	Ratings   []TeamRating  `json:"ratings"`
	Upcoming  []MatchupProb `json:"upcoming"`
	ChartFile string        `json:"chart_file,omitempty"`
}

// loadSchedule fetches the schedule dataset, mirroring it into SQLite on
// success and falling back to the mirror when the network is down.
func loadSchedule(cfg Config) ([]Game, error) {
	games, err := getScheduleCached(cfg)
	if err != nil {
		logrus.WithError(err).Warn("schedule fetch failed, trying local mirror")
		games, dbErr := loadGames()
		if dbErr != nil {
			return nil, fmt.Errorf("schedule unavailable: %w", err)
		}
		if len(games) == 0 {
			return nil, fmt.Errorf("schedule unavailable and local mirror empty: %w", err)
		}
		return games, nil
	}
	if err := saveGames(games); err != nil {
		logrus.WithError(err).Warn("could not mirror schedule to sqlite")
	}
	return games, nil
}

func loadStats(cfg Config) ([]TeamStat, error) {
	stats, err := getTeamStatsCached(cfg)
	if err != nil {
		logrus.WithError(err).Warn("team stats fetch failed, trying local mirror")
		stats, dbErr := loadTeamStats()
		if dbErr != nil {
			return nil, fmt.Errorf("team stats unavailable: %w", err)
		}
		if len(stats) == 0 {
			return nil, fmt.Errorf("team stats unavailable and local mirror empty: %w", err)
		}
		return stats, nil
	}
	if err := saveTeamStats(stats); err != nil {
		logrus.WithError(err).Warn("could not mirror team stats to sqlite")
	}
	return stats, nil
}

func filterSeasons(games []Game, from, to int) []Game {
	if from == 0 && to == 0 {
		return games
	}
	var out []Game
	for _, g := range games {
		if from != 0 && g.Season < from {
			continue
		}
		if to != 0 && g.Season > to {
			continue
		}
		out = append(out, g)
	}
	return out
}

// runCareersArticle runs the full reshape -> era-adjust -> rank -> career
// pipeline and, when asked, renders the cumulative-value chart for the top
// franchises.
func runCareersArticle(cfg Config, from, to int, withChart bool) (*CareersResult, error) {
	games, err := loadSchedule(cfg)
	if err != nil {
		return nil, err
	}
	games = filterSeasons(games, from, to)

	rows := reshapeSchedule(games)
	if len(rows) == 0 {
		return nil, fmt.Errorf("careers: no completed games in %d-%d", from, to)
	}
	joinSeasonAggregates(rows)

	records := buildCareerRecords(rows)
	adjustForEra(records)
	rankPeriods(records)
	accumulateCareers(records)
	summaries := summarizeCareers(records)

	minSeason, maxSeason := records[0].Period, records[0].Period
	for _, r := range records {
		if r.Period < minSeason {
			minSeason = r.Period
		}
		if r.Period > maxSeason {
			maxSeason = r.Period
		}
	}

	res := &CareersResult{
		RunID:     uuid.NewString(),
		Seasons:   [2]int{minSeason, maxSeason},
		Records:   records,
		Summaries: summaries,
	}
	recordRun(res.RunID, "careers", len(records))

	if withChart {
		top := 5
		if top > len(summaries) {
			top = len(summaries)
		}
		entities := make([]string, 0, top)
		for _, s := range summaries[:top] {
			entities = append(entities, s.Entity)
		}
		name := res.RunID + "-careers.png"
		if err := renderCareerChart(records, entities, filepath.Join(cfg.ChartDir, name)); err != nil {
			logrus.WithError(err).Warn("career chart failed")
		} else {
			res.ChartFile = name
		}
	}
	logrus.WithFields(logrus.Fields{
		"run":       res.RunID,
		"records":   len(records),
		"summaries": len(summaries),
	}).Info("careers article complete")
	return res, nil
}

// runPoeArticle fits the expected-points model on team-game stats,
// residualizes actual scoring, and correlates the residual with rest-day
// advantage (and temperature where the schedule reports one).
func runPoeArticle(cfg Config, from, to int, withChart bool) (*PoeResult, error) {
	stats, err := loadStats(cfg)
	if err != nil {
		return nil, err
	}
	games, err := loadSchedule(cfg)
	if err != nil {
		return nil, err
	}
	games = filterSeasons(games, from, to)

	rows := reshapeSchedule(games)
	type key struct {
		season, week int
		team         string
	}
	sched := make(map[key]TeamGame, len(rows))
	for _, r := range rows {
		sched[key{r.Season, r.Week, r.Team}] = r
	}

	var samples []PoeSample
	var restDiff, restPoeX []float64
	var temps, tempIdx []float64
	joined := 0
	for _, s := range stats {
		if from != 0 && s.Season < from {
			continue
		}
		if to != 0 && s.Season > to {
			continue
		}
		samples = append(samples, PoeSample{
			FieldPos: s.AvgDriveStart,
			Clock:    s.PossessionSeconds,
			Points:   s.Points,
		})
		if tg, ok := sched[key{s.Season, s.Week, s.Team}]; ok {
			joined++
			restDiff = append(restDiff, float64(tg.RestDays-tg.OppRestDays))
			restPoeX = append(restPoeX, float64(len(samples)-1))
			if tg.HasTemp {
				temps = append(temps, tg.Temp)
				tempIdx = append(tempIdx, float64(len(samples)-1))
			}
		}
	}

	model, err := fitExpectedPoints(samples)
	if err != nil {
		return nil, err
	}
	poe := pointsOverExpected(model, samples)

	res := &PoeResult{
		RunID:   uuid.NewString(),
		Model:   model,
		Samples: len(samples),
	}
	recordRun(res.RunID, "poe", len(samples))

	pick := func(idx []float64) []float64 {
		out := make([]float64, len(idx))
		for i, j := range idx {
			out[i] = poe[int(j)]
		}
		return out
	}

	restPoe := pick(restPoeX)
	if c, err := correlate("rest_diff", restDiff, restPoe); err != nil {
		logrus.WithError(err).Warn("rest correlation skipped")
	} else {
		res.Correlations = append(res.Correlations, c)
	}
	if c, err := correlate("temp", temps, pick(tempIdx)); err != nil {
		logrus.WithError(err).Warn("temperature correlation skipped")
	} else {
		res.Correlations = append(res.Correlations, c)
	}
	if joined == 0 {
		logrus.Warn("no team stats matched the schedule; correlations empty")
	}

	if withChart && len(restDiff) > 0 {
		name := res.RunID + "-poe.png"
		if err := renderPoeScatter(restDiff, restPoe, "rest-day differential", filepath.Join(cfg.ChartDir, name)); err != nil {
			logrus.WithError(err).Warn("poe chart failed")
		} else {
			res.ChartFile = name
		}
	}
	logrus.WithFields(logrus.Fields{
		"run":     res.RunID,
		"samples": len(samples),
		"joined":  joined,
	}).Info("poe article complete")
	return res, nil
}

// runRatingsArticle replays the schedule through the incremental ratings and
// attaches win probabilities for games not yet played.
func runRatingsArticle(cfg Config, from, to int, withChart bool) (*RatingsResult, error) {
	games, err := loadSchedule(cfg)
	if err != nil {
		return nil, err
	}
	games = filterSeasons(games, from, to)

	set := computeRatings(games)
	if len(set.Ratings) == 0 {
		return nil, fmt.Errorf("ratings: no completed games in %d-%d", from, to)
	}

	res := &RatingsResult{
		RunID:   uuid.NewString(),
		Set:     set,
		Ratings: set.Ratings,
	}
	recordRun(res.RunID, "ratings", len(set.Ratings))

	for _, g := range upcomingGames(games) {
		if p, ok := set.WinProbability(g.HomeTeam, g.AwayTeam); ok {
			res.Upcoming = append(res.Upcoming, MatchupProb{
				Season:   g.Season,
				Week:     g.Week,
				HomeTeam: g.HomeTeam,
				AwayTeam: g.AwayTeam,
				HomeWin:  p,
			})
		}
	}

	if withChart {
		name := res.RunID + "-ratings.png"
		if err := renderRatingsBar(set.Ratings, 10, filepath.Join(cfg.ChartDir, name)); err != nil {
			logrus.WithError(err).Warn("ratings chart failed")
		} else {
			res.ChartFile = name
		}
	}
	logrus.WithFields(logrus.Fields{
		"run":      res.RunID,
		"teams":    len(set.Ratings),
		"upcoming": len(res.Upcoming),
	}).Info("ratings article complete")
	return res, nil
}

// upcomingGames returns the next unplayed week of the latest season present.
func upcomingGames(games []Game) []Game {
	season := 0
	for _, g := range games {
		if !g.Final && g.Season > season {
			season = g.Season
		}
	}
	if season == 0 {
		return nil
	}
	week := 0
	for _, g := range games {
		if !g.Final && g.Season == season && (week == 0 || g.Week < week) {
			week = g.Week
		}
	}
	var out []Game
	for _, g := range games {
		if !g.Final && g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HomeTeam < out[j].HomeTeam })
	return out
}
