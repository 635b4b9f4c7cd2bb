package main

import (
	"sort"
)

// Game matches one row of the published schedule file: two teams per row,
// final scores once the game has been played.
type Game struct {
	ID        string
	Season    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	HomeRest  int
	AwayRest  int
	Roof      string
	Temp      float64
	HasTemp   bool
	Final     bool
}

// TeamGame is the long-form view: one row per participating team per game.
type TeamGame struct {
	Team          string
	Opponent      string
	Season        int
	Week          int
	PointsFor     int
	PointsAgainst int
	Outcome       float64 // 1 win, 0.5 tie, 0 loss
	Home          bool
	RestDays      int
	OppRestDays   int
	Temp          float64
	HasTemp       bool

	// Joined back in by joinSeasonAggregates
	SeasonGames int
	SeasonPPG   float64
}

// reshapeSchedule turns the two-team-per-row schedule into long form. Games
// without a final score are dropped; every kept game yields exactly two rows.
// Output is ordered by (season, week, team).
func reshapeSchedule(games []Game) []TeamGame {
	rows := make([]TeamGame, 0, 2*len(games))
	for _, g := range games {
		if !g.Final {
			continue
		}
		homeOutcome, awayOutcome := 1.0, 0.0
		if g.HomeScore == g.AwayScore {
			homeOutcome, awayOutcome = 0.5, 0.5
		} else if g.HomeScore < g.AwayScore {
			homeOutcome, awayOutcome = 0.0, 1.0
		}
		rows = append(rows, TeamGame{
			Team:          g.HomeTeam,
			Opponent:      g.AwayTeam,
			Season:        g.Season,
			Week:          g.Week,
			PointsFor:     g.HomeScore,
			PointsAgainst: g.AwayScore,
			Outcome:       homeOutcome,
			Home:          true,
			RestDays:      g.HomeRest,
			OppRestDays:   g.AwayRest,
			Temp:          g.Temp,
			HasTemp:       g.HasTemp,
		})
		rows = append(rows, TeamGame{
			Team:          g.AwayTeam,
			Opponent:      g.HomeTeam,
			Season:        g.Season,
			Week:          g.Week,
			PointsFor:     g.AwayScore,
			PointsAgainst: g.HomeScore,
			Outcome:       awayOutcome,
			Home:          false,
			RestDays:      g.AwayRest,
			OppRestDays:   g.HomeRest,
			Temp:          g.Temp,
			HasTemp:       g.HasTemp,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Season != rows[j].Season {
			return rows[i].Season < rows[j].Season
		}
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}

// joinSeasonAggregates computes per-(season, team) games played and points
// per game and writes them back onto every long-form row.
func joinSeasonAggregates(rows []TeamGame) {
	type key struct {
		season int
		team   string
	}
	games := make(map[key]int)
	points := make(map[key]int)
	for _, r := range rows {
		k := key{r.Season, r.Team}
		games[k]++
		points[k] += r.PointsFor
	}
	for i := range rows {
		k := key{rows[i].Season, rows[i].Team}
		rows[i].SeasonGames = games[k]
		rows[i].SeasonPPG = float64(points[k]) / float64(games[k])
	}
}
