package main

import (
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	ratingK    = 0.2
	ratingDefK = 0.1
)

// TeamRating carries the incremental offense/defense expected-points state
// for one franchise.
type TeamRating struct {
	Team    string  `json:"team"`
	Offense float64 `json:"offense"`
	Defense float64 `json:"defense"`
	Games   int     `json:"games"`
}

// Net is the single-number view used for ranking and win probability.
func (t TeamRating) Net() float64 {
	return t.Offense + t.Defense
}

// RatingSet is the result of a full pass over the schedule.
type RatingSet struct {
	Ratings    []TeamRating
	LeagueMean float64 // points per team-game
	HomeEdge   float64 // mean home margin
	MarginStd  float64 // spread of the home margin
	byTeam     map[string]TeamRating
}

// computeRatings replays the schedule in order, updating each side's offense
// by K times its points-over-expectation and its defense by the opponent's
// shortfall. Everyone starts at the league scoring mean with a neutral
// defense, so early-season numbers regress hard to average.
func computeRatings(games []Game) *RatingSet {
	var finals []Game
	for _, g := range games {
		if g.Final {
			finals = append(finals, g)
		}
	}
	sort.SliceStable(finals, func(i, j int) bool {
		if finals[i].Season != finals[j].Season {
			return finals[i].Season < finals[j].Season
		}
		return finals[i].Week < finals[j].Week
	})

	var totalPoints float64
	margins := make([]float64, 0, len(finals))
	for _, g := range finals {
		totalPoints += float64(g.HomeScore + g.AwayScore)
		margins = append(margins, float64(g.HomeScore-g.AwayScore))
	}
	leagueMean := 21.0
	homeEdge := 0.0
	marginStd := 13.45 // classic point-spread sigma, used when the sample is thin
	if len(finals) > 0 {
		leagueMean = totalPoints / float64(2*len(finals))
		homeEdge = stat.Mean(margins, nil)
	}
	if len(margins) > 2 {
		marginStd = stat.StdDev(margins, nil)
	}

	type state struct {
		offense float64
		defense float64
		games   int
	}
	teams := make(map[string]*state)
	get := func(name string) *state {
		s, ok := teams[name]
		if !ok {
			s = &state{offense: leagueMean}
			teams[name] = s
		}
		return s
	}

	for _, g := range finals {
		home := get(g.HomeTeam)
		away := get(g.AwayTeam)

		homeExpected := mathMax(0, home.offense-away.defense)
		awayExpected := mathMax(0, away.offense-home.defense)

		homeOffDelta := (float64(g.HomeScore) - homeExpected) * ratingK
		awayOffDelta := (float64(g.AwayScore) - awayExpected) * ratingK
		homeDefDelta := (away.offense - float64(g.AwayScore)) * ratingDefK
		awayDefDelta := (home.offense - float64(g.HomeScore)) * ratingDefK

		home.offense += homeOffDelta
		home.defense += homeDefDelta
		away.offense += awayOffDelta
		away.defense += awayDefDelta
		home.games++
		away.games++
	}

	set := &RatingSet{
		LeagueMean: leagueMean,
		HomeEdge:   homeEdge,
		MarginStd:  marginStd,
		byTeam:     make(map[string]TeamRating, len(teams)),
	}
	for name, s := range teams {
		r := TeamRating{Team: name, Offense: s.offense, Defense: s.defense, Games: s.games}
		set.Ratings = append(set.Ratings, r)
		set.byTeam[name] = r
	}
	sort.Slice(set.Ratings, func(i, j int) bool {
		if set.Ratings[i].Net() != set.Ratings[j].Net() {
			return set.Ratings[i].Net() > set.Ratings[j].Net()
		}
		return set.Ratings[i].Team < set.Ratings[j].Team
	})
	return set
}

// WinProbability estimates the home side's chance from the net rating gap
// plus home edge, read off a normal margin distribution.
func (s *RatingSet) WinProbability(home, away string) (float64, bool) {
	h, okH := s.byTeam[home]
	a, okA := s.byTeam[away]
	if !okH || !okA {
		return 0, false
	}
	dist := distuv.Normal{Mu: 0, Sigma: s.MarginStd}
	gap := h.Net() - a.Net() + s.HomeEdge
	return dist.CDF(gap), true
}

func mathMax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
