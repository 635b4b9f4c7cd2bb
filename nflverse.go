package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TeamStat is one row of the published per-team-per-game stats file, used by
// the expected-points article.
type TeamStat struct {
	Season            int
	Week              int
	Team              string
	Opponent          string
	Points            float64
	AvgDriveStart     float64 // yards from own goal line
	PossessionSeconds float64
}

// In-memory TTL caches, keyed by dataset URL
var (
	scheduleCache = make(map[string][]Game)
	scheduleStamp = make(map[string]time.Time)
	scheduleMu    sync.Mutex
)

var (
	teamStatCache = make(map[string][]TeamStat)
	teamStatStamp = make(map[string]time.Time)
	teamStatMu    sync.Mutex
)

func getScheduleCached(cfg Config) ([]Game, error) {
	scheduleMu.Lock()
	defer scheduleMu.Unlock()

	if g, ok := scheduleCache[cfg.ScheduleURL]; ok && time.Since(scheduleStamp[cfg.ScheduleURL]) < cfg.CacheTTL {
		return g, nil
	}

	body, err := fetchDataset(cfg.ScheduleURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	games, err := parseScheduleCSV(body)
	if err != nil {
		return nil, err
	}
	scheduleCache[cfg.ScheduleURL] = games
	scheduleStamp[cfg.ScheduleURL] = time.Now()
	return games, nil
}

func getTeamStatsCached(cfg Config) ([]TeamStat, error) {
	teamStatMu.Lock()
	defer teamStatMu.Unlock()

	if s, ok := teamStatCache[cfg.TeamStatsURL]; ok && time.Since(teamStatStamp[cfg.TeamStatsURL]) < cfg.CacheTTL {
		return s, nil
	}

	body, err := fetchDataset(cfg.TeamStatsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	stats, err := parseTeamStatsCSV(body)
	if err != nil {
		return nil, err
	}
	teamStatCache[cfg.TeamStatsURL] = stats
	teamStatStamp[cfg.TeamStatsURL] = time.Now()
	return stats, nil
}

func fetchDataset(url string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}
	return resp.Body, nil
}

// parseScheduleCSV reads the two-team-per-row schedule export. Rows that
// fail to parse are skipped and counted; a file that yields nothing at all
// is an error.
func parseScheduleCSV(r io.Reader) ([]Game, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("schedule csv: %w", err)
	}
	col := headerIndex(header)
	for _, required := range []string{"season", "week", "home_team", "away_team"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("schedule csv: missing column %q", required)
		}
	}

	var games []Game
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		g, ok := scheduleRow(row, col)
		if !ok {
			skipped++
			continue
		}
		games = append(games, g)
	}
	if skipped > 0 {
		logrus.WithField("rows", skipped).Warn("skipped unparseable schedule rows")
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("schedule csv: no usable rows")
	}
	return games, nil
}

func scheduleRow(row []string, col map[string]int) (Game, bool) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	season, err := strconv.Atoi(field("season"))
	if err != nil {
		return Game{}, false
	}
	week, err := strconv.Atoi(field("week"))
	if err != nil {
		return Game{}, false
	}
	g := Game{
		ID:       field("game_id"),
		Season:   season,
		Week:     week,
		HomeTeam: field("home_team"),
		AwayTeam: field("away_team"),
		Roof:     field("roof"),
	}
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return Game{}, false
	}
	hs, hErr := strconv.Atoi(field("home_score"))
	as, aErr := strconv.Atoi(field("away_score"))
	if hErr == nil && aErr == nil {
		g.HomeScore, g.AwayScore, g.Final = hs, as, true
	}
	if v, err := strconv.Atoi(field("home_rest")); err == nil {
		g.HomeRest = v
	}
	if v, err := strconv.Atoi(field("away_rest")); err == nil {
		g.AwayRest = v
	}
	if v, err := strconv.ParseFloat(field("temp"), 64); err == nil {
		g.Temp, g.HasTemp = v, true
	}
	return g, true
}

func parseTeamStatsCSV(r io.Reader) ([]TeamStat, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("team stats csv: %w", err)
	}
	col := headerIndex(header)
	for _, required := range []string{"season", "week", "team", "points", "avg_drive_start", "possession_seconds"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("team stats csv: missing column %q", required)
		}
	}

	var stats []TeamStat
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		season, sErr := strconv.Atoi(field("season"))
		week, wErr := strconv.Atoi(field("week"))
		points, pErr := strconv.ParseFloat(field("points"), 64)
		fieldPos, fErr := strconv.ParseFloat(field("avg_drive_start"), 64)
		clock, cErr := strconv.ParseFloat(field("possession_seconds"), 64)
		if sErr != nil || wErr != nil || pErr != nil || fErr != nil || cErr != nil || field("team") == "" {
			skipped++
			continue
		}
		stats = append(stats, TeamStat{
			Season:            season,
			Week:              week,
			Team:              field("team"),
			Opponent:          field("opponent"),
			Points:            points,
			AvgDriveStart:     fieldPos,
			PossessionSeconds: clock,
		})
	}
	if skipped > 0 {
		logrus.WithField("rows", skipped).Warn("skipped unparseable team stat rows")
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("team stats csv: no usable rows")
	}
	return stats, nil
}

func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}
