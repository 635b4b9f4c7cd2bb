package main

import (
	"database/sql"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

var db *sql.DB

func initDB(path string) error {
	var err error
	db, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	// Schedule mirror so repeat runs work offline
	if _, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS games (
      game_id TEXT,
      season INTEGER,
      week INTEGER,
      home_team TEXT,
      away_team TEXT,
      home_score INTEGER,
      away_score INTEGER,
      home_rest INTEGER,
      away_rest INTEGER,
      roof TEXT,
      temp REAL,
      has_temp INTEGER,
      final INTEGER,
      PRIMARY KEY (season, week, home_team, away_team)
    );`); err != nil {
		return err
	}

	if _, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS team_stats (
      season INTEGER,
      week INTEGER,
      team TEXT,
      opponent TEXT,
      points REAL,
      avg_drive_start REAL,
      possession_seconds REAL,
      PRIMARY KEY (season, week, team)
    );`); err != nil {
		return err
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS analysis_runs (
      id TEXT PRIMARY KEY,
      article TEXT,
      rows INTEGER,
      started_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );`)
	return err
}

func saveGames(games []Game) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
    INSERT OR REPLACE INTO games
      (game_id, season, week, home_team, away_team, home_score, away_score,
       home_rest, away_rest, roof, temp, has_temp, final)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, g := range games {
		if _, err := stmt.Exec(g.ID, g.Season, g.Week, g.HomeTeam, g.AwayTeam,
			g.HomeScore, g.AwayScore, g.HomeRest, g.AwayRest, g.Roof,
			g.Temp, boolToInt(g.HasTemp), boolToInt(g.Final)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func loadGames() ([]Game, error) {
	rows, err := db.Query(`
    SELECT game_id, season, week, home_team, away_team, home_score, away_score,
           home_rest, away_rest, roof, temp, has_temp, final
    FROM games ORDER BY season, week, home_team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		var hasTemp, final int
		if err := rows.Scan(&g.ID, &g.Season, &g.Week, &g.HomeTeam, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.HomeRest, &g.AwayRest, &g.Roof,
			&g.Temp, &hasTemp, &final); err != nil {
			return nil, err
		}
		g.HasTemp = hasTemp != 0
		g.Final = final != 0
		games = append(games, g)
	}
	return games, rows.Err()
}

func saveTeamStats(stats []TeamStat) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
    INSERT OR REPLACE INTO team_stats
      (season, week, team, opponent, points, avg_drive_start, possession_seconds)
    VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, s := range stats {
		if _, err := stmt.Exec(s.Season, s.Week, s.Team, s.Opponent,
			s.Points, s.AvgDriveStart, s.PossessionSeconds); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func loadTeamStats() ([]TeamStat, error) {
	rows, err := db.Query(`
    SELECT season, week, team, opponent, points, avg_drive_start, possession_seconds
    FROM team_stats ORDER BY season, week, team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []TeamStat
	for rows.Next() {
		var s TeamStat
		if err := rows.Scan(&s.Season, &s.Week, &s.Team, &s.Opponent,
			&s.Points, &s.AvgDriveStart, &s.PossessionSeconds); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func recordRun(id, article string, rowCount int) {
	if db == nil {
		return
	}
	// Run bookkeeping is best effort
	db.Exec(`INSERT INTO analysis_runs (id, article, rows, started_at) VALUES (?, ?, ?, ?)`,
		id, article, rowCount, time.Now().UTC())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
