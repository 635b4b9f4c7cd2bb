package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamesRoundTrip(t *testing.T) {
	require.NoError(t, initDB(":memory:"))

	games := []Game{
		{ID: "2023_01_DET_KC", Season: 2023, Week: 1, HomeTeam: "KC", AwayTeam: "DET",
			HomeScore: 20, AwayScore: 21, HomeRest: 7, AwayRest: 7, Roof: "outdoors",
			Temp: 67, HasTemp: true, Final: true},
		{ID: "2023_02_KC_JAX", Season: 2023, Week: 2, HomeTeam: "JAX", AwayTeam: "KC"},
	}
	require.NoError(t, saveGames(games))

	loaded, err := loadGames()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, games[0], loaded[0])
	assert.False(t, loaded[1].Final)

	// Re-saving the same schedule replaces instead of duplicating
	games[0].HomeScore = 23
	require.NoError(t, saveGames(games))
	loaded, err = loadGames()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 23, loaded[0].HomeScore)
}

func TestTeamStatsRoundTrip(t *testing.T) {
	require.NoError(t, initDB(":memory:"))

	stats := []TeamStat{
		{Season: 2023, Week: 1, Team: "KC", Opponent: "DET", Points: 20, AvgDriveStart: 28.4, PossessionSeconds: 1702},
	}
	require.NoError(t, saveTeamStats(stats))

	loaded, err := loadTeamStats()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, stats[0], loaded[0])
}

func TestRecordRun(t *testing.T) {
	require.NoError(t, initDB(":memory:"))
	recordRun("abc-123", "careers", 42)

	var article string
	var rows int
	err := db.QueryRow(`SELECT article, rows FROM analysis_runs WHERE id = ?`, "abc-123").Scan(&article, &rows)
	require.NoError(t, err)
	assert.Equal(t, "careers", article)
	assert.Equal(t, 42, rows)
}
