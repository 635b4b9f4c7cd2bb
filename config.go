package main

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultScheduleURL  = "https://raw.githubusercontent.com/nflverse/nfldata/master/data/games.csv"
	defaultTeamStatsURL = "https://github.com/nflverse/nflverse-data/releases/download/stats_team/team_games.csv"
)

// Config is everything read from the environment. A .env file in the working
// directory is honored when present.
type Config struct {
	ScheduleURL  string
	TeamStatsURL string
	DBPath       string
	ChartDir     string
	CacheTTL     time.Duration
	Addr         string
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}

	cfg := Config{
		ScheduleURL:  envOr("FIELDNOTES_SCHEDULE_URL", defaultScheduleURL),
		TeamStatsURL: envOr("FIELDNOTES_TEAMSTATS_URL", defaultTeamStatsURL),
		DBPath:       envOr("FIELDNOTES_DB", "./fieldnotes.db"),
		ChartDir:     envOr("FIELDNOTES_CHART_DIR", "./charts"),
		CacheTTL:     time.Hour,
		Addr:         envOr("FIELDNOTES_ADDR", ":8080"),
	}

	// Mounted-volume layout used on the hosting side
	if mountPath := os.Getenv("RAILWAY_VOLUME_MOUNT_PATH"); mountPath != "" {
		cfg.DBPath = filepath.Join(mountPath, "fieldnotes.db")
		cfg.ChartDir = filepath.Join(mountPath, "charts")
	}

	if raw := os.Getenv("FIELDNOTES_CACHE_TTL_MINUTES"); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			cfg.CacheTTL = time.Duration(mins) * time.Minute
		} else {
			logrus.WithField("value", raw).Warn("ignoring bad FIELDNOTES_CACHE_TTL_MINUTES")
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
