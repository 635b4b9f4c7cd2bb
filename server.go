package main

import (
	"encoding/json"
	"net/http"
	"path"
	"path/filepath"
	"sync"
	"time"

	"fieldnotes/templates"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"
)

// Rendered articles are cached so page loads don't re-run the pipelines.
type articleCacheEntry struct {
	value any
	time  time.Time
}

var articleCache = struct {
	mu   sync.Mutex
	data map[string]articleCacheEntry
}{data: make(map[string]articleCacheEntry)}

func cachedArticle[T any](key string, ttl time.Duration, run func() (T, error)) (T, error) {
	articleCache.mu.Lock()
	if ent, ok := articleCache.data[key]; ok && time.Since(ent.time) < ttl {
		v := ent.value.(T)
		articleCache.mu.Unlock()
		return v, nil
	}
	articleCache.mu.Unlock()

	v, err := run()
	if err != nil {
		return v, err
	}
	articleCache.mu.Lock()
	articleCache.data[key] = articleCacheEntry{value: v, time: time.Now()}
	articleCache.mu.Unlock()
	return v, nil
}

func serve(cfg Config) error {
	http.HandleFunc("/", indexHandler)
	http.HandleFunc("/articles/careers", careersPageHandler(cfg))
	http.HandleFunc("/articles/poe", poePageHandler(cfg))
	http.HandleFunc("/articles/ratings", ratingsPageHandler(cfg))
	http.HandleFunc("/charts/", chartHandler(cfg))
	http.HandleFunc("/api/careers", careersAPIHandler(cfg))
	http.HandleFunc("/api/poe", poeAPIHandler(cfg))
	http.HandleFunc("/api/ratings", ratingsAPIHandler(cfg))

	logrus.WithField("addr", cfg.Addr).Info("fieldnotes is serving")
	return http.ListenAndServe(cfg.Addr, nil)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	component := templates.Index([]templates.ArticleLink{
		{Slug: "careers", Title: "Franchise careers, era-adjusted", Blurb: "Cumulative scoring value measured against the league median of each season."},
		{Slug: "poe", Title: "Points over expected", Blurb: "A small expected-points regression, and what rest days buy you once field position is stripped out."},
		{Slug: "ratings", Title: "Incremental team ratings", Blurb: "Offense/defense ratings updated game by game, with next week's win probabilities."},
	})
	templ.Handler(component).ServeHTTP(w, r)
}

func careersPageHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("careers", cfg.CacheTTL, func() (*CareersResult, error) {
			return runCareersArticle(cfg, 0, 0, true)
		})
		if err != nil {
			logrus.WithError(err).Error("careers article failed")
			http.Error(w, "Could not build article", http.StatusInternalServerError)
			return
		}
		rows := make([]templates.CareerRow, 0, len(res.Summaries))
		for i, s := range res.Summaries {
			rows = append(rows, templates.CareerRow{
				Rank:        i + 1,
				Entity:      s.Entity,
				Periods:     s.Periods,
				CareerValue: s.CareerValue,
				WinRate:     s.WinRate,
				Top1Rate:    s.Top1Rate,
				Top3Rate:    s.Top3Rate,
				Top5Rate:    s.Top5Rate,
			})
		}
		component := templates.CareersArticle(templates.CareersPageData{
			SeasonFrom: res.Seasons[0],
			SeasonTo:   res.Seasons[1],
			Rows:       rows,
			ChartFile:  res.ChartFile,
		})
		component.Render(r.Context(), w)
	}
}

func poePageHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("poe", cfg.CacheTTL, func() (*PoeResult, error) {
			return runPoeArticle(cfg, 0, 0, true)
		})
		if err != nil {
			logrus.WithError(err).Error("poe article failed")
			http.Error(w, "Could not build article", http.StatusInternalServerError)
			return
		}
		corrs := make([]templates.CorrelationRow, 0, len(res.Correlations))
		for _, c := range res.Correlations {
			corrs = append(corrs, templates.CorrelationRow{Variable: c.Variable, N: c.N, R: c.R, Slope: c.Slope})
		}
		component := templates.PoeArticle(templates.PoePageData{
			Intercept:    res.Model.Intercept,
			FieldPosCoef: res.Model.FieldPosCoef,
			ClockCoef:    res.Model.ClockCoef,
			Samples:      res.Samples,
			Correlations: corrs,
			ChartFile:    res.ChartFile,
		})
		component.Render(r.Context(), w)
	}
}

func ratingsPageHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("ratings", cfg.CacheTTL, func() (*RatingsResult, error) {
			return runRatingsArticle(cfg, 0, 0, true)
		})
		if err != nil {
			logrus.WithError(err).Error("ratings article failed")
			http.Error(w, "Could not build article", http.StatusInternalServerError)
			return
		}
		rows := make([]templates.RatingRow, 0, len(res.Ratings))
		for i, t := range res.Ratings {
			rows = append(rows, templates.RatingRow{
				Rank:    i + 1,
				Team:    t.Team,
				Offense: t.Offense,
				Defense: t.Defense,
				Net:     t.Net(),
				Games:   t.Games,
			})
		}
		upcoming := make([]templates.UpcomingRow, 0, len(res.Upcoming))
		for _, m := range res.Upcoming {
			upcoming = append(upcoming, templates.UpcomingRow{
				Week:       m.Week,
				HomeTeam:   m.HomeTeam,
				AwayTeam:   m.AwayTeam,
				HomeWinPct: m.HomeWin * 100,
			})
		}
		component := templates.RatingsArticle(templates.RatingsPageData{
			LeagueMean: res.Set.LeagueMean,
			HomeEdge:   res.Set.HomeEdge,
			Rows:       rows,
			Upcoming:   upcoming,
			ChartFile:  res.ChartFile,
		})
		component.Render(r.Context(), w)
	}
}

func chartHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Base(r.URL.Path)
		if name == "." || name == "/" || filepath.Ext(name) != ".png" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.ChartDir, name))
	}
}

func careersAPIHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("careers", cfg.CacheTTL, func() (*CareersResult, error) {
			return runCareersArticle(cfg, 0, 0, true)
		})
		writeJSON(w, res, err)
	}
}

func poeAPIHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("poe", cfg.CacheTTL, func() (*PoeResult, error) {
			return runPoeArticle(cfg, 0, 0, true)
		})
		writeJSON(w, res, err)
	}
}

func ratingsAPIHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := cachedArticle("ratings", cfg.CacheTTL, func() (*RatingsResult, error) {
			return runRatingsArticle(cfg, 0, 0, true)
		})
		writeJSON(w, res, err)
	}
}

func writeJSON(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
