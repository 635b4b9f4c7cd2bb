package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Components are built directly on templ.ComponentFunc so the pages stay
// plain Go. All dynamic strings go through templ.EscapeString.

func layout(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>%s</title><script src="https://cdn.tailwindcss.com"></script></head><body class="bg-stone-100 font-sans text-stone-800"><div class="max-w-5xl mx-auto py-10 px-4"><nav class="mb-8 text-sm"><a class="font-bold mr-4" href="/">fieldnotes</a><a class="mr-3" href="/articles/careers">careers</a><a class="mr-3" href="/articles/poe">points over expected</a><a href="/articles/ratings">ratings</a></nav>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

func Index(articles []ArticleLink) templ.Component {
	return layout("fieldnotes", func(w io.Writer) error {
		if _, err := io.WriteString(w, `<h1 class="text-3xl font-black mb-6">Football fieldnotes</h1><div class="space-y-4">`); err != nil {
			return err
		}
		for _, a := range articles {
			if _, err := fmt.Fprintf(w,
				`<a href="/articles/%s" class="block bg-white rounded-xl p-5 shadow hover:shadow-md"><div class="text-xl font-bold">%s</div><div class="text-stone-600">%s</div></a>`,
				templ.EscapeString(a.Slug), templ.EscapeString(a.Title), templ.EscapeString(a.Blurb)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func CareersArticle(data CareersPageData) templ.Component {
	return layout("Franchise careers", func(w io.Writer) error {
		fmt.Fprintf(w, `<h1 class="text-3xl font-black mb-2">Franchise careers, era-adjusted</h1><p class="text-stone-600 mb-6">Seasons %d&ndash;%d. Value is cumulative points per game over the league median of each season, so a 1970s offense is measured against 1970s scoring.</p>`, data.SeasonFrom, data.SeasonTo)
		if data.ChartFile != "" {
			fmt.Fprintf(w, `<img class="rounded-xl shadow mb-6" src="/charts/%s" alt="cumulative era-adjusted value">`, templ.EscapeString(data.ChartFile))
		}
		io.WriteString(w, `<table class="w-full bg-white rounded-xl shadow text-sm"><thead><tr class="text-left border-b">`)
		for _, h := range []string{"#", "Team", "Seasons", "Value", "Win%", "Top1%", "Top3%", "Top5%"} {
			fmt.Fprintf(w, `<th class="p-2">%s</th>`, h)
		}
		io.WriteString(w, `</tr></thead><tbody>`)
		for _, r := range data.Rows {
			if _, err := fmt.Fprintf(w,
				`<tr class="border-b last:border-0"><td class="p-2">%d</td><td class="p-2 font-semibold">%s</td><td class="p-2">%d</td><td class="p-2">%+.1f</td><td class="p-2">%.1f%%</td><td class="p-2">%.1f%%</td><td class="p-2">%.1f%%</td><td class="p-2">%.1f%%</td></tr>`,
				r.Rank, templ.EscapeString(r.Entity), r.Periods, r.CareerValue,
				r.WinRate*100, r.Top1Rate*100, r.Top3Rate*100, r.Top5Rate*100); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func PoeArticle(data PoePageData) templ.Component {
	return layout("Points over expected", func(w io.Writer) error {
		io.WriteString(w, `<h1 class="text-3xl font-black mb-2">Points over expected</h1><p class="text-stone-600 mb-6">A two-feature expected-points model (average drive start, possession clock) strips field-position luck out of scoring; what remains is correlated with rest and weather.</p>`)
		fmt.Fprintf(w, `<div class="bg-white rounded-xl shadow p-4 mb-6 font-mono text-sm">points = %.2f %+.3f &middot; field_pos %+.4f &middot; clock &nbsp; (n=%d)</div>`,
			data.Intercept, data.FieldPosCoef, data.ClockCoef, data.Samples)
		if data.ChartFile != "" {
			fmt.Fprintf(w, `<img class="rounded-xl shadow mb-6" src="/charts/%s" alt="points over expected scatter">`, templ.EscapeString(data.ChartFile))
		}
		io.WriteString(w, `<table class="w-full bg-white rounded-xl shadow text-sm"><thead><tr class="text-left border-b"><th class="p-2">Variable</th><th class="p-2">N</th><th class="p-2">Pearson r</th><th class="p-2">Slope</th></tr></thead><tbody>`)
		for _, c := range data.Correlations {
			if _, err := fmt.Fprintf(w,
				`<tr class="border-b last:border-0"><td class="p-2">%s</td><td class="p-2">%d</td><td class="p-2">%.3f</td><td class="p-2">%.3f</td></tr>`,
				templ.EscapeString(c.Variable), c.N, c.R, c.Slope); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func RatingsArticle(data RatingsPageData) templ.Component {
	return layout("Team ratings", func(w io.Writer) error {
		fmt.Fprintf(w, `<h1 class="text-3xl font-black mb-2">Incremental team ratings</h1><p class="text-stone-600 mb-6">Offense and defense drift toward what each game says about them. League scoring mean %.1f, home edge %+.1f.</p>`,
			data.LeagueMean, data.HomeEdge)
		if data.ChartFile != "" {
			fmt.Fprintf(w, `<img class="rounded-xl shadow mb-6" src="/charts/%s" alt="net ratings">`, templ.EscapeString(data.ChartFile))
		}
		io.WriteString(w, `<table class="w-full bg-white rounded-xl shadow text-sm mb-8"><thead><tr class="text-left border-b"><th class="p-2">#</th><th class="p-2">Team</th><th class="p-2">Offense</th><th class="p-2">Defense</th><th class="p-2">Net</th><th class="p-2">Games</th></tr></thead><tbody>`)
		for _, r := range data.Rows {
			if _, err := fmt.Fprintf(w,
				`<tr class="border-b last:border-0"><td class="p-2">%d</td><td class="p-2 font-semibold">%s</td><td class="p-2">%.2f</td><td class="p-2">%.2f</td><td class="p-2">%.2f</td><td class="p-2">%d</td></tr>`,
				r.Rank, templ.EscapeString(r.Team), r.Offense, r.Defense, r.Net, r.Games); err != nil {
				return err
			}
		}
		io.WriteString(w, `</tbody></table>`)
		if len(data.Upcoming) > 0 {
			io.WriteString(w, `<h2 class="text-xl font-bold mb-3">Next week</h2><div class="bg-white rounded-xl shadow p-4 text-sm space-y-1">`)
			for _, m := range data.Upcoming {
				if _, err := fmt.Fprintf(w, `<div>wk%d &nbsp; %s @ %s &mdash; home %.1f%%</div>`,
					m.Week, templ.EscapeString(m.AwayTeam), templ.EscapeString(m.HomeTeam), m.HomeWinPct); err != nil {
					return err
				}
			}
			io.WriteString(w, `</div>`)
		}
		return nil
	})
}
