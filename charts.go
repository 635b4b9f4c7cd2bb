package main

import (
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 960
	chartHeight = 520
)

// renderCareerChart draws the cumulative era-adjusted value of the selected
// entities over time, one line per entity.
func renderCareerChart(records []Record, entities []string, path string) error {
	wanted := make(map[string]bool, len(entities))
	for _, e := range entities {
		wanted[e] = true
	}
	xs := make(map[string][]float64)
	ys := make(map[string][]float64)
	for _, r := range records {
		if !wanted[r.Entity] {
			continue
		}
		xs[r.Entity] = append(xs[r.Entity], float64(r.Period))
		ys[r.Entity] = append(ys[r.Entity], r.CareerValue)
	}

	var series []chart.Series
	for i, e := range entities {
		if len(xs[e]) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    e,
			XValues: xs[e],
			YValues: ys[e],
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("career chart: no entity with enough history")
	}

	graph := chart.Chart{
		Title:  "Cumulative era-adjusted scoring value",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Season"},
		YAxis:  chart.YAxis{Name: "Cumulative points/game over league median"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderToFile(&graph, path)
}

// renderPoeScatter draws points-over-expected against a companion variable
// with a fitted trend line.
func renderPoeScatter(x, poe []float64, xName, path string) error {
	if len(x) == 0 || len(x) != len(poe) {
		return fmt.Errorf("poe scatter: bad input lengths %d/%d", len(x), len(poe))
	}
	dots := chart.ContinuousSeries{
		Name:    "team-games",
		XValues: x,
		YValues: poe,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColor:    chart.ColorBlue,
		},
	}
	graph := chart.Chart{
		Title:  "Points over expected vs " + xName,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: "Points over expected"},
		Series: []chart.Series{
			dots,
			&chart.LinearRegressionSeries{
				Name:        "trend",
				InnerSeries: dots,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderToFile(&graph, path)
}

// renderRatingsBar draws the top net ratings as a bar chart.
func renderRatingsBar(ratings []TeamRating, top int, path string) error {
	if top > len(ratings) {
		top = len(ratings)
	}
	if top == 0 {
		return fmt.Errorf("ratings chart: nothing to draw")
	}
	bars := make([]chart.Value, 0, top)
	for _, r := range ratings[:top] {
		bars = append(bars, chart.Value{Label: r.Team, Value: r.Net()})
	}
	graph := chart.BarChart{
		Title:    "Net rating",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 22,
		Bars:     bars,
	}
	f, err := createChartFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

func renderToFile(graph *chart.Chart, path string) error {
	f, err := createChartFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

func createChartFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}
