package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ReportFormat selects the batch output shape.
type ReportFormat string

const (
	FormatTable ReportFormat = "table"
	FormatJSON  ReportFormat = "json"
	FormatCSV   ReportFormat = "csv"
)

func formatCareers(res *CareersResult, format ReportFormat, top int) string {
	summaries := res.Summaries
	if top > 0 && top < len(summaries) {
		summaries = summaries[:top]
	}
	switch format {
	case FormatJSON:
		return marshalJSON(struct {
			RunID     string          `json:"run_id"`
			Seasons   [2]int          `json:"seasons"`
			Summaries []CareerSummary `json:"summaries"`
		}{res.RunID, res.Seasons, summaries})
	case FormatCSV:
		var sb strings.Builder
		sb.WriteString("rank,entity,periods,career_value,win_rate,top1_rate,top3_rate,top5_rate\n")
		for i, s := range summaries {
			sb.WriteString(fmt.Sprintf("%d,%s,%d,%.2f,%.3f,%.3f,%.3f,%.3f\n",
				i+1, s.Entity, s.Periods, s.CareerValue, s.WinRate, s.Top1Rate, s.Top3Rate, s.Top5Rate))
		}
		return sb.String()
	default:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\nFranchise careers, era-adjusted (%d-%d)\n", res.Seasons[0], res.Seasons[1]))
		sb.WriteString(fmt.Sprintf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05")))
		sb.WriteString(strings.Repeat("=", 78) + "\n")
		sb.WriteString(fmt.Sprintf("%-4s %-6s %8s %10s %8s %7s %7s %7s\n",
			"Rank", "Team", "Seasons", "Value", "Win%", "Top1%", "Top3%", "Top5%"))
		sb.WriteString(strings.Repeat("-", 78) + "\n")
		for i, s := range summaries {
			sb.WriteString(fmt.Sprintf("%-4d %-6s %8s %10.1f %7.1f%% %6.1f%% %6.1f%% %6.1f%%\n",
				i+1, s.Entity, humanize.Comma(int64(s.Periods)), s.CareerValue,
				s.WinRate*100, s.Top1Rate*100, s.Top3Rate*100, s.Top5Rate*100))
		}
		sb.WriteString(strings.Repeat("=", 78) + "\n")
		sb.WriteString("\nValue is cumulative points per game over the league median of each season.\n")
		return sb.String()
	}
}

type careerDetailRow struct {
	Season      int     `json:"season"`
	PPG         float64 `json:"ppg"`
	Adjusted    float64 `json:"adjusted"`
	Rank        int     `json:"rank"`
	CareerGames int     `json:"career_games"`
	CareerValue float64 `json:"career_value"`
}

func formatCareerDetail(res *CareersResult, entity string, format ReportFormat) string {
	var arc []careerDetailRow
	for _, r := range res.Records {
		if r.Entity != entity {
			continue
		}
		arc = append(arc, careerDetailRow{
			Season:      r.Period,
			PPG:         r.Raw,
			Adjusted:    r.Adjusted,
			Rank:        r.Rank,
			CareerGames: r.CareerGames,
			CareerValue: r.CareerValue,
		})
	}
	if len(arc) == 0 {
		return fmt.Sprintf("no records for %q in this range\n", entity)
	}
	switch format {
	case FormatJSON:
		return marshalJSON(struct {
			Entity string            `json:"entity"`
			Arc    []careerDetailRow `json:"arc"`
		}{entity, arc})
	case FormatCSV:
		var sb strings.Builder
		sb.WriteString("season,ppg,adjusted,rank,career_games,career_value\n")
		for _, r := range arc {
			sb.WriteString(fmt.Sprintf("%d,%.1f,%.2f,%d,%d,%.2f\n",
				r.Season, r.PPG, r.Adjusted, r.Rank, r.CareerGames, r.CareerValue))
		}
		return sb.String()
	default:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("\nCareer arc: %s\n", entity))
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		sb.WriteString(fmt.Sprintf("%-8s %8s %10s %6s %8s %12s\n",
			"Season", "PPG", "Adjusted", "Rank", "Games", "Cum. value"))
		for _, r := range arc {
			sb.WriteString(fmt.Sprintf("%-8d %8.1f %+10.2f %6d %8d %+12.2f\n",
				r.Season, r.PPG, r.Adjusted, r.Rank, r.CareerGames, r.CareerValue))
		}
		return sb.String()
	}
}

func formatPoe(res *PoeResult, format ReportFormat) string {
	switch format {
	case FormatJSON:
		return marshalJSON(res)
	case FormatCSV:
		var sb strings.Builder
		sb.WriteString("variable,n,r,slope\n")
		for _, c := range res.Correlations {
			sb.WriteString(fmt.Sprintf("%s,%d,%.4f,%.4f\n", c.Variable, c.N, c.R, c.Slope))
		}
		return sb.String()
	default:
		var sb strings.Builder
		sb.WriteString("\nPoints over expected\n")
		sb.WriteString(strings.Repeat("=", 64) + "\n")
		sb.WriteString(fmt.Sprintf("Model: points = %.2f %+.3f*field_pos %+.4f*clock  (n=%s)\n",
			res.Model.Intercept, res.Model.FieldPosCoef, res.Model.ClockCoef,
			humanize.Comma(int64(res.Samples))))
		sb.WriteString(strings.Repeat("-", 64) + "\n")
		sb.WriteString(fmt.Sprintf("%-18s %8s %10s %10s\n", "Variable", "N", "Pearson r", "Slope"))
		for _, c := range res.Correlations {
			sb.WriteString(fmt.Sprintf("%-18s %8d %10.3f %10.3f\n", c.Variable, c.N, c.R, c.Slope))
		}
		if len(res.Correlations) == 0 {
			sb.WriteString("(no companion variables could be joined)\n")
		}
		return sb.String()
	}
}

func formatRatings(res *RatingsResult, format ReportFormat, top int) string {
	ratings := res.Ratings
	if top > 0 && top < len(ratings) {
		ratings = ratings[:top]
	}
	switch format {
	case FormatJSON:
		return marshalJSON(struct {
			RunID    string        `json:"run_id"`
			Ratings  []TeamRating  `json:"ratings"`
			Upcoming []MatchupProb `json:"upcoming"`
		}{res.RunID, ratings, res.Upcoming})
	case FormatCSV:
		var sb strings.Builder
		sb.WriteString("rank,team,offense,defense,net,games\n")
		for i, r := range ratings {
			sb.WriteString(fmt.Sprintf("%d,%s,%.2f,%.2f,%.2f,%d\n",
				i+1, r.Team, r.Offense, r.Defense, r.Net(), r.Games))
		}
		return sb.String()
	default:
		var sb strings.Builder
		sb.WriteString("\nIncremental team ratings\n")
		sb.WriteString(fmt.Sprintf("League scoring mean: %.1f  Home edge: %+.1f  Margin sigma: %.1f\n",
			res.Set.LeagueMean, res.Set.HomeEdge, res.Set.MarginStd))
		sb.WriteString(strings.Repeat("=", 58) + "\n")
		sb.WriteString(fmt.Sprintf("%-4s %-6s %9s %9s %9s %7s\n",
			"Rank", "Team", "Offense", "Defense", "Net", "Games"))
		sb.WriteString(strings.Repeat("-", 58) + "\n")
		for i, r := range ratings {
			sb.WriteString(fmt.Sprintf("%-4d %-6s %9.2f %9.2f %9.2f %7d\n",
				i+1, r.Team, r.Offense, r.Defense, r.Net(), r.Games))
		}
		if len(res.Upcoming) > 0 {
			sb.WriteString("\nUpcoming\n")
			sb.WriteString(strings.Repeat("-", 58) + "\n")
			for _, m := range res.Upcoming {
				sb.WriteString(fmt.Sprintf("wk%-3d %s @ %s  home %.1f%%\n",
					m.Week, m.AwayTeam, m.HomeTeam, m.HomeWin*100))
			}
		}
		return sb.String()
	}
}

func marshalJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data) + "\n"
}
