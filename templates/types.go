package templates

type ArticleLink struct {
	Slug  string
	Title string
	Blurb string
}

type CareerRow struct {
	Rank        int
	Entity      string
	Periods     int
	CareerValue float64
	WinRate     float64
	Top1Rate    float64
	Top3Rate    float64
	Top5Rate    float64
}

type CareersPageData struct {
	SeasonFrom int
	SeasonTo   int
	Rows       []CareerRow
	ChartFile  string
}

type CorrelationRow struct {
	Variable string
	N        int
	R        float64
	Slope    float64
}

type PoePageData struct {
	Intercept    float64
	FieldPosCoef float64
	ClockCoef    float64
	Samples      int
	Correlations []CorrelationRow
	ChartFile    string
}

type RatingRow struct {
	Rank    int
	Team    string
	Offense float64
	Defense float64
	Net     float64
	Games   int
}

type UpcomingRow struct {
	Week       int
	HomeTeam   string
	AwayTeam   string
	HomeWinPct float64
}

type RatingsPageData struct {
	LeagueMean float64
	HomeEdge   float64
	Rows       []RatingRow
	Upcoming   []UpcomingRow
	ChartFile  string
}
