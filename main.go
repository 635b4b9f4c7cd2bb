package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	article := flag.String("article", "careers", "Article to run: 'careers', 'poe', or 'ratings'")
	from := flag.Int("from", 0, "First season to include (0 = all)")
	to := flag.Int("to", 0, "Last season to include (0 = all)")
	topN := flag.Int("top", 25, "Number of rows to display")
	format := flag.String("format", "table", "Output format: 'table', 'json', or 'csv'")
	outputFile := flag.String("output", "", "Output file (default: stdout)")
	entity := flag.String("entity", "", "Show the season-by-season career arc for one franchise")
	charts := flag.Bool("charts", false, "Render PNG charts alongside the report")
	serveMode := flag.Bool("serve", false, "Serve the article pages over HTTP instead of running once")
	addr := flag.String("addr", "", "Listen address for -serve (overrides FIELDNOTES_ADDR)")

	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := loadConfig()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if err := initDB(cfg.DBPath); err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}

	if *serveMode {
		if err := serve(cfg); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
		return
	}

	var output string
	switch *article {
	case "careers":
		res, err := runCareersArticle(cfg, *from, *to, *charts)
		if err != nil {
			logrus.WithError(err).Fatal("careers article failed")
		}
		if *entity != "" {
			output = formatCareerDetail(res, *entity, ReportFormat(*format))
		} else {
			output = formatCareers(res, ReportFormat(*format), *topN)
		}
		if res.ChartFile != "" {
			fmt.Fprintf(os.Stderr, "chart written to %s\n", res.ChartFile)
		}
	case "poe":
		res, err := runPoeArticle(cfg, *from, *to, *charts)
		if err != nil {
			logrus.WithError(err).Fatal("poe article failed")
		}
		output = formatPoe(res, ReportFormat(*format))
	case "ratings":
		res, err := runRatingsArticle(cfg, *from, *to, *charts)
		if err != nil {
			logrus.WithError(err).Fatal("ratings article failed")
		}
		output = formatRatings(res, ReportFormat(*format), *topN)
	default:
		fmt.Fprintf(os.Stderr, "Unknown article: %s\n", *article)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0o644); err != nil {
			logrus.WithError(err).Fatal("could not write output file")
		}
		fmt.Printf("Output written to %s\n", *outputFile)
	} else {
		fmt.Print(output)
	}
}
