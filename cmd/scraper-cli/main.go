// Command scraper-cli tests site parsers against sample URLs and reports
// rolling parser statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/config"
	"recipeparser/internal/domain"
	"recipeparser/internal/extract/sites"
	"recipeparser/internal/fetch"
	"recipeparser/internal/mail"
	"recipeparser/internal/monitor"
	"recipeparser/internal/monitoring"
	"recipeparser/internal/parser"
	"recipeparser/internal/storage"
	"recipeparser/internal/validate"
)

// sampleURLs pairs each parser with a known-good recipe page.
var sampleURLs = [][2]string{
	{"AllRecipes", "https://www.allrecipes.com/recipe/24074/alysias-basic-meat-lasagna/"},
	{"Epicurious", "https://www.epicurious.com/recipes/food/views/classic-chocolate-mousse-107768"},
	{"Food.com", "https://www.food.com/recipe/perfect-pancakes-25690"},
	{"Serious Eats", "https://www.seriouseats.com/classic-french-omelette-recipe"},
	{"Simply Recipes", "https://www.simplyrecipes.com/recipes/classic_beef_chili/"},
	{"Yummly", "https://www.yummly.com/recipe/Classic-Deviled-Eggs-2046153"},
	{"Taste of Home", "https://www.tasteofhome.com/recipes/basic-homemade-bread/"},
	{"The Spruce Eats", "https://www.thespruceeats.com/classic-southern-fried-chicken-3058647"},
	{"Love and Lemons", "https://www.loveandlemons.com/chocolate-chip-cookies/"},
	{"Damn Delicious", "https://damndelicious.net/2019/05/03/instant-pot-crack-chicken/"},
}

type app struct {
	cfg     *config.Config
	parser  *parser.Service
	monitor *monitor.Monitor
	logger  *zap.Logger
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load config:", err)
		os.Exit(1)
	}

	var store monitor.Store
	if cfg.PostgresURL != "" {
		pg, err := storage.NewPostgresStore(cfg.PostgresURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not connect to postgres:", err)
			os.Exit(1)
		}
		defer pg.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not ensure schema:", err)
			os.Exit(1)
		}
		store = pg
	} else {
		fmt.Fprintln(os.Stderr, "warning: POSTGRES_URL not set, results will not be persisted")
		store = monitor.NewMemoryStore()
	}

	var cache monitor.StatsCache
	if cfg.RedisAddr != "" {
		cache = storage.NewRedisStore(cfg.RedisAddr)
	}

	metrics := monitoring.NewMetrics()
	a := &app{
		cfg:     cfg,
		monitor: monitor.NewMonitor(store, cache, metrics, logger),
		logger:  logger,
	}

	fetcher := fetch.NewFetcher(time.Duration(cfg.FetchTimeout)*time.Second, logger)
	if cfg.BrowserFallback {
		fetcher = fetcher.WithBrowser(fetch.NewBrowserFetcher(time.Duration(cfg.FetchTimeout) * time.Second))
	}
	a.parser = parser.NewService(fetcher, sites.DefaultRegistry(logger), metrics, logger)

	switch os.Args[1] {
	case "test":
		os.Exit(a.runTest(os.Args[2:]))
	case "stats":
		os.Exit(a.runStats(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: scraper-cli <command> [flags]

commands:
  test   test recipe scrapers against sample URLs
         -parser name   test a specific parser
         -url url       test a specific URL
         -email addr    send results to an email address
  stats  show parser statistics
         -parser name   parser to report on (required)
         -days n        only count logs from the last n days (default 7)`)
}

func (a *app) runTest(args []string) int {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	parserName := fs.String("parser", "", "test a specific parser")
	urlFlag := fs.String("url", "", "test a specific URL")
	email := fs.String("email", "", "send results to an email address")
	fs.Parse(args)

	ctx := context.Background()
	var results []domain.ScrapingResult

	if *urlFlag != "" {
		results = append(results, a.testURL(ctx, *urlFlag))
	} else {
		for _, pair := range sampleURLs {
			if *parserName != "" && pair[0] != *parserName {
				continue
			}
			results = append(results, a.testURL(ctx, pair[1]))
		}
	}

	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "no sample URLs for parser %q\n", *parserName)
		return 2
	}

	displayResults(results)

	if *email != "" {
		mailer, err := mail.NewMailer(a.cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot send email:", err)
			return 1
		}
		if err := mailer.SendResults(*email, results); err != nil {
			fmt.Fprintln(os.Stderr, "sending email failed:", err)
			return 1
		}
		fmt.Println("results sent to", *email)
	}

	for _, r := range results {
		if !r.Success {
			return 1
		}
	}
	return 0
}

// testURL runs the full pipeline for one URL and logs the outcome. All
// failures are folded into the returned result, never the process exit.
func (a *app) testURL(ctx context.Context, url string) domain.ScrapingResult {
	start := time.Now()

	fail := func(msg string) domain.ScrapingResult {
		return domain.ScrapingResult{
			URL:        url,
			ParserName: "unknown",
			Timestamp:  time.Now(),
			Duration:   time.Since(start).Milliseconds(),
			Success:    false,
			ValidationResult: domain.ValidationResult{
				IsValid: false,
				Errors: []domain.ValidationError{
					{Field: "parser", Message: msg, Code: "PARSER_ERROR"},
				},
				Warnings: []domain.ValidationWarning{},
			},
			Error: msg,
		}
	}

	classification := a.parser.ValidateURL(url)
	if !classification.IsValid {
		return fail(classification.Err)
	}

	result := a.parser.ParseURL(ctx, url)
	if !result.Success {
		return fail(result.Error.Message)
	}

	vr := validate.ValidateRecipe(*result.Recipe)
	scraping := domain.ScrapingResult{
		URL:              url,
		ParserName:       classification.Source,
		Timestamp:        time.Now(),
		Duration:         time.Since(start).Milliseconds(),
		Success:          vr.IsValid,
		ValidationResult: vr,
	}

	if err := a.monitor.LogScrapingResult(ctx, scraping); err != nil {
		a.logger.Warn("logging result failed", zap.String("url", url), zap.Error(err))
	}
	return scraping
}

func displayResults(results []domain.ScrapingResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARSER\tURL\tSTATUS\tDURATION\tERRORS\tWARNINGS")
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%d\t%d\n",
			r.ParserName, r.URL, status, r.Duration,
			len(r.ValidationResult.Errors), len(r.ValidationResult.Warnings))
	}
	w.Flush()

	for _, r := range results {
		if r.Success && len(r.ValidationResult.Errors) == 0 {
			continue
		}
		fmt.Printf("\nErrors for %s:\n", r.URL)
		for _, e := range r.ValidationResult.Errors {
			fmt.Printf("- %s: %s (%s)\n", e.Field, e.Message, e.Code)
		}
	}
}

func (a *app) runStats(args []string) int {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	parserName := fs.String("parser", "", "parser to report on")
	days := fs.Int("days", 7, "only count logs from the last n days")
	fs.Parse(args)

	if *parserName == "" {
		fmt.Fprintln(os.Stderr, "stats requires -parser")
		return 2
	}

	ctx := context.Background()
	stats, err := a.monitor.GetParserStats(ctx, *parserName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetching stats failed:", err)
		return 1
	}
	if stats == nil {
		fmt.Println("No statistics available")
		return 0
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "Total Attempts\t%d\n", stats.TotalAttempts)
	fmt.Fprintf(w, "Success Rate\t%.2f%%\n", stats.SuccessRate)
	fmt.Fprintf(w, "Avg Duration\t%.2fms\n", stats.AverageDuration)
	fmt.Fprintf(w, "Last Run\t%s\n", stats.LastRun.Format(time.RFC1123))
	w.Flush()

	if len(stats.CommonErrors) > 0 {
		fmt.Println("\nCommon Errors:")
		for _, e := range stats.CommonErrors {
			fmt.Printf("- %s: %d occurrences\n", e.Code, e.Count)
		}
	}

	logs, err := a.monitor.GetRecentScrapingLogs(ctx, 100, *parserName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetching logs failed:", err)
		return 1
	}
	cutoff := time.Now().AddDate(0, 0, -*days)
	var recent int
	for _, l := range logs {
		if l.Timestamp.After(cutoff) {
			recent++
		}
	}
	fmt.Printf("\n%d logged attempts in the last %d days\n", recent, *days)
	return 0
}
