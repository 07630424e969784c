package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/pipeline"
	"github.com/aluiziolira/go-scrape-foodmandu/scraper"
)

func newZonesCommand(cfg *config.Config) *command {
	fs := newFlagSet("zones", "Fetch every vendor of each delivery zone and save them as {zone: [vendor, ...]}.")
	addCommonFlags(fs, cfg)
	addFetchFlags(fs, cfg)
	fs.Var(zonesValue{zones: &cfg.Zones}, "zones", "Delivery zones in fetch order, as Name=ID,Name=ID")
	fs.IntVar(&cfg.MaxPages, "pages", cfg.MaxPages, "Maximum pages per zone")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Vendors requested per page")
	fs.DurationVar(&cfg.PageDelay, "delay", cfg.PageDelay, "Pause after every page")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Output file path")

	return &command{
		name:  "zones",
		flags: fs,
		run: func(ctx context.Context) error {
			return runZones(ctx, cfg)
		},
	}
}

func runZones(ctx context.Context, cfg *config.Config) error {
	s, err := scraper.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("initialise scraper: %w", err)
	}
	stopMetrics := startMetricsServer(cfg.MetricsAddr, s.Metrics)
	defer stopMetrics()

	slog.Info("starting zone fetch",
		slog.String("base_url", cfg.BaseURL),
		slog.String("zones", config.FormatZones(cfg.Zones)),
		slog.Int("max_pages", cfg.MaxPages),
		slog.Int("page_size", cfg.PageSize),
	)

	start := time.Now()
	listing, results, err := s.FetchAllZones(ctx)
	if err != nil {
		return err
	}

	if err := pipeline.WriteJSONDocument(cfg.OutputFile, listing); err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	slog.Info("saved vendors", slog.String("path", cfg.OutputFile), slog.Int("count", listing.Total()))

	rows := make([]summaryRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, summaryRow{
			label: r.Zone.Name,
			value: fmt.Sprintf("%d vendors, %d pages, %s", len(r.Vendors), r.Pages, r.Stop),
		})
	}
	printSummary(os.Stdout, "Zone fetch complete", s.Result(start, listing.Total(), nil), cfg.OutputFile, rows)
	return nil
}
