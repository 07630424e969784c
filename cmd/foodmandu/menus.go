package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/models"
	"github.com/aluiziolira/go-scrape-foodmandu/parser"
	"github.com/aluiziolira/go-scrape-foodmandu/pipeline"
	"github.com/aluiziolira/go-scrape-foodmandu/scraper"
)

type menusOptions struct {
	output string
	skip   int
	limit  int
}

func newMenusCommand(cfg *config.Config) *command {
	opts := &menusOptions{}

	fs := newFlagSet("menus", "Fetch the menu of every vendor in a saved zone listing.")
	addCommonFlags(fs, cfg)
	addFetchFlags(fs, cfg)
	fs.StringVar(&cfg.InputFile, "input", cfg.InputFile, "Zone listing written by the zones command")
	fs.StringVar(&opts.output, "output", "", "Write {vendorId: menu} here; when empty only the count is reported")
	fs.IntVar(&opts.skip, "skip", 0, "Skip the first N vendor ids")
	fs.IntVar(&opts.limit, "limit", 0, "Fetch at most N menus (0 for all)")
	fs.DurationVar(&cfg.MenuDelay, "delay", cfg.MenuDelay, "Pause after every menu request")

	return &command{
		name:  "menus",
		flags: fs,
		run: func(ctx context.Context) error {
			return runMenus(ctx, cfg, *opts)
		},
	}
}

func runMenus(ctx context.Context, cfg *config.Config, opts menusOptions) error {
	ids, err := parser.ExtractVendorIDs(cfg.InputFile)
	if err != nil {
		return err
	}
	total := len(ids)
	ids, err = selectIDs(ids, opts.skip, opts.limit)
	if err != nil {
		return err
	}

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("initialise scraper: %w", err)
	}
	stopMetrics := startMetricsServer(cfg.MetricsAddr, s.Metrics)
	defer stopMetrics()

	slog.Info("starting menu fetch",
		slog.String("input", cfg.InputFile),
		slog.Int("vendors", total),
		slog.Int("selected", len(ids)),
	)

	start := time.Now()
	result, err := s.FetchAllMenus(ctx, ids)
	if err != nil {
		return err
	}

	outputFile := "(not saved)"
	if opts.output != "" {
		if err := pipeline.WriteJSONDocument(opts.output, result.Menus); err != nil {
			return fmt.Errorf("save menus: %w", err)
		}
		outputFile = opts.output
		slog.Info("saved menus", slog.String("path", opts.output), slog.Int("count", len(result.Menus)))
	} else {
		fmt.Printf("Fetched %d menus; pass -output to save them.\n", len(result.Menus))
	}

	rows := []summaryRow{
		{label: "Attempts", value: fmt.Sprint(result.Attempts)},
		{label: "Menus", value: fmt.Sprint(len(result.Menus))},
	}
	printSummary(os.Stdout, "Menu fetch complete", s.Result(start, len(result.Menus), result.Skipped), outputFile, rows)
	return nil
}

// selectIDs applies -skip and -limit to the id sequence.
func selectIDs(ids []models.VendorID, skip, limit int) ([]models.VendorID, error) {
	if skip < 0 {
		return nil, fmt.Errorf("skip cannot be negative")
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative")
	}
	if skip >= len(ids) {
		return nil, nil
	}
	ids = ids[skip:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}
