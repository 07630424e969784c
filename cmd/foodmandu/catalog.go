package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/models"
	"github.com/aluiziolira/go-scrape-foodmandu/parser"
	"github.com/aluiziolira/go-scrape-foodmandu/pipeline"
)

func newCatalogCommand(cfg *config.Config) *command {
	fs := newFlagSet("catalog", "Join a saved zone listing and menu file into one row per menu item.")
	addCommonFlags(fs, cfg)
	fs.StringVar(&cfg.InputFile, "input", cfg.InputFile, "Zone listing written by the zones command")
	fs.StringVar(&cfg.MenuFile, "menus", cfg.MenuFile, "Menu file written by the menus command")
	fs.StringVar(&cfg.CatalogFile, "output", cfg.CatalogFile, "Catalog output path")
	fs.StringVar(&cfg.OutputFormat, "format", cfg.OutputFormat, "Output format: csv, json (JSONL), dual, or array (one indented JSON array)")
	fs.BoolVar(&cfg.KeepOrphans, "keep-orphans", cfg.KeepOrphans, "Also emit menus whose vendor is missing from the listing, with a null vendor")
	fs.IntVar(&cfg.Parallelism, "parallel", cfg.Parallelism, "Pipeline workers")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Rows per write")

	return &command{
		name:  "catalog",
		flags: fs,
		run: func(ctx context.Context) error {
			return runCatalog(ctx, cfg)
		},
	}
}

type catalogStats struct {
	vendors     int
	menus       int
	unsupported int
	orphaned    int
}

func runCatalog(ctx context.Context, cfg *config.Config) error {
	listing, err := parser.LoadZoneListing(cfg.InputFile)
	if err != nil {
		return err
	}
	vendors, err := parser.SummarizeListing(listing)
	if err != nil {
		return err
	}
	order, err := parser.VendorIDs(listing)
	if err != nil {
		return err
	}
	menus, err := parser.LoadMenuSet(cfg.MenuFile)
	if err != nil {
		return err
	}

	writer, err := pipeline.NewOutputWriter(cfg.OutputFormat, cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	p := pipeline.NewPipeline(ctx, writer, cfg)
	p.Start(cfg.Parallelism)
	if cfg.Verbose {
		p.StartMetricsReporting(10 * time.Second)
	}

	start := time.Now()
	stats, err := feedCatalog(ctx, p, order, vendors, menus, cfg.KeepOrphans)
	if err != nil {
		_ = p.Close()
		return err
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("pipeline shutdown: %w", err)
	}
	if err := writer.Validate(); err != nil {
		return fmt.Errorf("output validation: %w", err)
	}

	metrics := p.GetMetrics()
	processed, _ := metrics["processed_items"].(int64)
	slog.Info("catalog written", slog.String("path", cfg.CatalogFile), slog.Int64("items", processed))

	rows := []summaryRow{
		{label: "Vendors", value: fmt.Sprint(stats.vendors)},
		{label: "Menus", value: fmt.Sprint(stats.menus)},
		{label: "Unsupported", value: fmt.Sprint(stats.unsupported)},
		{label: "No vendor", value: fmt.Sprint(stats.orphaned)},
	}
	if validation, ok := metrics["validation_errors"].(map[string]int); ok && len(validation) > 0 {
		rows = append(rows, summaryRow{label: "Validation", value: fmt.Sprint(validation)})
	}
	result := &models.RunResult{StartTime: start, EndTime: time.Now(), RecordCount: int(processed)}
	printSummary(os.Stdout, "Catalog complete", result, cfg.CatalogFile, rows)
	return nil
}

// feedCatalog walks vendors in listing order and submits the rows of each
// vendor's menu. Menus whose vendor is absent from the listing are counted;
// with keepOrphans they follow in vendor id order with a nil vendor.
func feedCatalog(ctx context.Context, p *pipeline.Pipeline, order []models.VendorID, vendors map[models.VendorID]*models.VendorSummary, menus models.MenuSet, keepOrphans bool) (catalogStats, error) {
	var stats catalogStats
	stats.vendors = len(vendors)

	done := make(map[models.VendorID]struct{}, len(order))
	for _, id := range order {
		if _, ok := done[id]; ok {
			continue
		}
		done[id] = struct{}{}

		menu, ok := menus[id]
		if !ok {
			continue
		}
		if err := feedMenu(ctx, p, id, menu, vendors[id], &stats); err != nil {
			return stats, err
		}
	}

	var orphans []models.VendorID
	for id := range menus {
		if _, ok := done[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i] < orphans[j] })
	stats.orphaned = len(orphans)

	for _, id := range orphans {
		if !keepOrphans {
			slog.Debug("menu has no vendor in listing", slog.String("vendor_id", string(id)))
			continue
		}
		if err := feedMenu(ctx, p, id, menus[id], nil, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func feedMenu(ctx context.Context, p *pipeline.Pipeline, id models.VendorID, menu models.MenuResponse, vendor *models.VendorSummary, stats *catalogStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items, err := parser.FlattenMenu(menu, vendor)
	if errors.Is(err, parser.ErrUnsupportedMenu) {
		stats.unsupported++
		slog.Warn("skipping menu", slog.String("vendor_id", string(id)), slog.Any("error", err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("vendor %s: %w", id, err)
	}
	if err := p.Process(items...); err != nil {
		return err
	}
	stats.menus++
	return nil
}
