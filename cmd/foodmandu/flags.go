package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/config"
	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: foodmandu %s [flags]\n\n%s\n\nFlags:\n", name, summary)
		fs.PrintDefaults()
	}
	return fs
}

func addCommonFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Enable verbose logging")
}

// addFetchFlags registers the flags shared by the commands that hit the API.
func addFetchFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus metrics listen address (e.g. :9090)")
}

// zonesValue lets -zones take an ordered Name=ID,Name=ID table.
type zonesValue struct {
	zones *[]models.Zone
}

func (z zonesValue) String() string {
	if z.zones == nil {
		return ""
	}
	return config.FormatZones(*z.zones)
}

func (z zonesValue) Set(s string) error {
	zones, err := config.ParseZones(s)
	if err != nil {
		return err
	}
	*z.zones = zones
	return nil
}

// applyEnv overlays FOODMANDU_* variables on cfg. Flags parsed afterwards
// take precedence.
func applyEnv(cfg *config.Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"FOODMANDU_BASE_URL", &cfg.BaseURL},
		{"FOODMANDU_USER_AGENT", &cfg.UserAgent},
		{"FOODMANDU_OUTPUT", &cfg.OutputFile},
		{"FOODMANDU_INPUT", &cfg.InputFile},
		{"FOODMANDU_MENU_FILE", &cfg.MenuFile},
		{"FOODMANDU_CATALOG_FILE", &cfg.CatalogFile},
		{"FOODMANDU_FORMAT", &cfg.OutputFormat},
		{"FOODMANDU_METRICS_ADDR", &cfg.MetricsAddr},
	}
	for _, e := range strs {
		if value, ok := config.EnvString(e.key); ok {
			*e.dst = value
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FOODMANDU_MAX_PAGES", &cfg.MaxPages},
		{"FOODMANDU_PAGE_SIZE", &cfg.PageSize},
		{"FOODMANDU_PARALLEL", &cfg.Parallelism},
	}
	for _, e := range ints {
		value, ok, err := config.EnvInt(e.key)
		if err != nil {
			return err
		}
		if ok {
			*e.dst = value
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"FOODMANDU_PAGE_DELAY", &cfg.PageDelay},
		{"FOODMANDU_MENU_DELAY", &cfg.MenuDelay},
		{"FOODMANDU_TIMEOUT", &cfg.Timeout},
	}
	for _, e := range durations {
		value, ok, err := config.EnvDuration(e.key)
		if err != nil {
			return err
		}
		if ok {
			*e.dst = value
		}
	}

	if value, ok := config.EnvString("FOODMANDU_ZONES"); ok {
		zones, err := config.ParseZones(value)
		if err != nil {
			return fmt.Errorf("FOODMANDU_ZONES: %w", err)
		}
		cfg.Zones = zones
	}
	return nil
}
