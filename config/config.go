package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// Config holds fetcher configuration. Every value the fetchers need is carried
// here so they can be exercised against any endpoint.
type Config struct {
	BaseURL     string
	VendorsPath string
	MenuPath    string

	UserAgent string
	Accept    string
	Referer   string
	Origin    string

	Zones    []models.Zone
	MaxPages int
	PageSize int
	SortBy   int
	SearchBy string

	PageDelay   time.Duration
	MenuDelay   time.Duration
	Timeout     time.Duration
	MaxBodySize int

	OutputFile   string
	InputFile    string
	MenuFile     string
	CatalogFile  string
	OutputFormat string // csv, json, dual, or array
	KeepOrphans  bool   // emit menus whose vendor is missing from the listing

	Parallelism        int
	BatchSize          int
	PipelineBufferSize int
	DedupeMaxSize      int

	MetricsAddr string
	Verbose     bool
}

// DefaultZones returns the delivery zones fetched when none are configured.
func DefaultZones() []models.Zone {
	return []models.Zone{
		{Name: "Kathmandu", ID: 1},
		{Name: "Lalitpur", ID: 2},
		{Name: "Bhaktapur", ID: 3},
	}
}

// DefaultConfig returns the values the public site expects.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "https://foodmandu.com/webapi/api",
		VendorsPath:        "/Vendor/GetVendors1",
		MenuPath:           "/v2/Product/GetVendorProductsBySubCategoryV2",
		UserAgent:          "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Accept:             "application/json, text/plain, */*",
		Referer:            "https://foodmandu.com/",
		Origin:             "https://foodmandu.com",
		Zones:              DefaultZones(),
		MaxPages:           20,
		PageSize:           50,
		SortBy:             4,
		SearchBy:           "restaurant",
		PageDelay:          time.Second,
		MenuDelay:          time.Second,
		Timeout:            30 * time.Second,
		MaxBodySize:        32 * 1024 * 1024,
		OutputFile:         "foodmandu_all_restaurants.json",
		InputFile:          "foodmandu_all_restaurants.json",
		MenuFile:           "foodmandu_all_menu_items.json",
		CatalogFile:        "output/menu_vendor.csv",
		OutputFormat:       "csv",
		Parallelism:        4,
		BatchSize:          64,
		PipelineBufferSize: 512,
		DedupeMaxSize:      100000,
	}
}

// VendorsURL is the vendor search endpoint.
func (c *Config) VendorsURL() string {
	return joinURL(c.BaseURL, c.VendorsPath)
}

// MenuURL is the per-vendor menu endpoint, without the vendor query.
func (c *Config) MenuURL() string {
	return joinURL(c.BaseURL, c.MenuPath)
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if strings.TrimSpace(c.VendorsPath) == "" {
		return fmt.Errorf("vendors path cannot be empty")
	}
	if strings.TrimSpace(c.MenuPath) == "" {
		return fmt.Errorf("menu path cannot be empty")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Accept == "" {
		return fmt.Errorf("accept header cannot be empty")
	}

	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one delivery zone is required")
	}
	seen := make(map[string]struct{}, len(c.Zones))
	for _, zone := range c.Zones {
		if strings.TrimSpace(zone.Name) == "" {
			return fmt.Errorf("delivery zone name cannot be empty")
		}
		if _, dup := seen[zone.Name]; dup {
			return fmt.Errorf("duplicate delivery zone %q", zone.Name)
		}
		seen[zone.Name] = struct{}{}
	}

	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("page delay cannot be negative")
	}
	if c.MenuDelay < 0 {
		return fmt.Errorf("menu delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxBodySize < 0 {
		return fmt.Errorf("max body size cannot be negative")
	}

	switch c.OutputFormat {
	case "csv", "json", "dual", "array":
	default:
		return fmt.Errorf("output format must be csv, json, dual, or array")
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if c.PipelineBufferSize <= 0 {
		return fmt.Errorf("pipeline buffer size must be positive")
	}
	if c.DedupeMaxSize <= 0 {
		return fmt.Errorf("dedupe max size must be positive")
	}

	return nil
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
