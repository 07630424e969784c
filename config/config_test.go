package config

import (
	"strings"
	"testing"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "zero max pages",
			mutate: func(cfg *Config) {
				cfg.MaxPages = 0
			},
			wantErr: "max pages",
		},
		{
			name: "zero page size",
			mutate: func(cfg *Config) {
				cfg.PageSize = 0
			},
			wantErr: "page size",
		},
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "invalid url format",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "http://"
			},
			wantErr: "base URL",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "negative page delay",
			mutate: func(cfg *Config) {
				cfg.PageDelay = -time.Millisecond
			},
			wantErr: "page delay",
		},
		{
			name: "negative menu delay",
			mutate: func(cfg *Config) {
				cfg.MenuDelay = -time.Millisecond
			},
			wantErr: "menu delay",
		},
		{
			name: "no zones",
			mutate: func(cfg *Config) {
				cfg.Zones = nil
			},
			wantErr: "delivery zone",
		},
		{
			name: "duplicate zone",
			mutate: func(cfg *Config) {
				cfg.Zones = []models.Zone{{Name: "Kathmandu", ID: 1}, {Name: "Kathmandu", ID: 9}}
			},
			wantErr: "duplicate",
		},
		{
			name: "empty user agent",
			mutate: func(cfg *Config) {
				cfg.UserAgent = ""
			},
			wantErr: "user agent",
		},
		{
			name: "unknown output format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xml"
			},
			wantErr: "output format",
		},
		{
			name: "zero dedupe size",
			mutate: func(cfg *Config) {
				cfg.DedupeMaxSize = 0
			},
			wantErr: "dedupe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if got := FormatZones(cfg.Zones); got != "Kathmandu=1,Lalitpur=2,Bhaktapur=3" {
		t.Fatalf("default zones = %q", got)
	}
}

func TestOutputFormats(t *testing.T) {
	for _, format := range []string{"csv", "json", "dual", "array"} {
		cfg := DefaultConfig()
		cfg.OutputFormat = format
		if err := cfg.Validate(); err != nil {
			t.Fatalf("format %s: %v", format, err)
		}
	}
}

func TestEndpointURLs(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.VendorsURL(), "https://foodmandu.com/webapi/api/Vendor/GetVendors1"; got != want {
		t.Fatalf("vendors url = %q, want %q", got, want)
	}
	if got, want := cfg.MenuURL(), "https://foodmandu.com/webapi/api/v2/Product/GetVendorProductsBySubCategoryV2"; got != want {
		t.Fatalf("menu url = %q, want %q", got, want)
	}

	cfg.BaseURL = "http://example.test/api/"
	cfg.VendorsPath = "Vendor/GetVendors1"
	if got, want := cfg.VendorsURL(), "http://example.test/api/Vendor/GetVendors1"; got != want {
		t.Fatalf("vendors url = %q, want %q", got, want)
	}
}

func TestParseZones(t *testing.T) {
	zones, err := ParseZones(" Pokhara=7, Kathmandu = 1 ,")
	if err != nil {
		t.Fatalf("parse zones: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("zones = %v, want 2 entries", zones)
	}
	if zones[0] != (models.Zone{Name: "Pokhara", ID: 7}) || zones[1] != (models.Zone{Name: "Kathmandu", ID: 1}) {
		t.Fatalf("zones = %v, want declaration order preserved", zones)
	}

	for _, bad := range []string{"", "Kathmandu", "=1", "Kathmandu=one", ","} {
		if _, err := ParseZones(bad); err == nil {
			t.Fatalf("ParseZones(%q) should fail", bad)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("FOODMANDU_TEST_INT", "42")
	t.Setenv("FOODMANDU_TEST_BAD", "forty")
	t.Setenv("FOODMANDU_TEST_DELAY", "250ms")
	t.Setenv("FOODMANDU_TEST_BLANK", "   ")

	if n, ok, err := EnvInt("FOODMANDU_TEST_INT"); err != nil || !ok || n != 42 {
		t.Fatalf("EnvInt = %d, %v, %v", n, ok, err)
	}
	if _, _, err := EnvInt("FOODMANDU_TEST_BAD"); err == nil {
		t.Fatalf("EnvInt should reject non-numeric values")
	}
	if d, ok, err := EnvDuration("FOODMANDU_TEST_DELAY"); err != nil || !ok || d != 250*time.Millisecond {
		t.Fatalf("EnvDuration = %v, %v, %v", d, ok, err)
	}
	if _, ok := EnvString("FOODMANDU_TEST_BLANK"); ok {
		t.Fatalf("blank values should count as unset")
	}
	if _, ok, err := EnvInt("FOODMANDU_TEST_UNSET"); ok || err != nil {
		t.Fatalf("unset key should report ok=false, err=nil")
	}
}
