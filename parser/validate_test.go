package parser

import (
	"testing"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

func TestValidateMenuItem(t *testing.T) {
	vendor := &models.VendorSummary{ID: "1"}

	tests := []struct {
		name    string
		item    *models.MenuItem
		wantErr bool
	}{
		{
			name:    "valid item",
			item:    &models.MenuItem{MenuID: "10", Name: "Chowmein", BasePrice: 180, Vendor: vendor},
			wantErr: false,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: true,
		},
		{
			name:    "zero product id",
			item:    &models.MenuItem{MenuID: "0", Name: "Chowmein", Vendor: vendor},
			wantErr: true,
		},
		{
			name:    "missing name",
			item:    &models.MenuItem{MenuID: "10", Name: "  ", Vendor: vendor},
			wantErr: true,
		},
		{
			name:    "negative price",
			item:    &models.MenuItem{MenuID: "10", Name: "Chowmein", BasePrice: -1, Vendor: vendor},
			wantErr: true,
		},
		{
			name:    "no vendor",
			item:    &models.MenuItem{MenuID: "10", Name: "Chowmein"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMenuItem(tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMenuItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "  Chicken\n Momo  ", expected: "Chicken Momo"},
		{input: "Veg Thali", expected: "Veg Thali"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.expected {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	if got := NormalizeTags(" Spicy, ,Best  Seller "); got != "spicy,best seller" {
		t.Fatalf("NormalizeTags = %q", got)
	}
}
