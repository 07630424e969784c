package parser

import (
	"fmt"
	"strings"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// ValidateMenuItem ensures a catalog row carries the fields downstream
// consumers key on. A nil vendor is allowed: it marks a menu whose vendor is
// missing from the listing.
func ValidateMenuItem(item *models.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}
	if item.MenuID == "" || item.MenuID == "0" {
		return fmt.Errorf("menu item missing product id")
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("menu item %s missing name", item.MenuID)
	}
	if item.BasePrice < 0 {
		return fmt.Errorf("menu item %s has negative price", item.MenuID)
	}
	return nil
}

// NormalizeText collapses runs of whitespace, including the non-breaking
// spaces and line breaks common in vendor-entered descriptions.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeTags lower-cases a comma separated tag list and drops empty tags.
func NormalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := parts[:0]
	for _, part := range parts {
		part = strings.ToLower(NormalizeText(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ",")
}
