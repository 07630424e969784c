package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// LoadZoneListing reads a {zoneName: [vendor, ...]} document.
func LoadZoneListing(path string) (models.ZoneListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listing: %w", err)
	}
	var listing models.ZoneListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", path, err)
	}
	return listing, nil
}

// LoadMenuSet reads a {vendorId: menu} document.
func LoadMenuSet(path string) (models.MenuSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menus: %w", err)
	}
	defer f.Close()

	var menus models.MenuSet
	if err := json.NewDecoder(f).Decode(&menus); err != nil {
		return nil, fmt.Errorf("parse menus %s: %w", path, err)
	}
	return menus, nil
}
