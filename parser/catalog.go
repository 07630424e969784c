package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// ErrUnsupportedMenu marks a menu body that is not a list of categories.
var ErrUnsupportedMenu = errors.New("menu is not a category list")

// SummarizeVendor extracts the catalog fields of a vendor record.
func SummarizeVendor(record models.VendorRecord) (*models.VendorSummary, error) {
	id, err := VendorID(record)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := decodeNumbers(record, &m); err != nil {
		return nil, fmt.Errorf("decode vendor %s: %w", id, err)
	}

	return &models.VendorSummary{
		ID:                string(id),
		Name:              getString(m, "Name"),
		About:             getString(m, "About"),
		Cuisine:           getString(m, "Cuisine"),
		CuisineTags:       getString(m, "CuisineTags"),
		VendorType:        getString(m, "VendorType"),
		Rating:            getFloat(m, "VendorRating"),
		FavoriteCount:     getInt(m, "FavoriteCount"),
		IsOpen:            getBool(m, "IsOpen"),
		IsFeatured:        getBool(m, "IsFeaturedVendor"),
		DeliveryAvailable: getBool(m, "AcceptsDeliveryOrder"),
		PickupAvailable:   getBool(m, "AcceptsTakeoutOrder"),
		DeliveryFee:       getFloat(m, "DeliveryFee"),
		MinOrderAmount:    getFloat(m, "MinOrderAmount"),
		PromoText:         getString(m, "PromoText"),
		VendorNotice:      getString(m, "VendorNotice"),
		Location: models.Location{
			Lat: getFloat(m, "LocationLat"),
			Lon: getFloat(m, "LocationLng"),
		},
		StreetAddress:    getString(m, "Address1"),
		City:             getString(m, "City"),
		State:            getString(m, "State"),
		ZipCode:          getString(m, "ZipCode"),
		OpeningHours:     getString(m, "OpeningHours"),
		ListingImageName: getString(m, "VendorListingWebImageName"),
		LogoImageName:    getString(m, "VendorLogoImageName"),
	}, nil
}

// SummarizeListing indexes every vendor of a listing by id. A vendor listed
// in several zones is summarised once.
func SummarizeListing(listing models.ZoneListing) (map[models.VendorID]*models.VendorSummary, error) {
	out := make(map[models.VendorID]*models.VendorSummary, listing.Total())
	for _, zv := range listing {
		for _, record := range zv.Vendors {
			summary, err := SummarizeVendor(record)
			if err != nil {
				return nil, fmt.Errorf("zone %q: %w", zv.Zone, err)
			}
			id := models.VendorID(summary.ID)
			if _, ok := out[id]; ok {
				continue
			}
			out[id] = summary
		}
	}
	return out, nil
}

// FlattenMenu turns a vendor's category list into catalog rows. Entries that
// are not objects are skipped.
func FlattenMenu(menu models.MenuResponse, vendor *models.VendorSummary) ([]*models.MenuItem, error) {
	var categories []any
	if err := decodeNumbers(menu, &categories); err != nil {
		return nil, ErrUnsupportedMenu
	}

	var items []*models.MenuItem
	for _, c := range categories {
		category, ok := c.(map[string]any)
		if !ok {
			continue
		}
		cat := models.Category{
			ID:   strconv.Itoa(getInt(category, "categoryId")),
			Name: getString(category, "category"),
		}

		products, ok := category["items"].([]any)
		if !ok {
			continue
		}
		for _, p := range products {
			product, ok := p.(map[string]any)
			if !ok {
				continue
			}
			items = append(items, &models.MenuItem{
				MenuID:      strconv.Itoa(getInt(product, "productId")),
				Name:        getString(product, "name"),
				Description: getString(product, "productDesc"),
				BasePrice:   getFloat(product, "price"),
				Keywords:    getString(product, "Keyword"),
				Tags:        getString(product, "itemDisplayTag"),
				IsAvailable: true,
				IsPopular:   false,
				Category:    cat,
				Vendor:      vendor,
			})
		}
	}
	return items, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

func getFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	default:
		return 0
	}
}

func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
		return 0
	case float64:
		return int(v)
	default:
		return 0
	}
}
