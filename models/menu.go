package models

import (
	"encoding/json"
	"fmt"
)

// MenuResponse is the raw body returned by the menu endpoint.
type MenuResponse = json.RawMessage

// MenuSet maps vendor ids to their menus. Keys are unique, so order does not
// matter and the JSON encoder's sorted keys are fine.
type MenuSet map[VendorID]MenuResponse

// MarshalJSON writes each menu with string escapes decoded to UTF-8 text.
func (s MenuSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make(map[VendorID]json.RawMessage, len(s))
	for id, menu := range s {
		if len(menu) == 0 {
			out[id] = json.RawMessage("null")
			continue
		}
		text, err := unescapeJSON(menu)
		if err != nil {
			return nil, fmt.Errorf("encode menu %s: %w", id, err)
		}
		out[id] = text
	}
	return marshalUnescaped(out)
}

// Location is a vendor's coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// VendorSummary is the subset of a vendor record carried by every catalog row.
type VendorSummary struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	About             string   `json:"about"`
	Cuisine           string   `json:"cuisine"`
	CuisineTags       string   `json:"cuisine_tags"`
	VendorType        string   `json:"vendor_type"`
	Rating            float64  `json:"rating"`
	FavoriteCount     int      `json:"favorite_count"`
	IsOpen            bool     `json:"is_open"`
	IsFeatured        bool     `json:"is_featured"`
	DeliveryAvailable bool     `json:"delivery_available"`
	PickupAvailable   bool     `json:"pickup_available"`
	DeliveryFee       float64  `json:"delivery_fee"`
	MinOrderAmount    float64  `json:"min_order_amount"`
	PromoText         string   `json:"promo_text"`
	VendorNotice      string   `json:"vendor_notice"`
	Location          Location `json:"location"`
	StreetAddress     string   `json:"street_address"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	ZipCode           string   `json:"zip_code"`
	OpeningHours      string   `json:"opening_hours"`
	ListingImageName  string   `json:"vendor_listing_image_name"`
	LogoImageName     string   `json:"vendor_logo_image_name"`
}

// Category identifies the menu section an item belongs to.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MenuItem is one denormalized catalog row: a product with its vendor.
type MenuItem struct {
	MenuID      string         `csv:"menu_id" json:"menu_id"`
	Name        string         `csv:"menu_name" json:"menu_name"`
	Description string         `csv:"menu_description" json:"menu_description"`
	BasePrice   float64        `csv:"base_price" json:"base_price"`
	Keywords    string         `csv:"keywords" json:"keywords"`
	Tags        string         `csv:"tags" json:"tags"`
	IsAvailable bool           `csv:"is_available" json:"is_available"`
	IsPopular   bool           `csv:"is_popular" json:"is_popular"`
	Category    Category       `json:"category"`
	Vendor      *VendorSummary `json:"vendor"`
}

// String is used in log lines.
func (m *MenuItem) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.MenuID)
}
