// Package parser turns raw listing and menu documents into typed values.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// ErrMissingVendorID is returned for a vendor record without a usable Id.
var ErrMissingVendorID = errors.New("vendor record has no Id")

// VendorID reads the Id field of a vendor record.
func VendorID(record models.VendorRecord) (models.VendorID, error) {
	var probe struct {
		ID json.RawMessage `json:"Id"`
	}
	if err := json.Unmarshal(record, &probe); err != nil {
		return "", fmt.Errorf("decode vendor record: %w", err)
	}
	return ParseVendorID(probe.ID)
}

// ParseVendorID accepts a JSON number or string literal.
func ParseVendorID(raw json.RawMessage) (models.VendorID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", ErrMissingVendorID
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode vendor id: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", ErrMissingVendorID
		}
		return models.VendorID(s), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("decode vendor id: %w", err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("vendor id must be a number or string, got %s", raw)
	}
	return models.VendorID(n.String()), nil
}

// VendorIDs flattens a listing into ids: zone order first, then list order.
// Ids repeated across zones are kept.
func VendorIDs(listing models.ZoneListing) ([]models.VendorID, error) {
	ids := make([]models.VendorID, 0, listing.Total())
	for _, zv := range listing {
		for i, record := range zv.Vendors {
			id, err := VendorID(record)
			if err != nil {
				return nil, fmt.Errorf("zone %q vendor %d: %w", zv.Zone, i, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ExtractVendorIDs loads a saved listing and returns every vendor id in it.
func ExtractVendorIDs(path string) ([]models.VendorID, error) {
	listing, err := LoadZoneListing(path)
	if err != nil {
		return nil, err
	}
	return VendorIDs(listing)
}
