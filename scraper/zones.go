package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

const vendorsEndpoint = "vendors"

// StopReason records why a zone stopped paginating.
type StopReason string

const (
	StopEndOfData          StopReason = "end_of_data"
	StopUnexpectedResponse StopReason = "unexpected_response"
	StopMaxPages           StopReason = "max_pages"
)

// ZoneResult is the outcome of paginating one zone.
type ZoneResult struct {
	Zone    models.Zone
	Vendors []models.VendorRecord
	Pages   int
	Stop    StopReason
	Anomaly *UnexpectedResponse
}

// FetchVendorPage requests one page of the vendor search for a zone.
func (s *Scraper) FetchVendorPage(ctx context.Context, zoneID, page int) (PageOutcome, error) {
	target := s.cfg.VendorsURL() + "?" + s.searchQuery(zoneID, page).Encode()

	resp, err := s.get(ctx, vendorsEndpoint, target)
	if err != nil {
		return nil, err
	}

	outcome, err := classifyPage(resp)
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	return outcome, nil
}

func (s *Scraper) searchQuery(zoneID, page int) url.Values {
	return url.Values{
		"Cuisine":        {""},
		"DeliveryZoneId": {strconv.Itoa(zoneID)},
		"IsFavorite":     {"false"},
		"IsRecent":       {"false"},
		"Keyword":        {""},
		"LocationLat":    {"0"},
		"LocationLng":    {"0"},
		"PageNo":         {strconv.Itoa(page)},
		"PageSize":       {strconv.Itoa(s.cfg.PageSize)},
		"SortBy":         {strconv.Itoa(s.cfg.SortBy)},
		"VendorName":     {""},
		"VendorTags":     {"{}"},
		"VendorTagsCSV":  {""},
		"search_by":      {s.cfg.SearchBy},
	}
}

// FetchZone pages through the vendor search for one zone until an empty page,
// a non-JSON response, or the page ceiling. Records keep page order.
func (s *Scraper) FetchZone(ctx context.Context, zone models.Zone) (*ZoneResult, error) {
	result := &ZoneResult{Zone: zone, Stop: StopMaxPages}

	for page := 1; page <= s.cfg.MaxPages; page++ {
		outcome, err := s.FetchVendorPage(ctx, zone.ID, page)
		if err != nil {
			return nil, fmt.Errorf("zone %s page %d: %w", zone.Name, page, err)
		}

		switch o := outcome.(type) {
		case UnexpectedResponse:
			s.recordAnomaly(vendorsEndpoint, o)
			result.Stop = StopUnexpectedResponse
			result.Anomaly = &o
			return result, nil

		case EndOfData:
			slog.Info("no more vendors",
				slog.String("zone", zone.Name),
				slog.Int("zone_id", zone.ID),
				slog.Int("page", page),
			)
			result.Stop = StopEndOfData
			return result, nil

		case Page:
			result.Vendors = append(result.Vendors, o.Records...)
			result.Pages++
			s.Metrics.AddVendors(len(o.Records))
			slog.Info("fetched page",
				slog.String("zone", zone.Name),
				slog.Int("zone_id", zone.ID),
				slog.Int("page", page),
				slog.Int("count", len(o.Records)),
			)
			if err := s.sleep(ctx, s.cfg.PageDelay); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// FetchAllZones fetches every configured zone in declaration order.
func (s *Scraper) FetchAllZones(ctx context.Context) (models.ZoneListing, []*ZoneResult, error) {
	listing := make(models.ZoneListing, 0, len(s.cfg.Zones))
	results := make([]*ZoneResult, 0, len(s.cfg.Zones))

	for _, zone := range s.cfg.Zones {
		slog.Info("fetching zone", slog.String("zone", zone.Name), slog.Int("zone_id", zone.ID))

		result, err := s.FetchZone(ctx, zone)
		if err != nil {
			return nil, nil, err
		}
		listing = append(listing, models.ZoneVendors{Zone: zone.Name, Vendors: result.Vendors})
		results = append(results, result)
	}

	return listing, results, nil
}
