package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

const menusEndpoint = "menus"

// MenuResult is the outcome of fetching menus for a sequence of vendors.
type MenuResult struct {
	Menus    models.MenuSet
	Skipped  []models.VendorID
	Attempts int
}

// FetchMenu requests one vendor's menu. A non-JSON response is logged and
// reported as a nil menu without error.
func (s *Scraper) FetchMenu(ctx context.Context, id models.VendorID) (models.MenuResponse, error) {
	target := s.cfg.MenuURL() + "?" + url.Values{"VendorId": {string(id)}}.Encode()

	resp, err := s.get(ctx, menusEndpoint, target)
	if err != nil {
		return nil, err
	}

	menu, anomaly, err := decodeMenu(resp)
	if err != nil {
		s.recordError(err)
		return nil, err
	}
	if anomaly != nil {
		s.recordAnomaly(menusEndpoint, *anomaly)
		return nil, nil
	}
	return menu, nil
}

// FetchAllMenus fetches menus in id order, sleeping the menu delay after every
// attempt. Vendors without a menu are listed in Skipped, not stored.
func (s *Scraper) FetchAllMenus(ctx context.Context, ids []models.VendorID) (*MenuResult, error) {
	result := &MenuResult{Menus: make(models.MenuSet, len(ids))}
	total := len(ids)

	for i, id := range ids {
		slog.Info("fetching menu",
			slog.String("vendor_id", string(id)),
			slog.String("progress", fmt.Sprintf("%d/%d", i+1, total)),
		)

		menu, err := s.FetchMenu(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("vendor %s: %w", id, err)
		}
		result.Attempts++

		if menu != nil {
			result.Menus[id] = menu
			s.Metrics.IncMenus()
		} else {
			result.Skipped = append(result.Skipped, id)
		}

		if err := s.sleep(ctx, s.cfg.MenuDelay); err != nil {
			return nil, err
		}
	}

	return result, nil
}
