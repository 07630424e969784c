package scraper

import (
	"context"
	"net/http"
	"testing"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCountFetches(t *testing.T) {
	cfg := testConfig()
	s, transport, _ := newTestScraper(t, cfg)

	var requested []int
	transport.RegisterResponder(http.MethodGet, testVendorsURL, pagedResponder(&requested, func(page int) *http.Response {
		if page == 1 {
			return jsonResponse(http.StatusOK, vendorPage(page, cfg.PageSize))
		}
		return htmlResponse(http.StatusOK, "<html>blocked</html>")
	}))
	transport.RegisterResponder(http.MethodGet, testMenuURL, httpmock.ResponderFromResponse(jsonResponse(http.StatusOK, `[]`)))

	if _, err := s.FetchZone(context.Background(), models.Zone{Name: "Kathmandu", ID: 1}); err != nil {
		t.Fatalf("fetch zone: %v", err)
	}
	if _, err := s.FetchAllMenus(context.Background(), []models.VendorID{"1", "2"}); err != nil {
		t.Fatalf("fetch menus: %v", err)
	}

	m := s.Metrics
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(vendorsEndpoint)); got != 2 {
		t.Fatalf("vendor requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(menusEndpoint)); got != 2 {
		t.Fatalf("menu requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.VendorsFetchedTotal); got != float64(cfg.PageSize) {
		t.Fatalf("vendors = %v, want %d", got, cfg.PageSize)
	}
	if got := testutil.ToFloat64(m.MenusFetchedTotal); got != 2 {
		t.Fatalf("menus = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.UnexpectedResponsesTotal.WithLabelValues(vendorsEndpoint)); got != 1 {
		t.Fatalf("unexpected responses = %v, want 1", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	m.IncRequest(vendorsEndpoint)
	m.ObserveDuration(0)
	m.AddVendors(3)
	m.IncMenus()
	m.IncUnexpected(menusEndpoint)
	m.IncError("timeout")
}
