package parser

import (
	"errors"
	"testing"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

const sampleVendor = `{
  "Id": 311,
  "Name": "Bajeko Sekuwa",
  "About": "Nepali grill",
  "Cuisine": "Nepali",
  "VendorRating": 4.5,
  "FavoriteCount": 120,
  "IsOpen": true,
  "AcceptsDeliveryOrder": true,
  "DeliveryFee": 50,
  "LocationLat": 27.7,
  "LocationLng": 85.3,
  "Address1": "Baneshwor",
  "City": "Kathmandu"
}`

const sampleMenu = `[
  {
    "categoryId": 10,
    "category": "Sekuwa",
    "items": [
      {"productId": 1001, "name": "Chicken Sekuwa", "productDesc": "Grilled", "price": 450, "Keyword": "chicken", "itemDisplayTag": "Spicy"},
      "not an item",
      {"productId": 1002, "name": "Mutton Sekuwa", "price": 650.5}
    ]
  },
  "not a category",
  {"categoryId": 11, "category": "Drinks"}
]`

func TestSummarizeVendor(t *testing.T) {
	summary, err := SummarizeVendor(models.VendorRecord(sampleVendor))
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.ID != "311" || summary.Name != "Bajeko Sekuwa" {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Rating != 4.5 || summary.FavoriteCount != 120 || summary.DeliveryFee != 50 {
		t.Fatalf("numeric fields = %v/%d/%v", summary.Rating, summary.FavoriteCount, summary.DeliveryFee)
	}
	if !summary.IsOpen || !summary.DeliveryAvailable || summary.PickupAvailable {
		t.Fatalf("flags = %+v", summary)
	}
	if summary.Location.Lat != 27.7 || summary.Location.Lon != 85.3 {
		t.Fatalf("location = %+v", summary.Location)
	}
}

func TestSummarizeListingDedupesVendors(t *testing.T) {
	listing := models.ZoneListing{
		{Zone: "Kathmandu", Vendors: []models.VendorRecord{models.VendorRecord(sampleVendor)}},
		{Zone: "Lalitpur", Vendors: []models.VendorRecord{models.VendorRecord(sampleVendor), models.VendorRecord(`{"Id":2,"Name":"Other"}`)}},
	}

	vendors, err := SummarizeListing(listing)
	if err != nil {
		t.Fatalf("summarize listing: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("vendors = %d, want 2", len(vendors))
	}
	if vendors["2"].Name != "Other" {
		t.Fatalf("vendor 2 = %+v", vendors["2"])
	}
}

func TestFlattenMenu(t *testing.T) {
	vendor := &models.VendorSummary{ID: "311", Name: "Bajeko Sekuwa"}

	items, err := FlattenMenu(models.MenuResponse(sampleMenu), vendor)
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	first := items[0]
	if first.MenuID != "1001" || first.Name != "Chicken Sekuwa" || first.BasePrice != 450 {
		t.Fatalf("first item = %+v", first)
	}
	if first.Category != (models.Category{ID: "10", Name: "Sekuwa"}) {
		t.Fatalf("category = %+v", first.Category)
	}
	if !first.IsAvailable || first.IsPopular {
		t.Fatalf("availability flags = %v/%v", first.IsAvailable, first.IsPopular)
	}
	if first.Vendor != vendor {
		t.Fatalf("vendor should be shared")
	}
	if items[1].BasePrice != 650.5 {
		t.Fatalf("second price = %v", items[1].BasePrice)
	}
}

func TestFlattenMenuUnsupported(t *testing.T) {
	if _, err := FlattenMenu(models.MenuResponse(`{"message":"closed"}`), nil); !errors.Is(err, ErrUnsupportedMenu) {
		t.Fatalf("expected ErrUnsupportedMenu, got %v", err)
	}
	items, err := FlattenMenu(models.MenuResponse(`null`), nil)
	if err != nil || len(items) != 0 {
		t.Fatalf("null menu = %v, %v; want no items", items, err)
	}
}
