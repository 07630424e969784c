package scraper

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// previewLength is how many characters of an unexpected body are kept.
const previewLength = 300

// PageOutcome is the result of one vendor search request. It is one of Page,
// EndOfData or UnexpectedResponse.
type PageOutcome interface {
	pageOutcome()
}

// Page carries the vendor records of a non-empty page.
type Page struct {
	Records []models.VendorRecord
}

// EndOfData is a valid, empty page: the normal end of a zone.
type EndOfData struct{}

// UnexpectedResponse is a response without a JSON content type, typically an
// HTML error or block page.
type UnexpectedResponse struct {
	Status      int
	ContentType string
	BodyPreview string
}

func (Page) pageOutcome()               {}
func (EndOfData) pageOutcome()          {}
func (UnexpectedResponse) pageOutcome() {}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

func unexpected(resp *rawResponse) UnexpectedResponse {
	return UnexpectedResponse{
		Status:      resp.status,
		ContentType: resp.contentType,
		BodyPreview: bodyPreview(resp.body, previewLength),
	}
}

// bodyPreview keeps the first n characters, not bytes.
func bodyPreview(body []byte, n int) string {
	runes := []rune(string(body))
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// classifyPage maps a search response onto a PageOutcome. The content type is
// checked before the status so that block pages end a zone softly.
func classifyPage(resp *rawResponse) (PageOutcome, error) {
	if !isJSON(resp.contentType) {
		return unexpected(resp), nil
	}
	if err := checkStatus(resp.status); err != nil {
		return nil, err
	}

	var records []models.VendorRecord
	if err := json.Unmarshal(resp.body, &records); err != nil {
		if isEmptyValue(resp.body) {
			return EndOfData{}, nil
		}
		return nil, ErrMalformedJSON{Err: err}
	}
	if len(records) == 0 {
		return EndOfData{}, nil
	}
	return Page{Records: records}, nil
}

// isEmptyValue reports whether body is an empty JSON object or string, which
// the search endpoint may send in place of an empty page.
func isEmptyValue(body []byte) bool {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case map[string]any:
		return len(v) == 0
	case string:
		return v == ""
	}
	return false
}

// decodeMenu returns the menu body verbatim, nil for a JSON null, and an
// UnexpectedResponse for non-JSON content.
func decodeMenu(resp *rawResponse) (models.MenuResponse, *UnexpectedResponse, error) {
	if !isJSON(resp.contentType) {
		u := unexpected(resp)
		return nil, &u, nil
	}
	if err := checkStatus(resp.status); err != nil {
		return nil, nil, err
	}

	body := bytes.TrimSpace(resp.body)
	if !json.Valid(body) {
		var v any
		err := json.Unmarshal(body, &v)
		return nil, nil, ErrMalformedJSON{Err: err}
	}
	if bytes.Equal(body, []byte("null")) {
		return nil, nil, nil
	}

	menu := make(models.MenuResponse, len(body))
	copy(menu, body)
	return menu, nil, nil
}
