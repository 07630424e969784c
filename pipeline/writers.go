package pipeline

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

var csvHeader = []string{
	"menu_id", "menu_name", "menu_description", "base_price", "keywords", "tags",
	"is_available", "is_popular", "category_id", "category_name",
	"vendor_id", "vendor_name", "vendor_cuisine", "vendor_type", "vendor_rating",
	"vendor_city", "vendor_street_address", "vendor_lat", "vendor_lon",
	"delivery_fee", "min_order_amount", "vendor_is_open",
}

// CSVWriter writes catalog rows to CSV.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter initialises a CSV writer and writes the header row.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}

	return &CSVWriter{
		file:   f,
		writer: writer,
	}, nil
}

func csvRecord(item *models.MenuItem) []string {
	vendor := item.Vendor
	if vendor == nil {
		vendor = &models.VendorSummary{}
	}
	return []string{
		item.MenuID,
		item.Name,
		item.Description,
		formatFloat(item.BasePrice),
		item.Keywords,
		item.Tags,
		strconv.FormatBool(item.IsAvailable),
		strconv.FormatBool(item.IsPopular),
		item.Category.ID,
		item.Category.Name,
		vendor.ID,
		vendor.Name,
		vendor.Cuisine,
		vendor.VendorType,
		formatFloat(vendor.Rating),
		vendor.City,
		vendor.StreetAddress,
		formatFloat(vendor.Location.Lat),
		formatFloat(vendor.Location.Lon),
		formatFloat(vendor.DeliveryFee),
		formatFloat(vendor.MinOrderAmount),
		strconv.FormatBool(vendor.IsOpen),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Write appends catalog rows to the CSV output.
func (cw *CSVWriter) Write(items []*models.MenuItem) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	for _, item := range items {
		if err := cw.writer.Write(csvRecord(item)); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

// Close flushes and closes the file handle.
func (cw *CSVWriter) Close() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return cw.file.Close()
}

// Validate ensures the file has content.
func (cw *CSVWriter) Validate() error {
	info, err := cw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat csv file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("csv file is empty")
	}
	return nil
}

// JSONWriter writes newline-delimited JSON catalog rows.
type JSONWriter struct {
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter initialises the JSONL writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	return &JSONWriter{
		file:    f,
		writer:  buffer,
		encoder: encoder,
	}, nil
}

// Write appends catalog rows in JSONL format.
func (jw *JSONWriter) Write(items []*models.MenuItem) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	for _, item := range items {
		if err := jw.encoder.Encode(item); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}

	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}

	return nil
}

// Close flushes buffers and closes the underlying file.
func (jw *JSONWriter) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if err := jw.writer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return jw.file.Close()
}

// Validate ensures the JSON file has data.
func (jw *JSONWriter) Validate() error {
	info, err := jw.file.Stat()
	if err != nil {
		return fmt.Errorf("stat json file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("json file is empty")
	}
	return nil
}

// NewOutputWriter picks a writer for format: csv, json, dual, or array. For
// dual, the JSONL file sits next to path with a .jsonl extension.
func NewOutputWriter(format, path string) (OutputWriter, error) {
	var (
		writer OutputWriter
		err    error
	)
	switch format {
	case "csv":
		writer, err = NewCSVWriter(path)
	case "json":
		writer, err = NewJSONWriter(path)
	case "dual":
		writer, err = NewDualWriter(path, jsonlPath(path))
	case "array":
		writer, err = NewArrayWriter(path)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return writer, nil
}

func jsonlPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".jsonl"
}

// WriteJSONDocument writes v to path as a single JSON document indented with
// two spaces. Non-ASCII text and HTML characters are written as-is.
func WriteJSONDocument(path string, v any) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := buffer.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
