package pipeline

import (
	"fmt"
	"sync"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// ArrayWriter collects catalog rows and writes them on Close as one JSON
// array indented with two spaces.
type ArrayWriter struct {
	path  string
	items []*models.MenuItem
	mu    sync.Mutex
}

// NewArrayWriter prepares an array document at path. Nothing is written
// until Close.
func NewArrayWriter(path string) (*ArrayWriter, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &ArrayWriter{path: path, items: []*models.MenuItem{}}, nil
}

// Write buffers items.
func (aw *ArrayWriter) Write(items []*models.MenuItem) error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	aw.items = append(aw.items, items...)
	return nil
}

// Close writes the collected rows.
func (aw *ArrayWriter) Close() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if err := WriteJSONDocument(aw.path, aw.items); err != nil {
		return fmt.Errorf("write json array: %w", err)
	}
	return nil
}

// Validate ensures rows were collected.
func (aw *ArrayWriter) Validate() error {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if len(aw.items) == 0 {
		return fmt.Errorf("json array is empty")
	}
	return nil
}
