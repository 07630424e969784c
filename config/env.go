package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

// EnvString returns the trimmed value of key and whether it was set.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvInt parses key as an integer.
func EnvInt(key string) (int, bool, error) {
	value, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return n, true, nil
}

// EnvDuration parses key with time.ParseDuration.
func EnvDuration(key string) (time.Duration, bool, error) {
	value, ok := EnvString(key)
	if !ok {
		return 0, false, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return d, true, nil
}

// ParseZones reads a "Name=ID,Name=ID" table, keeping declaration order.
func ParseZones(table string) ([]models.Zone, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("zone list cannot be empty")
	}

	var zones []models.Zone
	for _, part := range strings.Split(table, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawID, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("zone %q: expected Name=ID", part)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("zone %q: empty name", part)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil {
			return nil, fmt.Errorf("zone %q: invalid id: %w", name, err)
		}
		zones = append(zones, models.Zone{Name: name, ID: id})
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("zone list cannot be empty")
	}
	return zones, nil
}

// FormatZones is the inverse of ParseZones.
func FormatZones(zones []models.Zone) string {
	parts := make([]string, 0, len(zones))
	for _, zone := range zones {
		parts = append(parts, zone.Name+"="+strconv.Itoa(zone.ID))
	}
	return strings.Join(parts, ",")
}
