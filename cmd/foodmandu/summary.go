package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aluiziolira/go-scrape-foodmandu/models"
)

type summaryRow struct {
	label string
	value string
}

func printSummary(w io.Writer, title string, result *models.RunResult, outputFile string, rows []summaryRow) {
	separator := strings.Repeat("-", 50)
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, title)

	for _, row := range rows {
		fmt.Fprintf(w, "  %-14s %s\n", row.label+":", row.value)
	}

	fmt.Fprintf(w, "  %-14s %d\n", "Records:", result.RecordCount)
	if result.RequestCount > 0 {
		fmt.Fprintf(w, "  %-14s %d\n", "Requests:", result.RequestCount)
	}
	if result.Anomalies > 0 {
		fmt.Fprintf(w, "  %-14s %d\n", "Non-JSON:", result.Anomalies)
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "  %-14s %d\n", "Skipped:", len(result.Skipped))
	}
	if len(result.ErrorsByType) > 0 {
		fmt.Fprintf(w, "  %-14s %s\n", "Error types:", formatCounts(result.ErrorsByType))
	}

	duration := result.Duration()
	fmt.Fprintf(w, "  %-14s %v\n", "Duration:", duration.Round(time.Millisecond))
	if secs := duration.Seconds(); secs > 0 {
		fmt.Fprintf(w, "  %-14s %.2f\n", "Records/sec:", float64(result.RecordCount)/secs)
	}
	fmt.Fprintf(w, "  %-14s %s\n", "Output file:", outputFile)
	fmt.Fprintln(w, separator)
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
