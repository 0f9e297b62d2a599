package catalog

import (
	"strings"
)

// Aggregate computes the summary triple over a validated catalog. The
// completed bucket matches StatusCompleted case-insensitively; every other
// status string, recognized or not, counts as in progress.
func Aggregate(items []Item) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		if strings.EqualFold(item.Status, StatusCompleted) {
			stats.Completed++
		} else {
			stats.InProgress++
		}
	}
	return stats
}
