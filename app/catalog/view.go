package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View applies the query state to a catalog and returns a new ordered slice.
// The source catalog is never reordered or filtered in place, and ties keep
// their original catalog order so re-running the view on every request never
// shuffles equal items.
func View(items []Item, state QueryState) []Item {
	result := make([]Item, 0, len(items))

	query := strings.ToLower(strings.TrimSpace(state.Query))
	for _, item := range items {
		if query != "" && !strings.Contains(item.Haystack, query) {
			continue
		}
		// Status filtering is an exact, case-sensitive match against the raw
		// status string. Stats counting is case-insensitive; the asymmetry
		// is inherited behavior, kept until product clarifies it.
		if state.Status != StatusAll && item.Status != state.Status {
			continue
		}
		result = append(result, item)
	}

	sortItems(result, state.Sort)

	return result
}

func sortItems(items []Item, key string) {
	switch key {
	case SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].ReleasedAt, items[j].ReleasedAt
			if a == nil || b == nil {
				// Unparseable dates sort last regardless of direction.
				return b == nil && a != nil
			}
			return a.Before(*b)
		})
	case SortNameAsc, SortNameDesc:
		// The catalog is a Russian mod list, so names collate under Russian
		// rules. A collator is not safe for concurrent use, hence one per
		// sort rather than a package-level instance.
		collator := collate.New(language.Russian, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			cmp := collator.CompareString(items[i].Name, items[j].Name)
			if key == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	default: // SortDateDesc, and the fallback for unrecognized keys
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].ReleasedAt, items[j].ReleasedAt
			if a == nil || b == nil {
				return b == nil && a != nil
			}
			return a.After(*b)
		})
	}
}
