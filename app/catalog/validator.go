package catalog

import (
	"log/slog"
)

type Validator struct {
	normalizer *Normalizer
}

func NewValidator() *Validator {
	return &Validator{
		normalizer: NewNormalizer(),
	}
}

// Run walks the parsed catalog document and returns the validated items in
// input order. The document may be a bare sequence or a mapping with a
// "mods" sequence; any other top-level shape yields an empty catalog so the
// caller renders "empty" instead of failing.
func (v *Validator) Run(tree any) []Item {
	candidates := v.extractSequence(tree)

	items := make([]Item, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))

	for i, candidate := range candidates {
		record, ok := candidate.(map[string]any)
		if !ok {
			slog.Debug("Skipping non-mapping catalog entry", "index", i)
			continue
		}

		item, err := v.normalizer.Run(record)
		if err != nil {
			slog.Warn("Dropping invalid catalog entry", "index", i, "error", err)
			continue
		}

		// First occurrence wins; later records sharing the id are dropped,
		// never merged.
		if seen[item.ID] {
			slog.Warn("Dropping duplicate catalog entry", "index", i, "id", item.ID)
			continue
		}
		seen[item.ID] = true

		items = append(items, *item)
	}

	return items
}

func (v *Validator) extractSequence(tree any) []any {
	switch t := tree.(type) {
	case []any:
		return t
	case map[string]any:
		if mods, ok := t["mods"].([]any); ok {
			return mods
		}
	}
	return nil
}
