package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// External service URL templates, used only when a record carries an
// identifier instead of a direct URL.
const (
	downloadURLTemplate = "https://drive.google.com/uc?export=download&id=%s"
	imageURLTemplate    = "https://drive.google.com/thumbnail?id=%s&sz=w640"
)

// requiredFields disqualify the whole record when empty after coercion.
var requiredFields = []string{"id", "name", "description", "status", "release_date", "original_author"}

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts one untrusted raw record into an Item. It returns an error
// when any required field is absent, wrong-typed, or blank; every other
// malformed field degrades to its zero form instead of rejecting the record.
func (n *Normalizer) Run(raw map[string]any) (*Item, error) {
	fields := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		value := n.asString(raw[name])
		if value == "" {
			return nil, fmt.Errorf("missing required field %q", name)
		}
		fields[name] = value
	}

	item := &Item{
		ID:             fields["id"],
		Name:           fields["name"],
		Description:    fields["description"],
		Status:         fields["status"],
		ReleaseDate:    fields["release_date"],
		OriginalAuthor: fields["original_author"],
		SourceURL:      n.asString(raw["source_url"]),
		Mirrors:        n.asStringList(raw["mirrors"]),
		Tags:           n.asStringList(raw["tags"]),
		Warnings:       n.asStringList(raw["warnings"]),
		SizeMb:         n.asSizeMb(raw["size_mb"]),
	}

	item.ImageURL = n.deriveURL(raw, "image_url", "image_id", imageURLTemplate)
	item.DownloadURL = n.deriveURL(raw, "download_url", "file_id", downloadURLTemplate)

	// Unparseable dates keep the raw string and sort as "no date"; the date
	// is display/sort data, not identity, so this never rejects the record.
	if parsed, err := dateparse.ParseAny(item.ReleaseDate); err == nil {
		item.ReleasedAt = &parsed
	}

	item.Haystack = BuildHaystack(*item)

	return item, nil
}

// BuildHaystack concatenates the searchable text fields, lower-cased. It is
// computed at normalization time (and again when a cached catalog is
// rehydrated) and treated as immutable afterwards.
func BuildHaystack(item Item) string {
	parts := []string{item.Name, item.Description, item.OriginalAuthor}
	parts = append(parts, item.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// deriveURL resolves the strict two-tier precedence: a direct URL field wins
// unconditionally, an identifier field is expanded through the template, and
// neither yields an empty string rather than a broken URL.
func (n *Normalizer) deriveURL(raw map[string]any, urlField, idField, template string) string {
	if direct := n.asString(raw[urlField]); direct != "" {
		return direct
	}
	if id := n.asString(raw[idField]); id != "" {
		return fmt.Sprintf(template, url.QueryEscape(id))
	}
	return ""
}

// asString coerces a value to a trimmed string. Anything that is not a
// string becomes empty; this never raises regardless of input shape.
func (n *Normalizer) asString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// asStringList accepts a sequence or a bare scalar (wrapped into a
// one-element sequence). Non-string and blank entries are dropped; any
// other shape is treated as absent.
func (n *Normalizer) asStringList(value any) []string {
	var candidates []any
	switch v := value.(type) {
	case nil:
		return []string{}
	case []any:
		candidates = v
	case string:
		candidates = []any{v}
	default:
		return []string{}
	}

	list := make([]string, 0, len(candidates))
	for _, entry := range candidates {
		if s := n.asString(entry); s != "" {
			list = append(list, s)
		}
	}
	return list
}

// asSizeMb accepts a finite number as-is and a numeric string parsed to a
// finite number; everything else silently becomes nil.
func (n *Normalizer) asSizeMb(value any) *float64 {
	var size float64
	switch v := value.(type) {
	case float64:
		size = v
	case int:
		size = float64(v)
	case int64:
		size = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		size = parsed
	default:
		return nil
	}

	if math.IsNaN(size) || math.IsInf(size, 0) {
		return nil
	}
	return &size
}
