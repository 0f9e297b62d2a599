package catalog

import (
	"strings"
	"testing"
)

func validRecord() map[string]any {
	return map[string]any{
		"id":              "monika-route",
		"name":            "Monika Route",
		"description":     "Полный перевод фанатского мода",
		"status":          "Завершен",
		"release_date":    "2024-01-15",
		"original_author": "TeamSalvato Fans",
	}
}

func TestNormalizeValidRecord(t *testing.T) {
	normalizer := NewNormalizer()

	item, err := normalizer.Run(validRecord())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if item.ID != "monika-route" {
		t.Errorf("Expected id 'monika-route', got '%s'", item.ID)
	}
	if item.Name != "Monika Route" {
		t.Errorf("Expected name 'Monika Route', got '%s'", item.Name)
	}
	if item.ReleasedAt == nil {
		t.Error("Expected release date to be parsed")
	}
	if item.ReleaseDate != "2024-01-15" {
		t.Errorf("Expected raw release date to be kept, got '%s'", item.ReleaseDate)
	}
	if item.SourceURL != "" {
		t.Errorf("Expected empty source URL, got '%s'", item.SourceURL)
	}
	if len(item.Mirrors) != 0 || len(item.Tags) != 0 || len(item.Warnings) != 0 {
		t.Error("Expected absent list fields to become empty lists")
	}
	if item.SizeMb != nil {
		t.Error("Expected absent size to be nil")
	}
}

func TestNormalizeRejectsMissingRequiredFields(t *testing.T) {
	normalizer := NewNormalizer()

	for _, field := range []string{"id", "name", "description", "status", "release_date", "original_author"} {
		record := validRecord()
		delete(record, field)

		if _, err := normalizer.Run(record); err == nil {
			t.Errorf("Expected rejection when %q is missing", field)
		}
	}
}

func TestNormalizeRejectsWhitespaceOnlyFields(t *testing.T) {
	normalizer := NewNormalizer()

	record := validRecord()
	record["name"] = "   \t  "

	if _, err := normalizer.Run(record); err == nil {
		t.Error("Expected rejection for whitespace-only required field")
	}
}

func TestNormalizeRejectsWrongTypedRequiredFields(t *testing.T) {
	normalizer := NewNormalizer()

	record := validRecord()
	record["id"] = 42

	if _, err := normalizer.Run(record); err == nil {
		t.Error("Expected rejection for non-string id")
	}
}

func TestNormalizeURLPrecedence(t *testing.T) {
	normalizer := NewNormalizer()

	// Direct URL wins unconditionally over the identifier
	record := validRecord()
	record["image_url"] = "https://example.com/cover.png"
	record["image_id"] = "abc123"

	item, err := normalizer.Run(record)
	if err != nil {
		t.Fatal(err)
	}
	if item.ImageURL != "https://example.com/cover.png" {
		t.Errorf("Expected direct image URL to win, got '%s'", item.ImageURL)
	}

	// Identifier alone expands through the template, percent-encoded
	record = validRecord()
	record["file_id"] = "id with space"

	item, err = normalizer.Run(record)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(item.DownloadURL, "drive.google.com") {
		t.Errorf("Expected templated download URL, got '%s'", item.DownloadURL)
	}
	if !strings.Contains(item.DownloadURL, "id+with+space") {
		t.Errorf("Expected percent-encoded identifier, got '%s'", item.DownloadURL)
	}

	// Neither yields an empty string, never a broken URL
	item, err = normalizer.Run(validRecord())
	if err != nil {
		t.Fatal(err)
	}
	if item.ImageURL != "" || item.DownloadURL != "" {
		t.Errorf("Expected empty URLs, got image '%s' download '%s'", item.ImageURL, item.DownloadURL)
	}
}

func TestNormalizeSizeCoercion(t *testing.T) {
	normalizer := NewNormalizer()

	cases := []struct {
		name  string
		value any
		want  *float64
	}{
		{"float", 12.5, floatPtr(12.5)},
		{"int", 200, floatPtr(200)},
		{"numeric string", "42.5", floatPtr(42.5)},
		{"padded numeric string", " 7 ", floatPtr(7)},
		{"non-numeric string", "big", nil},
		{"bool", true, nil},
		{"mapping", map[string]any{"mb": 5}, nil},
		{"absent", nil, nil},
	}

	for _, tc := range cases {
		record := validRecord()
		if tc.value != nil {
			record["size_mb"] = tc.value
		}

		item, err := normalizer.Run(record)
		if err != nil {
			t.Fatalf("%s: unexpected rejection: %v", tc.name, err)
		}

		switch {
		case tc.want == nil && item.SizeMb != nil:
			t.Errorf("%s: expected nil size, got %v", tc.name, *item.SizeMb)
		case tc.want != nil && item.SizeMb == nil:
			t.Errorf("%s: expected size %v, got nil", tc.name, *tc.want)
		case tc.want != nil && *item.SizeMb != *tc.want:
			t.Errorf("%s: expected size %v, got %v", tc.name, *tc.want, *item.SizeMb)
		}
	}
}

func TestNormalizeUnparseableDateIsSoftFailure(t *testing.T) {
	normalizer := NewNormalizer()

	record := validRecord()
	record["release_date"] = "скоро"

	item, err := normalizer.Run(record)
	if err != nil {
		t.Fatalf("Unparseable date must not reject the record: %v", err)
	}
	if item.ReleasedAt != nil {
		t.Error("Expected nil parsed date")
	}
	if item.ReleaseDate != "скоро" {
		t.Errorf("Expected raw date string to be kept, got '%s'", item.ReleaseDate)
	}
}

func TestNormalizeListCoercion(t *testing.T) {
	normalizer := NewNormalizer()

	record := validRecord()
	record["tags"] = "romance"
	record["mirrors"] = []any{"https://mirror.one", "", 42, "https://mirror.two"}
	record["warnings"] = map[string]any{"oops": true}

	item, err := normalizer.Run(record)
	if err != nil {
		t.Fatal(err)
	}

	if len(item.Tags) != 1 || item.Tags[0] != "romance" {
		t.Errorf("Expected bare scalar wrapped into one-element list, got %v", item.Tags)
	}
	if len(item.Mirrors) != 2 {
		t.Errorf("Expected non-string and empty entries dropped, got %v", item.Mirrors)
	}
	if len(item.Warnings) != 0 {
		t.Errorf("Expected non-sequence warnings treated as absent, got %v", item.Warnings)
	}
}

func TestNormalizeBuildsLoweredHaystack(t *testing.T) {
	normalizer := NewNormalizer()

	record := validRecord()
	record["tags"] = []any{"Romance", "Drama"}

	item, err := normalizer.Run(record)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"monika route", "полный перевод", "teamsalvato fans", "romance", "drama"} {
		if !strings.Contains(item.Haystack, want) {
			t.Errorf("Expected haystack to contain %q, got %q", want, item.Haystack)
		}
	}
	if item.Haystack != strings.ToLower(item.Haystack) {
		t.Error("Expected haystack to be lower-cased")
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
