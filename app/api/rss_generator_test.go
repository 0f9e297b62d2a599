package api

import (
	"strings"
	"testing"
	"time"

	"github.com/ruslocale/mod-catalog/app/catalog"
	"github.com/ruslocale/mod-catalog/app/cfg"
)

func TestGenerateRSS(t *testing.T) {
	cfg.Set(&cfg.Cfg{
		BaseUrl: "https://mods.example.com",
		Port:    "8080",
		Version: "test",
	})

	released := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	items := []catalog.Item{
		{
			ID:             "monika-route",
			Name:           "Monika Route <Special>",
			Description:    "Полный перевод & редактура",
			Status:         "Завершен",
			ReleasedAt:     &released,
			OriginalAuthor: "TeamX",
			SourceURL:      "https://example.com/monika",
			Tags:           []string{"romance", "story"},
		},
		{
			ID:          "sayori-story",
			Name:        "Sayori Story",
			Status:      "В процессе",
			DownloadURL: "https://drive.google.com/uc?export=download&id=abc",
		},
	}

	generator := NewGenerator()
	rss, err := generator.Run(items)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	checks := []string{
		`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`,
		"<title>Mod Catalog</title>",
		"<link>https://mods.example.com/catalog.rss</link>",
		`<atom:link href="https://mods.example.com/catalog.rss" rel="self"`,
		`<guid isPermaLink="false">monika-route</guid>`,
		"<title>Monika Route &lt;Special&gt;</title>",
		"<description>Полный перевод &amp; редактура</description>",
		"<link>https://example.com/monika</link>",
		"<pubDate>Mon, 15 Jan 2024 12:00:00 +0000</pubDate>",
		"<author>TeamX</author>",
		"<category>romance</category>",
		"<category>story</category>",
		"<description>No description available</description>",
	}
	for _, check := range checks {
		if !strings.Contains(rss, check) {
			t.Errorf("Expected RSS to contain %q", check)
		}
	}

	// Without a source URL the download link stands in
	if !strings.Contains(rss, "<link>https://drive.google.com/uc?export=download&amp;id=abc</link>") {
		t.Error("Expected download URL used as item link fallback")
	}

	// lastBuildDate comes from the newest item
	if !strings.Contains(rss, "<lastBuildDate>Mon, 15 Jan 2024 12:00:00 +0000</lastBuildDate>") {
		t.Error("Expected lastBuildDate taken from the first item")
	}
}

func TestGenerateRSSWithoutBaseURL(t *testing.T) {
	cfg.Set(&cfg.Cfg{Port: "9090", Version: "test"})

	generator := NewGenerator()
	rss, err := generator.Run(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, "<link>http://localhost:9090/catalog.rss</link>") {
		t.Errorf("Expected localhost self link, got:\n%s", rss)
	}
	if strings.Contains(rss, "<item>") {
		t.Error("Expected no items for an empty catalog")
	}
}
