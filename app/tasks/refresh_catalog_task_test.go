package tasks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruslocale/mod-catalog/app/catalog"
)

type stubCacheRepo struct {
	items    []catalog.Item
	setCalls int
}

func (s *stubCacheRepo) Set(items []catalog.Item) error {
	s.items = items
	s.setCalls++
	return nil
}

func (s *stubCacheRepo) Get() ([]catalog.Item, bool, error) {
	if s.items == nil {
		return nil, false, nil
	}
	return s.items, true, nil
}

const catalogDoc = `
mods:
  - id: "monika-route"
    name: "Monika Route"
    description: "Полный перевод"
    status: "Завершен"
    release_date: "2024-01-15"
    original_author: "X"
  - id: "monika-route"
    name: "Duplicate"
    description: "d"
    status: "В процессе"
    release_date: "2024-02-01"
    original_author: "Y"
  - id: "sayori-story"
    name: "Sayori Story"
    description: "Перевод в работе"
    status: "В процессе"
    release_date: "2024-03-01"
    original_author: "Z"
`

func TestRefreshCatalogSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogDoc))
	}))
	defer server.Close()

	holder := catalog.NewHolder()
	cache := &stubCacheRepo{}

	task := NewRefreshCatalogTask(server.URL, server.Client(), holder, cache, "test-agent")
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items, stats, ok := holder.Snapshot()
	if !ok {
		t.Fatal("Expected holder to reach ready state")
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items after dedup, got %d", len(items))
	}
	if stats.Completed != 1 || stats.InProgress != 1 {
		t.Errorf("Expected stats {2 1 1}, got %+v", stats)
	}

	if cache.setCalls != 1 {
		t.Errorf("Expected one cache write, got %d", cache.setCalls)
	}

	_, source, _, _ := holder.Info()
	if source != catalog.SourceLive {
		t.Errorf("Expected live source, got '%s'", source)
	}
}

func TestRefreshFetchFailureFallsBackToCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	holder := catalog.NewHolder()
	cache := &stubCacheRepo{items: []catalog.Item{{ID: "cached", Name: "Cached Mod"}}}

	task := NewRefreshCatalogTask(server.URL, server.Client(), holder, cache, "test-agent")
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected cache fallback to absorb the failure, got: %v", err)
	}

	items, _, ok := holder.Snapshot()
	if !ok {
		t.Fatal("Expected holder to reach ready state from cache")
	}
	if len(items) != 1 || items[0].ID != "cached" {
		t.Errorf("Expected cached items served, got %+v", items)
	}

	_, source, _, _ := holder.Info()
	if source != catalog.SourceCache {
		t.Errorf("Expected cache source, got '%s'", source)
	}
}

func TestRefreshTotalFailureReachesErrorState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	holder := catalog.NewHolder()

	task := NewRefreshCatalogTask(server.URL, server.Client(), holder, &stubCacheRepo{}, "test-agent")
	if err := task.Execute(context.Background()); err == nil {
		t.Fatal("Expected error when fetch fails and no cache exists")
	}

	if holder.State() != catalog.LoadError {
		t.Errorf("Expected error state, got %s", holder.State())
	}
}

func TestRefreshParseFailureFallsBackToCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[unclosed"))
	}))
	defer server.Close()

	holder := catalog.NewHolder()
	cache := &stubCacheRepo{items: []catalog.Item{{ID: "cached"}}}

	task := NewRefreshCatalogTask(server.URL, server.Client(), holder, cache, "test-agent")
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected cache fallback on parse failure, got: %v", err)
	}

	_, source, _, _ := holder.Info()
	if source != catalog.SourceCache {
		t.Errorf("Expected cache source after parse failure, got '%s'", source)
	}
}

func TestRefreshTaskHasNoRetries(t *testing.T) {
	task := NewRefreshCatalogTask("http://localhost/mods.yml", &http.Client{Timeout: time.Second}, catalog.NewHolder(), &stubCacheRepo{}, "test-agent")

	// Recovery is the next scheduled cycle, not the retry queue
	if task.CanRetry() {
		t.Error("Expected refresh task to opt out of retries")
	}
}
