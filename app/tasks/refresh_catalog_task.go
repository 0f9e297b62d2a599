package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"gopkg.in/yaml.v3"

	"github.com/ruslocale/mod-catalog/app/catalog"
	"github.com/ruslocale/mod-catalog/app/database"
	"github.com/ruslocale/mod-catalog/app/metrics"
)

// RefreshCatalogTask fetches the catalog document, validates it into a fresh
// snapshot and overwrites the fallback cache. When the live fetch or parse
// fails it substitutes the cached catalog; the error state is reached only
// when both are unavailable. There is no retry: the next scheduled cycle is
// the recovery path.
type RefreshCatalogTask struct {
	Task
	CatalogURL string
	httpClient *http.Client
	validator  *catalog.Validator
	holder     *catalog.Holder
	cacheRepo  database.CacheRepository
	userAgent  string
}

func NewRefreshCatalogTask(catalogURL string, httpClient *http.Client, holder *catalog.Holder,
	cacheRepo database.CacheRepository, userAgent string) *RefreshCatalogTask {
	task := NewTask(TaskTypeRefreshCatalog, catalogURL)
	task.MaxRetries = 0

	return &RefreshCatalogTask{
		Task:       task,
		CatalogURL: catalogURL,
		httpClient: httpClient,
		validator:  catalog.NewValidator(),
		holder:     holder,
		cacheRepo:  cacheRepo,
		userAgent:  userAgent,
	}
}

func (t *RefreshCatalogTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.holder.SetLoading()

	data, err := t.fetchCatalog(ctx)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("fetch_error").Inc()
		return t.fallback(fmt.Errorf("failed to fetch catalog: %w", err))
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		metrics.RefreshTotal.WithLabelValues("parse_error").Inc()
		return t.fallback(fmt.Errorf("failed to parse catalog: %w", err))
	}

	items := t.validator.Run(tree)

	t.holder.SetReady(items, catalog.SourceLive)
	metrics.RefreshTotal.WithLabelValues("success").Inc()
	metrics.CatalogItems.Set(float64(len(items)))

	// A successful fetch always supersedes the cache, but the cache is an
	// optimization: a write failure must not fail the refresh.
	if err := t.cacheRepo.Set(items); err != nil {
		slog.Warn("Failed to update catalog cache", "error", err)
	}

	slog.Info("Catalog refreshed", "items", len(items), "source", catalog.SourceLive)
	return nil
}

// fallback consults the persistent cache after a live failure. A cache hit
// still reaches the ready state; a miss surfaces the original error.
func (t *RefreshCatalogTask) fallback(cause error) error {
	items, ok, err := t.cacheRepo.Get()
	if err != nil {
		slog.Warn("Failed to read catalog cache", "error", err)
	}
	if !ok {
		t.holder.SetError()
		return cause
	}

	t.holder.SetReady(items, catalog.SourceCache)
	metrics.CacheFallbackTotal.Inc()
	metrics.CatalogItems.Set(float64(len(items)))

	slog.Warn("Catalog refresh failed, serving cached snapshot", "items", len(items), "error", cause)
	return nil
}

func (t *RefreshCatalogTask) fetchCatalog(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.CatalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
