package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ruslocale/mod-catalog/app/catalog"
	"github.com/ruslocale/mod-catalog/app/database"
)

// ExtractPageTask fetches one item's source page and stores its readable
// content for the item detail endpoint.
type ExtractPageTask struct {
	Task
	ItemID     string
	SourceURL  string
	httpClient *http.Client
	extractor  *catalog.PageExtractor
	pageRepo   database.PageRepository
	userAgent  string
}

func NewExtractPageTask(itemID, sourceURL string, httpClient *http.Client, extractor *catalog.PageExtractor,
	pageRepo database.PageRepository, userAgent string) *ExtractPageTask {
	return &ExtractPageTask{
		Task:       NewTask(TaskTypeExtractPage, itemID),
		ItemID:     itemID,
		SourceURL:  sourceURL,
		httpClient: httpClient,
		extractor:  extractor,
		pageRepo:   pageRepo,
		userAgent:  userAgent,
	}
}

func (t *ExtractPageTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.SourceURL == "" {
		slog.Debug("Item has no source page, skipping extraction", "item", t.ItemID)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.SourceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch source page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read source page: %w", err)
	}

	content, err := t.extractor.Run(data)
	if err != nil {
		return fmt.Errorf("failed to extract page content: %w", err)
	}

	if err := t.pageRepo.SavePage(t.ItemID, content); err != nil {
		return fmt.Errorf("failed to store page content: %w", err)
	}

	slog.Debug("Source page extracted", "item", t.ItemID, "content_length", len(content))
	return nil
}
