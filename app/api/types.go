package api

import (
	"net/http"

	"github.com/ruslocale/mod-catalog/app/catalog"
	"github.com/ruslocale/mod-catalog/app/database"
	"github.com/ruslocale/mod-catalog/app/tasks"
)

type Handler struct {
	holder     *catalog.Holder
	stateRepo  database.StateRepository
	pageRepo   database.PageRepository
	cacheRepo  database.CacheRepository
	generator  *Generator
	scheduler  tasks.TaskSchedulerInterface
	httpClient *http.Client
}

// snippetMaxChars is the description budget for catalog cards.
const snippetMaxChars = 280

// ItemResponse is a catalog item as served to clients, with a card-sized
// description snippet alongside the full record.
type ItemResponse struct {
	catalog.Item
	Snippet          string `json:"snippet"`
	SnippetTruncated bool   `json:"snippet_truncated"`
}

// CatalogResponse carries the filtered/sorted view plus the canonical query
// form so clients can mirror it into a shareable URL.
type CatalogResponse struct {
	State          catalog.QueryState `json:"state"`
	CanonicalQuery string             `json:"canonical_query"`
	Stats          catalog.Stats      `json:"stats"`
	Count          int                `json:"count"`
	Items          []ItemResponse     `json:"items"`
}

func newItemResponse(item catalog.Item) ItemResponse {
	snippet, truncated := catalog.Truncate(item.Description, snippetMaxChars, true)
	return ItemResponse{
		Item:             item,
		Snippet:          snippet,
		SnippetTruncated: truncated,
	}
}
