package database

import (
	"github.com/ruslocale/mod-catalog/app/catalog"
)

// CacheRepository is the time-boxed catalog fallback store. It is written
// unconditionally on every successful fetch and read only when a live fetch
// fails.
type CacheRepository interface {
	Set(items []catalog.Item) error
	Get() ([]catalog.Item, bool, error)
}

// StateRepository persists the view-state triple and the theme preference.
// All operations are best-effort for callers: failures are logged and the
// feature degrades to defaults.
type StateRepository interface {
	SaveState(state catalog.QueryState) error
	LoadState() (catalog.QueryState, bool, error)
	SaveTheme(theme string) error
	LoadTheme() (string, bool, error)
}

// PageRepository stores extracted source-page content per catalog item.
type PageRepository interface {
	SavePage(itemID string, content string) error
	LoadPage(itemID string) (string, bool, error)
}
