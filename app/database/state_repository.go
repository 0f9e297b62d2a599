package database

import (
	"encoding/json"
	"fmt"

	"github.com/ruslocale/mod-catalog/app/catalog"
)

const (
	viewStateKey = "view:state"
	themeKey     = "ui:theme"
)

var _ StateRepository = (*ViewStateRepository)(nil)

// ViewStateRepository persists the query-state triple as one serialized
// entry and the theme preference as a plain string under its own key.
type ViewStateRepository struct {
	store *AppStore
}

func NewViewStateRepository(store *AppStore) *ViewStateRepository {
	return &ViewStateRepository{store: store}
}

func (r *ViewStateRepository) SaveState(state catalog.QueryState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize view state: %w", err)
	}
	return r.store.Set(viewStateKey, string(payload))
}

// LoadState returns the persisted triple. A missing or corrupt entry yields
// ok=false; the caller falls back to defaults rather than failing.
func (r *ViewStateRepository) LoadState() (catalog.QueryState, bool, error) {
	payload, ok, err := r.store.Get(viewStateKey)
	if err != nil || !ok {
		return catalog.QueryState{}, false, err
	}

	var state catalog.QueryState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return catalog.QueryState{}, false, fmt.Errorf("failed to deserialize view state: %w", err)
	}
	return state, true, nil
}

func (r *ViewStateRepository) SaveTheme(theme string) error {
	return r.store.Set(themeKey, theme)
}

func (r *ViewStateRepository) LoadTheme() (string, bool, error) {
	return r.store.Get(themeKey)
}
