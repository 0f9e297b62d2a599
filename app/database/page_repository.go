package database

var _ PageRepository = (*ItemPageRepository)(nil)

// ItemPageRepository stores readable content extracted from a mod's source
// page, keyed by catalog item id.
type ItemPageRepository struct {
	store *AppStore
}

func NewItemPageRepository(store *AppStore) *ItemPageRepository {
	return &ItemPageRepository{store: store}
}

func (r *ItemPageRepository) SavePage(itemID string, content string) error {
	return r.store.Set("page:"+itemID, content)
}

func (r *ItemPageRepository) LoadPage(itemID string) (string, bool, error) {
	return r.store.Get("page:" + itemID)
}
