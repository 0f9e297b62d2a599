package database

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ruslocale/mod-catalog/app/catalog"
)

// Payload and expiry live in separate rows; the expiry row decides the
// entry's fate without deserializing the payload.
const (
	cachePayloadKey = "catalog:payload"
	cacheExpiryKey  = "catalog:expires_at"
)

var _ CacheRepository = (*CatalogCacheRepository)(nil)

type CatalogCacheRepository struct {
	store *AppStore
	ttl   time.Duration
	now   func() time.Time
}

func NewCatalogCacheRepository(store *AppStore, ttl time.Duration) *CatalogCacheRepository {
	return &CatalogCacheRepository{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Set stores the catalog with an absolute expiry of now + TTL, replacing any
// previous entry wholesale.
func (r *CatalogCacheRepository) Set(items []catalog.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	expiresAt := r.now().Add(r.ttl).Unix()
	if err := r.store.Set(cachePayloadKey, string(payload)); err != nil {
		return err
	}
	if err := r.store.Set(cacheExpiryKey, strconv.FormatInt(expiresAt, 10)); err != nil {
		return err
	}
	return nil
}

// Get returns the cached catalog, or ok=false when no entry exists or the
// entry has expired. An expired or corrupt entry is evicted on read so the
// store never accumulates dead blobs.
func (r *CatalogCacheRepository) Get() ([]catalog.Item, bool, error) {
	rawExpiry, ok, err := r.store.Get(cacheExpiryKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	expiresAt, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil || r.now().Unix() > expiresAt {
		r.evict()
		return nil, false, nil
	}

	payload, ok, err := r.store.Get(cachePayloadKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var items []catalog.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		r.evict()
		return nil, false, fmt.Errorf("failed to deserialize cached catalog: %w", err)
	}

	// The haystack is not serialized; rebuild it so search over a restored
	// snapshot behaves identically to a live one.
	for i := range items {
		items[i].Haystack = catalog.BuildHaystack(items[i])
	}

	return items, true, nil
}

func (r *CatalogCacheRepository) evict() {
	_ = r.store.Delete(cachePayloadKey)
	_ = r.store.Delete(cacheExpiryKey)
}
