package collaborators

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	earningsCacheSize = 1024
	allowListTTL      = 30 * time.Second
)

// cachedEarningsStore fronts an EarningsStore with a bounded LRU cache so
// repeated Get calls for the same email don't round-trip to the backing
// store. Writes go straight through and evict the cached entry; reads
// hit the backend only on a miss.
type cachedEarningsStore struct {
	backend EarningsStore
	cache   *lru.Cache[string, EarningsRecord]
}

// NewCachedEarningsStore wraps backend with an in-memory cache.
func NewCachedEarningsStore(backend EarningsStore) (EarningsStore, error) {
	cache, err := lru.New[string, EarningsRecord](earningsCacheSize)
	if err != nil {
		return nil, err
	}
	return &cachedEarningsStore{backend: backend, cache: cache}, nil
}

func (c *cachedEarningsStore) Get(ctx context.Context, email string) (EarningsRecord, error) {
	key := normalizeEmail(email)
	if rec, ok := c.cache.Get(key); ok {
		return rec, nil
	}
	rec, err := c.backend.Get(ctx, key)
	if err != nil {
		return EarningsRecord{}, err
	}
	c.cache.Add(key, rec)
	return rec, nil
}

func (c *cachedEarningsStore) ApplyUpdates(ctx context.Context, updates []EarningsUpdate) error {
	if err := c.backend.ApplyUpdates(ctx, updates); err != nil {
		return err
	}
	for _, u := range updates {
		key := normalizeEmail(u.Email)
		c.cache.Remove(key)
	}
	return nil
}

func (c *cachedEarningsStore) Close() error { return c.backend.Close() }

// cachedAllowList fronts an AllowList with a time-boxed cache: the
// allow-list changes rarely, so every joinTable need not hit the
// backing store.
type cachedAllowList struct {
	backend AllowList

	mu       sync.Mutex
	emails   map[string]struct{}
	fetchedAt time.Time
}

// NewCachedAllowList wraps backend with a TTL cache.
func NewCachedAllowList(backend AllowList) AllowList {
	return &cachedAllowList{backend: backend}
}

func (c *cachedAllowList) GetAllowedEmails(ctx context.Context) (map[string]struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.emails != nil && time.Since(c.fetchedAt) < allowListTTL {
		return c.emails, nil
	}
	emails, err := c.backend.GetAllowedEmails(ctx)
	if err != nil {
		if c.emails != nil {
			return c.emails, nil
		}
		return nil, err
	}
	c.emails = emails
	c.fetchedAt = time.Now()
	return emails, nil
}

func (c *cachedAllowList) Close() error { return c.backend.Close() }
