package catalog

import (
	"context"
	"sync"
	"time"
)

// Shared keeps loaded products in memory so every widget built from the same entry
// holds the same *Product. Entries are refreshed from the underlying source after ttl.
type Shared struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	products map[string]sharedEntry
}

type sharedEntry struct {
	product  *Product
	loadedAt time.Time
}

var _ Source = (*Shared)(nil)

func NewShared(src Source, ttl time.Duration) *Shared {
	return &Shared{
		src:      src,
		ttl:      ttl,
		now:      time.Now,
		products: make(map[string]sharedEntry),
	}
}

// Products always asks the source, then reuses the shared pointer of any id loaded within
// ttl. Content changes for such ids show up once the entry expires.
func (s *Shared) Products(ctx context.Context) ([]*Product, error) {
	products, err := s.src.Products(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range products {
		if e, ok := s.products[p.ID]; ok && s.fresh(e) {
			products[i] = e.product
			continue
		}
		s.products[p.ID] = sharedEntry{product: p, loadedAt: s.now()}
	}
	return products, nil
}

func (s *Shared) Product(ctx context.Context, id string) (*Product, error) {
	s.mu.Lock()
	e, ok := s.products[id]
	s.mu.Unlock()
	if ok && s.fresh(e) {
		return e.product, nil
	}

	p, err := s.src.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.products[id] = sharedEntry{product: p, loadedAt: s.now()}
	s.mu.Unlock()
	return p, nil
}

func (s *Shared) fresh(e sharedEntry) bool {
	return s.ttl <= 0 || s.now().Sub(e.loadedAt) < s.ttl
}
