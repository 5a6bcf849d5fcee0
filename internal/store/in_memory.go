package store

import (
	"context"
	"sort"
	"sync"

	perrors "github.com/avdeev/catalog-service/internal/errors"
)

// InMemoryStore implements ProductStore using a mutex-guarded map.
// Products are enumerated in ascending ID order, matching the SQL store.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new empty in-memory ProductStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &product, nil
}

// Save inserts the product, assigning the next sequential ID when it has
// none, or replaces the stored record when it does.
func (s *InMemoryStore) Save(_ context.Context, product *Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *product
	if stored.ID == nil {
		id := s.nextID
		s.nextID++
		stored.ID = &id
	}
	s.products[*stored.ID] = stored

	out := stored
	return &out, nil
}

// Delete removes the product from the map.
func (s *InMemoryStore) Delete(_ context.Context, product *Product) error {
	if product.ID == nil {
		return perrors.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[*product.ID]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, *product.ID)
	return nil
}

// FindPage returns one zero-based page of products in ascending ID order.
func (s *InMemoryStore) FindPage(_ context.Context, pageIndex, pageSize int32) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]Product, 0, pageSize)
	for i := int(pageIndex) * int(pageSize); i < len(ids) && len(items) < int(pageSize); i++ {
		items = append(items, s.products[ids[i]])
	}

	return &Page{
		Items:         items,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		TotalElements: int64(len(ids)),
	}, nil
}
