package memory

import (
	"context"
	"sync"

	"product-catalog/domain/core/entities"
	apperrors "product-catalog/pkg/errors"
)

// InMemoryProductStore keeps products in process memory. Listing follows
// first-insertion order. It backs STORAGE_BACKEND=memory and tests.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]entities.Product
	order    []string
}

// NewInMemoryProductStore creates an empty product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[string]entities.Product),
	}
}

// Save stores a copy of the product, replacing any product with the same id
func (s *InMemoryProductStore) Save(ctx context.Context, product *entities.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ProductID]; !exists {
		s.order = append(s.order, product.ProductID)
	}
	s.products[product.ProductID] = clone(*product)
	return nil
}

// GetByID returns a copy of the product or nil when absent
func (s *InMemoryProductStore) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[productID]
	if !exists {
		return nil, nil
	}
	out := clone(product)
	return &out, nil
}

// Update applies the patch to an existing product
func (s *InMemoryProductStore) Update(ctx context.Context, productID string, patch entities.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return apperrors.NewNotFoundError("product")
	}
	s.products[productID] = patch.Apply(product)
	return nil
}

// Delete removes the product if present
func (s *InMemoryProductStore) Delete(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[productID]; !exists {
		return nil
	}
	delete(s.products, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns up to limit products after skipping offset
func (s *InMemoryProductStore) List(ctx context.Context, limit, offset int) ([]*entities.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	result := make([]*entities.Product, 0, limit)
	for i := offset; i < len(s.order) && len(result) < limit; i++ {
		product := clone(s.products[s.order[i]])
		result = append(result, &product)
	}
	return result, nil
}

func clone(p entities.Product) entities.Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
