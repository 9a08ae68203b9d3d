package ports

import (
	"context"

	"product-catalog/domain/core/entities"
)

// ProductRepository defines the interface for product persistence
// This is a port in hexagonal architecture - the service doesn't know about the implementation
type ProductRepository interface {
	// Save writes the full product, overwriting any item with the same id
	Save(ctx context.Context, product *entities.Product) error

	// GetByID returns the product, or nil without error when it does not exist
	GetByID(ctx context.Context, productID string) (*entities.Product, error)

	// Update sets exactly the attributes present in the patch. It returns a
	// NotFound error when no product with the id exists.
	Update(ctx context.Context, productID string, patch entities.ProductPatch) error

	// Delete removes a product. Deleting a missing id is not an error.
	Delete(ctx context.Context, productID string) error

	// List returns up to limit products after skipping offset products in
	// store order
	List(ctx context.Context, limit, offset int) ([]*entities.Product, error)
}

// TaxonomyRepository answers whether a taxonomy entry exists
type TaxonomyRepository interface {
	// Exists reports whether an entry keyed by taxonomyID is present
	Exists(ctx context.Context, taxonomyID string) (bool, error)
}
