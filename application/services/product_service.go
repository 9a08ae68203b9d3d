package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"product-catalog/application/ports"
	"product-catalog/domain/core/entities"
	apperrors "product-catalog/pkg/errors"
	"product-catalog/pkg/observability"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// errTagMissing stops the tag fan-out as soon as one tag is unknown
var errTagMissing = errors.New("tag missing")

// ProductService enforces taxonomy references before writes and maps
// product operations onto the repositories. It holds no state between calls.
type ProductService struct {
	products ports.ProductRepository
	taxonomy ports.TaxonomyRepository
	logger   *zap.Logger
	metrics  *observability.Metrics
	tracer   *observability.Tracer
	now      func() time.Time

	// refreshUpdatedAt makes UpdateProduct also set UpdatedAt
	refreshUpdatedAt bool
}

// Option configures a ProductService
type Option func(*ProductService)

// WithMetrics records operation metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(s *ProductService) { s.metrics = m }
}

// WithTracer wraps operations in trace subsegments
func WithTracer(t *observability.Tracer) Option {
	return func(s *ProductService) { s.tracer = t }
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *ProductService) { s.now = now }
}

// WithUpdatedAtRefresh makes updates refresh UpdatedAt
func WithUpdatedAtRefresh(enabled bool) Option {
	return func(s *ProductService) { s.refreshUpdatedAt = enabled }
}

// NewProductService creates a new product service
func NewProductService(
	products ports.ProductRepository,
	taxonomy ports.TaxonomyRepository,
	logger *zap.Logger,
	opts ...Option,
) *ProductService {
	s := &ProductService{
		products: products,
		taxonomy: taxonomy,
		logger:   logger,
		now:      utils.NowUTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewProduct builds a product with a generated id and creation timestamps
func (s *ProductService) NewProduct(in entities.NewProductInput) *entities.Product {
	return entities.NewProduct(in, s.now())
}

// CreateProduct validates the category and tags of the product and then
// writes it. Nothing is written when a reference is unknown.
func (s *ProductService) CreateProduct(ctx context.Context, product *entities.Product) error {
	return s.observe(ctx, "CreateProduct", func(ctx context.Context) error {
		if product == nil || product.Category == "" {
			return apperrors.NewInputError("Category is required")
		}
		s.tracer.AddAnnotation(ctx, "productId", product.ProductID)

		if err := s.validateCategory(ctx, product.Category); err != nil {
			return err
		}
		if err := s.validateTags(ctx, product.Tags); err != nil {
			return err
		}

		if err := s.products.Save(ctx, product); err != nil {
			s.logger.Error("Failed to save product",
				zap.String("productId", product.ProductID),
				zap.Error(err),
			)
			return err
		}

		s.logger.Info("Product created",
			zap.String("productId", product.ProductID),
			zap.String("category", product.Category),
			zap.Strings("tags", product.Tags),
		)
		return nil
	})
}

// GetProduct returns the product with the given id or a NotFound error
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*entities.Product, error) {
	var product *entities.Product
	err := s.observe(ctx, "GetProduct", func(ctx context.Context) error {
		found, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFoundError("product")
		}
		product = found
		return nil
	})
	return product, err
}

// ListProducts returns up to limit products starting at offset
func (s *ProductService) ListProducts(ctx context.Context, limit, offset int) ([]*entities.Product, error) {
	var products []*entities.Product
	err := s.observe(ctx, "ListProducts", func(ctx context.Context) error {
		var err error
		products, err = s.products.List(ctx, limit, offset)
		return err
	})
	if products == nil && err == nil {
		products = []*entities.Product{}
	}
	return products, err
}

// UpdateProduct re-validates the category and tags present in the patch
// and then sets exactly the patched attributes.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, patch entities.ProductPatch) error {
	return s.observe(ctx, "UpdateProduct", func(ctx context.Context) error {
		s.tracer.AddAnnotation(ctx, "productId", productID)
		if err := patch.Validate(); err != nil {
			return apperrors.NewInputError(err.Error())
		}

		if patch.Category != nil {
			if err := s.validateCategory(ctx, *patch.Category); err != nil {
				return err
			}
		}
		if patch.Tags != nil {
			if err := s.validateTags(ctx, *patch.Tags); err != nil {
				return err
			}
		}

		if s.refreshUpdatedAt {
			now := s.now()
			patch.UpdatedAt = &now
		}

		if err := s.products.Update(ctx, productID, patch); err != nil {
			if !apperrors.IsNotFound(err) {
				s.logger.Error("Failed to update product",
					zap.String("productId", productID),
					zap.Error(err),
				)
			}
			return err
		}

		s.logger.Info("Product updated", zap.String("productId", productID))
		return nil
	})
}

// DeleteProduct removes the product. Missing ids are not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	return s.observe(ctx, "DeleteProduct", func(ctx context.Context) error {
		if err := s.products.Delete(ctx, productID); err != nil {
			s.logger.Error("Failed to delete product",
				zap.String("productId", productID),
				zap.Error(err),
			)
			return err
		}

		s.logger.Info("Product deleted", zap.String("productId", productID))
		return nil
	})
}

// validateCategory checks that the category is a known taxonomy entry
func (s *ProductService) validateCategory(ctx context.Context, category string) error {
	exists, err := s.taxonomy.Exists(ctx, category)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Warn("Category does not exist", zap.String("category", category))
		return apperrors.NewValidationError(fmt.Sprintf("category %s not found", category)).
			WithDetails(map[string]interface{}{"category": category})
	}
	return nil
}

// validateTags checks every distinct tag concurrently. An empty list is
// valid. The first unknown tag cancels the remaining lookups.
func (s *ProductService) validateTags(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	g, gctx := errgroup.WithContext(ctx)
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}

		tag := tag
		g.Go(func() error {
			if tag == "" {
				return errTagMissing
			}
			exists, err := s.taxonomy.Exists(gctx, tag)
			if err != nil {
				return err
			}
			if !exists {
				return errTagMissing
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, errTagMissing) {
			s.logger.Warn("One or more tags are invalid", zap.Strings("tags", tags))
			return apperrors.NewValidationError("invalid tag").
				WithDetails(map[string]interface{}{"tags": tags})
		}
		return err
	}
	return nil
}

// observe runs fn inside a trace subsegment and records its metrics
func (s *ProductService) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()
	err := s.tracer.TraceFunction(ctx, operation, fn)
	s.metrics.RecordOperation(ctx, operation, time.Since(start), err)
	return err
}
