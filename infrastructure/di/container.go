package di

import (
	"product-catalog/application/ports"
	"product-catalog/application/services"
	"product-catalog/infrastructure/config"
	"product-catalog/interfaces/http/rest"
	"product-catalog/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ProductRepo    ports.ProductRepository
	TaxonomyRepo   ports.TaxonomyRepository
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	ProductService *services.ProductService
	Router         *rest.Router
}

// Shutdown flushes buffered logs
func (c *Container) Shutdown() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
