//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/delivery/http"
	"github.com/anhtn-dev/storefront/internal/catalog/domain"
	"github.com/anhtn-dev/storefront/internal/catalog/repository"
)

// ProvideProductRepository provides the product repository wrapped with
// tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewGormProductRepository(db))
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideBrandRepository provides the brand repository
func ProvideBrandRepository(db *gorm.DB) domain.BrandRepository {
	return repository.NewGormBrandRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideBrandRepository,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all
// dependencies
func InitializeHTTPHandler(db *gorm.DB, reg prometheus.Registerer) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
