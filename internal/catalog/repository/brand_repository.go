package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GORM brand repository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// ListActive returns active brands ordered by name
func (r *GormBrandRepository) ListActive(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("brand_name ASC").
		Find(&brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// FindByID retrieves a brand by id
func (r *GormBrandRepository) FindByID(ctx context.Context, id uint) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}
