package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate creates or updates the catalog tables
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Category{},
		&domain.Brand{},
		&domain.Product{},
		&domain.ProductImage{},
		&domain.ProductReview{},
	)
}

const listColumns = `
	products.product_id,
	products.product_name,
	products.slug,
	products.short_description,
	products.original_price,
	products.sale_price,
	products.discount_percent,
	products.stock_quantity,
	products.sold_quantity,
	products.is_featured,
	products.is_new,
	products.is_bestseller,
	products.created_at,
	categories.category_id AS category_id,
	categories.category_name AS category_name,
	categories.slug AS category_slug,
	brands.brand_id AS brand_id,
	brands.brand_name AS brand_name,
	brands.slug AS brand_slug,
	brands.logo_url AS brand_logo_url,
	` + avgRatingExpr + ` AS average_rating,
	` + reviewCountExpr + ` AS total_reviews`

const detailColumns = `
	products.product_id,
	products.product_name,
	products.slug,
	products.sku,
	products.description,
	products.short_description,
	products.original_price,
	products.sale_price,
	products.discount_percent,
	products.stock_quantity,
	products.sold_quantity,
	products.view_count,
	products.is_featured,
	products.is_new,
	products.is_bestseller,
	products.is_active,
	products.video_url,
	products.created_at,
	categories.category_id AS category_id,
	categories.category_name AS category_name,
	categories.slug AS category_slug,
	categories.image_url AS category_image_url,
	brands.brand_id AS brand_id,
	brands.brand_name AS brand_name,
	brands.slug AS brand_slug,
	brands.logo_url AS brand_logo_url,
	brands.description AS brand_description,
	` + avgRatingExpr + ` AS average_rating,
	` + reviewCountExpr + ` AS total_reviews`

func (r *GormProductRepository) joined(ctx context.Context, columns string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products").
		Select(columns).
		Joins("LEFT JOIN categories ON categories.category_id = products.category_id").
		Joins("LEFT JOIN brands ON brands.brand_id = products.brand_id")
}

// List returns one page of products matching the query
func (r *GormProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListRow, error) {
	var rows []domain.ProductListRow

	tx := applyConditions(r.joined(ctx, listColumns), buildProductConditions(q))
	err := tx.Order(resolveProductOrder(q.SortBy, q.SortOrder)).
		Limit(q.PageSize).
		Offset(q.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rows, nil
}

// Count returns the total number of products matching the query
func (r *GormProductRepository) Count(ctx context.Context, q domain.ProductQuery) (int64, error) {
	var total int64

	tx := applyConditions(r.db.WithContext(ctx).Table("products"), buildProductConditions(q))
	if err := tx.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// FindByID fetches a single product detail row by numeric id
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.ProductDetailRow, error) {
	return r.findDetail(ctx, "products.product_id = ?", id)
}

// FindBySlug fetches a single product detail row by slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.ProductDetailRow, error) {
	return r.findDetail(ctx, "products.slug = ?", slug)
}

func (r *GormProductRepository) findDetail(ctx context.Context, cond string, arg any) (*domain.ProductDetailRow, error) {
	var rows []domain.ProductDetailRow

	err := r.joined(ctx, detailColumns).
		Where(cond, arg).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// PrimaryImages returns the primary image rows for the given products
func (r *GormProductRepository) PrimaryImages(ctx context.Context, productIDs []uint) ([]domain.ProductImage, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var images []domain.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND is_primary = TRUE", productIDs).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load primary images: %w", err)
	}
	return images, nil
}

// ImagesByProduct returns the full gallery ordered by display order
func (r *GormProductRepository) ImagesByProduct(ctx context.Context, productID uint) ([]domain.ProductImage, error) {
	var images []domain.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product images: %w", err)
	}
	return images, nil
}

// IncrementViewCount bumps the stored view counter by one
func (r *GormProductRepository) IncrementViewCount(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
