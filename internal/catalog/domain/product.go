package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product entity
type Product struct {
	ID               uint                `json:"productId" gorm:"column:product_id;primaryKey"`
	CategoryID       uint                `json:"categoryId" gorm:"not null;index"`
	BrandID          *uint               `json:"brandId" gorm:"index"`
	Name             string              `json:"productName" gorm:"column:product_name;size:500;not null"`
	Slug             string              `json:"slug" gorm:"size:500;not null;uniqueIndex"`
	SKU              string              `json:"sku" gorm:"size:100;uniqueIndex"`
	Description      string              `json:"description" gorm:"type:text"`
	ShortDescription string              `json:"shortDescription" gorm:"size:1000"`
	OriginalPrice    decimal.Decimal     `json:"originalPrice" gorm:"type:decimal(15,2);not null"`
	SalePrice        decimal.NullDecimal `json:"salePrice" gorm:"type:decimal(15,2)"`
	DiscountPercent  int                 `json:"discountPercent" gorm:"default:0"`
	StockQuantity    int                 `json:"stockQuantity" gorm:"default:0"`
	SoldQuantity     int                 `json:"soldQuantity" gorm:"default:0"`
	ViewCount        int                 `json:"viewCount" gorm:"default:0"`
	IsFeatured       bool                `json:"isFeatured" gorm:"default:false;index"`
	IsNew            bool                `json:"isNew" gorm:"default:false;index"`
	IsBestseller     bool                `json:"isBestseller" gorm:"default:false;index"`
	IsActive         bool                `json:"isActive" gorm:"default:true;index"`
	VideoURL         string              `json:"videoUrl" gorm:"size:500"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductImage represents one image of a product's gallery
type ProductImage struct {
	ID           uint      `json:"imageId" gorm:"column:image_id;primaryKey"`
	ProductID    uint      `json:"productId" gorm:"not null;index"`
	ImageURL     string    `json:"imageUrl" gorm:"size:500;not null"`
	AltText      string    `json:"altText" gorm:"size:255"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0"`
	IsPrimary    bool      `json:"isPrimary" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductReview represents a customer review. Only approved reviews
// contribute to the aggregated rating.
type ProductReview struct {
	ID                 uint      `json:"reviewId" gorm:"column:review_id;primaryKey"`
	ProductID          uint      `json:"productId" gorm:"not null;index"`
	UserID             uint      `json:"userId" gorm:"not null"`
	OrderID            *uint     `json:"orderId"`
	Rating             int       `json:"rating" gorm:"not null;index"`
	Title              string    `json:"title" gorm:"size:255"`
	Comment            string    `json:"comment" gorm:"type:text"`
	IsApproved         bool      `json:"isApproved" gorm:"default:false;index"`
	IsVerifiedPurchase bool      `json:"isVerifiedPurchase" gorm:"default:false"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (ProductReview) TableName() string {
	return "product_reviews"
}

// EffectivePrice returns the sale price when set, otherwise the original
// price. Every place that filters, sorts, or displays price must use this
// same rule.
func EffectivePrice(originalPrice decimal.Decimal, salePrice decimal.NullDecimal) decimal.Decimal {
	if salePrice.Valid {
		return salePrice.Decimal
	}
	return originalPrice
}

// Sort keys accepted by the product listing
const (
	SortPrice    = "price"
	SortRating   = "rating"
	SortNewest   = "newest"
	SortPopular  = "popular"
	SortName     = "name"
	SortDiscount = "discount"
)

// ProductQuery is the validated, typed filter set for the product listing.
// Nil pointer fields mean "no constraint", not false/zero.
type ProductQuery struct {
	CategoryID   *uint
	BrandIDs     []uint
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	SortBy       string
	SortOrder    string
	Search       string
	IsFeatured   *bool
	IsNew        *bool
	IsBestseller *bool
	IsActive     bool
	Page         int
	PageSize     int
}

// Offset returns the row offset for the requested page
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ProductListRow is one product row of the listing query, joined with its
// category and brand and enriched with review aggregates. Brand fields are
// nil when the product has no brand.
type ProductListRow struct {
	ProductID        uint
	ProductName      string
	Slug             string
	ShortDescription string
	OriginalPrice    decimal.Decimal
	SalePrice        decimal.NullDecimal
	DiscountPercent  int
	StockQuantity    int
	SoldQuantity     int
	IsFeatured       bool
	IsNew            bool
	IsBestseller     bool
	CreatedAt        time.Time
	CategoryID       uint
	CategoryName     string
	CategorySlug     string
	BrandID          *uint
	BrandName        *string
	BrandSlug        *string
	BrandLogoURL     *string
	AverageRating    float64
	TotalReviews     int64
}

// ProductDetailRow is the single-product variant of ProductListRow with the
// full field set of the detail view.
type ProductDetailRow struct {
	ProductID        uint
	ProductName      string
	Slug             string
	SKU              string
	Description      string
	ShortDescription string
	OriginalPrice    decimal.Decimal
	SalePrice        decimal.NullDecimal
	DiscountPercent  int
	StockQuantity    int
	SoldQuantity     int
	ViewCount        int
	IsFeatured       bool
	IsNew            bool
	IsBestseller     bool
	IsActive         bool
	VideoURL         string
	CreatedAt        time.Time
	CategoryID       uint
	CategoryName     string
	CategorySlug     string
	CategoryImageURL *string
	BrandID          *uint
	BrandName        *string
	BrandSlug        *string
	BrandLogoURL     *string
	BrandDescription *string
	AverageRating    float64
	TotalReviews     int64
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	// List returns one page of products matching the query, joined with
	// category/brand and carrying per-row review aggregates. MinRating is
	// ignored here; it is applied after aggregation by the caller.
	List(ctx context.Context, q ProductQuery) ([]ProductListRow, error)
	// Count returns the total number of products matching the query,
	// regardless of pagination (and of MinRating).
	Count(ctx context.Context, q ProductQuery) (int64, error)
	FindByID(ctx context.Context, id uint) (*ProductDetailRow, error)
	FindBySlug(ctx context.Context, slug string) (*ProductDetailRow, error)
	// PrimaryImages returns the is_primary image rows for the given
	// products, in store order.
	PrimaryImages(ctx context.Context, productIDs []uint) ([]ProductImage, error)
	// ImagesByProduct returns a product's full gallery ordered by
	// display_order ascending.
	ImagesByProduct(ctx context.Context, productID uint) ([]ProductImage, error)
	IncrementViewCount(ctx context.Context, productID uint) error
}
