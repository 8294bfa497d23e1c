package query

import (
	"math"
	"time"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// CategoryRef is the nested category object of a product payload
type CategoryRef struct {
	CategoryID   uint    `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Slug         string  `json:"slug"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// BrandRef is the nested brand object of a product payload; null when the
// product has no brand
type BrandRef struct {
	BrandID     uint    `json:"brandId"`
	BrandName   string  `json:"brandName"`
	Slug        string  `json:"slug"`
	LogoURL     *string `json:"logoUrl"`
	Description *string `json:"description,omitempty"`
}

// ProductSummary is the list-view shape of a product
type ProductSummary struct {
	ProductID        uint         `json:"productId"`
	ProductName      string       `json:"productName"`
	Slug             string       `json:"slug"`
	ShortDescription string       `json:"shortDescription"`
	OriginalPrice    float64      `json:"originalPrice"`
	SalePrice        *float64     `json:"salePrice"`
	FinalPrice       float64      `json:"finalPrice"`
	DiscountPercent  int          `json:"discountPercent"`
	StockQuantity    int          `json:"stockQuantity"`
	SoldQuantity     int          `json:"soldQuantity"`
	IsFeatured       bool         `json:"isFeatured"`
	IsNew            bool         `json:"isNew"`
	IsBestseller     bool         `json:"isBestseller"`
	AverageRating    float64      `json:"averageRating"`
	TotalReviews     int64        `json:"totalReviews"`
	PrimaryImage     *string      `json:"primaryImage"`
	Category         CategoryRef  `json:"category"`
	Brand            *BrandRef    `json:"brand"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// ProductImageView is one gallery entry of the detail view
type ProductImageView struct {
	ImageID      uint   `json:"imageId"`
	ImageURL     string `json:"imageUrl"`
	AltText      string `json:"altText"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
}

// ProductDetail is the detail-view shape of a product
type ProductDetail struct {
	ProductID        uint               `json:"productId"`
	ProductName      string             `json:"productName"`
	Slug             string             `json:"slug"`
	SKU              string             `json:"sku"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"shortDescription"`
	OriginalPrice    float64            `json:"originalPrice"`
	SalePrice        *float64           `json:"salePrice"`
	FinalPrice       float64            `json:"finalPrice"`
	DiscountPercent  int                `json:"discountPercent"`
	StockQuantity    int                `json:"stockQuantity"`
	SoldQuantity     int                `json:"soldQuantity"`
	ViewCount        int                `json:"viewCount"`
	IsFeatured       bool               `json:"isFeatured"`
	IsNew            bool               `json:"isNew"`
	IsBestseller     bool               `json:"isBestseller"`
	IsActive         bool               `json:"isActive"`
	VideoURL         string             `json:"videoUrl"`
	AverageRating    float64            `json:"averageRating"`
	TotalReviews     int64              `json:"totalReviews"`
	Category         CategoryRef        `json:"category"`
	Brand            *BrandRef          `json:"brand"`
	Images           []ProductImageView `json:"images"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// Pagination is the paging metadata of a listing response
type Pagination struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// FiltersEcho echoes the filters the listing was computed with
type FiltersEcho struct {
	CategoryID   *uint    `json:"categoryId,omitempty"`
	BrandIDs     []uint   `json:"brandId,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	Search       string   `json:"search,omitempty"`
	IsFeatured   *bool    `json:"isFeatured,omitempty"`
	IsNew        *bool    `json:"isNew,omitempty"`
	IsBestseller *bool    `json:"isBestseller,omitempty"`
}

// roundRating applies the fixed 2-decimal precision policy for the
// aggregated average rating
func roundRating(rating float64) float64 {
	return math.Round(rating*100) / 100
}

func formatSummary(row domain.ProductListRow, primaryImage *string) ProductSummary {
	original, _ := row.OriginalPrice.Float64()

	var sale *float64
	if row.SalePrice.Valid {
		v, _ := row.SalePrice.Decimal.Float64()
		sale = &v
	}
	final, _ := domain.EffectivePrice(row.OriginalPrice, row.SalePrice).Float64()

	var brand *BrandRef
	if row.BrandID != nil {
		brand = &BrandRef{
			BrandID:   *row.BrandID,
			BrandName: deref(row.BrandName),
			Slug:      deref(row.BrandSlug),
			LogoURL:   row.BrandLogoURL,
		}
	}

	return ProductSummary{
		ProductID:        row.ProductID,
		ProductName:      row.ProductName,
		Slug:             row.Slug,
		ShortDescription: row.ShortDescription,
		OriginalPrice:    original,
		SalePrice:        sale,
		FinalPrice:       final,
		DiscountPercent:  row.DiscountPercent,
		StockQuantity:    row.StockQuantity,
		SoldQuantity:     row.SoldQuantity,
		IsFeatured:       row.IsFeatured,
		IsNew:            row.IsNew,
		IsBestseller:     row.IsBestseller,
		AverageRating:    roundRating(row.AverageRating),
		TotalReviews:     row.TotalReviews,
		PrimaryImage:     primaryImage,
		Category: CategoryRef{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Slug:         row.CategorySlug,
		},
		Brand:     brand,
		CreatedAt: row.CreatedAt,
	}
}

func formatDetail(row domain.ProductDetailRow, images []domain.ProductImage) ProductDetail {
	original, _ := row.OriginalPrice.Float64()

	var sale *float64
	if row.SalePrice.Valid {
		v, _ := row.SalePrice.Decimal.Float64()
		sale = &v
	}
	final, _ := domain.EffectivePrice(row.OriginalPrice, row.SalePrice).Float64()

	var brand *BrandRef
	if row.BrandID != nil {
		brand = &BrandRef{
			BrandID:     *row.BrandID,
			BrandName:   deref(row.BrandName),
			Slug:        deref(row.BrandSlug),
			LogoURL:     row.BrandLogoURL,
			Description: row.BrandDescription,
		}
	}

	gallery := make([]ProductImageView, 0, len(images))
	for _, img := range images {
		gallery = append(gallery, ProductImageView{
			ImageID:      img.ID,
			ImageURL:     img.ImageURL,
			AltText:      img.AltText,
			IsPrimary:    img.IsPrimary,
			DisplayOrder: img.DisplayOrder,
		})
	}

	return ProductDetail{
		ProductID:        row.ProductID,
		ProductName:      row.ProductName,
		Slug:             row.Slug,
		SKU:              row.SKU,
		Description:      row.Description,
		ShortDescription: row.ShortDescription,
		OriginalPrice:    original,
		SalePrice:        sale,
		FinalPrice:       final,
		DiscountPercent:  row.DiscountPercent,
		StockQuantity:    row.StockQuantity,
		SoldQuantity:     row.SoldQuantity,
		ViewCount:        row.ViewCount,
		IsFeatured:       row.IsFeatured,
		IsNew:            row.IsNew,
		IsBestseller:     row.IsBestseller,
		IsActive:         row.IsActive,
		VideoURL:         row.VideoURL,
		AverageRating:    roundRating(row.AverageRating),
		TotalReviews:     row.TotalReviews,
		Category: CategoryRef{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Slug:         row.CategorySlug,
			ImageURL:     row.CategoryImageURL,
		},
		Brand:     brand,
		Images:    gallery,
		CreatedAt: row.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
