package query

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
)

// BrandSummary is the list-view shape of a brand
type BrandSummary struct {
	BrandID     uint   `json:"brandId"`
	BrandName   string `json:"brandName"`
	Slug        string `json:"slug"`
	LogoURL     string `json:"logoUrl"`
	Description string `json:"description"`
}

// ListBrandsHandler handles the brand listing query
type ListBrandsHandler struct {
	repo domain.BrandRepository
}

// NewListBrandsHandler creates a new list brands handler
func NewListBrandsHandler(repo domain.BrandRepository) *ListBrandsHandler {
	return &ListBrandsHandler{repo: repo}
}

// Handle returns all active brands
func (h *ListBrandsHandler) Handle(ctx context.Context) ([]BrandSummary, error) {
	brands, err := h.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	result := make([]BrandSummary, 0, len(brands))
	for _, b := range brands {
		result = append(result, BrandSummary{
			BrandID:     b.ID,
			BrandName:   b.Name,
			Slug:        b.Slug,
			LogoURL:     b.LogoURL,
			Description: b.Description,
		})
	}
	return result, nil
}

// GetBrandHandler handles the single-brand query
type GetBrandHandler struct {
	repo domain.BrandRepository
}

// NewGetBrandHandler creates a new get brand handler
func NewGetBrandHandler(repo domain.BrandRepository) *GetBrandHandler {
	return &GetBrandHandler{repo: repo}
}

// Handle returns one brand by id
func (h *GetBrandHandler) Handle(ctx context.Context, id uint) (*BrandSummary, error) {
	brand, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("BRAND_NOT_FOUND", "Brand not found")
		}
		return nil, fmt.Errorf("failed to fetch brand: %w", err)
	}

	return &BrandSummary{
		BrandID:     brand.ID,
		BrandName:   brand.Name,
		Slug:        brand.Slug,
		LogoURL:     brand.LogoURL,
		Description: brand.Description,
	}, nil
}
