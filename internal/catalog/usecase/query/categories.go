package query

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
)

// CategorySummary is the list-view shape of a category
type CategorySummary struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"imageUrl"`
}

// CategoryDetail is the single-category shape
type CategoryDetail struct {
	CategoryID   uint   `json:"categoryId"`
	ParentID     *uint  `json:"parentId"`
	CategoryName string `json:"categoryName"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

// ListCategoriesHandler handles the category listing query
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle returns all active categories
func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]CategorySummary, error) {
	categories, err := h.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategorySummary{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Slug:         c.Slug,
			ImageURL:     c.ImageURL,
		})
	}
	return result, nil
}

// GetCategoryHandler handles the single-category query
type GetCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewGetCategoryHandler creates a new get category handler
func NewGetCategoryHandler(repo domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{repo: repo}
}

// Handle returns one category by id
func (h *GetCategoryHandler) Handle(ctx context.Context, id uint) (*CategoryDetail, error) {
	category, err := h.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return &CategoryDetail{
		CategoryID:   category.ID,
		ParentID:     category.ParentID,
		CategoryName: category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		ImageURL:     category.ImageURL,
		DisplayOrder: category.DisplayOrder,
	}, nil
}
