package query

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products with filters,
// sorting, and pagination
type ListProductsQuery struct {
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

// ListProductsResult is the full listing payload
type ListProductsResult struct {
	Products   []ProductSummary `json:"products"`
	Pagination Pagination       `json:"pagination"`
	Filters    FiltersEcho      `json:"filters"`
}

// ListProductsHandler handles the product listing query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the product listing query: it fetches the requested page
// and the total count concurrently, applies the deferred minimum-rating
// filter, resolves primary images in one batch, and formats the result.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*ListProductsResult, error) {
	// Defaults
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.SortBy == "" {
		q.SortBy = domain.SortNewest
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}

	storeQuery := domain.ProductQuery{
		CategoryID:   q.CategoryID,
		BrandIDs:     q.BrandIDs,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		MinRating:    q.MinRating,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
		Search:       q.Search,
		IsFeatured:   q.IsFeatured,
		IsNew:        q.IsNew,
		IsBestseller: q.IsBestseller,
		IsActive:     q.IsActive,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}

	// Page and total count are independent reads; fetch them concurrently.
	// A row inserted between the two is an accepted skew, not a bug.
	var (
		rows     []domain.ProductListRow
		total    int64
		listErr  error
		countErr error
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, listErr = h.repo.List(ctx, storeQuery)
	}()
	go func() {
		defer wg.Done()
		total, countErr = h.repo.Count(ctx, storeQuery)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, fmt.Errorf("failed to list products: %w", listErr)
	}
	if countErr != nil {
		return nil, fmt.Errorf("failed to count products: %w", countErr)
	}

	// The minimum-rating filter operates on an aggregate and cannot be
	// pushed into the store query; it is applied to the fetched page.
	// totalItems stays based on the pre-filter count, so pagination may
	// overcount when MinRating is set.
	filtered := rows
	if q.MinRating != nil {
		filtered = make([]domain.ProductListRow, 0, len(rows))
		for _, row := range rows {
			if row.AverageRating >= *q.MinRating {
				filtered = append(filtered, row)
			}
		}
	}

	imageByProduct, err := h.primaryImages(ctx, filtered)
	if err != nil {
		return nil, err
	}

	products := make([]ProductSummary, 0, len(filtered))
	for _, row := range filtered {
		products = append(products, formatSummary(row, imageByProduct[row.ProductID]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.PageSize)))

	return &ListProductsResult{
		Products: products,
		Pagination: Pagination{
			Page:            q.Page,
			PageSize:        q.PageSize,
			TotalItems:      total,
			TotalPages:      totalPages,
			HasNextPage:     q.Page < totalPages,
			HasPreviousPage: q.Page > 1,
		},
		Filters: FiltersEcho{
			CategoryID:   q.CategoryID,
			BrandIDs:     q.BrandIDs,
			MinPrice:     q.MinPrice,
			MaxPrice:     q.MaxPrice,
			MinRating:    q.MinRating,
			Search:       q.Search,
			IsFeatured:   q.IsFeatured,
			IsNew:        q.IsNew,
			IsBestseller: q.IsBestseller,
		},
	}, nil
}

// primaryImages resolves the primary image URL for each listed product in a
// single batched lookup. When the at-most-one-primary invariant is violated,
// the last row in store order wins; products without a primary image are
// absent from the map.
func (h *ListProductsHandler) primaryImages(ctx context.Context, rows []domain.ProductListRow) (map[uint]*string, error) {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}

	images, err := h.repo.PrimaryImages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve primary images: %w", err)
	}

	byProduct := make(map[uint]*string, len(images))
	for _, img := range images {
		url := img.ImageURL
		byProduct[img.ProductID] = &url
	}
	return byProduct, nil
}
