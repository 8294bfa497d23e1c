package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// fakeProductRepo is an in-memory ProductRepository for handler tests
type fakeProductRepo struct {
	rows    []domain.ProductListRow
	total   int64
	detail  *domain.ProductDetailRow
	images  []domain.ProductImage
	primary []domain.ProductImage

	listErr      error
	countErr     error
	findErr      error
	incrementErr error

	lastListQuery   domain.ProductQuery
	lastPrimaryIDs  []uint
	findByIDCalls   []uint
	findBySlugCalls []string
	incrementedIDs  []uint
}

func (f *fakeProductRepo) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListRow, error) {
	f.lastListQuery = q
	return f.rows, f.listErr
}

func (f *fakeProductRepo) Count(ctx context.Context, q domain.ProductQuery) (int64, error) {
	return f.total, f.countErr
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*domain.ProductDetailRow, error) {
	f.findByIDCalls = append(f.findByIDCalls, id)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.detail, nil
}

func (f *fakeProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.ProductDetailRow, error) {
	f.findBySlugCalls = append(f.findBySlugCalls, slug)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.detail, nil
}

func (f *fakeProductRepo) PrimaryImages(ctx context.Context, productIDs []uint) ([]domain.ProductImage, error) {
	f.lastPrimaryIDs = productIDs
	return f.primary, nil
}

func (f *fakeProductRepo) ImagesByProduct(ctx context.Context, productID uint) ([]domain.ProductImage, error) {
	return f.images, nil
}

func (f *fakeProductRepo) IncrementViewCount(ctx context.Context, productID uint) error {
	f.incrementedIDs = append(f.incrementedIDs, productID)
	return f.incrementErr
}

func listRow(id uint, name string, rating float64) domain.ProductListRow {
	return domain.ProductListRow{
		ProductID:     id,
		ProductName:   name,
		Slug:          name,
		OriginalPrice: decimal.NewFromInt(100),
		CategoryID:    1,
		CategoryName:  "Phones",
		CategorySlug:  "phones",
		AverageRating: rating,
		CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListProducts_Defaults(t *testing.T) {
	repo := &fakeProductRepo{rows: []domain.ProductListRow{listRow(1, "a", 0)}, total: 1}
	handler := NewListProductsHandler(repo)

	result, err := handler.Handle(context.Background(), ListProductsQuery{IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lastListQuery.Page)
	assert.Equal(t, 20, repo.lastListQuery.PageSize)
	assert.Equal(t, domain.SortNewest, repo.lastListQuery.SortBy)
	assert.Equal(t, "desc", repo.lastListQuery.SortOrder)
	assert.Len(t, result.Products, 1)
}

func TestListProducts_MinRatingFiltersPageNotCount(t *testing.T) {
	repo := &fakeProductRepo{
		rows: []domain.ProductListRow{
			listRow(1, "low", 2.5),
			listRow(2, "high", 4.5),
			listRow(3, "exact", 4.0),
		},
		total: 30,
	}
	handler := NewListProductsHandler(repo)

	minRating := 4.0
	result, err := handler.Handle(context.Background(), ListProductsQuery{
		IsActive:  true,
		MinRating: &minRating,
	})
	require.NoError(t, err)

	// The boundary value passes; only rows below it are dropped
	require.Len(t, result.Products, 2)
	assert.Equal(t, uint(2), result.Products[0].ProductID)
	assert.Equal(t, uint(3), result.Products[1].ProductID)

	// totalItems reflects the pre-filter count
	assert.Equal(t, int64(30), result.Pagination.TotalItems)

	// Images are only resolved for rows that survived the filter
	assert.Equal(t, []uint{2, 3}, repo.lastPrimaryIDs)
}

func TestListProducts_PrimaryImageMapping(t *testing.T) {
	repo := &fakeProductRepo{
		rows:  []domain.ProductListRow{listRow(1, "a", 0), listRow(2, "b", 0)},
		total: 2,
		primary: []domain.ProductImage{
			{ProductID: 1, ImageURL: "first.jpg", IsPrimary: true},
			{ProductID: 1, ImageURL: "second.jpg", IsPrimary: true},
		},
	}
	handler := NewListProductsHandler(repo)

	result, err := handler.Handle(context.Background(), ListProductsQuery{IsActive: true})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)

	// When more than one primary row exists the last one wins
	require.NotNil(t, result.Products[0].PrimaryImage)
	assert.Equal(t, "second.jpg", *result.Products[0].PrimaryImage)

	// A product without a primary image gets null, not an empty string
	assert.Nil(t, result.Products[1].PrimaryImage)
}

func TestListProducts_PaginationMath(t *testing.T) {
	repo := &fakeProductRepo{rows: nil, total: 45}
	handler := NewListProductsHandler(repo)

	result, err := handler.Handle(context.Background(), ListProductsQuery{
		IsActive: true,
		Page:     2,
		PageSize: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(45), result.Pagination.TotalItems)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.True(t, result.Pagination.HasNextPage)
	assert.True(t, result.Pagination.HasPreviousPage)
}

func TestListProducts_LastPage(t *testing.T) {
	repo := &fakeProductRepo{rows: nil, total: 45}
	handler := NewListProductsHandler(repo)

	result, err := handler.Handle(context.Background(), ListProductsQuery{
		IsActive: true,
		Page:     3,
		PageSize: 20,
	})
	require.NoError(t, err)

	assert.False(t, result.Pagination.HasNextPage)
	assert.True(t, result.Pagination.HasPreviousPage)
}

func TestListProducts_EmptyResult(t *testing.T) {
	repo := &fakeProductRepo{rows: nil, total: 0}
	handler := NewListProductsHandler(repo)

	result, err := handler.Handle(context.Background(), ListProductsQuery{IsActive: true})
	require.NoError(t, err)

	assert.NotNil(t, result.Products)
	assert.Len(t, result.Products, 0)
	assert.Equal(t, 0, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNextPage)
}

func TestListProducts_FiltersEcho(t *testing.T) {
	repo := &fakeProductRepo{}
	handler := NewListProductsHandler(repo)

	categoryID := uint(7)
	minPrice := 100.0
	result, err := handler.Handle(context.Background(), ListProductsQuery{
		IsActive:   true,
		CategoryID: &categoryID,
		BrandIDs:   []uint{1, 2},
		MinPrice:   &minPrice,
		Search:     "phone",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Filters.CategoryID)
	assert.Equal(t, uint(7), *result.Filters.CategoryID)
	assert.Equal(t, []uint{1, 2}, result.Filters.BrandIDs)
	assert.Equal(t, "phone", result.Filters.Search)
}

func TestListProducts_ListError(t *testing.T) {
	repo := &fakeProductRepo{listErr: errors.New("connection reset")}
	handler := NewListProductsHandler(repo)

	_, err := handler.Handle(context.Background(), ListProductsQuery{IsActive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list products")
}

func TestListProducts_CountError(t *testing.T) {
	repo := &fakeProductRepo{countErr: errors.New("connection reset")}
	handler := NewListProductsHandler(repo)

	_, err := handler.Handle(context.Background(), ListProductsQuery{IsActive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count products")
}
