package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestBuildProductConditions_Default(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{IsActive: true})

	require.Len(t, conds, 1)
	assert.Equal(t, "products.is_active = ?", conds[0].expr)
	assert.Equal(t, []any{true}, conds[0].args)
}

func TestBuildProductConditions_CategoryAndBrands(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{
		IsActive:   true,
		CategoryID: uintPtr(3),
		BrandIDs:   []uint{1, 2, 5},
	})

	require.Len(t, conds, 3)
	assert.Equal(t, "products.category_id = ?", conds[1].expr)
	assert.Equal(t, []any{uint(3)}, conds[1].args)
	assert.Equal(t, "products.brand_id IN ?", conds[2].expr)
	assert.Equal(t, []any{[]uint{1, 2, 5}}, conds[2].args)
}

func TestBuildProductConditions_PriceBoundsUseEffectivePrice(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{
		IsActive: true,
		MinPrice: floatPtr(100),
		MaxPrice: floatPtr(500),
	})

	require.Len(t, conds, 3)

	min := conds[1]
	assert.Equal(t,
		"((products.sale_price IS NOT NULL AND products.sale_price >= ?) OR (products.sale_price IS NULL AND products.original_price >= ?))",
		min.expr)
	assert.Equal(t, []any{100.0, 100.0}, min.args)

	max := conds[2]
	assert.Equal(t,
		"((products.sale_price IS NOT NULL AND products.sale_price <= ?) OR (products.sale_price IS NULL AND products.original_price <= ?))",
		max.expr)
	assert.Equal(t, []any{500.0, 500.0}, max.args)
}

func TestBuildProductConditions_FlagsAreTriState(t *testing.T) {
	// Unset flags add no predicate
	conds := buildProductConditions(domain.ProductQuery{IsActive: true})
	require.Len(t, conds, 1)

	// An explicit false is still a predicate
	conds = buildProductConditions(domain.ProductQuery{
		IsActive:   true,
		IsFeatured: boolPtr(false),
		IsNew:      boolPtr(true),
	})
	require.Len(t, conds, 3)
	assert.Equal(t, "products.is_featured = ?", conds[1].expr)
	assert.Equal(t, []any{false}, conds[1].args)
	assert.Equal(t, "products.is_new = ?", conds[2].expr)
	assert.Equal(t, []any{true}, conds[2].args)
}

func TestBuildProductConditions_SearchIsSubstringMatch(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{
		IsActive: true,
		Search:   "iphone",
	})

	require.Len(t, conds, 2)
	assert.Equal(t, "products.product_name ILIKE ?", conds[1].expr)
	assert.Equal(t, []any{"%iphone%"}, conds[1].args)
}

func TestBuildProductConditions_MinRatingNeverReachesStore(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{
		IsActive:  true,
		MinRating: floatPtr(4),
	})

	require.Len(t, conds, 1)
}

func TestBuildProductConditions_InactiveListing(t *testing.T) {
	conds := buildProductConditions(domain.ProductQuery{IsActive: false})

	require.Len(t, conds, 1)
	assert.Equal(t, []any{false}, conds[0].args)
}
