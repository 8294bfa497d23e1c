package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

func TestResolveProductOrder(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{
			name:      "price ascending uses effective price",
			sortBy:    domain.SortPrice,
			sortOrder: "asc",
			want:      "COALESCE(products.sale_price, products.original_price) ASC",
		},
		{
			name:      "price descending",
			sortBy:    domain.SortPrice,
			sortOrder: "desc",
			want:      "COALESCE(products.sale_price, products.original_price) DESC",
		},
		{
			name:      "rating sorts by the approved-review aggregate",
			sortBy:    domain.SortRating,
			sortOrder: "desc",
			want:      avgRatingExpr + " DESC",
		},
		{
			name:      "popular ignores the requested direction",
			sortBy:    domain.SortPopular,
			sortOrder: "asc",
			want:      "products.sold_quantity DESC",
		},
		{
			name:      "discount ignores the requested direction",
			sortBy:    domain.SortDiscount,
			sortOrder: "asc",
			want:      "products.discount_percent DESC",
		},
		{
			name:      "name respects direction",
			sortBy:    domain.SortName,
			sortOrder: "asc",
			want:      "products.product_name ASC",
		},
		{
			name:      "newest is creation time descending",
			sortBy:    domain.SortNewest,
			sortOrder: "desc",
			want:      "products.created_at DESC",
		},
		{
			name:      "unknown key falls back to newest",
			sortBy:    "garbage",
			sortOrder: "asc",
			want:      "products.created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveProductOrder(tt.sortBy, tt.sortOrder))
		})
	}
}
