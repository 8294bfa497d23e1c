package repository

import (
	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

// condition is one boolean predicate of the product listing WHERE clause
type condition struct {
	expr string
	args []any
}

// buildProductConditions translates the typed query into an explicit ordered
// list of predicates, ANDed together when applied. MinRating is deliberately
// absent: average rating is an aggregate and is filtered after the fetch by
// the query executor.
func buildProductConditions(q domain.ProductQuery) []condition {
	conds := []condition{
		{expr: "products.is_active = ?", args: []any{q.IsActive}},
	}

	if q.CategoryID != nil {
		conds = append(conds, condition{
			expr: "products.category_id = ?",
			args: []any{*q.CategoryID},
		})
	}

	if len(q.BrandIDs) > 0 {
		conds = append(conds, condition{
			expr: "products.brand_id IN ?",
			args: []any{q.BrandIDs},
		})
	}

	// Price bounds apply to the effective price: sale_price when present,
	// original_price otherwise. Each bound is an independent predicate so
	// the store needs no computed column.
	if q.MinPrice != nil {
		conds = append(conds, condition{
			expr: "((products.sale_price IS NOT NULL AND products.sale_price >= ?) OR (products.sale_price IS NULL AND products.original_price >= ?))",
			args: []any{*q.MinPrice, *q.MinPrice},
		})
	}
	if q.MaxPrice != nil {
		conds = append(conds, condition{
			expr: "((products.sale_price IS NOT NULL AND products.sale_price <= ?) OR (products.sale_price IS NULL AND products.original_price <= ?))",
			args: []any{*q.MaxPrice, *q.MaxPrice},
		})
	}

	// Flag filters are tri-state: nil means no constraint, not false
	if q.IsFeatured != nil {
		conds = append(conds, condition{expr: "products.is_featured = ?", args: []any{*q.IsFeatured}})
	}
	if q.IsNew != nil {
		conds = append(conds, condition{expr: "products.is_new = ?", args: []any{*q.IsNew}})
	}
	if q.IsBestseller != nil {
		conds = append(conds, condition{expr: "products.is_bestseller = ?", args: []any{*q.IsBestseller}})
	}

	if q.Search != "" {
		conds = append(conds, condition{
			expr: "products.product_name ILIKE ?",
			args: []any{"%" + q.Search + "%"},
		})
	}

	return conds
}

func applyConditions(tx *gorm.DB, conds []condition) *gorm.DB {
	for _, c := range conds {
		tx = tx.Where(c.expr, c.args...)
	}
	return tx
}
