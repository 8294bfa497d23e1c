package repository

import "github.com/anhtn-dev/storefront/internal/catalog/domain"

// Per-row review aggregates, computed as correlated subqueries over approved
// reviews. COALESCE keeps products without approved reviews at 0.
const (
	avgRatingExpr      = "COALESCE((SELECT AVG(rating) FROM product_reviews WHERE product_reviews.product_id = products.product_id AND product_reviews.is_approved = TRUE), 0)"
	reviewCountExpr    = "COALESCE((SELECT COUNT(*) FROM product_reviews WHERE product_reviews.product_id = products.product_id AND product_reviews.is_approved = TRUE), 0)"
	effectivePriceExpr = "COALESCE(products.sale_price, products.original_price)"
)

// resolveProductOrder maps a sort key and direction to an ORDER BY
// expression. popular and discount are always descending. Unrecognized keys
// fall back to newest. Ties keep store-returned order; there is no secondary
// key.
func resolveProductOrder(sortBy, sortOrder string) string {
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}

	switch sortBy {
	case domain.SortPrice:
		return effectivePriceExpr + " " + dir
	case domain.SortRating:
		return avgRatingExpr + " " + dir
	case domain.SortPopular:
		return "products.sold_quantity DESC"
	case domain.SortDiscount:
		return "products.discount_percent DESC"
	case domain.SortName:
		return "products.product_name " + dir
	default:
		return "products.created_at DESC"
	}
}
