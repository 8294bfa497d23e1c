package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/logger"
)

// GetProductDetailQuery represents the query to fetch one product by its
// numeric id or slug
type GetProductDetailQuery struct {
	Identifier string
}

// GetProductDetailHandler handles the product detail query
type GetProductDetailHandler struct {
	repo domain.ProductRepository
}

// NewGetProductDetailHandler creates a new product detail handler
func NewGetProductDetailHandler(repo domain.ProductRepository) *GetProductDetailHandler {
	return &GetProductDetailHandler{repo: repo}
}

// Handle fetches the product, its ordered image gallery, and bumps the view
// counter. The returned viewCount is the value read before the increment.
func (h *GetProductDetailHandler) Handle(ctx context.Context, q GetProductDetailQuery) (*ProductDetail, error) {
	row, err := h.find(ctx, q.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to fetch product detail: %w", err)
	}

	images, err := h.repo.ImagesByProduct(ctx, row.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product images: %w", err)
	}

	// Best-effort side effect: a failed increment must never turn a
	// successful read into an error.
	if err := h.repo.IncrementViewCount(ctx, row.ProductID); err != nil {
		logger.Warn(ctx).
			Err(err).
			Uint("product_id", row.ProductID).
			Msg("Failed to increment product view count")
	}

	detail := formatDetail(*row, images)
	return &detail, nil
}

func (h *GetProductDetailHandler) find(ctx context.Context, identifier string) (*domain.ProductDetailRow, error) {
	// An all-digits identifier is a numeric id; anything else is a slug
	if id, err := strconv.ParseUint(identifier, 10, 32); err == nil {
		return h.repo.FindByID(ctx, uint(id))
	}
	return h.repo.FindBySlug(ctx, identifier)
}
