package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingProductRepository wraps a ProductRepository with tracing spans
type TracingProductRepository struct {
	inner domain.ProductRepository
}

// NewTracingProductRepository decorates the given repository with tracing
func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

// List with tracing
func (r *TracingProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListRow, error) {
	ctx, span := tracer.Start(ctx, "repository.ListProducts",
		trace.WithAttributes(
			attribute.Int("query.page", q.Page),
			attribute.Int("query.page_size", q.PageSize),
			attribute.String("query.sort_by", q.SortBy),
			attribute.String("query.search", q.Search),
		),
	)
	defer span.End()

	rows, err := r.inner.List(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.rows", len(rows)))
	return rows, nil
}

// Count with tracing
func (r *TracingProductRepository) Count(ctx context.Context, q domain.ProductQuery) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountProducts")
	defer span.End()

	total, err := r.inner.Count(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.total", total))
	return total, nil
}

// FindByID with tracing
func (r *TracingProductRepository) FindByID(ctx context.Context, id uint) (*domain.ProductDetailRow, error) {
	ctx, span := tracer.Start(ctx, "repository.FindProductByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	row, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return row, nil
}

// FindBySlug with tracing
func (r *TracingProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.ProductDetailRow, error) {
	ctx, span := tracer.Start(ctx, "repository.FindProductBySlug",
		trace.WithAttributes(attribute.String("product.slug", slug)),
	)
	defer span.End()

	row, err := r.inner.FindBySlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return row, nil
}

// PrimaryImages with tracing
func (r *TracingProductRepository) PrimaryImages(ctx context.Context, productIDs []uint) ([]domain.ProductImage, error) {
	ctx, span := tracer.Start(ctx, "repository.PrimaryImages",
		trace.WithAttributes(attribute.Int("product.count", len(productIDs))),
	)
	defer span.End()

	images, err := r.inner.PrimaryImages(ctx, productIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return images, nil
}

// ImagesByProduct with tracing
func (r *TracingProductRepository) ImagesByProduct(ctx context.Context, productID uint) ([]domain.ProductImage, error) {
	ctx, span := tracer.Start(ctx, "repository.ImagesByProduct",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	images, err := r.inner.ImagesByProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return images, nil
}

// IncrementViewCount with tracing
func (r *TracingProductRepository) IncrementViewCount(ctx context.Context, productID uint) error {
	ctx, span := tracer.Start(ctx, "repository.IncrementViewCount",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	if err := r.inner.IncrementViewCount(ctx, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
