package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anhtn-dev/storefront/internal/catalog/usecase/query"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
)

var validate = validator.New()

// productListParams is the typed, validated form of the listing query string
type productListParams struct {
	Page         int      `validate:"min=1"`
	PageSize     int      `validate:"min=1"`
	CategoryID   *uint    `validate:"omitempty,min=1"`
	BrandIDs     []uint   `validate:"omitempty,dive,min=1"`
	MinPrice     *float64 `validate:"omitempty,min=0"`
	MaxPrice     *float64 `validate:"omitempty,min=0"`
	MinRating    *float64 `validate:"omitempty,min=1,max=5"`
	SortBy       string   `validate:"oneof=price rating newest popular name discount"`
	SortOrder    string   `validate:"oneof=asc desc"`
	Search       string
	IsFeatured   *bool
	IsNew        *bool
	IsBestseller *bool
	IsActive     bool
}

// parseProductListQuery validates the raw query string and produces the
// typed listing query. Defaults: page 1, pageSize 20, sortBy newest,
// sortOrder desc, isActive true.
func parseProductListQuery(r *http.Request) (query.ListProductsQuery, error) {
	values := r.URL.Query()

	params := productListParams{
		Page:      1,
		PageSize:  20,
		SortBy:    "newest",
		SortOrder: "desc",
		IsActive:  true,
	}

	var err error
	if params.Page, err = intParam(values.Get("page"), params.Page); err != nil {
		return query.ListProductsQuery{}, invalidParam("page")
	}
	if params.PageSize, err = intParam(values.Get("pageSize"), params.PageSize); err != nil {
		return query.ListProductsQuery{}, invalidParam("pageSize")
	}
	if params.CategoryID, err = uintParam(values.Get("categoryId")); err != nil {
		return query.ListProductsQuery{}, invalidParam("categoryId")
	}
	if params.BrandIDs, err = uintListParam(values.Get("brandId")); err != nil {
		return query.ListProductsQuery{}, invalidParam("brandId")
	}
	if params.MinPrice, err = floatParam(values.Get("minPrice")); err != nil {
		return query.ListProductsQuery{}, invalidParam("minPrice")
	}
	if params.MaxPrice, err = floatParam(values.Get("maxPrice")); err != nil {
		return query.ListProductsQuery{}, invalidParam("maxPrice")
	}
	if params.MinRating, err = floatParam(values.Get("minRating")); err != nil {
		return query.ListProductsQuery{}, invalidParam("minRating")
	}

	if v := values.Get("sortBy"); v != "" {
		params.SortBy = v
	}
	if v := values.Get("sortOrder"); v != "" {
		params.SortOrder = v
	}
	params.Search = values.Get("search")

	// Flag filters constrain only when present; "true" is the only value
	// that sets them
	params.IsFeatured = flagParam(values.Get("isFeatured"))
	params.IsNew = flagParam(values.Get("isNew"))
	params.IsBestseller = flagParam(values.Get("isBestseller"))
	if v := values.Get("isActive"); v != "" {
		params.IsActive = v == "true"
	}

	if err := validate.Struct(params); err != nil {
		return query.ListProductsQuery{}, apperrors.BadRequest("VALIDATION_ERROR", fmt.Sprintf("Invalid query parameters: %v", err))
	}

	return query.ListProductsQuery{
		CategoryID:   params.CategoryID,
		BrandIDs:     params.BrandIDs,
		MinPrice:     params.MinPrice,
		MaxPrice:     params.MaxPrice,
		MinRating:    params.MinRating,
		SortBy:       params.SortBy,
		SortOrder:    params.SortOrder,
		Search:       params.Search,
		IsFeatured:   params.IsFeatured,
		IsNew:        params.IsNew,
		IsBestseller: params.IsBestseller,
		IsActive:     params.IsActive,
		Page:         params.Page,
		PageSize:     params.PageSize,
	}, nil
}

func invalidParam(name string) error {
	return apperrors.BadRequest("VALIDATION_ERROR", fmt.Sprintf("Invalid value for parameter %q", name))
}

func intParam(raw string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func uintParam(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

func uintListParam(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func flagParam(raw string) *bool {
	if raw != "true" {
		return nil
	}
	v := true
	return &v
}
