package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anhtn-dev/storefront/internal/catalog/domain"
	"github.com/anhtn-dev/storefront/internal/catalog/usecase/query"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/logger"
)

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	listHandler    *query.ListProductsHandler
	detailHandler  *query.GetProductDetailHandler
	listCategories *query.ListCategoriesHandler
	getCategory    *query.GetCategoryHandler
	listBrands     *query.ListBrandsHandler
	getBrand       *query.GetBrandHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler. Metrics are registered on
// the given registerer so tests can use an isolated registry.
func NewCatalogHandler(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	brands domain.BrandRepository,
	reg prometheus.Registerer,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	reg.MustRegister(requestCounter, requestLatency)

	return &CatalogHandler{
		listHandler:    query.NewListProductsHandler(products),
		detailHandler:  query.NewGetProductDetailHandler(products),
		listCategories: query.NewListCategoriesHandler(categories),
		getCategory:    query.NewGetCategoryHandler(categories),
		listBrands:     query.NewListBrandsHandler(brands),
		getBrand:       query.NewGetBrandHandler(brands),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// RegisterRoutes mounts the catalog endpoints on the given router
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{identifier}", h.metricsMiddleware("/products/{identifier}", h.GetProductDetail)).Methods("GET")
	router.HandleFunc("/categories", h.metricsMiddleware("/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/categories/{id}", h.metricsMiddleware("/categories/{id}", h.GetCategory)).Methods("GET")
	router.HandleFunc("/brands", h.metricsMiddleware("/brands", h.ListBrands)).Methods("GET")
	router.HandleFunc("/brands/{id}", h.metricsMiddleware("/brands/{id}", h.GetBrand)).Methods("GET")
}

// Response is the common envelope for all catalog responses
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *apperrors.AppError `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseProductListQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// GetProductDetail handles GET /products/{identifier}
func (h *CatalogHandler) GetProductDetail(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	detail, err := h.detailHandler.Handle(r.Context(), query.GetProductDetailQuery{Identifier: identifier})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: detail})
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategories.Handle(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// GetCategory handles GET /categories/{id}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, r, apperrors.BadRequest("VALIDATION_ERROR", "Invalid category id"))
		return
	}

	category, err := h.getCategory.Handle(r.Context(), uint(id))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: category})
}

// ListBrands handles GET /brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.listBrands.Handle(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: brands})
}

// GetBrand handles GET /brands/{id}
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, r, apperrors.BadRequest("VALIDATION_ERROR", "Invalid brand id"))
		return
	}

	brand, err := h.getBrand.Handle(r.Context(), uint(id))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: brand})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps an AppError to its status/code envelope; anything else
// becomes a generic 500 with the detail only logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.Status, Response{Success: false, Error: appErr})
		return
	}

	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
	respondJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error:   apperrors.New(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"),
	})
}
