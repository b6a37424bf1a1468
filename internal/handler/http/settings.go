package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/httputil"
	"github.com/wilcommerce/catalog/pkg/middleware"
	"github.com/wilcommerce/catalog/pkg/validator"
)

// SettingsHandler handles HTTP requests for catalog settings endpoints.
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new catalog settings HTTP handler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateSettingsRequest is the JSON request body for updating catalog settings.
// All fields are optional; absent fields keep their current value.
type UpdateSettingsRequest struct {
	CategoriesPerPage     *int    `json:"categories_per_page" validate:"omitempty,gt=0"`
	ProductsPerPage       *int    `json:"products_per_page" validate:"omitempty,gt=0"`
	CategoriesViewType    *string `json:"categories_view_type" validate:"omitempty,oneof=list masonry"`
	ProductsViewType      *string `json:"products_view_type" validate:"omitempty,oneof=list masonry"`
	PricesShown           *bool   `json:"prices_shown"`
	ProductReviewsAllowed *bool   `json:"product_reviews_allowed"`
	ReviewsPerPage        *int    `json:"reviews_per_page" validate:"omitempty,gt=0"`
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: settings})
}

// UpdateSettings handles PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateSettingsInput{
		CategoriesPerPage:     req.CategoriesPerPage,
		ProductsPerPage:       req.ProductsPerPage,
		CategoriesViewType:    req.CategoriesViewType,
		ProductsViewType:      req.ProductsViewType,
		PricesShown:           req.PricesShown,
		ProductReviewsAllowed: req.ProductReviewsAllowed,
		ReviewsPerPage:        req.ReviewsPerPage,
		ActorID:               middleware.UserIDFromContext(r.Context()),
	}

	settings, err := h.service.UpdateSettings(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: settings})
}
