package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/readmodel"
	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/httputil"
	"github.com/wilcommerce/catalog/pkg/middleware"
	"github.com/wilcommerce/catalog/pkg/pagination"
	"github.com/wilcommerce/catalog/pkg/validator"
)

// BrandHandler handles HTTP requests for brand endpoints.
type BrandHandler struct {
	service *service.BrandService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateBrandRequest is the JSON request body for creating a brand.
type CreateBrandRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	URL         string          `json:"url" validate:"omitempty,max=255"`
	Description string          `json:"description"`
	Logo        *domain.Image   `json:"logo"`
	Seo         *domain.SeoData `json:"seo"`
}

// UpdateBrandRequest is the JSON request body for updating a brand.
type UpdateBrandRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=255"`
	URL         *string         `json:"url" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
	Logo        *domain.Image   `json:"logo"`
	Seo         *domain.SeoData `json:"seo"`
}

// SeoDataRequest is the JSON request body for replacing an SEO data block.
type SeoDataRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	OgTitle       string `json:"og_title"`
	OgDescription string `json:"og_description"`
	OgImage       string `json:"og_image"`
	CanonicalURL  string `json:"canonical_url" validate:"omitempty,url"`
}

func (r *SeoDataRequest) toDomain() *domain.SeoData {
	return &domain.SeoData{
		Title:         r.Title,
		Description:   r.Description,
		Keywords:      r.Keywords,
		OgTitle:       r.OgTitle,
		OgDescription: r.OgDescription,
		OgImage:       r.OgImage,
		CanonicalURL:  r.CanonicalURL,
	}
}

// --- Handlers ---

// ListBrands handles GET /api/v1/brands
// Deleted brands are filtered out unless include_deleted=true is passed.
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if r.URL.Query().Get("include_deleted") != "true" {
		brands = readmodel.ActiveBrands(brands)
	}

	p := pagination.FromRequest(r)
	total := len(brands)
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(pagination.Slice(brands, p), total, p.Page, p.PerPage))
}

// GetBrand handles GET /api/v1/brands/{id}
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	brand, err := h.service.GetBrand(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

// CreateBrand handles POST /api/v1/brands
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateBrandRequest
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

	input := &service.CreateBrandInput{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Logo:        req.Logo,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	brand, err := h.service.CreateBrand(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: brand})
}

// UpdateBrand handles PUT /api/v1/brands/{id}
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateBrandRequest
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

	input := &service.UpdateBrandInput{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Logo:        req.Logo,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	brand, err := h.service.UpdateBrand(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

// SetBrandSeoData handles PUT /api/v1/brands/{id}/seo
func (h *BrandHandler) SetBrandSeoData(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SeoDataRequest
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

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.SetBrandSeoData(r.Context(), id, req.toDomain(), actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// DeleteBrand handles DELETE /api/v1/brands/{id}
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DeleteBrand(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// RestoreBrand handles POST /api/v1/brands/{id}/restore
func (h *BrandHandler) RestoreBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RestoreBrand(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "restored"}})
}
