package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/readmodel"
	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/httputil"
	"github.com/wilcommerce/catalog/pkg/middleware"
	"github.com/wilcommerce/catalog/pkg/pagination"
	"github.com/wilcommerce/catalog/pkg/validator"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateCategoryRequest is the JSON request body for creating a category.
type CreateCategoryRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	URL         string          `json:"url" validate:"omitempty,max=255"`
	Description string          `json:"description"`
	IsVisible   bool            `json:"is_visible"`
	VisibleFrom *time.Time      `json:"visible_from"`
	VisibleTo   *time.Time      `json:"visible_to"`
	Seo         *domain.SeoData `json:"seo"`
}

// UpdateCategoryRequest is the JSON request body for updating a category.
type UpdateCategoryRequest struct {
	Code        *string         `json:"code" validate:"omitempty,min=1,max=100"`
	Name        *string         `json:"name" validate:"omitempty,min=1,max=255"`
	URL         *string         `json:"url" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
	Seo         *domain.SeoData `json:"seo"`
}

// SetCategoryVisibilityRequest is the JSON request body for changing category visibility.
type SetCategoryVisibilityRequest struct {
	IsVisible   bool       `json:"is_visible"`
	VisibleFrom *time.Time `json:"visible_from"`
	VisibleTo   *time.Time `json:"visible_to"`
}

// --- Handlers ---

// ListCategories handles GET /api/v1/categories
// Supported query filters: visible_at (RFC 3339 timestamp), parent_id (UUID)
// and include_deleted=true.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if r.URL.Query().Get("include_deleted") != "true" {
		categories = readmodel.ActiveCategories(categories)
	}

	if v := r.URL.Query().Get("visible_at"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "visible_at must be a valid RFC 3339 timestamp"},
			})
			return
		}
		categories = readmodel.VisibleCategories(categories, at)
	}

	if v := r.URL.Query().Get("parent_id"); v != "" {
		parentID, ok := httputil.ParseUUID(w, v)
		if !ok {
			return
		}
		categories, err = readmodel.CategoriesByParent(categories, parentID)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	p := pagination.FromRequest(r)
	total := len(categories)
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(pagination.Slice(categories, p), total, p.Page, p.PerPage))
}

// GetCategory handles GET /api/v1/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateCategoryRequest
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

	input := &service.CreateCategoryInput{
		Code:        req.Code,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		IsVisible:   req.IsVisible,
		VisibleFrom: req.VisibleFrom,
		VisibleTo:   req.VisibleTo,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	category, err := h.service.CreateCategory(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// UpdateCategory handles PUT /api/v1/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateCategoryRequest
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

	input := &service.UpdateCategoryInput{
		Code:        req.Code,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	category, err := h.service.UpdateCategory(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// SetCategoryVisibility handles PUT /api/v1/categories/{id}/visibility
func (h *CategoryHandler) SetCategoryVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SetCategoryVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	input := &service.SetCategoryVisibilityInput{
		IsVisible:   req.IsVisible,
		VisibleFrom: req.VisibleFrom,
		VisibleTo:   req.VisibleTo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	if err := h.service.SetCategoryVisibility(r.Context(), id, input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// AddCategoryChild handles POST /api/v1/categories/{id}/children/{childId}
func (h *CategoryHandler) AddCategoryChild(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	childID, ok := httputil.ParseUUID(w, chi.URLParam(r, "childId"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.AddCategoryChild(r.Context(), id, childID, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "child_id": childID.String()}})
}

// RemoveCategoryChild handles DELETE /api/v1/categories/{id}/children/{childId}
func (h *CategoryHandler) RemoveCategoryChild(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	childID, ok := httputil.ParseUUID(w, chi.URLParam(r, "childId"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveCategoryChild(r.Context(), id, childID, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "child_id": childID.String()}})
}

// SetCategoryParent handles PUT /api/v1/categories/{id}/parent/{parentId}
func (h *CategoryHandler) SetCategoryParent(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	parentID, ok := httputil.ParseUUID(w, chi.URLParam(r, "parentId"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.SetCategoryParent(r.Context(), id, parentID, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "parent_id": parentID.String()}})
}

// RemoveCategoryParent handles DELETE /api/v1/categories/{id}/parent
func (h *CategoryHandler) RemoveCategoryParent(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveCategoryParent(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// DeleteCategory handles DELETE /api/v1/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DeleteCategory(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// RestoreCategory handles POST /api/v1/categories/{id}/restore
func (h *CategoryHandler) RestoreCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RestoreCategory(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "restored"}})
}
