package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/wilcommerce/catalog/internal/readmodel"
	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/httputil"
	"github.com/wilcommerce/catalog/pkg/middleware"
	"github.com/wilcommerce/catalog/pkg/pagination"
	"github.com/wilcommerce/catalog/pkg/validator"
)

// CustomAttributeHandler handles HTTP requests for custom attribute endpoints.
type CustomAttributeHandler struct {
	service *service.CustomAttributeService
	logger  *slog.Logger
}

// NewCustomAttributeHandler creates a new custom attribute HTTP handler.
func NewCustomAttributeHandler(svc *service.CustomAttributeService, logger *slog.Logger) *CustomAttributeHandler {
	return &CustomAttributeHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateAttributeRequest is the JSON request body for creating a custom attribute.
type CreateAttributeRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	DataType      string   `json:"data_type" validate:"required,min=1,max=100"`
	Description   string   `json:"description"`
	UnitOfMeasure string   `json:"unit_of_measure" validate:"omitempty,max=50"`
	Values        []string `json:"values"`
}

// UpdateAttributeRequest is the JSON request body for updating a custom attribute.
type UpdateAttributeRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	DataType      *string `json:"data_type" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description"`
	UnitOfMeasure *string `json:"unit_of_measure" validate:"omitempty,max=50"`
}

// AddAttributeValueRequest is the JSON request body for adding a value to an attribute.
type AddAttributeValueRequest struct {
	Value string `json:"value" validate:"required,min=1,max=255"`
}

// --- Handlers ---

// ListAttributes handles GET /api/v1/attributes
// Deleted attributes are filtered out unless include_deleted=true is passed.
func (h *CustomAttributeHandler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	attributes, err := h.service.ListAttributes(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if r.URL.Query().Get("include_deleted") != "true" {
		attributes = readmodel.ActiveAttributes(attributes)
	}

	p := pagination.FromRequest(r)
	total := len(attributes)
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(pagination.Slice(attributes, p), total, p.Page, p.PerPage))
}

// GetAttribute handles GET /api/v1/attributes/{id}
func (h *CustomAttributeHandler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	attribute, err := h.service.GetAttribute(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: attribute})
}

// CreateAttribute handles POST /api/v1/attributes
func (h *CustomAttributeHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateAttributeRequest
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

	input := &service.CreateAttributeInput{
		Name:          req.Name,
		DataType:      req.DataType,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		Values:        req.Values,
		ActorID:       middleware.UserIDFromContext(r.Context()),
	}

	attribute, err := h.service.CreateAttribute(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: attribute})
}

// UpdateAttribute handles PUT /api/v1/attributes/{id}
func (h *CustomAttributeHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateAttributeRequest
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

	input := &service.UpdateAttributeInput{
		Name:          req.Name,
		DataType:      req.DataType,
		Description:   req.Description,
		UnitOfMeasure: req.UnitOfMeasure,
		ActorID:       middleware.UserIDFromContext(r.Context()),
	}

	attribute, err := h.service.UpdateAttribute(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: attribute})
}

// AddAttributeValue handles POST /api/v1/attributes/{id}/values
func (h *CustomAttributeHandler) AddAttributeValue(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddAttributeValueRequest
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
	if err := h.service.AddAttributeValue(r.Context(), id, req.Value, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "value": req.Value}})
}

// RemoveAttributeValue handles DELETE /api/v1/attributes/{id}/values/{value}
// The value path segment must be URL-encoded.
func (h *CustomAttributeHandler) RemoveAttributeValue(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	value, err := url.PathUnescape(chi.URLParam(r, "value"))
	if err != nil || value == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "value is required"},
		})
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveAttributeValue(r.Context(), id, value, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "value": value}})
}

// DeleteAttribute handles DELETE /api/v1/attributes/{id}
func (h *CustomAttributeHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DeleteAttribute(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// RestoreAttribute handles POST /api/v1/attributes/{id}/restore
func (h *CustomAttributeHandler) RestoreAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RestoreAttribute(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "restored"}})
}
