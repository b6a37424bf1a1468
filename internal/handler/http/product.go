package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/readmodel"
	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/httputil"
	"github.com/wilcommerce/catalog/pkg/middleware"
	"github.com/wilcommerce/catalog/pkg/pagination"
	"github.com/wilcommerce/catalog/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// PriceRequest is the JSON representation of a money amount.
type PriceRequest struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

func (p *PriceRequest) toInput() (*service.PriceInput, error) {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return nil, err
	}
	return &service.PriceInput{Amount: amount, Code: p.Currency}, nil
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	EAN         string          `json:"ean" validate:"required,min=1,max=50"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=500"`
	URL         string          `json:"url" validate:"omitempty,max=255"`
	Description string          `json:"description"`
	Price       *PriceRequest   `json:"price"`
	UnitInStock int             `json:"unit_in_stock" validate:"gte=0"`
	VendorID    *string         `json:"vendor_id" validate:"omitempty,uuid"`
	Seo         *domain.SeoData `json:"seo"`
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	EAN         *string         `json:"ean" validate:"omitempty,min=1,max=50"`
	SKU         *string         `json:"sku" validate:"omitempty,min=1,max=100"`
	Name        *string         `json:"name" validate:"omitempty,min=1,max=500"`
	URL         *string         `json:"url" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
	Seo         *domain.SeoData `json:"seo"`
}

// StockRequest is the JSON request body for stock operations.
type StockRequest struct {
	Units int `json:"units" validate:"gte=0"`
}

// SetProductOnSaleRequest is the JSON request body for putting a product on sale.
type SetProductOnSaleRequest struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// RemoveProductFromSaleRequest is the JSON request body for taking a product off sale.
type RemoveProductFromSaleRequest struct {
	EndDate *time.Time `json:"end_date"`
}

// AddProductVariantRequest is the JSON request body for adding a product variant.
type AddProductVariantRequest struct {
	Name  string        `json:"name" validate:"required,min=1,max=500"`
	EAN   string        `json:"ean" validate:"required,min=1,max=50"`
	SKU   string        `json:"sku" validate:"required,min=1,max=100"`
	Price *PriceRequest `json:"price"`
}

// AddProductCategoryRequest is the JSON request body for linking a product to a category.
type AddProductCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	IsMain     bool   `json:"is_main"`
}

// AddProductAttributeRequest is the JSON request body for attaching a custom attribute.
type AddProductAttributeRequest struct {
	AttributeID string `json:"attribute_id" validate:"required,uuid"`
	Value       any    `json:"value" validate:"required"`
}

// TierPriceRequest is the JSON request body for adding or changing a tier price.
type TierPriceRequest struct {
	FromQuantity int           `json:"from_quantity" validate:"gte=0"`
	ToQuantity   int           `json:"to_quantity" validate:"gtfield=FromQuantity"`
	Price        *PriceRequest `json:"price" validate:"required"`
}

// AddProductReviewRequest is the JSON request body for submitting a product review.
type AddProductReviewRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
	Comment string `json:"comment" validate:"max=5000"`
}

// AddProductImageRequest is the JSON request body for attaching an image.
type AddProductImageRequest struct {
	Path         string     `json:"path" validate:"required,max=1024"`
	Name         string     `json:"name" validate:"required,max=255"`
	OriginalName string     `json:"original_name" validate:"omitempty,max=255"`
	IsMain       bool       `json:"is_main"`
	UploadedOn   *time.Time `json:"uploaded_on"`
}

// --- Helpers ---

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}

	if err := validator.Validate(dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}

	return true
}

func (h *ProductHandler) parsePrice(w http.ResponseWriter, req *PriceRequest) (*service.PriceInput, bool) {
	if req == nil {
		return nil, true
	}
	price, err := req.toInput()
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "price amount must be a valid decimal number"},
		})
		return nil, false
	}
	return price, true
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products
// Supported query filters: vendor_id (UUID), category_id (UUID), on_sale=true,
// available=true, min_stock (integer) and include_deleted=true. The on_sale
// and available filters evaluate sale windows against the current time.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if r.URL.Query().Get("include_deleted") != "true" {
		products = readmodel.ActiveProducts(products)
	}

	if v := r.URL.Query().Get("vendor_id"); v != "" {
		vendorID, ok := httputil.ParseUUID(w, v)
		if !ok {
			return
		}
		products, err = readmodel.ProductsByVendor(products, vendorID)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	if v := r.URL.Query().Get("category_id"); v != "" {
		categoryID, ok := httputil.ParseUUID(w, v)
		if !ok {
			return
		}
		products, err = readmodel.ProductsByCategory(products, categoryID)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	now := time.Now().UTC()
	if r.URL.Query().Get("on_sale") == "true" {
		products = readmodel.OnSaleProducts(products, now)
	}
	if r.URL.Query().Get("available") == "true" {
		products = readmodel.AvailableProducts(products, now)
	}

	if v := r.URL.Query().Get("min_stock"); v != "" {
		units, err := strconv.Atoi(v)
		if err != nil || units < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "min_stock must be a valid non-negative integer"},
			})
			return
		}
		products = readmodel.ProductsWithUnitInStock(products, units)
	}

	p := pagination.FromRequest(r)
	total := len(products)
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(pagination.Slice(products, p), total, p.Page, p.PerPage))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	price, ok := h.parsePrice(w, req.Price)
	if !ok {
		return
	}

	input := &service.CreateProductInput{
		EAN:         req.EAN,
		SKU:         req.SKU,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Price:       price,
		UnitInStock: req.UnitInStock,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	if req.VendorID != nil {
		vendorID, err := uuid.Parse(*req.VendorID)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "vendor_id must be a valid UUID"},
			})
			return
		}
		input.VendorID = &vendorID
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &service.UpdateProductInput{
		EAN:         req.EAN,
		SKU:         req.SKU,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Seo:         req.Seo,
		ActorID:     middleware.UserIDFromContext(r.Context()),
	}

	product, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DeleteProduct(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// RestoreProduct handles POST /api/v1/products/{id}/restore
func (h *ProductHandler) RestoreProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RestoreProduct(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "restored"}})
}

// SetProductPrice handles PUT /api/v1/products/{id}/price
func (h *ProductHandler) SetProductPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req PriceRequest
	if !h.decode(w, r, &req) {
		return
	}

	price, ok := h.parsePrice(w, &req)
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.SetProductPrice(r.Context(), id, price, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// SetProductStock handles PUT /api/v1/products/{id}/stock
func (h *ProductHandler) SetProductStock(w http.ResponseWriter, r *http.Request) {
	h.stockOperation(w, r, h.service.SetProductStock)
}

// AddProductStock handles POST /api/v1/products/{id}/stock/increment
func (h *ProductHandler) AddProductStock(w http.ResponseWriter, r *http.Request) {
	h.stockOperation(w, r, h.service.AddProductStock)
}

// RemoveProductStock handles POST /api/v1/products/{id}/stock/decrement
func (h *ProductHandler) RemoveProductStock(w http.ResponseWriter, r *http.Request) {
	h.stockOperation(w, r, h.service.RemoveProductStock)
}

func (h *ProductHandler) stockOperation(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID, units int, actorID string) error,
) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req StockRequest
	if !h.decode(w, r, &req) {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := op(r.Context(), id, req.Units, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// SetProductOnSale handles POST /api/v1/products/{id}/sale
func (h *ProductHandler) SetProductOnSale(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req SetProductOnSaleRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &service.SetProductOnSaleInput{
		From:    req.From,
		To:      req.To,
		ActorID: middleware.UserIDFromContext(r.Context()),
	}

	if err := h.service.SetProductOnSale(r.Context(), id, input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "on_sale"}})
}

// RemoveProductFromSale handles DELETE /api/v1/products/{id}/sale
// An optional end_date in the body schedules the sale end instead of ending
// it immediately.
func (h *ProductHandler) RemoveProductFromSale(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req RemoveProductFromSaleRequest
	if r.ContentLength > 0 {
		if !h.decode(w, r, &req) {
			return
		}
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.RemoveProductFromSale(r.Context(), id, req.EndDate, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "off_sale"}})
}

// SetProductVendor handles PUT /api/v1/products/{id}/vendor/{brandId}
func (h *ProductHandler) SetProductVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	brandID, ok := httputil.ParseUUID(w, chi.URLParam(r, "brandId"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.SetProductVendor(r.Context(), id, brandID, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "vendor_id": brandID.String()}})
}

// SetProductSeoData handles PUT /api/v1/products/{id}/seo
func (h *ProductHandler) SetProductSeoData(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req SeoDataRequest
	if !h.decode(w, r, &req) {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.SetProductSeoData(r.Context(), id, req.toDomain(), actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "updated"}})
}

// AddProductVariant handles POST /api/v1/products/{id}/variants
func (h *ProductHandler) AddProductVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddProductVariantRequest
	if !h.decode(w, r, &req) {
		return
	}

	price, ok := h.parsePrice(w, req.Price)
	if !ok {
		return
	}

	input := &service.AddProductVariantInput{
		Name:    req.Name,
		EAN:     req.EAN,
		SKU:     req.SKU,
		Price:   price,
		ActorID: middleware.UserIDFromContext(r.Context()),
	}

	variantID, err := h.service.AddProductVariant(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "variant_id": variantID.String()}})
}

// RemoveProductVariant handles DELETE /api/v1/products/{id}/variants/{variantId}
func (h *ProductHandler) RemoveProductVariant(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "variantId", h.service.RemoveProductVariant)
}

// AddProductCategory handles POST /api/v1/products/{id}/categories
func (h *ProductHandler) AddProductCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddProductCategoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "category_id must be a valid UUID"},
		})
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.AddProductCategory(r.Context(), id, categoryID, req.IsMain, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "category_id": categoryID.String()}})
}

// RemoveProductCategory handles DELETE /api/v1/products/{id}/categories/{categoryId}
func (h *ProductHandler) RemoveProductCategory(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "categoryId", h.service.RemoveProductCategory)
}

// AddProductAttribute handles POST /api/v1/products/{id}/attributes
func (h *ProductHandler) AddProductAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddProductAttributeRequest
	if !h.decode(w, r, &req) {
		return
	}

	attributeID, err := uuid.Parse(req.AttributeID)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "attribute_id must be a valid UUID"},
		})
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	valueID, err := h.service.AddProductAttribute(r.Context(), id, attributeID, req.Value, actorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "attribute_value_id": valueID.String()}})
}

// RemoveProductAttribute handles DELETE /api/v1/products/{id}/attributes/{attributeId}
func (h *ProductHandler) RemoveProductAttribute(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "attributeId", h.service.RemoveProductAttribute)
}

// EnableProductTierPrices handles POST /api/v1/products/{id}/tier-prices/enable
func (h *ProductHandler) EnableProductTierPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.EnableProductTierPrices(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "enabled"}})
}

// DisableProductTierPrices handles POST /api/v1/products/{id}/tier-prices/disable
func (h *ProductHandler) DisableProductTierPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DisableProductTierPrices(r.Context(), id, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "disabled"}})
}

// AddProductTierPrice handles POST /api/v1/products/{id}/tier-prices
func (h *ProductHandler) AddProductTierPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	input, ok := h.tierPriceInput(w, r)
	if !ok {
		return
	}

	tierPriceID, err := h.service.AddProductTierPrice(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "tier_price_id": tierPriceID.String()}})
}

// ChangeProductTierPrice handles PUT /api/v1/products/{id}/tier-prices/{tierPriceId}
func (h *ProductHandler) ChangeProductTierPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	tierPriceID, ok := httputil.ParseUUID(w, chi.URLParam(r, "tierPriceId"))
	if !ok {
		return
	}

	input, ok := h.tierPriceInput(w, r)
	if !ok {
		return
	}

	if err := h.service.ChangeProductTierPrice(r.Context(), id, tierPriceID, input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "tier_price_id": tierPriceID.String()}})
}

func (h *ProductHandler) tierPriceInput(w http.ResponseWriter, r *http.Request) (*service.TierPriceInput, bool) {
	var req TierPriceRequest
	if !h.decode(w, r, &req) {
		return nil, false
	}

	price, ok := h.parsePrice(w, req.Price)
	if !ok {
		return nil, false
	}

	return &service.TierPriceInput{
		FromQuantity: req.FromQuantity,
		ToQuantity:   req.ToQuantity,
		Price:        price,
		ActorID:      middleware.UserIDFromContext(r.Context()),
	}, true
}

// RemoveProductTierPrice handles DELETE /api/v1/products/{id}/tier-prices/{tierPriceId}
func (h *ProductHandler) RemoveProductTierPrice(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "tierPriceId", h.service.RemoveProductTierPrice)
}

// AddProductReview handles POST /api/v1/products/{id}/reviews
func (h *ProductHandler) AddProductReview(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddProductReviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &service.AddProductReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
		ActorID: middleware.UserIDFromContext(r.Context()),
	}

	reviewID, err := h.service.AddProductReview(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "review_id": reviewID.String()}})
}

// ApproveProductReview handles POST /api/v1/products/{id}/reviews/{reviewId}/approve
func (h *ProductHandler) ApproveProductReview(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "reviewId", h.service.ApproveProductReview)
}

// RemoveProductReviewApproval handles DELETE /api/v1/products/{id}/reviews/{reviewId}/approve
func (h *ProductHandler) RemoveProductReviewApproval(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "reviewId", h.service.RemoveProductReviewApproval)
}

// RemoveProductReview handles DELETE /api/v1/products/{id}/reviews/{reviewId}
func (h *ProductHandler) RemoveProductReview(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "reviewId", h.service.RemoveProductReview)
}

// AddProductImage handles POST /api/v1/products/{id}/images
func (h *ProductHandler) AddProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req AddProductImageRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &service.AddProductImageInput{
		Path:         req.Path,
		Name:         req.Name,
		OriginalName: req.OriginalName,
		IsMain:       req.IsMain,
		ActorID:      middleware.UserIDFromContext(r.Context()),
	}
	if req.UploadedOn != nil {
		input.UploadedOn = *req.UploadedOn
	}

	imageID, err := h.service.AddProductImage(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"id": id.String(), "image_id": imageID.String()}})
}

// RemoveProductImage handles DELETE /api/v1/products/{id}/images/{imageId}
func (h *ProductHandler) RemoveProductImage(w http.ResponseWriter, r *http.Request) {
	h.childDelete(w, r, "imageId", h.service.RemoveProductImage)
}

// childDelete runs a service operation keyed by the product ID plus one child
// ID taken from the named URL parameter.
func (h *ProductHandler) childDelete(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	op func(ctx context.Context, id, childID uuid.UUID, actorID string) error,
) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	childID, ok := httputil.ParseUUID(w, chi.URLParam(r, param))
	if !ok {
		return
	}

	actorID := middleware.UserIDFromContext(r.Context())
	if err := op(r.Context(), id, childID, actorID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), param: childID.String()}})
}
