package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/service"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
	"github.com/wilcommerce/catalog/pkg/httputil"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Add(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Add(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type mockAttributeRepo struct {
	mock.Mock
}

func (m *mockAttributeRepo) Add(ctx context.Context, attribute *domain.CustomAttribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *mockAttributeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomAttribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomAttribute), args.Error(1)
}

func (m *mockAttributeRepo) Save(ctx context.Context, attribute *domain.CustomAttribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *mockAttributeRepo) List(ctx context.Context) ([]domain.CustomAttribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomAttribute), args.Error(1)
}

// =============================================================================
// Test helpers
// =============================================================================

func productTestHandler(repo *mockProductRepo) *ProductHandler {
	logger := brandTestLogger()
	svc := service.NewProductService(
		repo,
		new(mockBrandRepo),
		new(mockCategoryRepo),
		new(mockAttributeRepo),
		brandTestEventProducer(),
		logger,
	)
	return NewProductHandler(svc, logger)
}

func productRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)
		r.Post("/", handler.CreateProduct)
		r.Put("/{id}", handler.UpdateProduct)
		r.Delete("/{id}", handler.DeleteProduct)
		r.Post("/{id}/restore", handler.RestoreProduct)
		r.Put("/{id}/price", handler.SetProductPrice)
		r.Put("/{id}/stock", handler.SetProductStock)
		r.Post("/{id}/stock/decrement", handler.RemoveProductStock)
		r.Post("/{id}/sale", handler.SetProductOnSale)
		r.Post("/{id}/tier-prices", handler.AddProductTierPrice)
		r.Post("/{id}/reviews", handler.AddProductReview)
		r.Post("/{id}/reviews/{reviewId}/approve", handler.ApproveProductReview)
	})
	return r
}

func decodeProductResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sampleStoredProduct(t *testing.T) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("8001120000000", "SKU-1", "Widget", "widget")
	require.NoError(t, err)
	return p
}

// =============================================================================
// POST /api/v1/products - CreateProduct
// =============================================================================

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := CreateProductRequest{
		EAN:   "8001120000000",
		SKU:   "SKU-1",
		Name:  "Widget",
		Price: &PriceRequest{Amount: "19.99", Currency: "EUR"},
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeProductResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	repo.AssertExpectations(t)
}

func TestCreateProduct_InvalidPriceAmount(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	body := `{"ean":"8001120000000","sku":"SKU-1","name":"Widget","price":{"amount":"abc","currency":"EUR"}}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeProductResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Return(apperrors.AlreadyExists("product", "sku", "SKU-1"))

	body := CreateProductRequest{EAN: "8001120000000", SKU: "SKU-1", Name: "Widget"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	repo.AssertExpectations(t)
}

func TestCreateProduct_TableDriven(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectErrCode string
	}{
		{
			name:          "empty body",
			body:          `{}`,
			expectErrCode: "VALIDATION_ERROR",
		},
		{
			name:          "missing sku",
			body:          `{"ean":"8001120000000","name":"Widget"}`,
			expectErrCode: "VALIDATION_ERROR",
		},
		{
			name:          "missing name",
			body:          `{"ean":"8001120000000","sku":"SKU-1"}`,
			expectErrCode: "VALIDATION_ERROR",
		},
		{
			name:          "negative stock",
			body:          `{"ean":"8001120000000","sku":"SKU-1","name":"Widget","unit_in_stock":-1}`,
			expectErrCode: "VALIDATION_ERROR",
		},
		{
			name:          "invalid vendor_id uuid",
			body:          `{"ean":"8001120000000","sku":"SKU-1","name":"Widget","vendor_id":"nope"}`,
			expectErrCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockProductRepo)
			handler := productTestHandler(repo)
			router := productRouter(handler)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeProductResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectErrCode, resp.Error.Code)
		})
	}
}

// =============================================================================
// GET /api/v1/products - ListProducts
// =============================================================================

func TestListProducts_FiltersDeleted(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	active := sampleStoredProduct(t)
	deleted, err := domain.NewProduct("8001120000001", "SKU-2", "Gadget", "gadget")
	require.NoError(t, err)
	require.NoError(t, deleted.Delete())

	repo.On("List", mock.Anything).Return([]domain.Product{*active, *deleted}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, active.ID, resp.Data[0].ID)
	repo.AssertExpectations(t)
}

func TestListProducts_OnSaleFilter(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	onSale := sampleStoredProduct(t)
	onSale.SetOnSale()
	regular, err := domain.NewProduct("8001120000001", "SKU-2", "Gadget", "gadget")
	require.NoError(t, err)

	repo.On("List", mock.Anything).Return([]domain.Product{*onSale, *regular}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?on_sale=true", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, onSale.ID, resp.Data[0].ID)
	repo.AssertExpectations(t)
}

func TestListProducts_InvalidVendorID(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	repo.On("List", mock.Anything).Return([]domain.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?vendor_id=nope", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeProductResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestListProducts_InvalidMinStock(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	repo.On("List", mock.Anything).Return([]domain.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?min_stock=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeProductResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

// =============================================================================
// Stock operations
// =============================================================================

func TestSetProductStock_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := StockRequest{Units: 15}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+p.ID.String()+"/stock", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15, p.UnitInStock)
	repo.AssertExpectations(t)
}

func TestRemoveProductStock_BelowZero(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	body := StockRequest{Units: 5}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+p.ID.String()+"/stock/decrement", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Sale window
// =============================================================================

func TestSetProductOnSale_InvalidWindow(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	body := `{"from":"2026-09-10T00:00:00Z","to":"2026-09-01T00:00:00Z"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+p.ID.String()+"/sale", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Tier prices
// =============================================================================

func TestAddProductTierPrice_Disabled(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	body := TierPriceRequest{
		FromQuantity: 1,
		ToQuantity:   10,
		Price:        &PriceRequest{Amount: "9.99", Currency: "EUR"},
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+p.ID.String()+"/tier-prices", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Reviews
// =============================================================================

func TestAddProductReview_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := AddProductReviewRequest{Name: "Bob", Rating: 3, Comment: "Decent"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+p.ID.String()+"/reviews", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeProductResponse(t, rec)
	assert.Nil(t, resp.Error)
	require.Len(t, p.Reviews, 1)
	repo.AssertExpectations(t)
}

func TestApproveProductReview_NotFound(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	reviewID := uuid.New()
	url := "/api/v1/products/" + p.ID.String() + "/reviews/" + reviewID.String() + "/approve"
	req := httptest.NewRequest(http.MethodPost, url, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Delete / restore
// =============================================================================

func TestDeleteProduct_AlreadyDeleted(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	require.NoError(t, p.Delete())
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRestoreProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)
	router := productRouter(handler)

	p := sampleStoredProduct(t)
	require.NoError(t, p.Delete())
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+p.ID.String()+"/restore", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, p.Deleted)
	repo.AssertExpectations(t)
}
