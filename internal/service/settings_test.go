package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilcommerce/catalog/internal/domain"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// --- Mock Repository ---

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) Add(ctx context.Context, settings *domain.CatalogSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*domain.CatalogSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogSettings), args.Error(1)
}

func (m *mockSettingsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogSettings, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogSettings), args.Error(1)
}

func (m *mockSettingsRepository) Save(ctx context.Context, settings *domain.CatalogSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func newTestSettingsService(repo *mockSettingsRepository) *SettingsService {
	return NewSettingsService(repo, newTestProducer(), newTestLogger())
}

// --- Tests ---

func TestGetSettings_CreatesDefaultsWhenMissing(t *testing.T) {
	repo := new(mockSettingsRepository)
	svc := newTestSettingsService(repo)

	repo.On("Get", mock.Anything).Return(nil, apperrors.NotFound("catalog settings", ""))
	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.CatalogSettings")).Return(nil)

	settings, err := svc.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 20, settings.CategoriesPerPage)
	assert.Equal(t, 20, settings.ProductsPerPage)
	assert.Equal(t, domain.ViewTypeList, settings.CategoriesViewType)
	repo.AssertExpectations(t)
}

func TestGetSettings_ReturnsExisting(t *testing.T) {
	repo := new(mockSettingsRepository)
	svc := newTestSettingsService(repo)

	existing, err := domain.NewCatalogSettings(10, 30, domain.ViewTypeMasonry, domain.ViewTypeList)
	require.NoError(t, err)

	repo.On("Get", mock.Anything).Return(existing, nil)

	settings, err := svc.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, existing, settings)
	repo.AssertNotCalled(t, "Add")
}

func TestUpdateSettings(t *testing.T) {
	repo := new(mockSettingsRepository)
	svc := newTestSettingsService(repo)

	existing, err := domain.NewCatalogSettings(10, 30, domain.ViewTypeList, domain.ViewTypeList)
	require.NoError(t, err)

	repo.On("Get", mock.Anything).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	settings, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		ProductsPerPage:       intPtr(48),
		PricesShown:           boolPtr(true),
		ProductReviewsAllowed: boolPtr(true),
		ReviewsPerPage:        intPtr(5),
	})

	require.NoError(t, err)
	assert.Equal(t, 48, settings.ProductsPerPage)
	assert.True(t, settings.PricesShown)
	assert.Equal(t, 5, settings.ReviewsPerPage)
	repo.AssertExpectations(t)
}

func TestUpdateSettings_ReviewsPerPageWithoutAllowing(t *testing.T) {
	repo := new(mockSettingsRepository)
	svc := newTestSettingsService(repo)

	existing, err := domain.NewCatalogSettings(10, 30, domain.ViewTypeList, domain.ViewTypeList)
	require.NoError(t, err)

	repo.On("Get", mock.Anything).Return(existing, nil)

	_, err = svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		ReviewsPerPage: intPtr(5),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Contains(t, err.Error(), "Reviews not allowed")
	repo.AssertNotCalled(t, "Save")
}

func TestUpdateSettings_InvalidViewType(t *testing.T) {
	repo := new(mockSettingsRepository)
	svc := newTestSettingsService(repo)

	existing, err := domain.NewCatalogSettings(10, 30, domain.ViewTypeList, domain.ViewTypeList)
	require.NoError(t, err)

	repo.On("Get", mock.Anything).Return(existing, nil)

	_, err = svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		ProductsViewType: strPtr("grid"),
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save")
}
