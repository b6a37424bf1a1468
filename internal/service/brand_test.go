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

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) Add(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) Save(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func newTestBrandService(repo *mockBrandRepository) *BrandService {
	return NewBrandService(repo, newTestProducer(), newTestLogger())
}

// --- Tests ---

func TestCreateBrand(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.Brand")).Return(nil)

	brand, err := svc.CreateBrand(context.Background(), &CreateBrandInput{
		Name:        "Acme",
		Description: "Quality widgets",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
	assert.Equal(t, "acme", brand.URL, "slug should be derived from the name")
	assert.Equal(t, "Quality widgets", brand.Description)
	repo.AssertExpectations(t)
}

func TestCreateBrand_MissingName(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	brand, err := svc.CreateBrand(context.Background(), &CreateBrandInput{URL: "acme"})

	assert.Nil(t, brand)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Add")
}

func TestGetBrand_NilID(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	brand, err := svc.GetBrand(context.Background(), uuid.Nil)

	assert.Nil(t, brand)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateBrand(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	existing, err := domain.NewBrand("Acme", "acme")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	brand, err := svc.UpdateBrand(context.Background(), existing.ID, &UpdateBrandInput{
		Name:        strPtr("Acme Corp"),
		Description: strPtr("Rebranded"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", brand.Name)
	assert.Equal(t, "Rebranded", brand.Description)
	repo.AssertExpectations(t)
}

func TestUpdateBrand_EmptyName(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	existing, err := domain.NewBrand("Acme", "acme")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err = svc.UpdateBrand(context.Background(), existing.ID, &UpdateBrandInput{
		Name: strPtr(""),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save")
}

func TestUpdateBrand_NotFound(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("brand", id.String()))

	_, err := svc.UpdateBrand(context.Background(), id, &UpdateBrandInput{Name: strPtr("X")})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteBrand(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	existing, err := domain.NewBrand("Acme", "acme")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	require.NoError(t, svc.DeleteBrand(context.Background(), existing.ID, "user-1"))
	assert.True(t, existing.Deleted)
	repo.AssertExpectations(t)
}

func TestDeleteBrand_AlreadyDeleted(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	existing, err := domain.NewBrand("Acme", "acme")
	require.NoError(t, err)
	require.NoError(t, existing.Delete())

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	err = svc.DeleteBrand(context.Background(), existing.ID, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	repo.AssertNotCalled(t, "Save")
}

func TestRestoreBrand(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	existing, err := domain.NewBrand("Acme", "acme")
	require.NoError(t, err)
	require.NoError(t, existing.Delete())

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	require.NoError(t, svc.RestoreBrand(context.Background(), existing.ID, "user-1"))
	assert.False(t, existing.Deleted)
	repo.AssertExpectations(t)
}

func TestListBrands(t *testing.T) {
	repo := new(mockBrandRepository)
	svc := newTestBrandService(repo)

	a, _ := domain.NewBrand("Acme", "acme")
	b, _ := domain.NewBrand("Umbrella", "umbrella")
	repo.On("List", mock.Anything).Return([]domain.Brand{*a, *b}, nil)

	brands, err := svc.ListBrands(context.Background())

	require.NoError(t, err)
	assert.Len(t, brands, 2)
}
