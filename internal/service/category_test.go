package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilcommerce/catalog/internal/domain"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// --- Mock Repository ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Add(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func newTestCategoryService(repo *mockCategoryRepository) *CategoryService {
	return NewCategoryService(repo, newTestProducer(), newTestLogger())
}

// --- Tests ---

func TestCreateCategory(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	repo.On("Add", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)

	category, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{
		Code: "C1",
		Name: "Home Appliances",
	})

	require.NoError(t, err)
	assert.Equal(t, "C1", category.Code)
	assert.Equal(t, "home-appliances", category.URL, "slug should be derived from the name")
	assert.False(t, category.IsVisible)
	repo.AssertExpectations(t)
}

func TestCreateCategory_MissingCode(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	category, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{Name: "Cat"})

	assert.Nil(t, category)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Add")
}

func TestCreateCategory_VisibleWithInvertedWindow(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	from := time.Now().UTC()
	to := from.AddDate(0, 0, -1)

	category, err := svc.CreateCategory(context.Background(), &CreateCategoryInput{
		Code:        "C1",
		Name:        "Cat",
		IsVisible:   true,
		VisibleFrom: &from,
		VisibleTo:   &to,
	})

	assert.Nil(t, category)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the from date should be previous to the end date")
	repo.AssertNotCalled(t, "Add")
}

func TestSetCategoryVisibility(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	existing, err := domain.NewCategory("C1", "Cat", "cat")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	require.NoError(t, svc.SetCategoryVisibility(context.Background(), existing.ID, &SetCategoryVisibilityInput{
		IsVisible: true,
	}))

	assert.True(t, existing.IsVisible)
	require.NotNil(t, existing.VisibleFrom)
	repo.AssertExpectations(t)
}

func TestSetCategoryVisibility_Hide(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	existing, err := domain.NewCategory("C1", "Cat", "cat")
	require.NoError(t, err)
	existing.SetAsVisible()

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	require.NoError(t, svc.SetCategoryVisibility(context.Background(), existing.ID, &SetCategoryVisibilityInput{}))
	assert.False(t, existing.IsVisible)
}

func TestAddCategoryChild(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	parent, err := domain.NewCategory("P", "Parent", "parent")
	require.NoError(t, err)
	child, err := domain.NewCategory("C", "Child", "child")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	repo.On("GetByID", mock.Anything, child.ID).Return(child, nil)
	repo.On("Save", mock.Anything, parent).Return(nil)
	repo.On("Save", mock.Anything, child).Return(nil)

	require.NoError(t, svc.AddCategoryChild(context.Background(), parent.ID, child.ID, "user-1"))

	assert.Contains(t, parent.ChildrenIDs, child.ID)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
	repo.AssertExpectations(t)
}

func TestAddCategoryChild_Duplicate(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	parent, err := domain.NewCategory("P", "Parent", "parent")
	require.NoError(t, err)
	child, err := domain.NewCategory("C", "Child", "child")
	require.NoError(t, err)
	require.NoError(t, parent.AddChild(child))

	repo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	repo.On("GetByID", mock.Anything, child.ID).Return(child, nil)

	err = svc.AddCategoryChild(context.Background(), parent.ID, child.ID, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save")
}

func TestAddCategoryChild_NilChildID(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	err := svc.AddCategoryChild(context.Background(), uuid.New(), uuid.Nil, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByID")
}

func TestRemoveCategoryParent(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	parent, err := domain.NewCategory("P", "Parent", "parent")
	require.NoError(t, err)
	child, err := domain.NewCategory("C", "Child", "child")
	require.NoError(t, err)
	require.NoError(t, parent.AddChild(child))

	repo.On("GetByID", mock.Anything, child.ID).Return(child, nil)
	repo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	repo.On("Save", mock.Anything, child).Return(nil)
	repo.On("Save", mock.Anything, parent).Return(nil)

	require.NoError(t, svc.RemoveCategoryParent(context.Background(), child.ID, "user-1"))

	assert.Nil(t, child.ParentID)
	assert.NotContains(t, parent.ChildrenIDs, child.ID)
}

func TestDeleteCategory_Restore_Roundtrip(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := newTestCategoryService(repo)

	existing, err := domain.NewCategory("C1", "Cat", "cat")
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	require.NoError(t, svc.DeleteCategory(context.Background(), existing.ID, "user-1"))
	assert.True(t, existing.Deleted)

	require.NoError(t, svc.RestoreCategory(context.Background(), existing.ID, "user-1"))
	assert.False(t, existing.Deleted)
}
