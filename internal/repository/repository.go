package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wilcommerce/catalog/internal/domain"
)

// BrandRepository defines the interface for brand persistence operations.
type BrandRepository interface {
	// Add inserts a new brand into the store.
	Add(ctx context.Context, brand *domain.Brand) error

	// GetByID retrieves a brand by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)

	// Save persists the current state of an existing brand.
	Save(ctx context.Context, brand *domain.Brand) error

	// List returns all brands, soft-deleted ones included.
	List(ctx context.Context) ([]domain.Brand, error)
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Add inserts a new category into the store.
	Add(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// Save persists the current state of an existing category.
	Save(ctx context.Context, category *domain.Category) error

	// List returns all categories, soft-deleted ones included.
	List(ctx context.Context) ([]domain.Category, error)
}

// CustomAttributeRepository defines the interface for custom attribute
// persistence operations.
type CustomAttributeRepository interface {
	// Add inserts a new custom attribute into the store.
	Add(ctx context.Context, attribute *domain.CustomAttribute) error

	// GetByID retrieves a custom attribute by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomAttribute, error)

	// Save persists the current state of an existing custom attribute.
	Save(ctx context.Context, attribute *domain.CustomAttribute) error

	// List returns all custom attributes, soft-deleted ones included.
	List(ctx context.Context) ([]domain.CustomAttribute, error)
}

// ProductRepository defines the interface for product persistence operations.
// Save writes the whole aggregate, owned collections included.
type ProductRepository interface {
	// Add inserts a new product into the store.
	Add(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// Save persists the current state of an existing product.
	Save(ctx context.Context, product *domain.Product) error

	// List returns all products, soft-deleted ones included.
	List(ctx context.Context) ([]domain.Product, error)
}

// SettingsRepository defines the interface for catalog settings persistence
// operations. The catalog holds a single settings record.
type SettingsRepository interface {
	// Add inserts the settings record into the store.
	Add(ctx context.Context, settings *domain.CatalogSettings) error

	// Get retrieves the catalog settings.
	Get(ctx context.Context) (*domain.CatalogSettings, error)

	// GetByID retrieves the settings record by its unique identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogSettings, error)

	// Save persists the current state of the settings record.
	Save(ctx context.Context, settings *domain.CatalogSettings) error
}
