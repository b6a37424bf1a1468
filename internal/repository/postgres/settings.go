package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wilcommerce/catalog/internal/domain"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// SettingsRepository implements repository.SettingsRepository using
// PostgreSQL. The catalog holds a single settings row.
type SettingsRepository struct {
	pool Pool
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

const settingsColumns = `id, categories_per_page, products_per_page, categories_view_type,
	products_view_type, prices_shown, product_reviews_allowed, reviews_per_page, created_at`

// Add inserts the settings record into the database.
func (r *SettingsRepository) Add(ctx context.Context, s *domain.CatalogSettings) error {
	query := `
		INSERT INTO catalog_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.CategoriesPerPage,
		s.ProductsPerPage,
		s.CategoriesViewType,
		s.ProductsViewType,
		s.PricesShown,
		s.ProductReviewsAllowed,
		s.ReviewsPerPage,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert catalog settings: %w", err)
	}

	return nil
}

// Get retrieves the catalog settings. The newest row wins if more than one
// exists.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.CatalogSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM catalog_settings
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanSettings(ctx, query)
}

// GetByID retrieves the settings record by its ID.
func (r *SettingsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogSettings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM catalog_settings
		WHERE id = $1`

	return r.scanSettings(ctx, query, id)
}

// Save persists the current state of the settings record.
func (r *SettingsRepository) Save(ctx context.Context, s *domain.CatalogSettings) error {
	query := `
		UPDATE catalog_settings
		SET categories_per_page = $1, products_per_page = $2, categories_view_type = $3,
		    products_view_type = $4, prices_shown = $5, product_reviews_allowed = $6,
		    reviews_per_page = $7
		WHERE id = $8`

	ct, err := r.pool.Exec(ctx, query,
		s.CategoriesPerPage,
		s.ProductsPerPage,
		s.CategoriesViewType,
		s.ProductsViewType,
		s.PricesShown,
		s.ProductReviewsAllowed,
		s.ReviewsPerPage,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("update catalog settings: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("catalog settings", s.ID.String())
	}

	return nil
}

func (r *SettingsRepository) scanSettings(ctx context.Context, query string, args ...any) (*domain.CatalogSettings, error) {
	var s domain.CatalogSettings

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.CategoriesPerPage,
		&s.ProductsPerPage,
		&s.CategoriesViewType,
		&s.ProductsViewType,
		&s.PricesShown,
		&s.ProductReviewsAllowed,
		&s.ReviewsPerPage,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("catalog settings", "")
		}
		return nil, fmt.Errorf("scan catalog settings: %w", err)
	}

	return &s, nil
}
