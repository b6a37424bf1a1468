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

// CategoryRepository implements repository.CategoryRepository using
// PostgreSQL. The children id list is stored as JSONB alongside the row.
type CategoryRepository struct {
	pool Pool
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Add inserts a new category into the database.
func (r *CategoryRepository) Add(ctx context.Context, c *domain.Category) error {
	childrenJSON, err := marshalJSONB("children", c.ChildrenIDs)
	if err != nil {
		return err
	}
	seoJSON, err := marshalJSONB("seo", c.Seo)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, code, name, url, description, is_visible, visible_from, visible_to, parent_id, children, seo, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.pool.Exec(ctx, query,
		c.ID,
		c.Code,
		c.Name,
		c.URL,
		c.Description,
		c.IsVisible,
		c.VisibleFrom,
		c.VisibleTo,
		c.ParentID,
		childrenJSON,
		seoJSON,
		c.Deleted,
		c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "code", c.Code)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, code, name, url, description, is_visible, visible_from, visible_to, parent_id, children, seo, deleted, created_at
		FROM categories
		WHERE id = $1`

	var (
		c            domain.Category
		childrenJSON []byte
		seoJSON      []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.URL,
		&c.Description,
		&c.IsVisible,
		&c.VisibleFrom,
		&c.VisibleTo,
		&c.ParentID,
		&childrenJSON,
		&seoJSON,
		&c.Deleted,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("category", id.String())
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	if err := unmarshalJSONB("children", childrenJSON, &c.ChildrenIDs); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB("seo", seoJSON, &c.Seo); err != nil {
		return nil, err
	}

	return &c, nil
}

// Save persists the current state of an existing category.
func (r *CategoryRepository) Save(ctx context.Context, c *domain.Category) error {
	childrenJSON, err := marshalJSONB("children", c.ChildrenIDs)
	if err != nil {
		return err
	}
	seoJSON, err := marshalJSONB("seo", c.Seo)
	if err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET code = $1, name = $2, url = $3, description = $4, is_visible = $5,
		    visible_from = $6, visible_to = $7, parent_id = $8, children = $9,
		    seo = $10, deleted = $11
		WHERE id = $12`

	ct, err := r.pool.Exec(ctx, query,
		c.Code,
		c.Name,
		c.URL,
		c.Description,
		c.IsVisible,
		c.VisibleFrom,
		c.VisibleTo,
		c.ParentID,
		childrenJSON,
		seoJSON,
		c.Deleted,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "code", c.Code)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID.String())
	}

	return nil
}

// List returns all categories ordered by code.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, code, name, url, description, is_visible, visible_from, visible_to, parent_id, children, seo, deleted, created_at
		FROM categories
		ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category

	for rows.Next() {
		var (
			c            domain.Category
			childrenJSON []byte
			seoJSON      []byte
		)

		if err := rows.Scan(
			&c.ID,
			&c.Code,
			&c.Name,
			&c.URL,
			&c.Description,
			&c.IsVisible,
			&c.VisibleFrom,
			&c.VisibleTo,
			&c.ParentID,
			&childrenJSON,
			&seoJSON,
			&c.Deleted,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}

		if err := unmarshalJSONB("children", childrenJSON, &c.ChildrenIDs); err != nil {
			return nil, err
		}
		if err := unmarshalJSONB("seo", seoJSON, &c.Seo); err != nil {
			return nil, err
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}
