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

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool Pool
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool Pool) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// Add inserts a new brand into the database.
func (r *BrandRepository) Add(ctx context.Context, b *domain.Brand) error {
	logoJSON, err := marshalJSONB("logo", b.Logo)
	if err != nil {
		return err
	}
	seoJSON, err := marshalJSONB("seo", b.Seo)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO brands (id, name, url, description, logo, seo, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		b.ID,
		b.Name,
		b.URL,
		b.Description,
		logoJSON,
		seoJSON,
		b.Deleted,
		b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "url", b.URL)
		}
		return fmt.Errorf("insert brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by its ID.
func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	query := `
		SELECT id, name, url, description, logo, seo, deleted, created_at
		FROM brands
		WHERE id = $1`

	var (
		b        domain.Brand
		logoJSON []byte
		seoJSON  []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Name,
		&b.URL,
		&b.Description,
		&logoJSON,
		&seoJSON,
		&b.Deleted,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("brand", id.String())
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}

	if err := unmarshalJSONB("logo", logoJSON, &b.Logo); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB("seo", seoJSON, &b.Seo); err != nil {
		return nil, err
	}

	return &b, nil
}

// Save persists the current state of an existing brand.
func (r *BrandRepository) Save(ctx context.Context, b *domain.Brand) error {
	logoJSON, err := marshalJSONB("logo", b.Logo)
	if err != nil {
		return err
	}
	seoJSON, err := marshalJSONB("seo", b.Seo)
	if err != nil {
		return err
	}

	query := `
		UPDATE brands
		SET name = $1, url = $2, description = $3, logo = $4, seo = $5, deleted = $6
		WHERE id = $7`

	ct, err := r.pool.Exec(ctx, query,
		b.Name,
		b.URL,
		b.Description,
		logoJSON,
		seoJSON,
		b.Deleted,
		b.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "url", b.URL)
		}
		return fmt.Errorf("update brand: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", b.ID.String())
	}

	return nil
}

// List returns all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	query := `
		SELECT id, name, url, description, logo, seo, deleted, created_at
		FROM brands
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand

	for rows.Next() {
		var (
			b        domain.Brand
			logoJSON []byte
			seoJSON  []byte
		)

		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.URL,
			&b.Description,
			&logoJSON,
			&seoJSON,
			&b.Deleted,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}

		if err := unmarshalJSONB("logo", logoJSON, &b.Logo); err != nil {
			return nil, err
		}
		if err := unmarshalJSONB("seo", seoJSON, &b.Seo); err != nil {
			return nil, err
		}

		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	if brands == nil {
		brands = []domain.Brand{}
	}

	return brands, nil
}
