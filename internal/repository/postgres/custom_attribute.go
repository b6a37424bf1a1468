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

// CustomAttributeRepository implements repository.CustomAttributeRepository
// using PostgreSQL. The permitted value list is stored as JSONB.
type CustomAttributeRepository struct {
	pool Pool
}

// NewCustomAttributeRepository creates a new PostgreSQL-backed custom
// attribute repository.
func NewCustomAttributeRepository(pool Pool) *CustomAttributeRepository {
	return &CustomAttributeRepository{pool: pool}
}

// Add inserts a new custom attribute into the database.
func (r *CustomAttributeRepository) Add(ctx context.Context, a *domain.CustomAttribute) error {
	valuesJSON, err := marshalJSONB("values", a.Values)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO custom_attributes (id, name, description, unit_of_measure, data_type, attribute_values, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Description,
		a.UnitOfMeasure,
		a.DataType,
		valuesJSON,
		a.Deleted,
		a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("custom attribute", "name", a.Name)
		}
		return fmt.Errorf("insert custom attribute: %w", err)
	}

	return nil
}

// GetByID retrieves a custom attribute by its ID.
func (r *CustomAttributeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomAttribute, error) {
	query := `
		SELECT id, name, description, unit_of_measure, data_type, attribute_values, deleted, created_at
		FROM custom_attributes
		WHERE id = $1`

	var (
		a          domain.CustomAttribute
		valuesJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.UnitOfMeasure,
		&a.DataType,
		&valuesJSON,
		&a.Deleted,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("custom attribute", id.String())
		}
		return nil, fmt.Errorf("scan custom attribute: %w", err)
	}

	if err := unmarshalJSONB("values", valuesJSON, &a.Values); err != nil {
		return nil, err
	}

	return &a, nil
}

// Save persists the current state of an existing custom attribute.
func (r *CustomAttributeRepository) Save(ctx context.Context, a *domain.CustomAttribute) error {
	valuesJSON, err := marshalJSONB("values", a.Values)
	if err != nil {
		return err
	}

	query := `
		UPDATE custom_attributes
		SET name = $1, description = $2, unit_of_measure = $3, data_type = $4,
		    attribute_values = $5, deleted = $6
		WHERE id = $7`

	ct, err := r.pool.Exec(ctx, query,
		a.Name,
		a.Description,
		a.UnitOfMeasure,
		a.DataType,
		valuesJSON,
		a.Deleted,
		a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("custom attribute", "name", a.Name)
		}
		return fmt.Errorf("update custom attribute: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("custom attribute", a.ID.String())
	}

	return nil
}

// List returns all custom attributes ordered by name.
func (r *CustomAttributeRepository) List(ctx context.Context) ([]domain.CustomAttribute, error) {
	query := `
		SELECT id, name, description, unit_of_measure, data_type, attribute_values, deleted, created_at
		FROM custom_attributes
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list custom attributes: %w", err)
	}
	defer rows.Close()

	var attributes []domain.CustomAttribute

	for rows.Next() {
		var (
			a          domain.CustomAttribute
			valuesJSON []byte
		)

		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.UnitOfMeasure,
			&a.DataType,
			&valuesJSON,
			&a.Deleted,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan custom attribute row: %w", err)
		}

		if err := unmarshalJSONB("values", valuesJSON, &a.Values); err != nil {
			return nil, err
		}

		attributes = append(attributes, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom attribute rows: %w", err)
	}

	if attributes == nil {
		attributes = []domain.CustomAttribute{}
	}

	return attributes, nil
}
