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

// ProductRepository implements repository.ProductRepository using
// PostgreSQL. The owned collections live in JSONB columns so a save writes
// the aggregate atomically in a single statement.
type ProductRepository struct {
	pool Pool
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

type productJSONB struct {
	price      []byte
	seo        []byte
	variants   []byte
	categories []byte
	attributes []byte
	tierPrices []byte
	reviews    []byte
	images     []byte
}

func marshalProduct(p *domain.Product) (*productJSONB, error) {
	var (
		cols productJSONB
		err  error
	)

	if cols.price, err = marshalJSONB("price", p.Price); err != nil {
		return nil, err
	}
	if cols.seo, err = marshalJSONB("seo", p.Seo); err != nil {
		return nil, err
	}
	if cols.variants, err = marshalJSONB("variants", p.Variants); err != nil {
		return nil, err
	}
	if cols.categories, err = marshalJSONB("categories", p.Categories); err != nil {
		return nil, err
	}
	if cols.attributes, err = marshalJSONB("attributes", p.Attributes); err != nil {
		return nil, err
	}
	if cols.tierPrices, err = marshalJSONB("tier_prices", p.TierPrices); err != nil {
		return nil, err
	}
	if cols.reviews, err = marshalJSONB("reviews", p.Reviews); err != nil {
		return nil, err
	}
	if cols.images, err = marshalJSONB("images", p.Images); err != nil {
		return nil, err
	}

	return &cols, nil
}

func unmarshalProduct(p *domain.Product, cols *productJSONB) error {
	if err := unmarshalJSONB("price", cols.price, &p.Price); err != nil {
		return err
	}
	if err := unmarshalJSONB("seo", cols.seo, &p.Seo); err != nil {
		return err
	}
	if err := unmarshalJSONB("variants", cols.variants, &p.Variants); err != nil {
		return err
	}
	if err := unmarshalJSONB("categories", cols.categories, &p.Categories); err != nil {
		return err
	}
	if err := unmarshalJSONB("attributes", cols.attributes, &p.Attributes); err != nil {
		return err
	}
	if err := unmarshalJSONB("tier_prices", cols.tierPrices, &p.TierPrices); err != nil {
		return err
	}
	if err := unmarshalJSONB("reviews", cols.reviews, &p.Reviews); err != nil {
		return err
	}
	return unmarshalJSONB("images", cols.images, &p.Images)
}

const productColumns = `id, ean, sku, name, url, description, price, unit_in_stock,
	is_on_sale, on_sale_from, on_sale_to, tier_price_enabled, vendor_id, main_product_id,
	seo, variants, categories, attributes, tier_prices, reviews, images, deleted, created_at`

// Add inserts a new product into the database.
func (r *ProductRepository) Add(ctx context.Context, p *domain.Product) error {
	cols, err := marshalProduct(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.EAN,
		p.SKU,
		p.Name,
		p.URL,
		p.Description,
		cols.price,
		p.UnitInStock,
		p.IsOnSale,
		p.OnSaleFrom,
		p.OnSaleTo,
		p.TierPriceEnabled,
		p.VendorID,
		p.MainProductID,
		cols.seo,
		cols.variants,
		cols.categories,
		cols.attributes,
		cols.tierPrices,
		cols.reviews,
		cols.images,
		p.Deleted,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	var (
		p    domain.Product
		cols productJSONB
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.EAN,
		&p.SKU,
		&p.Name,
		&p.URL,
		&p.Description,
		&cols.price,
		&p.UnitInStock,
		&p.IsOnSale,
		&p.OnSaleFrom,
		&p.OnSaleTo,
		&p.TierPriceEnabled,
		&p.VendorID,
		&p.MainProductID,
		&cols.seo,
		&cols.variants,
		&cols.categories,
		&cols.attributes,
		&cols.tierPrices,
		&cols.reviews,
		&cols.images,
		&p.Deleted,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id.String())
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	if err := unmarshalProduct(&p, &cols); err != nil {
		return nil, err
	}

	return &p, nil
}

// Save persists the current state of an existing product.
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	cols, err := marshalProduct(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET ean = $1, sku = $2, name = $3, url = $4, description = $5, price = $6,
		    unit_in_stock = $7, is_on_sale = $8, on_sale_from = $9, on_sale_to = $10,
		    tier_price_enabled = $11, vendor_id = $12, main_product_id = $13, seo = $14,
		    variants = $15, categories = $16, attributes = $17, tier_prices = $18,
		    reviews = $19, images = $20, deleted = $21
		WHERE id = $22`

	ct, err := r.pool.Exec(ctx, query,
		p.EAN,
		p.SKU,
		p.Name,
		p.URL,
		p.Description,
		cols.price,
		p.UnitInStock,
		p.IsOnSale,
		p.OnSaleFrom,
		p.OnSaleTo,
		p.TierPriceEnabled,
		p.VendorID,
		p.MainProductID,
		cols.seo,
		cols.variants,
		cols.categories,
		cols.attributes,
		cols.tierPrices,
		cols.reviews,
		cols.images,
		p.Deleted,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID.String())
	}

	return nil
}

// List returns all products ordered by creation date, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product

	for rows.Next() {
		var (
			p    domain.Product
			cols productJSONB
		)

		if err := rows.Scan(
			&p.ID,
			&p.EAN,
			&p.SKU,
			&p.Name,
			&p.URL,
			&p.Description,
			&cols.price,
			&p.UnitInStock,
			&p.IsOnSale,
			&p.OnSaleFrom,
			&p.OnSaleTo,
			&p.TierPriceEnabled,
			&p.VendorID,
			&p.MainProductID,
			&cols.seo,
			&cols.variants,
			&cols.categories,
			&cols.attributes,
			&cols.tierPrices,
			&cols.reviews,
			&cols.images,
			&p.Deleted,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		if err := unmarshalProduct(&p, &cols); err != nil {
			return nil, err
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
