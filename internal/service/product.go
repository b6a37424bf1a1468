package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/event"
	"github.com/wilcommerce/catalog/internal/repository"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
	"github.com/wilcommerce/catalog/pkg/slug"
)

// ProductService implements the write operations for the product aggregate.
// Cross-aggregate commands (vendor, categories, attributes) resolve the
// referenced aggregate through its own repository before mutating the
// product.
type ProductService struct {
	repo       repository.ProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	attributes repository.CustomAttributeRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.ProductRepository,
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	attributes repository.CustomAttributeRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		repo:       repo,
		brands:     brands,
		categories: categories,
		attributes: attributes,
		producer:   producer,
		logger:     logger,
	}
}

// mutate loads the product, applies fn and persists the result. Errors from
// fn propagate unchanged.
func (s *ProductService) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Product) error) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("product id")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if err := fn(product); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	return product, nil
}

func (s *ProductService) publishUpdated(ctx context.Context, product *domain.Product, actorID string) {
	if err := s.producer.PublishProductUpdated(ctx, product, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// PriceInput is a currency amount as supplied by a caller.
type PriceInput struct {
	Amount decimal.Decimal
	Code   string
}

func (p *PriceInput) toCurrency() (*domain.Currency, error) {
	currency, err := domain.NewCurrency(p.Code, p.Amount)
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	EAN         string
	SKU         string
	Name        string
	URL         string
	Description string
	Price       *PriceInput
	UnitInStock int
	VendorID    *uuid.UUID
	Seo         *domain.SeoData
	ActorID     string
}

// CreateProduct creates a new product. When no URL slug is supplied, one is
// derived from the name.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	url := input.URL
	if url == "" {
		url = slug.Generate(input.Name)
	}

	product, err := domain.NewProduct(input.EAN, input.SKU, input.Name, url)
	if err != nil {
		return nil, err
	}
	if input.Description != "" {
		product.ChangeDescription(input.Description)
	}
	if input.Price != nil {
		price, err := input.Price.toCurrency()
		if err != nil {
			return nil, err
		}
		if err := product.SetPrice(price); err != nil {
			return nil, err
		}
	}
	if input.UnitInStock != 0 {
		if err := product.SetUnitInStock(input.UnitInStock); err != nil {
			return nil, err
		}
	}
	if input.VendorID != nil {
		brand, err := s.brands.GetByID(ctx, *input.VendorID)
		if err != nil {
			return nil, fmt.Errorf("get vendor by id: %w", err)
		}
		if err := product.SetVendor(brand); err != nil {
			return nil, err
		}
	}
	if input.Seo != nil {
		if err := product.SetSeoData(input.Seo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Add(ctx, product); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.String()),
		slog.String("sku", product.SKU),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, apperrors.MissingArgument("product id")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProductInput holds the parameters for updating a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	EAN         *string
	SKU         *string
	Name        *string
	URL         *string
	Description *string
	Seo         *domain.SeoData
	ActorID     string
}

// UpdateProduct updates the editable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		if input.EAN != nil {
			if err := p.ChangeEAN(*input.EAN); err != nil {
				return err
			}
		}
		if input.SKU != nil {
			if err := p.ChangeSKU(*input.SKU); err != nil {
				return err
			}
		}
		if input.Name != nil {
			if err := p.ChangeName(*input.Name); err != nil {
				return err
			}
		}
		if input.URL != nil {
			if err := p.ChangeURL(*input.URL); err != nil {
				return err
			}
		}
		if input.Description != nil {
			p.ChangeDescription(*input.Description)
		}
		if input.Seo != nil {
			return p.SetSeoData(input.Seo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, product, input.ActorID)
	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID.String()),
	)

	return product, nil
}

// SetProductPrice sets the product price.
func (s *ProductService) SetProductPrice(ctx context.Context, id uuid.UUID, price *PriceInput, actorID string) error {
	if price == nil {
		return apperrors.MissingArgument("price")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		currency, err := price.toCurrency()
		if err != nil {
			return err
		}
		return p.SetPrice(currency)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// SetProductStock sets the absolute number of units in stock.
func (s *ProductService) SetProductStock(ctx context.Context, id uuid.UUID, units int, actorID string) error {
	return s.changeStock(ctx, id, actorID, func(p *domain.Product) error {
		return p.SetUnitInStock(units)
	})
}

// AddProductStock increases the units in stock.
func (s *ProductService) AddProductStock(ctx context.Context, id uuid.UUID, units int, actorID string) error {
	return s.changeStock(ctx, id, actorID, func(p *domain.Product) error {
		return p.AddUnitInStock(units)
	})
}

// RemoveProductStock decreases the units in stock. The stock can never go
// below zero.
func (s *ProductService) RemoveProductStock(ctx context.Context, id uuid.UUID, units int, actorID string) error {
	return s.changeStock(ctx, id, actorID, func(p *domain.Product) error {
		return p.RemoveUnitFromStock(units)
	})
}

func (s *ProductService) changeStock(ctx context.Context, id uuid.UUID, actorID string, fn func(*domain.Product) error) error {
	product, err := s.mutate(ctx, id, fn)
	if err != nil {
		return err
	}

	if err := s.producer.PublishProductStockChanged(ctx, product, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.stock_changed event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product stock changed",
		slog.String("product_id", product.ID.String()),
		slog.Int("unit_in_stock", product.UnitInStock),
	)

	return nil
}

// SetProductOnSaleInput holds the parameters for putting a product on sale.
// When both dates are given the window is validated; with neither the sale
// starts now with no end date.
type SetProductOnSaleInput struct {
	From    *time.Time
	To      *time.Time
	ActorID string
}

// SetProductOnSale puts the product on sale.
func (s *ProductService) SetProductOnSale(ctx context.Context, id uuid.UUID, input *SetProductOnSaleInput) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		if input.From != nil && input.To != nil {
			return p.SetOnSaleBetween(*input.From, *input.To)
		}
		p.SetOnSale()
		return nil
	})
	if err != nil {
		return err
	}

	return s.publishSaleChanged(ctx, product, input.ActorID)
}

// RemoveProductFromSale takes the product off sale, with an optional
// explicit end date.
func (s *ProductService) RemoveProductFromSale(ctx context.Context, id uuid.UUID, endDate *time.Time, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		if endDate != nil {
			p.RemoveFromSaleAt(*endDate)
		} else {
			p.RemoveFromSale()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.publishSaleChanged(ctx, product, actorID)
}

func (s *ProductService) publishSaleChanged(ctx context.Context, product *domain.Product, actorID string) error {
	if err := s.producer.PublishProductSaleChanged(ctx, product, actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.sale_changed event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// SetProductVendor associates the product with a brand.
func (s *ProductService) SetProductVendor(ctx context.Context, id, brandID uuid.UUID, actorID string) error {
	if brandID == uuid.Nil {
		return apperrors.MissingArgument("brand id")
	}

	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return fmt.Errorf("get vendor by id: %w", err)
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.SetVendor(brand)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// SetProductSeoData replaces the SEO information of a product.
func (s *ProductService) SetProductSeoData(ctx context.Context, id uuid.UUID, seo *domain.SeoData, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.SetSeoData(seo)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// DeleteProduct soft-deletes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.Delete()
	})
	if err != nil {
		return err
	}

	if err := s.producer.PublishProductDeleted(ctx, product.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", product.ID.String()),
	)

	return nil
}

// RestoreProduct brings a soft-deleted product back.
func (s *ProductService) RestoreProduct(ctx context.Context, id uuid.UUID, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.Restore()
	})
	if err != nil {
		return err
	}

	if err := s.producer.PublishProductRestored(ctx, product.ID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.restored event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product restored",
		slog.String("product_id", product.ID.String()),
	)

	return nil
}

// --- Variants ---

// AddProductVariantInput holds the parameters for adding a product variant.
type AddProductVariantInput struct {
	Name    string
	EAN     string
	SKU     string
	Price   *PriceInput
	ActorID string
}

// AddProductVariant adds a variant to the product.
func (s *ProductService) AddProductVariant(ctx context.Context, id uuid.UUID, input *AddProductVariantInput) (uuid.UUID, error) {
	if input.Price == nil {
		return uuid.Nil, apperrors.MissingArgument("price")
	}

	var variantID uuid.UUID
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		price, err := input.Price.toCurrency()
		if err != nil {
			return err
		}
		variantID, err = p.AddVariant(input.Name, input.EAN, input.SKU, price)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.publishUpdated(ctx, product, input.ActorID)
	return variantID, nil
}

// RemoveProductVariant removes a variant from the product.
func (s *ProductService) RemoveProductVariant(ctx context.Context, id, variantID uuid.UUID, actorID string) error {
	if variantID == uuid.Nil {
		return apperrors.MissingArgument("variant id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.RemoveVariant(variantID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// --- Categories ---

// AddProductCategory associates the product with a category, optionally as
// its main category.
func (s *ProductService) AddProductCategory(ctx context.Context, id, categoryID uuid.UUID, isMain bool, actorID string) error {
	if categoryID == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("get category by id: %w", err)
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		if isMain {
			return p.AddMainCategory(category)
		}
		return p.AddCategory(category)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// RemoveProductCategory removes the association with a category.
func (s *ProductService) RemoveProductCategory(ctx context.Context, id, categoryID uuid.UUID, actorID string) error {
	if categoryID == uuid.Nil {
		return apperrors.MissingArgument("category id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.RemoveCategory(categoryID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// --- Attributes ---

// AddProductAttribute attaches a custom attribute with its value to the
// product.
func (s *ProductService) AddProductAttribute(ctx context.Context, id, attributeID uuid.UUID, value any, actorID string) (uuid.UUID, error) {
	if attributeID == uuid.Nil {
		return uuid.Nil, apperrors.MissingArgument("attribute id")
	}

	attribute, err := s.attributes.GetByID(ctx, attributeID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get custom attribute by id: %w", err)
	}

	var entryID uuid.UUID
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		entryID, err = p.AddAttribute(attribute, value)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.publishUpdated(ctx, product, actorID)
	return entryID, nil
}

// RemoveProductAttribute detaches a custom attribute from the product.
func (s *ProductService) RemoveProductAttribute(ctx context.Context, id, attributeID uuid.UUID, actorID string) error {
	if attributeID == uuid.Nil {
		return apperrors.MissingArgument("attribute id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.DeleteAttribute(attributeID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// --- Tier prices ---

// EnableProductTierPrices turns tier pricing on.
func (s *ProductService) EnableProductTierPrices(ctx context.Context, id uuid.UUID, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.EnableTierPrices()
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// DisableProductTierPrices turns tier pricing off.
func (s *ProductService) DisableProductTierPrices(ctx context.Context, id uuid.UUID, actorID string) error {
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.DisableTierPrices()
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// TierPriceInput holds the parameters for adding or changing a tier price.
type TierPriceInput struct {
	FromQuantity int
	ToQuantity   int
	Price        *PriceInput
	ActorID      string
}

// AddProductTierPrice adds a tier price to the product.
func (s *ProductService) AddProductTierPrice(ctx context.Context, id uuid.UUID, input *TierPriceInput) (uuid.UUID, error) {
	if input.Price == nil {
		return uuid.Nil, apperrors.MissingArgument("price")
	}

	var tierID uuid.UUID
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		price, err := input.Price.toCurrency()
		if err != nil {
			return err
		}
		tierID, err = p.AddTierPrice(input.FromQuantity, input.ToQuantity, price)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.publishUpdated(ctx, product, input.ActorID)
	return tierID, nil
}

// ChangeProductTierPrice updates an existing tier price.
func (s *ProductService) ChangeProductTierPrice(ctx context.Context, id, tierPriceID uuid.UUID, input *TierPriceInput) error {
	if tierPriceID == uuid.Nil {
		return apperrors.MissingArgument("tier price id")
	}
	if input.Price == nil {
		return apperrors.MissingArgument("price")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		price, err := input.Price.toCurrency()
		if err != nil {
			return err
		}
		return p.ChangeTierPrice(tierPriceID, input.FromQuantity, input.ToQuantity, price)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, input.ActorID)
	return nil
}

// RemoveProductTierPrice removes a tier price from the product.
func (s *ProductService) RemoveProductTierPrice(ctx context.Context, id, tierPriceID uuid.UUID, actorID string) error {
	if tierPriceID == uuid.Nil {
		return apperrors.MissingArgument("tier price id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.DeleteTierPrice(tierPriceID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// --- Reviews ---

// AddProductReviewInput holds the parameters for adding a product review.
type AddProductReviewInput struct {
	Name    string
	Rating  int
	Comment string
	ActorID string
}

// AddProductReview records a new, unapproved review for the product.
func (s *ProductService) AddProductReview(ctx context.Context, id uuid.UUID, input *AddProductReviewInput) (uuid.UUID, error) {
	var reviewID uuid.UUID
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		var err error
		reviewID, err = p.AddReview(input.Name, input.Rating, input.Comment)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.producer.PublishProductReviewAdded(ctx, product.ID.String(), reviewID.String(), input.Name, input.Rating, input.ActorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.review_added event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return reviewID, nil
}

// ApproveProductReview marks a review as approved.
func (s *ProductService) ApproveProductReview(ctx context.Context, id, reviewID uuid.UUID, actorID string) error {
	if reviewID == uuid.Nil {
		return apperrors.MissingArgument("review id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.ApproveReview(reviewID)
	})
	if err != nil {
		return err
	}

	if err := s.producer.PublishProductReviewApproved(ctx, product.ID.String(), reviewID.String(), actorID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.review_approved event",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// RemoveProductReviewApproval clears a review's approval.
func (s *ProductService) RemoveProductReviewApproval(ctx context.Context, id, reviewID uuid.UUID, actorID string) error {
	if reviewID == uuid.Nil {
		return apperrors.MissingArgument("review id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.RemoveReviewApproval(reviewID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// RemoveProductReview removes a review from the product.
func (s *ProductService) RemoveProductReview(ctx context.Context, id, reviewID uuid.UUID, actorID string) error {
	if reviewID == uuid.Nil {
		return apperrors.MissingArgument("review id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.DeleteReview(reviewID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}

// --- Images ---

// AddProductImageInput holds the parameters for attaching a product image.
type AddProductImageInput struct {
	Path         string
	Name         string
	OriginalName string
	IsMain       bool
	UploadedOn   time.Time
	ActorID      string
}

// AddProductImage attaches an image to the product.
func (s *ProductService) AddProductImage(ctx context.Context, id uuid.UUID, input *AddProductImageInput) (uuid.UUID, error) {
	uploadedOn := input.UploadedOn
	if uploadedOn.IsZero() {
		uploadedOn = time.Now().UTC()
	}

	var imageID uuid.UUID
	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		var err error
		imageID, err = p.AddImage(input.Path, input.Name, input.OriginalName, input.IsMain, uploadedOn)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.publishUpdated(ctx, product, input.ActorID)
	return imageID, nil
}

// RemoveProductImage detaches an image from the product.
func (s *ProductService) RemoveProductImage(ctx context.Context, id, imageID uuid.UUID, actorID string) error {
	if imageID == uuid.Nil {
		return apperrors.MissingArgument("image id")
	}

	product, err := s.mutate(ctx, id, func(p *domain.Product) error {
		return p.DeleteImage(imageID)
	})
	if err != nil {
		return err
	}

	s.publishUpdated(ctx, product, actorID)
	return nil
}
