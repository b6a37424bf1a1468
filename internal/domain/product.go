package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// Product is the central aggregate of the catalog. It owns its variants,
// category associations, attribute values, tier prices, reviews and images,
// and enforces every invariant over them.
type Product struct {
	ID               uuid.UUID  `json:"id"`
	EAN              string     `json:"ean"`
	SKU              string     `json:"sku"`
	Name             string     `json:"name"`
	URL              string     `json:"url"`
	Description      string     `json:"description,omitempty"`
	Price            *Currency  `json:"price,omitempty"`
	UnitInStock      int        `json:"unit_in_stock"`
	IsOnSale         bool       `json:"is_on_sale"`
	OnSaleFrom       *time.Time `json:"on_sale_from,omitempty"`
	OnSaleTo         *time.Time `json:"on_sale_to,omitempty"`
	TierPriceEnabled bool       `json:"tier_price_enabled"`
	VendorID         *uuid.UUID `json:"vendor_id,omitempty"`
	MainProductID    *uuid.UUID `json:"main_product_id,omitempty"`
	Seo              *SeoData   `json:"seo,omitempty"`
	Deleted          bool       `json:"deleted"`
	CreatedAt        time.Time  `json:"created_at"`

	Variants   []ProductVariant   `json:"variants,omitempty"`
	Categories []ProductCategory  `json:"categories,omitempty"`
	Attributes []ProductAttribute `json:"attributes,omitempty"`
	TierPrices []TierPrice        `json:"tier_prices,omitempty"`
	Reviews    []ProductReview    `json:"reviews,omitempty"`
	Images     []ProductImage     `json:"images,omitempty"`
}

// NewProduct creates a product with the required EAN, SKU, name and URL slug.
func NewProduct(ean, sku, name, url string) (*Product, error) {
	if strings.TrimSpace(ean) == "" {
		return nil, apperrors.MissingArgument("ean")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, apperrors.MissingArgument("sku")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(url) == "" {
		return nil, apperrors.MissingArgument("url")
	}

	return &Product{
		ID:        uuid.New(),
		EAN:       ean,
		SKU:       sku,
		Name:      name,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ChangeEAN changes the product EAN code.
func (p *Product) ChangeEAN(ean string) error {
	if strings.TrimSpace(ean) == "" {
		return apperrors.MissingArgument("ean")
	}
	p.EAN = ean
	return nil
}

// ChangeSKU changes the product SKU.
func (p *Product) ChangeSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return apperrors.MissingArgument("sku")
	}
	p.SKU = sku
	return nil
}

// ChangeName renames the product.
func (p *Product) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.MissingArgument("name")
	}
	p.Name = name
	return nil
}

// ChangeURL changes the product's URL slug.
func (p *Product) ChangeURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return apperrors.MissingArgument("url")
	}
	p.URL = url
	return nil
}

// ChangeDescription replaces the description. An empty string clears it.
func (p *Product) ChangeDescription(description string) {
	p.Description = description
}

// SetUnitInStock sets the absolute number of units in stock.
func (p *Product) SetUnitInStock(unitInStock int) error {
	if unitInStock < 0 {
		return apperrors.InvalidInput("unit in stock must not be negative")
	}
	p.UnitInStock = unitInStock
	return nil
}

// AddUnitInStock increases the units in stock by the given amount.
func (p *Product) AddUnitInStock(unit int) error {
	return p.SetUnitInStock(p.UnitInStock + unit)
}

// RemoveUnitFromStock decreases the units in stock by the given amount. The
// stock can never go below zero.
func (p *Product) RemoveUnitFromStock(unit int) error {
	newStock := p.UnitInStock - unit
	if newStock < 0 {
		return apperrors.InvalidState("Stock units cannot be less than 0")
	}
	return p.SetUnitInStock(newStock)
}

// SetPrice sets the product price.
func (p *Product) SetPrice(price *Currency) error {
	if price == nil {
		return apperrors.MissingArgument("price")
	}
	if price.Amount.IsNegative() {
		return apperrors.InvalidInput("price amount must not be negative")
	}
	p.Price = price
	return nil
}

// SetOnSale puts the product on sale starting now, with no end date.
func (p *Product) SetOnSale() {
	now := time.Now().UTC()
	p.IsOnSale = true
	p.OnSaleFrom = &now
	p.OnSaleTo = nil
}

// SetOnSaleBetween puts the product on sale within the given window. The
// start date must precede the end date.
func (p *Product) SetOnSaleBetween(from, to time.Time) error {
	if !from.Before(to) {
		return apperrors.InvalidInput("The sale's start date must be precedent to the end date")
	}
	p.IsOnSale = true
	p.OnSaleFrom = &from
	p.OnSaleTo = &to
	return nil
}

// RemoveFromSale takes the product off sale, ending the sale window now.
func (p *Product) RemoveFromSale() {
	p.RemoveFromSaleAt(time.Now().UTC())
}

// RemoveFromSaleAt takes the product off sale, recording the given end date.
func (p *Product) RemoveFromSaleAt(end time.Time) {
	p.IsOnSale = false
	p.OnSaleTo = &end
}

// SetVendor associates the product with the given brand.
func (p *Product) SetVendor(brand *Brand) error {
	if brand == nil {
		return apperrors.MissingArgument("brand")
	}
	p.VendorID = &brand.ID
	return nil
}

// SetSeoData attaches the SEO information to the product.
func (p *Product) SetSeoData(seo *SeoData) error {
	if seo == nil {
		return apperrors.MissingArgument("seo")
	}
	p.Seo = seo
	return nil
}

// Delete soft-deletes the product.
func (p *Product) Delete() error {
	if p.Deleted {
		return apperrors.InvalidState("Product already deleted")
	}
	p.Deleted = true
	return nil
}

// Restore brings a soft-deleted product back.
func (p *Product) Restore() error {
	if !p.Deleted {
		return apperrors.InvalidState("Product is not deleted")
	}
	p.Deleted = false
	return nil
}
