// Package readmodel provides side-effect-free filter functions over slices
// of catalog aggregates. They back listing queries without touching the
// write path.
package readmodel

import (
	"time"

	"github.com/google/uuid"

	"github.com/wilcommerce/catalog/internal/domain"
	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// ActiveBrands returns the brands that are not soft-deleted.
func ActiveBrands(brands []domain.Brand) []domain.Brand {
	result := make([]domain.Brand, 0, len(brands))
	for _, b := range brands {
		if !b.Deleted {
			result = append(result, b)
		}
	}
	return result
}

// ActiveCategories returns the categories that are not soft-deleted.
func ActiveCategories(categories []domain.Category) []domain.Category {
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.Deleted {
			result = append(result, c)
		}
	}
	return result
}

// ActiveAttributes returns the custom attributes that are not soft-deleted.
func ActiveAttributes(attributes []domain.CustomAttribute) []domain.CustomAttribute {
	result := make([]domain.CustomAttribute, 0, len(attributes))
	for _, a := range attributes {
		if !a.Deleted {
			result = append(result, a)
		}
	}
	return result
}

// ActiveProducts returns the products that are not soft-deleted.
func ActiveProducts(products []domain.Product) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Deleted {
			result = append(result, p)
		}
	}
	return result
}

// VisibleCategories returns the active categories whose visibility window
// contains the given instant.
func VisibleCategories(categories []domain.Category, at time.Time) []domain.Category {
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if categoryVisibleAt(&c, at) {
			result = append(result, c)
		}
	}
	return result
}

// CategoriesVisibleFrom returns the active categories whose visibility
// starts at or before the given instant.
func CategoriesVisibleFrom(categories []domain.Category, from time.Time) []domain.Category {
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.Deleted && c.IsVisible && c.VisibleFrom != nil && !c.VisibleFrom.After(from) {
			result = append(result, c)
		}
	}
	return result
}

// CategoriesVisibleTill returns the active categories whose visibility ends
// at or after the given instant, an open-ended window included.
func CategoriesVisibleTill(categories []domain.Category, till time.Time) []domain.Category {
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.Deleted && c.IsVisible && (c.VisibleTo == nil || !c.VisibleTo.Before(till)) {
			result = append(result, c)
		}
	}
	return result
}

func categoryVisibleAt(c *domain.Category, at time.Time) bool {
	if c.Deleted || !c.IsVisible {
		return false
	}
	if c.VisibleFrom != nil && c.VisibleFrom.After(at) {
		return false
	}
	if c.VisibleTo != nil && c.VisibleTo.Before(at) {
		return false
	}
	return true
}

// CategoriesByParent returns the categories whose parent is the given
// category.
func CategoriesByParent(categories []domain.Category, parentID uuid.UUID) ([]domain.Category, error) {
	if parentID == uuid.Nil {
		return nil, apperrors.MissingArgument("parent id")
	}
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			result = append(result, c)
		}
	}
	return result, nil
}

// OnSaleProducts returns the active products on sale at the given instant.
func OnSaleProducts(products []domain.Product, at time.Time) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if productOnSaleAt(&p, at) {
			result = append(result, p)
		}
	}
	return result
}

// ProductsOnSaleFrom returns the active on-sale products whose sale starts
// at or before the given instant.
func ProductsOnSaleFrom(products []domain.Product, from time.Time) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Deleted && p.IsOnSale && p.OnSaleFrom != nil && !p.OnSaleFrom.After(from) {
			result = append(result, p)
		}
	}
	return result
}

// ProductsOnSaleTill returns the active on-sale products whose sale ends at
// or after the given instant, an open-ended window included.
func ProductsOnSaleTill(products []domain.Product, till time.Time) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Deleted && p.IsOnSale && (p.OnSaleTo == nil || !p.OnSaleTo.Before(till)) {
			result = append(result, p)
		}
	}
	return result
}

func productOnSaleAt(p *domain.Product, at time.Time) bool {
	if p.Deleted || !p.IsOnSale {
		return false
	}
	if p.OnSaleFrom != nil && p.OnSaleFrom.After(at) {
		return false
	}
	if p.OnSaleTo != nil && p.OnSaleTo.Before(at) {
		return false
	}
	return true
}

// AvailableProducts returns the products that are on sale at the given
// instant and have units in stock.
func AvailableProducts(products []domain.Product, at time.Time) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if productOnSaleAt(&p, at) && p.UnitInStock > 0 {
			result = append(result, p)
		}
	}
	return result
}

// ProductsByVendor returns the products sold under the given brand.
func ProductsByVendor(products []domain.Product, brandID uuid.UUID) ([]domain.Product, error) {
	if brandID == uuid.Nil {
		return nil, apperrors.MissingArgument("brand id")
	}
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.VendorID != nil && *p.VendorID == brandID {
			result = append(result, p)
		}
	}
	return result, nil
}

// ProductsByCategory returns the products associated with the given
// category.
func ProductsByCategory(products []domain.Product, categoryID uuid.UUID) ([]domain.Product, error) {
	if categoryID == uuid.Nil {
		return nil, apperrors.MissingArgument("category id")
	}
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		for _, pc := range p.Categories {
			if pc.CategoryID == categoryID {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

// ProductsWithUnitInStock returns the products holding at least the given
// number of units.
func ProductsWithUnitInStock(products []domain.Product, units int) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.UnitInStock >= units {
			result = append(result, p)
		}
	}
	return result
}

// MainCategories returns the join rows flagged as main.
func MainCategories(associations []domain.ProductCategory) []domain.ProductCategory {
	result := make([]domain.ProductCategory, 0, len(associations))
	for _, pc := range associations {
		if pc.IsMain {
			result = append(result, pc)
		}
	}
	return result
}

// ApprovedReviews returns the reviews that have been approved.
func ApprovedReviews(reviews []domain.ProductReview) []domain.ProductReview {
	result := make([]domain.ProductReview, 0, len(reviews))
	for _, r := range reviews {
		if r.Approved {
			result = append(result, r)
		}
	}
	return result
}
