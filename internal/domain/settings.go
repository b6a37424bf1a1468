package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// View type constants for catalog listing pages.
const (
	ViewTypeList    = "list"
	ViewTypeMasonry = "masonry"
)

// IsValidViewType checks whether the given string is a valid view type.
func IsValidViewType(viewType string) bool {
	return viewType == ViewTypeList || viewType == ViewTypeMasonry
}

// CatalogSettings holds the per-tenant presentation settings of the catalog.
type CatalogSettings struct {
	ID                    uuid.UUID `json:"id"`
	CategoriesPerPage     int       `json:"categories_per_page"`
	ProductsPerPage       int       `json:"products_per_page"`
	CategoriesViewType    string    `json:"categories_view_type"`
	ProductsViewType      string    `json:"products_view_type"`
	PricesShown           bool      `json:"prices_shown"`
	ProductReviewsAllowed bool      `json:"product_reviews_allowed"`
	ReviewsPerPage        int       `json:"reviews_per_page"`
	CreatedAt             time.Time `json:"created_at"`
}

// NewCatalogSettings creates the catalog settings with the given page sizes
// and view types.
func NewCatalogSettings(categoriesPerPage, productsPerPage int, categoriesViewType, productsViewType string) (*CatalogSettings, error) {
	if categoriesPerPage < 0 {
		return nil, apperrors.InvalidInput("categories per page must not be negative")
	}
	if productsPerPage < 0 {
		return nil, apperrors.InvalidInput("products per page must not be negative")
	}
	if !IsValidViewType(categoriesViewType) {
		return nil, apperrors.InvalidInput("invalid categories view type")
	}
	if !IsValidViewType(productsViewType) {
		return nil, apperrors.InvalidInput("invalid products view type")
	}

	return &CatalogSettings{
		ID:                 uuid.New(),
		CategoriesPerPage:  categoriesPerPage,
		ProductsPerPage:    productsPerPage,
		CategoriesViewType: categoriesViewType,
		ProductsViewType:   productsViewType,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// SetCategoriesPerPage sets how many categories a listing page shows.
func (s *CatalogSettings) SetCategoriesPerPage(n int) error {
	if n < 0 {
		return apperrors.InvalidInput("categories per page must not be negative")
	}
	s.CategoriesPerPage = n
	return nil
}

// SetProductsPerPage sets how many products a listing page shows.
func (s *CatalogSettings) SetProductsPerPage(n int) error {
	if n < 0 {
		return apperrors.InvalidInput("products per page must not be negative")
	}
	s.ProductsPerPage = n
	return nil
}

// SetProductReviewsPerPage sets how many reviews a product page shows. It
// requires product reviews to be allowed.
func (s *CatalogSettings) SetProductReviewsPerPage(n int) error {
	if n < 0 {
		return apperrors.InvalidInput("reviews per page must not be negative")
	}
	if !s.ProductReviewsAllowed {
		return apperrors.InvalidState("Reviews not allowed")
	}
	s.ReviewsPerPage = n
	return nil
}

// ShowPrices toggles whether catalog pages display prices.
func (s *CatalogSettings) ShowPrices(show bool) {
	s.PricesShown = show
}

// AllowProductReviews toggles whether customers can review products.
func (s *CatalogSettings) AllowProductReviews(allow bool) {
	s.ProductReviewsAllowed = allow
}

// SetCategoriesViewType sets the category listing view type.
func (s *CatalogSettings) SetCategoriesViewType(viewType string) error {
	if !IsValidViewType(viewType) {
		return apperrors.InvalidInput("invalid categories view type")
	}
	s.CategoriesViewType = viewType
	return nil
}

// SetProductsViewType sets the product listing view type.
func (s *CatalogSettings) SetProductsViewType(viewType string) error {
	if !IsValidViewType(viewType) {
		return apperrors.InvalidInput("invalid products view type")
	}
	s.ProductsViewType = viewType
	return nil
}
