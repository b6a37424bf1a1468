package domain

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// Image is a binary image carried by an aggregate (e.g. a brand logo).
type Image struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// Currency is a money amount tagged with its ISO currency code.
type Currency struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// NewCurrency creates a currency value, rejecting an empty code or a
// negative amount.
func NewCurrency(code string, amount decimal.Decimal) (Currency, error) {
	if code == "" {
		return Currency{}, apperrors.MissingArgument("code")
	}
	if amount.IsNegative() {
		return Currency{}, apperrors.InvalidInput("amount must not be negative")
	}
	return Currency{Code: code, Amount: amount}, nil
}

// SeoData holds the SEO fields attached to brands, categories and products.
type SeoData struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OgTitle       string `json:"og_title,omitempty"`
	OgDescription string `json:"og_description,omitempty"`
	OgImage       string `json:"og_image,omitempty"`
	CanonicalURL  string `json:"canonical_url,omitempty"`
}
