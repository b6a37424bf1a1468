package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// Brand represents a product vendor. All mutations go through behavior
// methods so the aggregate's invariants hold at every point.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Logo        *Image    `json:"logo,omitempty"`
	Seo         *SeoData  `json:"seo,omitempty"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBrand creates a brand with the required name and URL slug.
func NewBrand(name, url string) (*Brand, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(url) == "" {
		return nil, apperrors.MissingArgument("url")
	}

	return &Brand{
		ID:        uuid.New(),
		Name:      name,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ChangeName renames the brand. The name must not be empty.
func (b *Brand) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.MissingArgument("name")
	}
	b.Name = name
	return nil
}

// ChangeURL changes the brand's URL slug. The url must not be empty.
func (b *Brand) ChangeURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return apperrors.MissingArgument("url")
	}
	b.URL = url
	return nil
}

// ChangeDescription replaces the description. An empty string clears it.
func (b *Brand) ChangeDescription(description string) {
	b.Description = description
}

// SetLogo attaches a logo image to the brand.
func (b *Brand) SetLogo(logo *Image) error {
	if logo == nil {
		return apperrors.MissingArgument("logo")
	}
	b.Logo = logo
	return nil
}

// SetSeoData attaches the SEO information to the brand.
func (b *Brand) SetSeoData(seo *SeoData) error {
	if seo == nil {
		return apperrors.MissingArgument("seo")
	}
	b.Seo = seo
	return nil
}

// Delete soft-deletes the brand.
func (b *Brand) Delete() error {
	if b.Deleted {
		return apperrors.InvalidState("Brand already deleted")
	}
	b.Deleted = true
	return nil
}

// Restore brings a soft-deleted brand back.
func (b *Brand) Restore() error {
	if !b.Deleted {
		return apperrors.InvalidState("Brand is not deleted")
	}
	b.Deleted = false
	return nil
}
