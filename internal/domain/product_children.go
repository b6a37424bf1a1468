package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// ProductVariant is a purchasable variation of a product, identified by the
// combination of name, EAN and SKU.
type ProductVariant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	EAN   string    `json:"ean"`
	SKU   string    `json:"sku"`
	Price Currency  `json:"price"`
}

// ProductCategory is the association between a product and a category. At
// most one association per product can be the main one.
type ProductCategory struct {
	CategoryID uuid.UUID `json:"category_id"`
	IsMain     bool      `json:"is_main"`
}

// ProductAttribute is the value a product takes for a custom attribute.
type ProductAttribute struct {
	ID          uuid.UUID `json:"id"`
	AttributeID uuid.UUID `json:"attribute_id"`
	Value       any       `json:"value"`
}

// TierPrice is a price applied when the purchased quantity falls within the
// [FromQuantity, ToQuantity] range. Ranges are unique per product.
type TierPrice struct {
	ID           uuid.UUID `json:"id"`
	FromQuantity int       `json:"from_quantity"`
	ToQuantity   int       `json:"to_quantity"`
	Price        Currency  `json:"price"`
}

// ProductReview is a customer review. New reviews start unapproved.
type ProductReview struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment,omitempty"`
	Approved   bool       `json:"approved"`
	ApprovedOn *time.Time `json:"approved_on,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ProductImage is an image attached to a product.
type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	IsMain       bool      `json:"is_main"`
	UploadedOn   time.Time `json:"uploaded_on"`
}

// --- Variants ---

// AddVariant adds a product variant. The (name, EAN, SKU) combination must
// be unique among the product's variants.
func (p *Product) AddVariant(name, ean, sku string, price *Currency) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(ean) == "" {
		return uuid.Nil, apperrors.MissingArgument("ean")
	}
	if strings.TrimSpace(sku) == "" {
		return uuid.Nil, apperrors.MissingArgument("sku")
	}
	if price == nil {
		return uuid.Nil, apperrors.MissingArgument("price")
	}
	if price.Amount.IsNegative() {
		return uuid.Nil, apperrors.InvalidInput("price amount must not be negative")
	}

	for _, v := range p.Variants {
		if v.Name == name && v.EAN == ean && v.SKU == sku {
			return uuid.Nil, apperrors.Duplicate(fmt.Sprintf("variant %s %s %s already exists", name, ean, sku))
		}
	}

	variant := ProductVariant{
		ID:    uuid.New(),
		Name:  name,
		EAN:   ean,
		SKU:   sku,
		Price: *price,
	}
	p.Variants = append(p.Variants, variant)
	return variant.ID, nil
}

// RemoveVariant removes a variant by id.
func (p *Product) RemoveVariant(variantID uuid.UUID) error {
	for i, v := range p.Variants {
		if v.ID == variantID {
			p.Variants = append(p.Variants[:i], p.Variants[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("variant", variantID.String())
}

// --- Categories ---

// AddCategory associates the product with a category.
func (p *Product) AddCategory(category *Category) error {
	return p.addCategory(category, false)
}

// AddMainCategory associates the product with a category and marks it as the
// product's main category.
func (p *Product) AddMainCategory(category *Category) error {
	return p.addCategory(category, true)
}

func (p *Product) addCategory(category *Category, isMain bool) error {
	if category == nil {
		return apperrors.MissingArgument("category")
	}
	for _, pc := range p.Categories {
		if pc.CategoryID == category.ID {
			return apperrors.Duplicate(fmt.Sprintf("category %s is already associated", category.ID))
		}
		if isMain && pc.IsMain {
			return apperrors.Duplicate("a main category is already set")
		}
	}
	p.Categories = append(p.Categories, ProductCategory{
		CategoryID: category.ID,
		IsMain:     isMain,
	})
	return nil
}

// RemoveCategory removes the association with the given category.
func (p *Product) RemoveCategory(categoryID uuid.UUID) error {
	for i, pc := range p.Categories {
		if pc.CategoryID == categoryID {
			p.Categories = append(p.Categories[:i], p.Categories[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("product category", categoryID.String())
}

// --- Attributes ---

// AddAttribute attaches a custom attribute with its value. Each attribute
// can be attached to a product only once.
func (p *Product) AddAttribute(attribute *CustomAttribute, value any) (uuid.UUID, error) {
	if attribute == nil {
		return uuid.Nil, apperrors.MissingArgument("attribute")
	}
	for _, pa := range p.Attributes {
		if pa.AttributeID == attribute.ID {
			return uuid.Nil, apperrors.Duplicate(fmt.Sprintf("attribute %s is already attached", attribute.ID))
		}
	}

	entry := ProductAttribute{
		ID:          uuid.New(),
		AttributeID: attribute.ID,
		Value:       value,
	}
	p.Attributes = append(p.Attributes, entry)
	return entry.ID, nil
}

// DeleteAttribute detaches the given custom attribute from the product.
func (p *Product) DeleteAttribute(attributeID uuid.UUID) error {
	for i, pa := range p.Attributes {
		if pa.AttributeID == attributeID {
			p.Attributes = append(p.Attributes[:i], p.Attributes[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("product attribute", attributeID.String())
}

// --- Tier prices ---

// EnableTierPrices turns tier pricing on for the product.
func (p *Product) EnableTierPrices() error {
	if p.TierPriceEnabled {
		return apperrors.InvalidState("Tier prices are already enabled")
	}
	p.TierPriceEnabled = true
	return nil
}

// DisableTierPrices turns tier pricing off for the product.
func (p *Product) DisableTierPrices() error {
	if !p.TierPriceEnabled {
		return apperrors.InvalidState("Tier prices are not enabled")
	}
	p.TierPriceEnabled = false
	return nil
}

// AddTierPrice adds a price for the given quantity range. Tier pricing must
// be enabled, and the range must be unique for the product.
func (p *Product) AddTierPrice(fromQuantity, toQuantity int, price *Currency) (uuid.UUID, error) {
	if !p.TierPriceEnabled {
		return uuid.Nil, apperrors.InvalidState("Tier prices are not enabled")
	}
	if price == nil {
		return uuid.Nil, apperrors.MissingArgument("price")
	}
	for _, tp := range p.TierPrices {
		if tp.FromQuantity == fromQuantity && tp.ToQuantity == toQuantity {
			return uuid.Nil, apperrors.Duplicate(fmt.Sprintf("tier price for range %d-%d already exists", fromQuantity, toQuantity))
		}
	}

	tier := TierPrice{
		ID:           uuid.New(),
		FromQuantity: fromQuantity,
		ToQuantity:   toQuantity,
		Price:        *price,
	}
	p.TierPrices = append(p.TierPrices, tier)
	return tier.ID, nil
}

// ChangeTierPrice updates the range and price of an existing tier price.
func (p *Product) ChangeTierPrice(tierPriceID uuid.UUID, fromQuantity, toQuantity int, price *Currency) error {
	if !p.TierPriceEnabled {
		return apperrors.InvalidState("Tier prices are not enabled")
	}
	if price == nil {
		return apperrors.MissingArgument("price")
	}
	for i, tp := range p.TierPrices {
		if tp.ID == tierPriceID {
			p.TierPrices[i].FromQuantity = fromQuantity
			p.TierPrices[i].ToQuantity = toQuantity
			p.TierPrices[i].Price = *price
			return nil
		}
	}
	return apperrors.NotFound("tier price", tierPriceID.String())
}

// DeleteTierPrice removes a tier price by id.
func (p *Product) DeleteTierPrice(tierPriceID uuid.UUID) error {
	for i, tp := range p.TierPrices {
		if tp.ID == tierPriceID {
			p.TierPrices = append(p.TierPrices[:i], p.TierPrices[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("tier price", tierPriceID.String())
}

// --- Reviews ---

// AddReview records a new, unapproved review.
func (p *Product) AddReview(name string, rating int, comment string) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, apperrors.MissingArgument("name")
	}
	if rating < 0 {
		return uuid.Nil, apperrors.InvalidInput("rating must not be negative")
	}

	review := ProductReview{
		ID:        uuid.New(),
		Name:      name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	p.Reviews = append(p.Reviews, review)
	return review.ID, nil
}

// ApproveReview marks a review as approved, recording the approval instant.
func (p *Product) ApproveReview(reviewID uuid.UUID) error {
	for i, r := range p.Reviews {
		if r.ID == reviewID {
			now := time.Now().UTC()
			p.Reviews[i].Approved = true
			p.Reviews[i].ApprovedOn = &now
			return nil
		}
	}
	return apperrors.NotFound("review", reviewID.String())
}

// RemoveReviewApproval clears a review's approval.
func (p *Product) RemoveReviewApproval(reviewID uuid.UUID) error {
	for i, r := range p.Reviews {
		if r.ID == reviewID {
			p.Reviews[i].Approved = false
			p.Reviews[i].ApprovedOn = nil
			return nil
		}
	}
	return apperrors.NotFound("review", reviewID.String())
}

// DeleteReview removes a review by id.
func (p *Product) DeleteReview(reviewID uuid.UUID) error {
	for i, r := range p.Reviews {
		if r.ID == reviewID {
			p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("review", reviewID.String())
}

// --- Images ---

// AddImage attaches an image to the product.
func (p *Product) AddImage(path, name, originalName string, isMain bool, uploadedOn time.Time) (uuid.UUID, error) {
	if strings.TrimSpace(path) == "" {
		return uuid.Nil, apperrors.MissingArgument("path")
	}
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(originalName) == "" {
		return uuid.Nil, apperrors.MissingArgument("originalName")
	}

	image := ProductImage{
		ID:           uuid.New(),
		Path:         path,
		Name:         name,
		OriginalName: originalName,
		IsMain:       isMain,
		UploadedOn:   uploadedOn,
	}
	p.Images = append(p.Images, image)
	return image.ID, nil
}

// DeleteImage removes an image by id.
func (p *Product) DeleteImage(imageID uuid.UUID) error {
	for i, img := range p.Images {
		if img.ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("image", imageID.String())
}
