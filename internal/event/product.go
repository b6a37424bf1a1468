package event

import (
	"context"
	"time"

	"github.com/wilcommerce/catalog/internal/domain"
)

// Kafka topic constants for product domain events.
const (
	TopicProductCreated        = "catalog.product.created"
	TopicProductUpdated        = "catalog.product.updated"
	TopicProductStockChanged   = "catalog.product.stock_changed"
	TopicProductSaleChanged    = "catalog.product.sale_changed"
	TopicProductReviewAdded    = "catalog.product.review_added"
	TopicProductReviewApproved = "catalog.product.review_approved"
	TopicProductDeleted        = "catalog.product.deleted"
	TopicProductRestored       = "catalog.product.restored"
)

// ProductData is the payload for product.created and product.updated events.
type ProductData struct {
	ID          string  `json:"id"`
	EAN         string  `json:"ean"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description,omitempty"`
	PriceAmount string  `json:"price_amount,omitempty"`
	PriceCode   string  `json:"price_code,omitempty"`
	UnitInStock int     `json:"unit_in_stock"`
	VendorID    *string `json:"vendor_id,omitempty"`
}

// ProductStockData is the payload for a product.stock_changed event.
type ProductStockData struct {
	ID          string `json:"id"`
	UnitInStock int    `json:"unit_in_stock"`
}

// ProductSaleData is the payload for a product.sale_changed event.
type ProductSaleData struct {
	ID         string     `json:"id"`
	IsOnSale   bool       `json:"is_on_sale"`
	OnSaleFrom *time.Time `json:"on_sale_from,omitempty"`
	OnSaleTo   *time.Time `json:"on_sale_to,omitempty"`
}

// ProductReviewData is the payload for product.review_added and
// product.review_approved events.
type ProductReviewData struct {
	ProductID string `json:"product_id"`
	ReviewID  string `json:"review_id"`
	Name      string `json:"name,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

// ProductRefData is the payload for product.deleted and product.restored
// events.
type ProductRefData struct {
	ID string `json:"id"`
}

func productData(product *domain.Product) ProductData {
	data := ProductData{
		ID:          product.ID.String(),
		EAN:         product.EAN,
		SKU:         product.SKU,
		Name:        product.Name,
		URL:         product.URL,
		Description: product.Description,
		UnitInStock: product.UnitInStock,
	}
	if product.Price != nil {
		data.PriceAmount = product.Price.Amount.String()
		data.PriceCode = product.Price.Code
	}
	if product.VendorID != nil {
		vendor := product.VendorID.String()
		data.VendorID = &vendor
	}
	return data
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product, actorID string) error {
	return p.publish(ctx, TopicProductCreated, product.ID.String(), AggregateTypeProduct, actorID, productData(product))
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product, actorID string) error {
	return p.publish(ctx, TopicProductUpdated, product.ID.String(), AggregateTypeProduct, actorID, productData(product))
}

// PublishProductStockChanged publishes a product.stock_changed event.
func (p *Producer) PublishProductStockChanged(ctx context.Context, product *domain.Product, actorID string) error {
	data := ProductStockData{
		ID:          product.ID.String(),
		UnitInStock: product.UnitInStock,
	}
	return p.publish(ctx, TopicProductStockChanged, product.ID.String(), AggregateTypeProduct, actorID, data)
}

// PublishProductSaleChanged publishes a product.sale_changed event.
func (p *Producer) PublishProductSaleChanged(ctx context.Context, product *domain.Product, actorID string) error {
	data := ProductSaleData{
		ID:         product.ID.String(),
		IsOnSale:   product.IsOnSale,
		OnSaleFrom: product.OnSaleFrom,
		OnSaleTo:   product.OnSaleTo,
	}
	return p.publish(ctx, TopicProductSaleChanged, product.ID.String(), AggregateTypeProduct, actorID, data)
}

// PublishProductReviewAdded publishes a product.review_added event.
func (p *Producer) PublishProductReviewAdded(ctx context.Context, productID, reviewID, name string, rating int, actorID string) error {
	data := ProductReviewData{
		ProductID: productID,
		ReviewID:  reviewID,
		Name:      name,
		Rating:    rating,
	}
	return p.publish(ctx, TopicProductReviewAdded, productID, AggregateTypeProduct, actorID, data)
}

// PublishProductReviewApproved publishes a product.review_approved event.
func (p *Producer) PublishProductReviewApproved(ctx context.Context, productID, reviewID string, actorID string) error {
	data := ProductReviewData{
		ProductID: productID,
		ReviewID:  reviewID,
	}
	return p.publish(ctx, TopicProductReviewApproved, productID, AggregateTypeProduct, actorID, data)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, actorID, ProductRefData{ID: id})
}

// PublishProductRestored publishes a product.restored event.
func (p *Producer) PublishProductRestored(ctx context.Context, id string, actorID string) error {
	return p.publish(ctx, TopicProductRestored, id, AggregateTypeProduct, actorID, ProductRefData{ID: id})
}
