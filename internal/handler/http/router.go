package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wilcommerce/catalog/internal/service"
	"github.com/wilcommerce/catalog/pkg/health"
	"github.com/wilcommerce/catalog/pkg/middleware"
)

// catalogReadMaxAge is the Cache-Control max-age for public catalog reads.
const catalogReadMaxAge = 30

// NewRouter creates a chi router with all catalog routes registered.
// Reads are public; mutations require the admin role injected by the gateway.
func NewRouter(
	brandService *service.BrandService,
	categoryService *service.CategoryService,
	attributeService *service.CustomAttributeService,
	productService *service.ProductService,
	settingsService *service.SettingsService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
	pprofAllowedCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.PrometheusMetrics("catalog"))
	r.Use(middleware.Tracing("catalog"))
	r.Use(middleware.GatewayIdentity)
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Prometheus metrics endpoint
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints, restricted by IP allowlist.
	middleware.RegisterPprof(r, pprofAllowedCIDRs, logger)

	requireAdmin := middleware.RequireRole("admin")

	// Brand API endpoints
	brandHandler := NewBrandHandler(brandService, logger)

	r.Route("/api/v1/brands", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogReadMaxAge))
			r.Get("/", brandHandler.ListBrands)
			r.Get("/{id}", brandHandler.GetBrand)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", brandHandler.CreateBrand)
			r.Put("/{id}", brandHandler.UpdateBrand)
			r.Put("/{id}/seo", brandHandler.SetBrandSeoData)
			r.Delete("/{id}", brandHandler.DeleteBrand)
			r.Post("/{id}/restore", brandHandler.RestoreBrand)
		})
	})

	// Category API endpoints
	categoryHandler := NewCategoryHandler(categoryService, logger)

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogReadMaxAge))
			r.Get("/", categoryHandler.ListCategories)
			r.Get("/{id}", categoryHandler.GetCategory)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
			r.Put("/{id}/visibility", categoryHandler.SetCategoryVisibility)
			r.Post("/{id}/children/{childId}", categoryHandler.AddCategoryChild)
			r.Delete("/{id}/children/{childId}", categoryHandler.RemoveCategoryChild)
			r.Put("/{id}/parent/{parentId}", categoryHandler.SetCategoryParent)
			r.Delete("/{id}/parent", categoryHandler.RemoveCategoryParent)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
			r.Post("/{id}/restore", categoryHandler.RestoreCategory)
		})
	})

	// Custom attribute API endpoints
	attributeHandler := NewCustomAttributeHandler(attributeService, logger)

	r.Route("/api/v1/attributes", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogReadMaxAge))
			r.Get("/", attributeHandler.ListAttributes)
			r.Get("/{id}", attributeHandler.GetAttribute)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", attributeHandler.CreateAttribute)
			r.Put("/{id}", attributeHandler.UpdateAttribute)
			r.Post("/{id}/values", attributeHandler.AddAttributeValue)
			r.Delete("/{id}/values/{value}", attributeHandler.RemoveAttributeValue)
			r.Delete("/{id}", attributeHandler.DeleteAttribute)
			r.Post("/{id}/restore", attributeHandler.RestoreAttribute)
		})
	})

	// Product API endpoints
	productHandler := NewProductHandler(productService, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogReadMaxAge))
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})

		// Reviews come from shoppers, not catalog admins.
		r.Post("/{id}/reviews", productHandler.AddProductReview)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
			r.Post("/{id}/restore", productHandler.RestoreProduct)

			r.Put("/{id}/price", productHandler.SetProductPrice)
			r.Put("/{id}/stock", productHandler.SetProductStock)
			r.Post("/{id}/stock/increment", productHandler.AddProductStock)
			r.Post("/{id}/stock/decrement", productHandler.RemoveProductStock)
			r.Post("/{id}/sale", productHandler.SetProductOnSale)
			r.Delete("/{id}/sale", productHandler.RemoveProductFromSale)
			r.Put("/{id}/vendor/{brandId}", productHandler.SetProductVendor)
			r.Put("/{id}/seo", productHandler.SetProductSeoData)

			r.Post("/{id}/variants", productHandler.AddProductVariant)
			r.Delete("/{id}/variants/{variantId}", productHandler.RemoveProductVariant)

			r.Post("/{id}/categories", productHandler.AddProductCategory)
			r.Delete("/{id}/categories/{categoryId}", productHandler.RemoveProductCategory)

			r.Post("/{id}/attributes", productHandler.AddProductAttribute)
			r.Delete("/{id}/attributes/{attributeId}", productHandler.RemoveProductAttribute)

			r.Post("/{id}/tier-prices/enable", productHandler.EnableProductTierPrices)
			r.Post("/{id}/tier-prices/disable", productHandler.DisableProductTierPrices)
			r.Post("/{id}/tier-prices", productHandler.AddProductTierPrice)
			r.Put("/{id}/tier-prices/{tierPriceId}", productHandler.ChangeProductTierPrice)
			r.Delete("/{id}/tier-prices/{tierPriceId}", productHandler.RemoveProductTierPrice)

			r.Post("/{id}/reviews/{reviewId}/approve", productHandler.ApproveProductReview)
			r.Delete("/{id}/reviews/{reviewId}/approve", productHandler.RemoveProductReviewApproval)
			r.Delete("/{id}/reviews/{reviewId}", productHandler.RemoveProductReview)

			r.Post("/{id}/images", productHandler.AddProductImage)
			r.Delete("/{id}/images/{imageId}", productHandler.RemoveProductImage)
		})
	})

	// Settings API endpoints
	settingsHandler := NewSettingsHandler(settingsService, logger)

	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", settingsHandler.GetSettings)
		r.With(requireAdmin).Put("/", settingsHandler.UpdateSettings)
	})

	return r
}
