package integration

import (
	"testing"
	"time"
)

func createTestProduct(t *testing.T, prefix string) string {
	t.Helper()
	slug := uniqueSlug(prefix)
	status, data := httpPost(t, baseURL()+"/api/v1/products", map[string]interface{}{
		"ean":  uniqueEAN(),
		"sku":  "SKU-" + slug,
		"name": "Product " + slug,
		"url":  slug,
		"price": map[string]interface{}{
			"amount":   "49.99",
			"currency": "EUR",
		},
		"unit_in_stock": 10,
	})
	requireStatus(t, status, 201)
	return extractString(t, data, "data.id")
}

// TestProductCreateAndGet verifies the basic create/read cycle including
// the price value object.
func TestProductCreateAndGet(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "basic")

	status, data := httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)

	if got := extractString(t, data, "data.price.code"); got != "EUR" {
		t.Errorf("expected price code EUR, got %q", got)
	}
	if got := extractFloat(t, data, "data.unit_in_stock"); got != 10 {
		t.Errorf("expected 10 units in stock, got %v", got)
	}
}

// TestProductStockOperations walks through set, increment, and decrement,
// and verifies decrementing below zero is rejected.
func TestProductStockOperations(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "stock")

	status, _ := httpPut(t, baseURL()+"/api/v1/products/"+productID+"/stock", map[string]interface{}{
		"units": 5,
	})
	requireStatus(t, status, 200)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/stock/increment", map[string]interface{}{
		"units": 3,
	})
	requireStatus(t, status, 200)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/stock/decrement", map[string]interface{}{
		"units": 8,
	})
	requireStatus(t, status, 200)

	// Stock is now zero; one more unit must be rejected.
	status, data := httpPost(t, baseURL()+"/api/v1/products/"+productID+"/stock/decrement", map[string]interface{}{
		"units": 1,
	})
	requireStatus(t, status, 400)
	if code := extractString(t, data, "error.code"); code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %q", code)
	}

	status, data = httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	if got := extractFloat(t, data, "data.unit_in_stock"); got != 0 {
		t.Errorf("expected 0 units in stock, got %v", got)
	}
}

// TestProductSaleWindow puts a product on sale, checks the on_sale listing
// filter, then removes it from sale.
func TestProductSaleWindow(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "sale")

	from := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	to := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	status, _ := httpPost(t, baseURL()+"/api/v1/products/"+productID+"/sale", map[string]interface{}{
		"from": from,
		"to":   to,
	})
	requireStatus(t, status, 200)

	status, data := httpGet(t, baseURL()+"/api/v1/products?on_sale=true")
	requireStatus(t, status, 200)
	items, _ := extractField(data, "data").([]interface{})
	found := false
	for _, item := range items {
		m, _ := item.(map[string]interface{})
		if m["id"] == productID {
			found = true
		}
	}
	if !found {
		t.Error("product on sale not returned by on_sale filter")
	}

	status, _ = httpDelete(t, baseURL()+"/api/v1/products/"+productID+"/sale")
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	if onSale, _ := extractField(data, "data.is_on_sale").(bool); onSale {
		t.Error("expected product off sale after removal")
	}
}

// TestProductInvertedSaleWindowRejected verifies the sale window ordering rule.
func TestProductInvertedSaleWindowRejected(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "badsale")

	from := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	to := time.Now().UTC().Format(time.RFC3339)
	status, _ := httpPost(t, baseURL()+"/api/v1/products/"+productID+"/sale", map[string]interface{}{
		"from": from,
		"to":   to,
	})
	requireStatus(t, status, 400)
}

// TestProductTierPrices enables tier prices, adds a tier, and checks the
// disabled state is enforced first.
func TestProductTierPrices(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "tier")

	// Adding a tier while the feature is disabled must conflict.
	tierBody := map[string]interface{}{
		"from_quantity": 1,
		"to_quantity":   10,
		"price": map[string]interface{}{
			"amount":   "39.99",
			"currency": "EUR",
		},
	}
	status, _ := httpPost(t, baseURL()+"/api/v1/products/"+productID+"/tier-prices", tierBody)
	requireStatus(t, status, 409)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/tier-prices/enable", nil)
	requireStatus(t, status, 200)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/tier-prices", tierBody)
	requireStatus(t, status, 201)

	status, data := httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	tiers, _ := extractField(data, "data.tier_prices").([]interface{})
	if len(tiers) != 1 {
		t.Fatalf("expected 1 tier price, got %d", len(tiers))
	}
}

// TestProductReviewApproval adds a review and walks it through the
// approval states.
func TestProductReviewApproval(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "review")

	status, _ := httpPost(t, baseURL()+"/api/v1/products/"+productID+"/reviews", map[string]interface{}{
		"name":    "Reviewer",
		"rating":  4,
		"comment": "Works as described.",
	})
	requireStatus(t, status, 201)

	status, data := httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	reviews, _ := extractField(data, "data.reviews").([]interface{})
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	review, _ := reviews[0].(map[string]interface{})
	reviewID, _ := review["id"].(string)
	if approved, _ := review["approved"].(bool); approved {
		t.Error("new review must start unapproved")
	}

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/reviews/"+reviewID+"/approve", nil)
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	reviews, _ = extractField(data, "data.reviews").([]interface{})
	review, _ = reviews[0].(map[string]interface{})
	if approved, _ := review["approved"].(bool); !approved {
		t.Error("expected review approved")
	}
}

// TestProductVendorAndCategoryLinks associates a product with a brand and
// a category and checks the listing filters.
func TestProductVendorAndCategoryLinks(t *testing.T) {
	skipIfNotRunning(t)

	brandSlug := uniqueSlug("vendor")
	status, data := httpPost(t, baseURL()+"/api/v1/brands", map[string]interface{}{
		"name": "Vendor " + brandSlug,
		"url":  brandSlug,
	})
	requireStatus(t, status, 201)
	brandID := extractString(t, data, "data.id")

	catSlug := uniqueSlug("prod-cat")
	status, data = httpPost(t, baseURL()+"/api/v1/categories", map[string]interface{}{
		"code":       catSlug,
		"name":       "Cat " + catSlug,
		"is_visible": true,
	})
	requireStatus(t, status, 201)
	categoryID := extractString(t, data, "data.id")

	productID := createTestProduct(t, "linked")

	status, _ = httpPut(t, baseURL()+"/api/v1/products/"+productID+"/vendor/"+brandID, nil)
	requireStatus(t, status, 200)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/categories", map[string]interface{}{
		"category_id": categoryID,
		"is_main":     true,
	})
	requireStatus(t, status, 201)

	status, data = httpGet(t, baseURL()+"/api/v1/products?vendor_id="+brandID)
	requireStatus(t, status, 200)
	items, _ := extractField(data, "data").([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 product for vendor, got %d", len(items))
	}

	status, data = httpGet(t, baseURL()+"/api/v1/products?category_id="+categoryID)
	requireStatus(t, status, 200)
	items, _ = extractField(data, "data").([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 product in category, got %d", len(items))
	}
}

// TestProductSoftDeleteAndRestore verifies delete hides the product from
// the default listing and restore brings it back.
func TestProductSoftDeleteAndRestore(t *testing.T) {
	skipIfNotRunning(t)

	productID := createTestProduct(t, "lifecycle")

	status, _ := httpDelete(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)

	status, data := httpGet(t, baseURL()+"/api/v1/products")
	requireStatus(t, status, 200)
	items, _ := extractField(data, "data").([]interface{})
	for _, item := range items {
		m, _ := item.(map[string]interface{})
		if m["id"] == productID {
			t.Error("deleted product returned by default listing")
		}
	}

	// Deleting twice conflicts.
	status, _ = httpDelete(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 409)

	status, _ = httpPost(t, baseURL()+"/api/v1/products/"+productID+"/restore", nil)
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/products/"+productID)
	requireStatus(t, status, 200)
	if deleted, _ := extractField(data, "data.deleted").(bool); deleted {
		t.Error("expected product restored")
	}
}
