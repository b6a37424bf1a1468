package integration

import (
	"testing"
)

// TestBrandLifecycle creates a brand, updates it, soft-deletes it, and
// restores it, verifying each state transition via GET.
func TestBrandLifecycle(t *testing.T) {
	skipIfNotRunning(t)

	slug := uniqueSlug("brand")
	status, data := httpPost(t, baseURL()+"/api/v1/brands", map[string]interface{}{
		"name": "Integration Brand " + slug,
		"url":  slug,
	})
	requireStatus(t, status, 201)
	brandID := extractString(t, data, "data.id")

	// Update the name.
	status, _ = httpPut(t, baseURL()+"/api/v1/brands/"+brandID, map[string]interface{}{
		"name": "Renamed Brand " + slug,
	})
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/brands/"+brandID)
	requireStatus(t, status, 200)
	if got := extractString(t, data, "data.name"); got != "Renamed Brand "+slug {
		t.Errorf("expected updated name, got %q", got)
	}

	// Set SEO data.
	status, _ = httpPut(t, baseURL()+"/api/v1/brands/"+brandID+"/seo", map[string]interface{}{
		"title":       "Brand SEO title",
		"description": "Brand SEO description",
	})
	requireStatus(t, status, 200)

	// Soft delete, then restore.
	status, _ = httpDelete(t, baseURL()+"/api/v1/brands/"+brandID)
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/brands/"+brandID)
	requireStatus(t, status, 200)
	if deleted, _ := extractField(data, "data.deleted").(bool); !deleted {
		t.Error("expected brand to be marked deleted")
	}

	status, _ = httpPost(t, baseURL()+"/api/v1/brands/"+brandID+"/restore", nil)
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/brands/"+brandID)
	requireStatus(t, status, 200)
	if deleted, _ := extractField(data, "data.deleted").(bool); deleted {
		t.Error("expected brand to be restored")
	}
}

// TestBrandDuplicateURLRejected verifies the unique-URL rule.
func TestBrandDuplicateURLRejected(t *testing.T) {
	skipIfNotRunning(t)

	slug := uniqueSlug("dup-brand")
	status, _ := httpPost(t, baseURL()+"/api/v1/brands", map[string]interface{}{
		"name": "First " + slug,
		"url":  slug,
	})
	requireStatus(t, status, 201)

	status, data := httpPost(t, baseURL()+"/api/v1/brands", map[string]interface{}{
		"name": "Second " + slug,
		"url":  slug,
	})
	requireStatus(t, status, 409)
	if code := extractString(t, data, "error.code"); code != "ALREADY_EXISTS" {
		t.Errorf("expected ALREADY_EXISTS error code, got %q", code)
	}
}

// TestCategoryTreeFlow builds a small parent/child tree and verifies
// both sides of the relation stay consistent.
func TestCategoryTreeFlow(t *testing.T) {
	skipIfNotRunning(t)

	parentSlug := uniqueSlug("parent-cat")
	status, data := httpPost(t, baseURL()+"/api/v1/categories", map[string]interface{}{
		"code":       parentSlug,
		"name":       "Parent " + parentSlug,
		"is_visible": true,
	})
	requireStatus(t, status, 201)
	parentID := extractString(t, data, "data.id")

	childSlug := uniqueSlug("child-cat")
	status, data = httpPost(t, baseURL()+"/api/v1/categories", map[string]interface{}{
		"code":       childSlug,
		"name":       "Child " + childSlug,
		"is_visible": true,
	})
	requireStatus(t, status, 201)
	childID := extractString(t, data, "data.id")

	status, _ = httpPost(t, baseURL()+"/api/v1/categories/"+parentID+"/children/"+childID, nil)
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/categories/"+childID)
	requireStatus(t, status, 200)
	if got := extractString(t, data, "data.parent_id"); got != parentID {
		t.Errorf("expected child parent_id %s, got %s", parentID, got)
	}

	// Children listable through the parent filter.
	status, data = httpGet(t, baseURL()+"/api/v1/categories?parent_id="+parentID)
	requireStatus(t, status, 200)
	items, ok := extractField(data, "data").([]interface{})
	if !ok || len(items) == 0 {
		t.Fatal("expected at least one category under the parent filter")
	}

	// Detach and verify.
	status, _ = httpDelete(t, baseURL()+"/api/v1/categories/"+childID+"/parent")
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/categories/"+childID)
	requireStatus(t, status, 200)
	if parent := extractField(data, "data.parent_id"); parent != nil {
		t.Errorf("expected parent_id cleared, got %v", parent)
	}
}

// TestCategoryVisibilityWindow hides a category and confirms the
// visible_at filter excludes it.
func TestCategoryVisibilityWindow(t *testing.T) {
	skipIfNotRunning(t)

	slug := uniqueSlug("hidden-cat")
	status, data := httpPost(t, baseURL()+"/api/v1/categories", map[string]interface{}{
		"code":       slug,
		"name":       "Hidden " + slug,
		"is_visible": false,
	})
	requireStatus(t, status, 201)
	categoryID := extractString(t, data, "data.id")

	status, data = httpGet(t, baseURL()+"/api/v1/categories?visible_at=2030-01-01T00:00:00Z")
	requireStatus(t, status, 200)
	items, _ := extractField(data, "data").([]interface{})
	for _, item := range items {
		m, _ := item.(map[string]interface{})
		if m["id"] == categoryID {
			t.Error("hidden category returned by visible_at filter")
		}
	}
}

// TestCustomAttributeValueManagement creates an attribute and manages
// its admitted values.
func TestCustomAttributeValueManagement(t *testing.T) {
	skipIfNotRunning(t)

	slug := uniqueSlug("attr")
	status, data := httpPost(t, baseURL()+"/api/v1/attributes", map[string]interface{}{
		"name":            "Size " + slug,
		"data_type":       "string",
		"unit_of_measure": "cm",
		"values":          []string{"S", "M"},
	})
	requireStatus(t, status, 201)
	attributeID := extractString(t, data, "data.id")

	status, _ = httpPost(t, baseURL()+"/api/v1/attributes/"+attributeID+"/values", map[string]interface{}{
		"value": "L",
	})
	requireStatus(t, status, 200)

	status, _ = httpDelete(t, baseURL()+"/api/v1/attributes/"+attributeID+"/values/M")
	requireStatus(t, status, 200)

	status, data = httpGet(t, baseURL()+"/api/v1/attributes/"+attributeID)
	requireStatus(t, status, 200)
	values, _ := extractField(data, "data.values").([]interface{})
	if len(values) != 2 {
		t.Fatalf("expected 2 values after add+remove, got %v", values)
	}
	for _, v := range values {
		if v == "M" {
			t.Error("removed value still present")
		}
	}
}
