package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// Category is a node in the catalog's category tree. Parent and children are
// held as id references; the tree structure itself is owned by the
// repository.
type Category struct {
	ID          uuid.UUID   `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Description string      `json:"description,omitempty"`
	IsVisible   bool        `json:"is_visible"`
	VisibleFrom *time.Time  `json:"visible_from,omitempty"`
	VisibleTo   *time.Time  `json:"visible_to,omitempty"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	ChildrenIDs []uuid.UUID `json:"children_ids,omitempty"`
	Seo         *SeoData    `json:"seo,omitempty"`
	Deleted     bool        `json:"deleted"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewCategory creates a category with the required code, name and URL slug.
func NewCategory(code, name, url string) (*Category, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.MissingArgument("code")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(url) == "" {
		return nil, apperrors.MissingArgument("url")
	}

	return &Category{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ChangeCode changes the unique category code.
func (c *Category) ChangeCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return apperrors.MissingArgument("code")
	}
	c.Code = code
	return nil
}

// ChangeName renames the category.
func (c *Category) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.MissingArgument("name")
	}
	c.Name = name
	return nil
}

// ChangeURL changes the category's URL slug.
func (c *Category) ChangeURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return apperrors.MissingArgument("url")
	}
	c.URL = url
	return nil
}

// ChangeDescription replaces the description. An empty string clears it.
func (c *Category) ChangeDescription(description string) {
	c.Description = description
}

// SetAsVisible makes the category visible starting now, with no end date.
func (c *Category) SetAsVisible() {
	now := time.Now().UTC()
	c.IsVisible = true
	c.VisibleFrom = &now
	c.VisibleTo = nil
}

// SetAsVisibleFrom makes the category visible from the given instant, with
// no end date.
func (c *Category) SetAsVisibleFrom(from time.Time) {
	c.IsVisible = true
	c.VisibleFrom = &from
	c.VisibleTo = nil
}

// SetAsVisibleBetween makes the category visible within the given window.
// The from date must precede the to date.
func (c *Category) SetAsVisibleBetween(from, to time.Time) error {
	if !from.Before(to) {
		return apperrors.InvalidInput("the from date should be previous to the end date")
	}
	c.IsVisible = true
	c.VisibleFrom = &from
	c.VisibleTo = &to
	return nil
}

// Hide makes the category invisible and clears its visibility window.
func (c *Category) Hide() {
	c.IsVisible = false
	c.VisibleFrom = nil
	c.VisibleTo = nil
}

// AddChild registers the given category as a child of this one. A category
// can appear among the children only once.
func (c *Category) AddChild(child *Category) error {
	if child == nil {
		return apperrors.MissingArgument("child")
	}
	for _, id := range c.ChildrenIDs {
		if id == child.ID {
			return apperrors.Duplicate(fmt.Sprintf("category %s is already a child", child.ID))
		}
	}
	c.ChildrenIDs = append(c.ChildrenIDs, child.ID)
	child.ParentID = &c.ID
	return nil
}

// RemoveChild detaches a child category by id.
func (c *Category) RemoveChild(childID uuid.UUID) error {
	if childID == uuid.Nil {
		return apperrors.MissingArgument("childID")
	}
	for i, id := range c.ChildrenIDs {
		if id == childID {
			c.ChildrenIDs = append(c.ChildrenIDs[:i], c.ChildrenIDs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("child category", childID.String())
}

// SetParent makes the given category the parent of this one.
func (c *Category) SetParent(parent *Category) error {
	if parent == nil {
		return apperrors.MissingArgument("parent")
	}
	c.ParentID = &parent.ID
	return nil
}

// RemoveParent detaches the category from its parent.
func (c *Category) RemoveParent() {
	c.ParentID = nil
}

// SetSeoData attaches the SEO information to the category.
func (c *Category) SetSeoData(seo *SeoData) error {
	if seo == nil {
		return apperrors.MissingArgument("seo")
	}
	c.Seo = seo
	return nil
}

// Delete soft-deletes the category.
func (c *Category) Delete() error {
	if c.Deleted {
		return apperrors.InvalidState("Category already deleted")
	}
	c.Deleted = true
	return nil
}

// Restore brings a soft-deleted category back.
func (c *Category) Restore() error {
	if !c.Deleted {
		return apperrors.InvalidState("Category is not deleted")
	}
	c.Deleted = false
	return nil
}
