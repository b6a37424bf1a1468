package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

// CustomAttribute defines a named attribute (e.g. "color", "capacity") with
// the set of values a product may take for it. Values are an explicit
// ordered list of opaque strings.
type CustomAttribute struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	UnitOfMeasure string    `json:"unit_of_measure,omitempty"`
	DataType      string    `json:"data_type"`
	Values        []string  `json:"values,omitempty"`
	Deleted       bool      `json:"deleted"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCustomAttribute creates an attribute with the required name and data
// type tag.
func NewCustomAttribute(name, dataType string) (*CustomAttribute, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.MissingArgument("name")
	}
	if strings.TrimSpace(dataType) == "" {
		return nil, apperrors.MissingArgument("dataType")
	}

	return &CustomAttribute{
		ID:        uuid.New(),
		Name:      name,
		DataType:  dataType,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AddValue appends a value to the permitted set. Duplicates are rejected.
func (a *CustomAttribute) AddValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.MissingArgument("value")
	}
	for _, v := range a.Values {
		if v == value {
			return apperrors.Duplicate(fmt.Sprintf("value %q is already present", value))
		}
	}
	a.Values = append(a.Values, value)
	return nil
}

// RemoveValue removes a value from the permitted set.
func (a *CustomAttribute) RemoveValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.MissingArgument("value")
	}
	if len(a.Values) == 0 {
		return apperrors.InvalidState("Cannot remove item from empty list")
	}
	for i, v := range a.Values {
		if v == value {
			a.Values = append(a.Values[:i], a.Values[i+1:]...)
			return nil
		}
	}
	return apperrors.InvalidInput(fmt.Sprintf("value %q not found", value))
}

// ChangeName renames the attribute.
func (a *CustomAttribute) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.MissingArgument("name")
	}
	a.Name = name
	return nil
}

// ChangeDescription replaces the description. An empty string clears it.
func (a *CustomAttribute) ChangeDescription(description string) {
	a.Description = description
}

// SetUnitOfMeasure sets the unit of measure (e.g. "cm", "kg").
func (a *CustomAttribute) SetUnitOfMeasure(unit string) {
	a.UnitOfMeasure = unit
}

// ChangeDataType changes the free-form data type tag.
func (a *CustomAttribute) ChangeDataType(dataType string) error {
	if strings.TrimSpace(dataType) == "" {
		return apperrors.MissingArgument("dataType")
	}
	a.DataType = dataType
	return nil
}

// Delete soft-deletes the attribute.
func (a *CustomAttribute) Delete() error {
	if a.Deleted {
		return apperrors.InvalidState("Attribute already deleted")
	}
	a.Deleted = true
	return nil
}

// Restore brings a soft-deleted attribute back.
func (a *CustomAttribute) Restore() error {
	if !a.Deleted {
		return apperrors.InvalidState("Attribute is not deleted")
	}
	a.Deleted = false
	return nil
}
