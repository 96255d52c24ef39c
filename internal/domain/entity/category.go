// Package entity contains the core bussiness entities of the domain layer.
package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category errors define domain-specific error conditions for categories.
var (
	ErrInvalidCategoryName = errors.New("category name cannot be empty")
)

// Category groups saved sellers for research purposes. Categories carry an
// explicit sort order so the user can arrange them manually.
type Category struct {
	// ID is the unique identifier for the category
	ID uuid.UUID `json:"id"`

	// Name is the display name of the category
	Name string `json:"name"`

	// SortOrder determines the position in category listings (ascending)
	SortOrder int `json:"order"`

	// CreatedAt is the timestamp when the category was created
	CreatedAt time.Time `json:"createdAt"`
}

// NewCategory creates a new Category entity.
// The name is trimmed of surrounding whitespace before validation.
//
// Parameters:
//   - name: display name of the category (required)
//   - sortOrder: position in the category listing
//
// Returns:
//   - *Category: newly created Category
//   - error: ErrInvalidCategoryName if the trimmed name is empty
func NewCategory(name string, sortOrder int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCategoryName
	}

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename updates the category's display name.
//
// Parameters:
//   - name: new display name (trimmed, must be non-empty)
//
// Returns:
//   - error: ErrInvalidCategoryName if the trimmed name is empty
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidCategoryName
	}
	c.Name = name
	return nil
}
