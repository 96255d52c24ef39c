package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
)

// SaveSellerRequest saves a seller found on a marketplace page. Saving the
// same (platform, platform ID) pair again merges category links into the
// existing record instead of failing.
type SaveSellerRequest struct {
	// Platform is the marketplace the seller was found on.
	Platform entity.Platform `json:"platform"`

	// PlatformID is the seller's identifier within the marketplace.
	PlatformID string `json:"platformId"`

	// Name is the seller's display name.
	Name string `json:"name"`

	// URL points to the seller's profile page.
	URL string `json:"url"`

	// CategoryIDs lists categories to link the seller to.
	CategoryIDs []uuid.UUID `json:"categoryIds,omitempty"`

	// Type classifies the seller; empty keeps the existing classification
	// (or defaults to "other" for a new seller).
	Type entity.SellerType `json:"type,omitempty"`

	// Memo replaces the seller's memo when present.
	Memo *string `json:"memo,omitempty"`
}

// UpdateSellerRequest edits an already saved seller. Nil fields keep their
// current value.
type UpdateSellerRequest struct {
	Name        *string            `json:"name,omitempty"`
	URL         *string            `json:"url,omitempty"`
	Type        *entity.SellerType `json:"type,omitempty"`
	Memo        *string            `json:"memo,omitempty"`
	CategoryIDs *[]uuid.UUID       `json:"categoryIds,omitempty"`
}

// CreateCategoryRequest creates a new seller category.
type CreateCategoryRequest struct {
	// Name is the category display name.
	Name string `json:"name"`
}

// UpdateCategoryRequest renames a category.
type UpdateCategoryRequest struct {
	// Name is the new category display name.
	Name string `json:"name"`
}

// ReorderCategoriesRequest rewrites the category display order.
type ReorderCategoriesRequest struct {
	// OrderedIDs lists every category ID in its new display position.
	OrderedIDs []uuid.UUID `json:"orderedIds"`
}

// ExportEnvelope is the versioned JSON export format for the seller
// collection. Imports reject envelopes written by a newer schema version.
type ExportEnvelope struct {
	// Version is the schema version of the export.
	Version int `json:"version"`

	// ExportedAt is when the export was produced.
	ExportedAt time.Time `json:"exportedAt"`

	// Categories holds every category.
	Categories []*entity.Category `json:"categories"`

	// Sellers holds every seller with its category links.
	Sellers []*entity.Seller `json:"sellers"`
}
