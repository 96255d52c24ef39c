// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
)

// SellerFilter contains criteria for filtering sellers.
// All criteria are optional and combine with AND semantics.
type SellerFilter struct {
	// CategoryID filters sellers linked to this category.
	CategoryID *uuid.UUID

	// Type filters sellers by classification.
	Type *entity.SellerType

	// Platform filters sellers by marketplace.
	Platform *entity.Platform
}

// SellerStats summarizes the saved-seller collection.
type SellerStats struct {
	TotalCategories int                       `json:"totalCategories"`
	TotalSellers    int                       `json:"totalSellers"`
	ByPlatform      map[entity.Platform]int   `json:"byPlatform"`
	ByType          map[entity.SellerType]int `json:"byType"`
}

// CategoryRepository defines the interface for category persistance operations.
type CategoryRepository interface {
	// Create persists a new category to the data store.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - category: the category to create
	//
	// Returns:
	//   - error: any error encountered during creation
	Create(ctx context.Context, category *entity.Category) error

	// GetByID retrieves a category by its unique identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the category's UUID
	//
	// Returns:
	//   - *entity.Category: the retrieved category
	//   - error: ErrCategoryNotFound if the category doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// Update persists changes to an existing category.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - category: the category to update
	//
	// Returns:
	//   - error: ErrCategoryNotFound if the category doesn't exist
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Sellers linked to the category survive;
	// only the links are removed.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the category's UUID
	//
	// Returns:
	//   - error: ErrCategoryNotFound if the category doesn't exist
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll retrieves every category ordered by sort order ascending.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - []*entity.Category: ordered category list
	//   - error: any error encountered during retrieval
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Reorder rewrites the sort order of every listed category to match its
	// position in orderedIDs. Unknown IDs are ignored.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - orderedIDs: category IDs in their new display order
	//
	// Returns:
	//   - error: any error encountered during the update
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error

	// MaxSortOrder returns the highest sort order currently in use,
	// or -1 when no categories exist.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - int: highest sort order, -1 for an empty table
	//   - error: any error encountered during retrieval
	MaxSortOrder(ctx context.Context) (int, error)
}

// SellerRepository defines the interface for seller persistance operations.
//
// Example usage:
//
// repo := sqlite.NewSellerRepository(db)
// seller, err := repo.GetByPlatformID(ctx, entity.PlatformMercari, "u123")
type SellerRepository interface {
	// Create persists a new seller with its category links.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - seller: the seller to create
	//
	// Returns:
	//   - error: ErrDuplicateSeller if the (platform, platform ID) pair exists
	Create(ctx context.Context, seller *entity.Seller) error

	// GetByID retrieves a seller by its unique identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the seller's UUID
	//
	// Returns:
	//   - *entity.Seller: the retrieved seller with category links loaded
	//   - error: ErrSellerNotFound if the seller doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Seller, error)

	// GetByPlatformID retrieves a seller by its marketplace identity.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - platform: the marketplace
	//   - platformID: the seller's identifier within the marketplace
	//
	// Returns:
	//   - *entity.Seller: the retrieved seller with category links loaded
	//   - error: ErrSellerNotFound if the seller doesn't exist
	GetByPlatformID(ctx context.Context, platform entity.Platform, platformID string) (*entity.Seller, error)

	// Update persists changes to an existing seller, including its
	// category links.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - seller: the seller to update
	//
	// Returns:
	//   - error: ErrSellerNotFound if the seller doesn't exist
	Update(ctx context.Context, seller *entity.Seller) error

	// Delete removes a seller and its category links.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the seller's UUID
	//
	// Returns:
	//   - error: ErrSellerNotFound if the seller doesn't exist
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll retrieves sellers matching the filter, newest first.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - filter: criteria to filter sellers
	//
	// Returns:
	//   - []*entity.Seller: matching sellers with category links loaded
	//   - error: any error encountered during retrieval
	FindAll(ctx context.Context, filter SellerFilter) ([]*entity.Seller, error)

	// Stats summarizes the collection by platform and type.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - *SellerStats: collection summary
	//   - error: any error encountered during retrieval
	Stats(ctx context.Context) (*SellerStats, error)
}

// AppStateRepository persists small pieces of application state, such as
// the most recently used category.
type AppStateRepository interface {
	// LastCategoryID returns the most recently used category ID,
	// or uuid.Nil when none has been recorded.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//
	// Returns:
	//   - uuid.UUID: last used category, uuid.Nil when unset
	//   - error: any error encountered during retrieval
	LastCategoryID(ctx context.Context) (uuid.UUID, error)

	// SetLastCategoryID records the most recently used category ID.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: category ID to record
	//
	// Returns:
	//   - error: any error encountered during the write
	SetLastCategoryID(ctx context.Context, id uuid.UUID) error
}
