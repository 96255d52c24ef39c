package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/port"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// SellerService manages the saved-seller collection: categories, seller
// records, and the last-used-category convenience state.
type SellerService struct {
	sellers    repository.SellerRepository
	categories repository.CategoryRepository
	appState   repository.AppStateRepository
	logger     port.Logger
}

// NewSellerService creates a seller service.
func NewSellerService(
	sellers repository.SellerRepository,
	categories repository.CategoryRepository,
	appState repository.AppStateRepository,
	logger port.Logger,
) *SellerService {
	return &SellerService{
		sellers:    sellers,
		categories: categories,
		appState:   appState,
		logger:     logger,
	}
}

// CreateCategory creates a category at the end of the current ordering.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - name: category display name
//
// Returns:
//   - *entity.Category: the created category
//   - error: entity validation or repository errors
func (s *SellerService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	maxOrder, err := s.categories.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	category, err := entity.NewCategory(name, maxOrder+1)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// ListCategories returns every category in display order.
func (s *SellerService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.categories.FindAll(ctx)
}

// RenameCategory renames an existing category.
func (s *SellerService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Sellers linked to it survive with the
// link removed.
func (s *SellerService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// ReorderCategories rewrites the category display order.
func (s *SellerService) ReorderCategories(ctx context.Context, orderedIDs []uuid.UUID) error {
	return s.categories.Reorder(ctx, orderedIDs)
}

// SaveSeller saves a seller found on a marketplace page. When the
// (platform, platform ID) pair is already saved, the save merges into the
// existing record: category links accumulate, the type is overwritten when
// provided, and the memo is overwritten when present in the request. The
// first linked category becomes the new last-used category.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - req: the save request
//
// Returns:
//   - *entity.Seller: the created or merged seller
//   - error: entity validation or repository errors
func (s *SellerService) SaveSeller(ctx context.Context, req dto.SaveSellerRequest) (*entity.Seller, error) {
	existing, err := s.sellers.GetByPlatformID(ctx, req.Platform, req.PlatformID)
	switch {
	case err == nil:
		memo := ""
		if req.Memo != nil {
			memo = *req.Memo
		}
		if err := existing.MergeSave(req.Name, req.URL, req.CategoryIDs, req.Type, memo, req.Memo != nil); err != nil {
			return nil, err
		}
		if err := s.sellers.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("seller merged",
			"seller_id", existing.ID,
			"platform", existing.Platform,
			"platform_id", existing.PlatformID,
		)
		if err := s.rememberCategory(ctx, req.CategoryIDs); err != nil {
			return nil, err
		}
		return existing, nil

	case errors.Is(err, repository.ErrSellerNotFound):
		seller, err := entity.NewSeller(req.Platform, req.PlatformID, req.Name, req.URL, req.Type)
		if err != nil {
			return nil, err
		}
		if req.Memo != nil {
			seller.Memo = *req.Memo
		}
		for _, id := range req.CategoryIDs {
			seller.AddCategory(id)
		}
		if err := s.sellers.Create(ctx, seller); err != nil {
			return nil, err
		}
		s.logger.Info("seller saved",
			"seller_id", seller.ID,
			"platform", seller.Platform,
			"platform_id", seller.PlatformID,
		)
		if err := s.rememberCategory(ctx, req.CategoryIDs); err != nil {
			return nil, err
		}
		return seller, nil

	default:
		return nil, err
	}
}

// GetSeller retrieves a seller by ID.
func (s *SellerService) GetSeller(ctx context.Context, id uuid.UUID) (*entity.Seller, error) {
	return s.sellers.GetByID(ctx, id)
}

// GetSellerByPlatformID retrieves a seller by its marketplace identity.
// Useful for "is this seller already saved" checks from the listing page.
func (s *SellerService) GetSellerByPlatformID(ctx context.Context, platform entity.Platform, platformID string) (*entity.Seller, error) {
	return s.sellers.GetByPlatformID(ctx, platform, platformID)
}

// ListSellers retrieves sellers matching the filter, newest first.
func (s *SellerService) ListSellers(ctx context.Context, filter repository.SellerFilter) ([]*entity.Seller, error) {
	return s.sellers.FindAll(ctx, filter)
}

// UpdateSeller edits an already saved seller. Nil request fields keep their
// current value; a non-nil CategoryIDs replaces the links wholesale.
func (s *SellerService) UpdateSeller(ctx context.Context, id uuid.UUID, req dto.UpdateSellerRequest) (*entity.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, entity.ErrInvalidSellerType
		}
		seller.Type = *req.Type
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, entity.ErrInvalidSellerName
		}
		seller.Name = *req.Name
	}
	if req.URL != nil {
		seller.URL = *req.URL
	}
	if req.Memo != nil {
		seller.Memo = *req.Memo
	}
	if req.CategoryIDs != nil {
		seller.CategoryIDs = append([]uuid.UUID(nil), (*req.CategoryIDs)...)
	}

	if err := s.sellers.Update(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// DeleteSeller removes a seller.
func (s *SellerService) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	if err := s.sellers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("seller deleted", "seller_id", id)
	return nil
}

// RemoveSellerFromCategory unlinks a seller from one category.
func (s *SellerService) RemoveSellerFromCategory(ctx context.Context, sellerID, categoryID uuid.UUID) (*entity.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	seller.RemoveCategory(categoryID)
	if err := s.sellers.Update(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// LastCategoryID returns the most recently used category, or uuid.Nil.
func (s *SellerService) LastCategoryID(ctx context.Context) (uuid.UUID, error) {
	return s.appState.LastCategoryID(ctx)
}

// Stats summarizes the collection by platform and type.
func (s *SellerService) Stats(ctx context.Context) (*repository.SellerStats, error) {
	return s.sellers.Stats(ctx)
}

func (s *SellerService) rememberCategory(ctx context.Context, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return s.appState.SetLastCategoryID(ctx, categoryIDs[0])
}
