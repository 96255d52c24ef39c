package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
	"github.com/shiraberu/pricing-go/internal/infrastructure/persistance/sqlite"
)

func newSellerService(t *testing.T) *SellerService {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))

	return NewSellerService(
		sqlite.NewSellerRepository(db),
		sqlite.NewCategoryRepository(db),
		sqlite.NewAppStateRepository(db),
		nopLogger(),
	)
}

func strPtr(s string) *string { return &s }

func TestCreateCategory_AssignsIncreasingOrder(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, "Cameras")
	require.NoError(t, err)
	second, err := svc.CreateCategory(ctx, "Watches")
	require.NoError(t, err)

	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, 1, second.SortOrder)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cameras", list[0].Name)
}

func TestSaveSeller_NewThenMerge(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	catA, err := svc.CreateCategory(ctx, "A")
	require.NoError(t, err)
	catB, err := svc.CreateCategory(ctx, "B")
	require.NoError(t, err)

	created, err := svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform:    entity.PlatformMercari,
		PlatformID:  "u1",
		Name:        "camera-shop",
		URL:         "https://jp.mercari.com/user/profile/u1",
		CategoryIDs: []uuid.UUID{catA.ID},
		Memo:        strPtr("first visit"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SellerTypeOther, created.Type)

	// Last used category is recorded.
	last, err := svc.LastCategoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, catA.ID, last)

	// Saving again merges instead of failing on the unique key.
	merged, err := svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform:    entity.PlatformMercari,
		PlatformID:  "u1",
		Name:        "camera-shop-renamed",
		CategoryIDs: []uuid.UUID{catB.ID},
		Type:        entity.SellerTypeSupplier,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, merged.ID)
	assert.Equal(t, "camera-shop-renamed", merged.Name)
	assert.Equal(t, entity.SellerTypeSupplier, merged.Type)
	assert.ElementsMatch(t, []uuid.UUID{catA.ID, catB.ID}, merged.CategoryIDs)
	// Memo was not in the second request, so it survives.
	assert.Equal(t, "first visit", merged.Memo)

	last, err = svc.LastCategoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, catB.ID, last)
}

func TestSaveSeller_InvalidPlatform(t *testing.T) {
	svc := newSellerService(t)

	_, err := svc.SaveSeller(context.Background(), dto.SaveSellerRequest{
		Platform:   "amazon",
		PlatformID: "u1",
		Name:       "shop",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidSellerPlatform)
}

func TestUpdateSeller_PartialPatch(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	seller, err := svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform:   entity.PlatformEbay,
		PlatformID: "shop1",
		Name:       "original",
		Memo:       strPtr("keep"),
	})
	require.NoError(t, err)

	rival := entity.SellerTypeRival
	updated, err := svc.UpdateSeller(ctx, seller.ID, dto.UpdateSellerRequest{
		Type: &rival,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SellerTypeRival, updated.Type)
	assert.Equal(t, "original", updated.Name)
	assert.Equal(t, "keep", updated.Memo)
}

func TestUpdateSeller_NotFound(t *testing.T) {
	svc := newSellerService(t)

	_, err := svc.UpdateSeller(context.Background(), uuid.New(), dto.UpdateSellerRequest{})
	assert.ErrorIs(t, err, repository.ErrSellerNotFound)
}

func TestRemoveSellerFromCategory(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, "A")
	require.NoError(t, err)

	seller, err := svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform:    entity.PlatformMercari,
		PlatformID:  "u1",
		Name:        "shop",
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)

	updated, err := svc.RemoveSellerFromCategory(ctx, seller.ID, cat.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.CategoryIDs)
}

func TestListSellers_Filtered(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	_, err := svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform: entity.PlatformMercari, PlatformID: "u1", Name: "a",
		Type: entity.SellerTypeSupplier,
	})
	require.NoError(t, err)
	_, err = svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform: entity.PlatformEbay, PlatformID: "u2", Name: "b",
	})
	require.NoError(t, err)

	platform := entity.PlatformMercari
	got, err := svc.ListSellers(ctx, repository.SellerFilter{Platform: &platform})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestStats(t *testing.T) {
	svc := newSellerService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "A")
	require.NoError(t, err)
	_, err = svc.SaveSeller(ctx, dto.SaveSellerRequest{
		Platform: entity.PlatformMercari, PlatformID: "u1", Name: "a",
		Type: entity.SellerTypeCaution,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCategories)
	assert.Equal(t, 1, stats.TotalSellers)
	assert.Equal(t, 1, stats.ByType[entity.SellerTypeCaution])
}
