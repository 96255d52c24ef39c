package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func mustCategory(t *testing.T, name string, order int) *entity.Category {
	t.Helper()
	cat, err := entity.NewCategory(name, order)
	require.NoError(t, err)
	return cat
}

func mustSeller(t *testing.T, platform entity.Platform, platformID, name string, sellerType entity.SellerType) *entity.Seller {
	t.Helper()
	s, err := entity.NewSeller(platform, platformID, name, "https://example.com/"+platformID, sellerType)
	require.NoError(t, err)
	return s
}

func TestCategoryRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	cat := mustCategory(t, "Cameras", 0)
	require.NoError(t, repo.Create(ctx, cat))

	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.ID)
	assert.Equal(t, "Cameras", got.Name)
	assert.Equal(t, 0, got.SortOrder)
	assert.True(t, cat.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, got.Rename("Film Cameras"))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Film Cameras", got.Name)

	require.NoError(t, repo.Delete(ctx, cat.ID))
	_, err = repo.GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), repository.ErrCategoryNotFound)

	cat := mustCategory(t, "ghost", 0)
	assert.ErrorIs(t, repo.Update(ctx, cat), repository.ErrCategoryNotFound)
}

func TestCategoryRepository_FindAllOrdered(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	catB := mustCategory(t, "B", 1)
	catA := mustCategory(t, "A", 0)
	catC := mustCategory(t, "C", 2)
	for _, c := range []*entity.Category{catB, catA, catC} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
	assert.Equal(t, "C", all[2].Name)
}

func TestCategoryRepository_Reorder(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	catA := mustCategory(t, "A", 0)
	catB := mustCategory(t, "B", 1)
	for _, c := range []*entity.Category{catA, catB} {
		require.NoError(t, repo.Create(ctx, c))
	}

	// Reverse the order, interleaving an unknown ID that must be ignored.
	require.NoError(t, repo.Reorder(ctx, []uuid.UUID{catB.ID, uuid.New(), catA.ID}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Name)
	assert.Equal(t, "A", all[1].Name)
}

func TestCategoryRepository_MaxSortOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	max, err := repo.MaxSortOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, max)

	require.NoError(t, repo.Create(ctx, mustCategory(t, "A", 4)))

	max, err = repo.MaxSortOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, max)
}

func TestSellerRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	catRepo := NewCategoryRepository(db)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	cat := mustCategory(t, "Watches", 0)
	require.NoError(t, catRepo.Create(ctx, cat))

	seller := mustSeller(t, entity.PlatformMercari, "u123", "tokyo-watch", entity.SellerTypeSupplier)
	seller.AddCategory(cat.ID)
	seller.Memo = "fast shipper"
	require.NoError(t, repo.Create(ctx, seller))

	got, err := repo.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.Name, got.Name)
	assert.Equal(t, entity.SellerTypeSupplier, got.Type)
	assert.Equal(t, "fast shipper", got.Memo)
	assert.Equal(t, []uuid.UUID{cat.ID}, got.CategoryIDs)
	assert.True(t, seller.SavedAt.Equal(got.SavedAt))

	byPlatform, err := repo.GetByPlatformID(ctx, entity.PlatformMercari, "u123")
	require.NoError(t, err)
	assert.Equal(t, seller.ID, byPlatform.ID)
}

func TestSellerRepository_DuplicatePlatformID(t *testing.T) {
	db := openTestDB(t)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	first := mustSeller(t, entity.PlatformEbay, "shop1", "first", "")
	require.NoError(t, repo.Create(ctx, first))

	second := mustSeller(t, entity.PlatformEbay, "shop1", "second", "")
	assert.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicateSeller)

	// The same platform ID on another marketplace is a different seller.
	other := mustSeller(t, entity.PlatformMercari, "shop1", "other", "")
	assert.NoError(t, repo.Create(ctx, other))
}

func TestSellerRepository_UpdateRewritesLinks(t *testing.T) {
	db := openTestDB(t)
	catRepo := NewCategoryRepository(db)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	catA := mustCategory(t, "A", 0)
	catB := mustCategory(t, "B", 1)
	require.NoError(t, catRepo.Create(ctx, catA))
	require.NoError(t, catRepo.Create(ctx, catB))

	seller := mustSeller(t, entity.PlatformMercari, "u1", "shop", "")
	seller.AddCategory(catA.ID)
	require.NoError(t, repo.Create(ctx, seller))

	seller.RemoveCategory(catA.ID)
	seller.AddCategory(catB.ID)
	seller.Type = entity.SellerTypeRival
	seller.Memo = "undercuts on lenses"
	require.NoError(t, repo.Update(ctx, seller))

	got, err := repo.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SellerTypeRival, got.Type)
	assert.Equal(t, "undercuts on lenses", got.Memo)
	assert.Equal(t, []uuid.UUID{catB.ID}, got.CategoryIDs)
}

func TestSellerRepository_DeleteCategoryKeepsSellers(t *testing.T) {
	db := openTestDB(t)
	catRepo := NewCategoryRepository(db)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	cat := mustCategory(t, "Doomed", 0)
	require.NoError(t, catRepo.Create(ctx, cat))

	seller := mustSeller(t, entity.PlatformMercari, "u1", "survivor", "")
	seller.AddCategory(cat.ID)
	require.NoError(t, repo.Create(ctx, seller))

	require.NoError(t, catRepo.Delete(ctx, cat.ID))

	// The seller survives with the link removed.
	got, err := repo.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryIDs)
}

func TestSellerRepository_FindAllFilters(t *testing.T) {
	db := openTestDB(t)
	catRepo := NewCategoryRepository(db)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	cat := mustCategory(t, "Tracked", 0)
	require.NoError(t, catRepo.Create(ctx, cat))

	supplier := mustSeller(t, entity.PlatformMercari, "u1", "supplier", entity.SellerTypeSupplier)
	supplier.AddCategory(cat.ID)
	rival := mustSeller(t, entity.PlatformEbay, "u2", "rival", entity.SellerTypeRival)
	other := mustSeller(t, entity.PlatformMercari, "u3", "other", "")
	for _, s := range []*entity.Seller{supplier, rival, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.FindAll(ctx, repository.SellerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	platform := entity.PlatformMercari
	mercari, err := repo.FindAll(ctx, repository.SellerFilter{Platform: &platform})
	require.NoError(t, err)
	assert.Len(t, mercari, 2)

	sellerType := entity.SellerTypeRival
	rivals, err := repo.FindAll(ctx, repository.SellerFilter{Type: &sellerType})
	require.NoError(t, err)
	require.Len(t, rivals, 1)
	assert.Equal(t, rival.ID, rivals[0].ID)

	inCat, err := repo.FindAll(ctx, repository.SellerFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	require.Len(t, inCat, 1)
	assert.Equal(t, supplier.ID, inCat[0].ID)

	// Combined filters intersect.
	none, err := repo.FindAll(ctx, repository.SellerFilter{
		CategoryID: &cat.ID,
		Type:       &sellerType,
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSellerRepository_Stats(t *testing.T) {
	db := openTestDB(t)
	catRepo := NewCategoryRepository(db)
	repo := NewSellerRepository(db)
	ctx := context.Background()

	require.NoError(t, catRepo.Create(ctx, mustCategory(t, "A", 0)))
	require.NoError(t, catRepo.Create(ctx, mustCategory(t, "B", 1)))

	require.NoError(t, repo.Create(ctx, mustSeller(t, entity.PlatformMercari, "u1", "s1", entity.SellerTypeSupplier)))
	require.NoError(t, repo.Create(ctx, mustSeller(t, entity.PlatformMercari, "u2", "s2", entity.SellerTypeRival)))
	require.NoError(t, repo.Create(ctx, mustSeller(t, entity.PlatformEbay, "u3", "s3", "")))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 3, stats.TotalSellers)
	assert.Equal(t, 2, stats.ByPlatform[entity.PlatformMercari])
	assert.Equal(t, 1, stats.ByPlatform[entity.PlatformEbay])
	assert.Equal(t, 1, stats.ByType[entity.SellerTypeSupplier])
	assert.Equal(t, 1, stats.ByType[entity.SellerTypeRival])
	assert.Equal(t, 1, stats.ByType[entity.SellerTypeOther])
	assert.Equal(t, 0, stats.ByType[entity.SellerTypeCaution])
}

func TestAppStateRepository_LastCategory(t *testing.T) {
	db := openTestDB(t)
	repo := NewAppStateRepository(db)
	ctx := context.Background()

	id, err := repo.LastCategoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	first := uuid.New()
	require.NoError(t, repo.SetLastCategoryID(ctx, first))

	id, err = repo.LastCategoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, id)

	// Subsequent writes overwrite the single slot.
	second := uuid.New()
	require.NoError(t, repo.SetLastCategoryID(ctx, second))

	id, err = repo.LastCategoryID(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, id)
}
