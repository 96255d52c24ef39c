package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	cat, err := NewCategory("  Vintage Cameras  ", 3)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, cat.ID)
	assert.Equal(t, "Vintage Cameras", cat.Name)
	assert.Equal(t, 3, cat.SortOrder)
	assert.False(t, cat.CreatedAt.IsZero())
}

func TestNewCategory_EmptyName(t *testing.T) {
	_, err := NewCategory("   ", 0)
	assert.ErrorIs(t, err, ErrInvalidCategoryName)
}

func TestCategoryRename(t *testing.T) {
	cat, err := NewCategory("Old", 0)
	require.NoError(t, err)

	require.NoError(t, cat.Rename(" New "))
	assert.Equal(t, "New", cat.Name)

	assert.ErrorIs(t, cat.Rename(""), ErrInvalidCategoryName)
	assert.Equal(t, "New", cat.Name)
}

func TestNewSeller(t *testing.T) {
	s, err := NewSeller(PlatformMercari, "u123", "camera-shop", "https://jp.mercari.com/user/profile/u123", "")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, PlatformMercari, s.Platform)
	assert.Equal(t, "u123", s.PlatformID)
	// Empty type defaults to other.
	assert.Equal(t, SellerTypeOther, s.Type)
	assert.Empty(t, s.CategoryIDs)
	assert.False(t, s.SavedAt.IsZero())
}

func TestNewSeller_Validation(t *testing.T) {
	tests := []struct {
		name       string
		platform   Platform
		platformID string
		seller     string
		sellerType SellerType
		wantErr    error
	}{
		{"unknown platform", "amazon", "u1", "shop", "", ErrInvalidSellerPlatform},
		{"missing platform ID", PlatformEbay, "", "shop", "", ErrMissingPlatformID},
		{"missing name", PlatformEbay, "u1", "", "", ErrInvalidSellerName},
		{"unknown type", PlatformEbay, "u1", "shop", "vip", ErrInvalidSellerType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeller(tt.platform, tt.platformID, tt.seller, "", tt.sellerType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSellerCategoryLinks(t *testing.T) {
	s, err := NewSeller(PlatformEbay, "u1", "shop", "", SellerTypeSupplier)
	require.NoError(t, err)

	catA := uuid.New()
	catB := uuid.New()

	assert.True(t, s.AddCategory(catA))
	assert.False(t, s.AddCategory(catA), "duplicate link must be ignored")
	assert.True(t, s.AddCategory(catB))

	assert.True(t, s.InCategory(catA))
	assert.True(t, s.InCategory(catB))

	s.RemoveCategory(catA)
	assert.False(t, s.InCategory(catA))
	assert.True(t, s.InCategory(catB))

	// Removing an absent link is a no-op.
	s.RemoveCategory(catA)
	assert.Len(t, s.CategoryIDs, 1)
}

func TestSellerMergeSave(t *testing.T) {
	s, err := NewSeller(PlatformMercari, "u1", "old-name", "https://old", SellerTypeOther)
	require.NoError(t, err)
	s.Memo = "first impression"

	catA := uuid.New()
	s.AddCategory(catA)
	catB := uuid.New()

	err = s.MergeSave("new-name", "https://new", []uuid.UUID{catA, catB}, SellerTypeRival, "", false)
	require.NoError(t, err)

	assert.Equal(t, "new-name", s.Name)
	assert.Equal(t, "https://new", s.URL)
	assert.Equal(t, SellerTypeRival, s.Type)
	// Category links accumulate without duplicates.
	assert.ElementsMatch(t, []uuid.UUID{catA, catB}, s.CategoryIDs)
	// Memo survives when the caller did not supply one.
	assert.Equal(t, "first impression", s.Memo)
}

func TestSellerMergeSave_MemoOverwrite(t *testing.T) {
	s, err := NewSeller(PlatformMercari, "u1", "shop", "", "")
	require.NoError(t, err)
	s.Memo = "keep me"

	require.NoError(t, s.MergeSave("", "", nil, "", "replaced", true))
	assert.Equal(t, "replaced", s.Memo)

	// An explicit empty memo clears the field.
	require.NoError(t, s.MergeSave("", "", nil, "", "", true))
	assert.Empty(t, s.Memo)
}

func TestSellerMergeSave_UnknownType(t *testing.T) {
	s, err := NewSeller(PlatformMercari, "u1", "shop", "", SellerTypeSupplier)
	require.NoError(t, err)

	err = s.MergeSave("", "", nil, "vip", "", false)
	assert.ErrorIs(t, err, ErrInvalidSellerType)
	assert.Equal(t, SellerTypeSupplier, s.Type)
}

func TestSellerTypeLabel(t *testing.T) {
	assert.Equal(t, "仕入れ先", SellerTypeSupplier.Label())
	assert.Equal(t, "ライバル", SellerTypeRival.Label())
	assert.Equal(t, "要注意", SellerTypeCaution.Label())
	assert.Equal(t, "その他", SellerTypeOther.Label())
}
