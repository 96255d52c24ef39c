package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Seller errors define domain-specific error conditions for sellers.
var (
	ErrInvalidSellerName     = errors.New("seller name cannot be empty")
	ErrInvalidSellerPlatform = errors.New("unknown seller platform")
	ErrInvalidSellerType     = errors.New("unknown seller type")
	ErrMissingPlatformID     = errors.New("seller platform ID cannot be empty")
)

// Platform identifies the marketplace a seller was found on.
type Platform string

const (
	PlatformMercari Platform = "mercari"
	PlatformEbay    Platform = "ebay"
)

// IsValid reports whether p is a known marketplace.
func (p Platform) IsValid() bool {
	return p == PlatformMercari || p == PlatformEbay
}

// SellerType classifies how a saved seller relates to the user's business.
type SellerType string

const (
	SellerTypeSupplier SellerType = "supplier" // Sourcing candidate
	SellerTypeRival    SellerType = "rival"    // Competitor worth tracking
	SellerTypeCaution  SellerType = "caution"  // Flagged for problems
	SellerTypeOther    SellerType = "other"    // Unclassified
)

// IsValid reports whether t is a known seller type.
func (t SellerType) IsValid() bool {
	switch t {
	case SellerTypeSupplier, SellerTypeRival, SellerTypeCaution, SellerTypeOther:
		return true
	}
	return false
}

// Label returns the human-readable Japanese label used in CSV exports.
func (t SellerType) Label() string {
	switch t {
	case SellerTypeSupplier:
		return "仕入れ先"
	case SellerTypeRival:
		return "ライバル"
	case SellerTypeCaution:
		return "要注意"
	case SellerTypeOther:
		return "その他"
	}
	return string(t)
}

// Seller is a marketplace seller saved for research. A seller is unique per
// (platform, platform ID) pair and may belong to any number of categories.
type Seller struct {
	// ID is the unique identifier for the seller record
	ID uuid.UUID `json:"id"`

	// Platform is the marketplace the seller was found on
	Platform Platform `json:"platform"`

	// PlatformID is the seller's identifier within the marketplace
	PlatformID string `json:"platformId"`

	// Name is the seller's display name
	Name string `json:"name"`

	// URL points to the seller's profile page
	URL string `json:"url"`

	// CategoryIDs lists the categories this seller belongs to
	CategoryIDs []uuid.UUID `json:"categoryIds"`

	// Type classifies the seller (supplier, rival, caution, other)
	Type SellerType `json:"type"`

	// Memo holds free-form notes about the seller
	Memo string `json:"memo"`

	// SavedAt is the timestamp when the seller was first saved
	SavedAt time.Time `json:"savedAt"`
}

// NewSeller creates a new Seller entity.
// An empty seller type defaults to SellerTypeOther.
//
// Parameters:
//   - platform: marketplace the seller was found on (mercari or ebay)
//   - platformID: seller identifier within the marketplace (required)
//   - name: seller display name (required)
//   - url: seller profile URL
//   - sellerType: classification, empty for SellerTypeOther
//
// Returns:
//   - *Seller: newly created Seller
//   - error: validation error if input is invalid
func NewSeller(
	platform Platform,
	platformID, name, url string,
	sellerType SellerType,
) (*Seller, error) {
	if !platform.IsValid() {
		return nil, ErrInvalidSellerPlatform
	}
	if platformID == "" {
		return nil, ErrMissingPlatformID
	}
	if name == "" {
		return nil, ErrInvalidSellerName
	}
	if sellerType == "" {
		sellerType = SellerTypeOther
	}
	if !sellerType.IsValid() {
		return nil, ErrInvalidSellerType
	}

	return &Seller{
		ID:          uuid.New(),
		Platform:    platform,
		PlatformID:  platformID,
		Name:        name,
		URL:         url,
		CategoryIDs: make([]uuid.UUID, 0),
		Type:        sellerType,
		Memo:        "",
		SavedAt:     time.Now().UTC(),
	}, nil
}

// AddCategory links the seller to a category.
// Duplicate links are ignored.
//
// Parameters:
//   - categoryID: category to link
//
// Returns:
//   - bool: true if the link was added, false if it already existed
func (s *Seller) AddCategory(categoryID uuid.UUID) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return false
		}
	}
	s.CategoryIDs = append(s.CategoryIDs, categoryID)
	return true
}

// RemoveCategory unlinks the seller from a category.
// Removing a category the seller does not belong to is a no-op.
func (s *Seller) RemoveCategory(categoryID uuid.UUID) {
	for i, id := range s.CategoryIDs {
		if id == categoryID {
			s.CategoryIDs = append(s.CategoryIDs[:i], s.CategoryIDs[i+1:]...)
			return
		}
	}
}

// InCategory reports whether the seller belongs to the given category.
func (s *Seller) InCategory(categoryID uuid.UUID) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// MergeSave applies a repeat save of the same seller onto the existing
// record. Category links accumulate, the type is overwritten when provided,
// and the memo is overwritten when overwriteMemo is set. Name and URL are
// refreshed from the latest page visit.
//
// Parameters:
//   - name: latest observed display name (empty to keep current)
//   - url: latest observed profile URL (empty to keep current)
//   - categoryIDs: category links to add
//   - sellerType: new classification (empty to keep current)
//   - memo: replacement memo, applied only when overwriteMemo is true
//   - overwriteMemo: whether the memo field was supplied by the caller
//
// Returns:
//   - error: ErrInvalidSellerType if a non-empty type is unknown
func (s *Seller) MergeSave(
	name, url string,
	categoryIDs []uuid.UUID,
	sellerType SellerType,
	memo string,
	overwriteMemo bool,
) error {
	if sellerType != "" {
		if !sellerType.IsValid() {
			return ErrInvalidSellerType
		}
		s.Type = sellerType
	}
	if name != "" {
		s.Name = name
	}
	if url != "" {
		s.URL = url
	}
	for _, id := range categoryIDs {
		s.AddCategory(id)
	}
	if overwriteMemo {
		s.Memo = memo
	}
	return nil
}
