package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/port"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// ExportSchemaVersion is the current schema version written into JSON
// exports. Imports accept envelopes at or below this version.
const ExportSchemaVersion = 1

// Export errors.
var (
	// ErrInvalidImport is returned for structurally invalid import payloads.
	ErrInvalidImport = errors.New("invalid import data")

	// ErrNewerSchema is returned when the import was produced by a newer
	// schema version than this build understands.
	ErrNewerSchema = errors.New("import data was created by a newer version")
)

// ExportService produces and consumes portable snapshots of the seller
// collection: a versioned JSON envelope for backup/restore and a CSV
// rendering for spreadsheets.
type ExportService struct {
	sellers    repository.SellerRepository
	categories repository.CategoryRepository
	logger     port.Logger
}

// NewExportService creates an export service.
func NewExportService(
	sellers repository.SellerRepository,
	categories repository.CategoryRepository,
	logger port.Logger,
) *ExportService {
	return &ExportService{
		sellers:    sellers,
		categories: categories,
		logger:     logger,
	}
}

// Export produces the full JSON envelope: every category and every seller
// with its category links.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//
// Returns:
//   - *dto.ExportEnvelope: the snapshot
//   - error: any repository error
func (s *ExportService) Export(ctx context.Context) (*dto.ExportEnvelope, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellers.FindAll(ctx, repository.SellerFilter{})
	if err != nil {
		return nil, err
	}

	return &dto.ExportEnvelope{
		Version:    ExportSchemaVersion,
		ExportedAt: time.Now().UTC(),
		Categories: categories,
		Sellers:    sellers,
	}, nil
}

// ExportCSV renders the seller collection as CSV with one row per seller.
// Category links are joined into a single "; "-separated column and the
// seller type uses its Japanese label, matching the spreadsheet the
// collection is usually pasted into.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//
// Returns:
//   - []byte: UTF-8 CSV bytes with a header row
//   - error: any repository error
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellers.FindAll(ctx, repository.SellerFilter{})
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID.String()] = c.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"カテゴリ", "プラットフォーム", "セラー名", "セラーID", "URL", "タイプ", "メモ", "登録日"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, seller := range sellers {
		names := make([]string, 0, len(seller.CategoryIDs))
		for _, id := range seller.CategoryIDs {
			if name, ok := categoryNames[id.String()]; ok {
				names = append(names, name)
			}
		}

		row := []string{
			strings.Join(names, "; "),
			string(seller.Platform),
			seller.Name,
			seller.PlatformID,
			seller.URL,
			seller.Type.Label(),
			seller.Memo,
			seller.SavedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Import replaces the entire seller collection with the envelope's
// contents. The existing collection is removed first; a failed import can
// therefore leave a partial state, which mirrors the restore-from-backup
// semantics this endpoint exists for.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - envelope: the snapshot to restore
//
// Returns:
//   - error: ErrInvalidImport, ErrNewerSchema, entity validation errors,
//     or repository errors
func (s *ExportService) Import(ctx context.Context, envelope *dto.ExportEnvelope) error {
	if envelope == nil || envelope.Version == 0 {
		return ErrInvalidImport
	}
	if envelope.Version > ExportSchemaVersion {
		return ErrNewerSchema
	}
	for _, c := range envelope.Categories {
		if c == nil || c.Name == "" {
			return fmt.Errorf("%w: category without a name", ErrInvalidImport)
		}
	}
	for _, seller := range envelope.Sellers {
		if seller == nil || !seller.Platform.IsValid() || seller.PlatformID == "" {
			return fmt.Errorf("%w: seller without a platform identity", ErrInvalidImport)
		}
		if !seller.Type.IsValid() {
			return fmt.Errorf("%w: seller %s has unknown type %q", ErrInvalidImport, seller.PlatformID, seller.Type)
		}
	}

	if err := s.clear(ctx); err != nil {
		return err
	}

	for _, c := range envelope.Categories {
		if err := s.categories.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, seller := range envelope.Sellers {
		if err := s.sellers.Create(ctx, seller); err != nil {
			return err
		}
	}

	s.logger.Info("seller data imported",
		"categories", len(envelope.Categories),
		"sellers", len(envelope.Sellers),
	)
	return nil
}

func (s *ExportService) clear(ctx context.Context) error {
	sellers, err := s.sellers.FindAll(ctx, repository.SellerFilter{})
	if err != nil {
		return err
	}
	for _, seller := range sellers {
		if err := s.sellers.Delete(ctx, seller.ID); err != nil {
			return err
		}
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := s.categories.Delete(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}
