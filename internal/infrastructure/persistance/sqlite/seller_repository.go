package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// SellerRepository implements repository.SellerRepository on SQLite.
// Category links live in the seller_categories junction table and are
// rewritten wholesale on every update.
type SellerRepository struct {
	db *sql.DB
}

// NewSellerRepository creates a new SQLite-backed seller repository.
func NewSellerRepository(db *sql.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

var _ repository.SellerRepository = (*SellerRepository)(nil)

const sellerColumns = `id, platform, platform_id, name, url, type, memo, saved_at`

// Create persists a new seller with its category links.
func (r *SellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	if seller == nil {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sellers (`+sellerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seller.ID.String(),
		string(seller.Platform),
		seller.PlatformID,
		seller.Name,
		seller.URL,
		string(seller.Type),
		seller.Memo,
		seller.SavedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateSeller
		}
		return fmt.Errorf("insert seller: %w", err)
	}

	if err := insertCategoryLinks(ctx, tx, seller); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	return nil
}

// GetByID retrieves a seller by ID with its category links loaded.
func (r *SellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Seller, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sellerColumns+` FROM sellers WHERE id = ?`, id.String())
	return r.scanOne(ctx, row)
}

// GetByPlatformID retrieves a seller by its marketplace identity.
func (r *SellerRepository) GetByPlatformID(ctx context.Context, platform entity.Platform, platformID string) (*entity.Seller, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sellerColumns+` FROM sellers WHERE platform = ? AND platform_id = ?`,
		string(platform), platformID)
	return r.scanOne(ctx, row)
}

// Update persists changes to an existing seller and rewrites its category
// links.
func (r *SellerRepository) Update(ctx context.Context, seller *entity.Seller) error {
	if seller == nil {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sellers SET name = ?, url = ?, type = ?, memo = ? WHERE id = ?`,
		seller.Name,
		seller.URL,
		string(seller.Type),
		seller.Memo,
		seller.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update seller: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update seller rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrSellerNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM seller_categories WHERE seller_id = ?`, seller.ID.String()); err != nil {
		return fmt.Errorf("clear seller category links: %w", err)
	}
	if err := insertCategoryLinks(ctx, tx, seller); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	return nil
}

// Delete removes a seller. Category links go with it via the cascade.
func (r *SellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sellers WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete seller rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrSellerNotFound
	}
	return nil
}

// FindAll retrieves sellers matching the filter, newest first.
func (r *SellerRepository) FindAll(ctx context.Context, filter repository.SellerFilter) ([]*entity.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers`
	var (
		conditions []string
		args       []any
	)

	if filter.CategoryID != nil {
		conditions = append(conditions,
			`id IN (SELECT seller_id FROM seller_categories WHERE category_id = ?)`)
		args = append(args, filter.CategoryID.String())
	}
	if filter.Type != nil {
		conditions = append(conditions, `type = ?`)
		args = append(args, string(*filter.Type))
	}
	if filter.Platform != nil {
		conditions = append(conditions, `platform = ?`)
		args = append(args, string(*filter.Platform))
	}

	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY saved_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sellers: %w", err)
	}
	defer rows.Close()

	sellers := make([]*entity.Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		sellers = append(sellers, seller)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellers: %w", err)
	}

	for _, seller := range sellers {
		if err := r.loadCategoryLinks(ctx, seller); err != nil {
			return nil, err
		}
	}
	return sellers, nil
}

// Stats summarizes the collection by platform and type.
func (r *SellerRepository) Stats(ctx context.Context) (*repository.SellerStats, error) {
	stats := &repository.SellerStats{
		ByPlatform: map[entity.Platform]int{
			entity.PlatformMercari: 0,
			entity.PlatformEbay:    0,
		},
		ByType: map[entity.SellerType]int{
			entity.SellerTypeSupplier: 0,
			entity.SellerTypeRival:    0,
			entity.SellerTypeCaution:  0,
			entity.SellerTypeOther:    0,
		},
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories`).Scan(&stats.TotalCategories); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT platform, type, COUNT(*) FROM sellers GROUP BY platform, type`)
	if err != nil {
		return nil, fmt.Errorf("query seller stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			platform   string
			sellerType string
			count      int
		)
		if err := rows.Scan(&platform, &sellerType, &count); err != nil {
			return nil, fmt.Errorf("scan seller stats: %w", err)
		}
		stats.TotalSellers += count
		stats.ByPlatform[entity.Platform(platform)] += count
		stats.ByType[entity.SellerType(sellerType)] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seller stats: %w", err)
	}
	return stats, nil
}

func (r *SellerRepository) scanOne(ctx context.Context, row *sql.Row) (*entity.Seller, error) {
	seller, err := scanSeller(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query seller: %w", err)
	}
	if err := r.loadCategoryLinks(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (r *SellerRepository) loadCategoryLinks(ctx context.Context, seller *entity.Seller) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id FROM seller_categories WHERE seller_id = ?`,
		seller.ID.String())
	if err != nil {
		return fmt.Errorf("query seller category links: %w", err)
	}
	defer rows.Close()

	seller.CategoryIDs = make([]uuid.UUID, 0)
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return fmt.Errorf("scan category link: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fmt.Errorf("parse category link ID %q: %w", idStr, err)
		}
		seller.CategoryIDs = append(seller.CategoryIDs, id)
	}
	return rows.Err()
}

func insertCategoryLinks(ctx context.Context, tx *sql.Tx, seller *entity.Seller) error {
	for _, categoryID := range seller.CategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO seller_categories (seller_id, category_id) VALUES (?, ?)`,
			seller.ID.String(), categoryID.String()); err != nil {
			return fmt.Errorf("insert category link: %w", err)
		}
	}
	return nil
}

func scanSeller(row rowScanner) (*entity.Seller, error) {
	var (
		idStr   string
		savedAt string
		seller  entity.Seller
	)
	err := row.Scan(
		&idStr,
		&seller.Platform,
		&seller.PlatformID,
		&seller.Name,
		&seller.URL,
		&seller.Type,
		&seller.Memo,
		&savedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse seller ID %q: %w", idStr, err)
	}
	seller.ID = id

	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse seller saved_at %q: %w", savedAt, err)
	}
	seller.SavedAt = ts

	return &seller, nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
// The cgo-free driver does not export a typed constraint error, so the
// message text is the only signal available.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
