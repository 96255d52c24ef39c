package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

const lastCategoryKey = "last_category_id"

// AppStateRepository implements repository.AppStateRepository on the
// app_state key-value table.
type AppStateRepository struct {
	db *sql.DB
}

// NewAppStateRepository creates a new SQLite-backed app state repository.
func NewAppStateRepository(db *sql.DB) *AppStateRepository {
	return &AppStateRepository{db: db}
}

var _ repository.AppStateRepository = (*AppStateRepository)(nil)

// LastCategoryID returns the most recently used category ID, or uuid.Nil
// when none has been recorded.
func (r *AppStateRepository) LastCategoryID(ctx context.Context) (uuid.UUID, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, lastCategoryKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("query last category: %w", err)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse last category ID %q: %w", value, err)
	}
	return id, nil
}

// SetLastCategoryID records the most recently used category ID.
func (r *AppStateRepository) SetLastCategoryID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		lastCategoryKey, id.String())
	if err != nil {
		return fmt.Errorf("set last category: %w", err)
	}
	return nil
}
