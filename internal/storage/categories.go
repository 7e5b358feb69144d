package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
)

const categoryColumns = `id, name, description, is_active, created_at`

// LoadActiveCategories returns all active categories ordered by id.
func (s *SQLiteStorage) LoadActiveCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_active = 1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", translateError(err))
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns an active category by id.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ? AND is_active = 1`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", id, common.ErrNotFound)
	}
	return cat, err
}

// FindCategory returns the active category whose id equals id or whose name
// equals name case-insensitively. An id match is preferred.
func (s *SQLiteStorage) FindCategory(ctx context.Context, id, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" && strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: id or name", ErrEmptyString)
	}

	query := `SELECT ` + categoryColumns + `
		FROM categories
		WHERE is_active = 1 AND (id = ? OR name = ? COLLATE NOCASE)
		ORDER BY (id = ?) DESC
		LIMIT 1`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id, strings.TrimSpace(name), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q/%q: %w", id, name, common.ErrNotFound)
	}
	return cat, err
}

// InsertCategoryIfAbsent inserts a category keyed by id. An existing row with
// the same id is kept (and reactivated); its stored values are returned. An
// inactive row holding the same name is reactivated and returned in place of
// the insert. An active row with a different id holding the same name yields
// common.ErrDuplicateEntry.
func (s *SQLiteStorage) InsertCategoryIfAbsent(ctx context.Context, id, name, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := scanCategory(tx.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = ? OR name = ? COLLATE NOCASE
		ORDER BY (id = ?) DESC
		LIMIT 1`,
		id, name, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		existing = nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up category %q: %w", id, translateError(err))
	}

	if existing != nil {
		if existing.ID != id && existing.IsActive {
			return nil, fmt.Errorf("category name %q held by %q: %w", name, existing.ID, common.ErrDuplicateEntry)
		}
		if !existing.IsActive {
			if _, err := tx.ExecContext(ctx,
				`UPDATE categories SET is_active = 1 WHERE id = ?`, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reactivate category %q: %w", existing.ID, translateError(err))
			}
			existing.IsActive = true
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit category %q: %w", existing.ID, translateError(err))
		}
		slog.Debug("category already present", "id", existing.ID, "requested_id", id)
		return existing, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)`,
		id, name, description, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to insert category %q: %w", id, translateError(err))
	}

	cat, err := scanCategory(tx.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to read back category %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category %q: %w", id, translateError(err))
	}

	slog.Info("created new category", "id", cat.ID, "name", cat.Name)
	return cat, nil
}

// DeactivateCategory hides a category from classification. Its row keeps the
// name, so materializing the same name later brings it back.
func (s *SQLiteStorage) DeactivateCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %q: %w", id, translateError(err))
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("category %q: %w", id, common.ErrNotFound)
	}

	slog.Info("deactivated category", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		cat       model.Category
		createdAt sql.NullTime
	)
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.IsActive, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.CreatedAt = createdAt.Time
	return &cat, nil
}
