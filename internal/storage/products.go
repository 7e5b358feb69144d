package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
)

const productColumns = `id, name, description, cost, category_id, needs_review, is_active, created_at`

// SaveProduct inserts or updates a product.
func (s *SQLiteStorage) SaveProduct(ctx context.Context, product *model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, cost, category_id, needs_review, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			cost = excluded.cost,
			category_id = excluded.category_id,
			needs_review = excluded.needs_review,
			is_active = excluded.is_active`,
		product.ID, product.Name, product.Description, product.Cost,
		product.CategoryID, product.NeedsReview, product.IsActive, product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save product %q: %w", product.ID, translateError(err))
	}
	return nil
}

// GetProduct returns a product by id.
func (s *SQLiteStorage) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %q: %w", id, common.ErrNotFound)
	}
	return p, err
}

// GetProducts returns active products matching the filter, oldest first.
func (s *SQLiteStorage) GetProducts(ctx context.Context, filter service.ProductFilter) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		clauses = []string{"is_active = 1"}
		args    []any
	)
	if filter.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.NeedsReview {
		clauses = append(clauses, "needs_review = 1")
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, max(filter.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", translateError(err))
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// UpdateProductCategory moves a product to another category.
func (s *SQLiteStorage) UpdateProductCategory(ctx context.Context, productID, categoryID string, needsReview bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(productID, "productID"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET category_id = ?, needs_review = ? WHERE id = ?`,
		categoryID, needsReview, productID)
	if err != nil {
		return fmt.Errorf("failed to update product %q: %w", productID, translateError(err))
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("product %q: %w", productID, common.ErrNotFound)
	}
	return nil
}

// LoadActiveProductSample returns up to limit recently added, categorized
// products that are not awaiting review.
func (s *SQLiteStorage) LoadActiveProductSample(ctx context.Context, limit int) ([]model.ProductSample, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.category_id, COALESCE(c.name, '')
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = 1 AND p.needs_review = 0 AND p.category_id != ''
		ORDER BY p.created_at DESC, p.id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query product sample: %w", translateError(err))
	}
	defer rows.Close()

	var samples []model.ProductSample
	for rows.Next() {
		var sample model.ProductSample
		if err := rows.Scan(&sample.ID, &sample.Name, &sample.Description, &sample.CategoryID, &sample.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan product sample: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product sample: %w", err)
	}
	return samples, nil
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var (
		p         model.Product
		createdAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Cost, &p.CategoryID,
		&p.NeedsReview, &p.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.CreatedAt = createdAt.Time
	return &p, nil
}
