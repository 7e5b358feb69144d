// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/stockroom/internal/model"
)

// CategoryStore is the read/write category boundary the classifier depends on.
type CategoryStore interface {
	// LoadActiveCategories returns every active category.
	LoadActiveCategories(ctx context.Context) ([]model.Category, error)
	// FindCategory returns the category matching id, or name case-insensitively.
	// It returns common.ErrNotFound when neither matches.
	FindCategory(ctx context.Context, id, name string) (*model.Category, error)
	// InsertCategoryIfAbsent inserts the category unless a row with the same id
	// already exists, and returns the stored row. An inactive row with the same
	// name is reactivated and returned instead; an active one reports
	// common.ErrDuplicateEntry.
	InsertCategoryIfAbsent(ctx context.Context, id, name, description string) (*model.Category, error)
}

// ProductStore provides the read-only product sample used for similarity.
type ProductStore interface {
	LoadActiveProductSample(ctx context.Context, limit int) ([]model.ProductSample, error)
}

// Catalog combines the stores the classifier needs.
type Catalog interface {
	CategoryStore
	ProductStore
}

// ProductFilter defines filtering options for product queries.
type ProductFilter struct {
	CategoryID  string
	Limit       int
	Offset      int
	NeedsReview bool
}

// Storage is the full persistence contract used by the CLI.
type Storage interface {
	Catalog

	// Category operations
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	DeactivateCategory(ctx context.Context, id string) error

	// Product operations
	SaveProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	UpdateProductCategory(ctx context.Context, productID, categoryID string, needsReview bool) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
