// Package testutil provides shared helpers for tests that need a catalog:
// migrated in-memory SQLite databases and an in-memory catalog with error
// injection.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
	"github.com/Veraticus/stockroom/internal/storage"
	"github.com/Veraticus/stockroom/internal/testutil/categories"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage    service.Storage
	t          *testing.T
	Categories categories.Categories
}

// SetupTestDB creates a migrated in-memory database seeded with cats.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		categories.NewBuilder(t).WithBasicCategories().Models(),
//	)
func SetupTestDB(t *testing.T, cats categories.Categories) *TestDB {
	t.Helper()

	store := openTestStorage(t)
	ctx := context.Background()
	for _, cat := range cats {
		if _, err := store.InsertCategoryIfAbsent(ctx, cat.ID, cat.Name, cat.Description); err != nil {
			t.Fatalf("failed to seed category %q: %v", cat.ID, err)
		}
	}

	return &TestDB{
		Storage:    store,
		Categories: cats,
		t:          t,
	}
}

// SetupTestDBWithBuilder creates a test database using a category builder.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
//		return b.WithBasicCategories().WithCategory(categories.CategoryPlumbing)
//	})
func SetupTestDBWithBuilder(t *testing.T, configure func(categories.Builder) categories.Builder) *TestDB {
	t.Helper()

	builder := categories.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}

	store := openTestStorage(t)
	cats, err := builder.Build(context.Background(), store)
	if err != nil {
		t.Fatalf("failed to build categories: %v", err)
	}

	return &TestDB{
		Storage:    store,
		Categories: cats,
		t:          t,
	}
}

// MustGetCategory returns the seeded category with the given id or fails the test.
func (db *TestDB) MustGetCategory(id categories.CategoryID) model.Category {
	db.t.Helper()
	return db.Categories.MustFind(db.t, id)
}

// SeedProducts saves products under the given categories. Products are
// created one second apart, oldest first.
func (db *TestDB) SeedProducts(products ...model.Product) {
	db.t.Helper()

	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := range products {
		p := products[i]
		if p.CreatedAt.IsZero() {
			p.CreatedAt = base.Add(time.Duration(i) * time.Second)
		}
		if err := db.Storage.SaveProduct(ctx, &p); err != nil {
			db.t.Fatalf("failed to seed product %q: %v", p.ID, err)
		}
	}
}

func openTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})
	return store
}
