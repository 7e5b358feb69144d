package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
)

func createTestProducts(count int, categoryID string) []model.Product {
	base := time.Now().Add(-time.Hour).UTC()
	products := make([]model.Product, count)
	for i := range products {
		products[i] = model.Product{
			ID:         fmt.Sprintf("prod-%02d", i+1),
			Name:       fmt.Sprintf("Producto %d", i+1),
			CategoryID: categoryID,
			Cost:       float64(i+1) * 9.5,
			IsActive:   true,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
	}
	return products
}

func TestSaveProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		product *model.Product
		err     error
		name    string
	}{
		{name: "valid", product: &model.Product{ID: "p1", Name: "Martillo", IsActive: true}},
		{name: "nil", product: nil, err: ErrNilParameter},
		{name: "missing id", product: &model.Product{Name: "Martillo"}, err: ErrInvalidProduct},
		{name: "missing name", product: &model.Product{ID: "p1"}, err: ErrInvalidProduct},
		{name: "negative cost", product: &model.Product{ID: "p1", Name: "x", Cost: -1}, err: ErrInvalidProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			err := store.SaveProduct(ctx, tt.product)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)

			got, err := store.GetProduct(ctx, tt.product.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.product.Name, got.Name)
			assert.True(t, got.IsActive)
		})
	}
}

func TestSaveProductUpserts(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	p := &model.Product{ID: "p1", Name: "Martillo", CategoryID: "general", NeedsReview: true, IsActive: true}
	require.NoError(t, store.SaveProduct(ctx, p))

	p.CategoryID = "herramientas"
	p.NeedsReview = false
	require.NoError(t, store.SaveProduct(ctx, p))

	got, err := store.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "herramientas", got.CategoryID)
	assert.False(t, got.NeedsReview)

	_, err = store.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetProducts(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, p := range createTestProducts(5, "herramientas") {
		require.NoError(t, store.SaveProduct(ctx, &p))
	}
	review := &model.Product{ID: "review-1", Name: "Cosa rara", CategoryID: "general", NeedsReview: true, IsActive: true}
	require.NoError(t, store.SaveProduct(ctx, review))

	all, err := store.GetProducts(ctx, service.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	pending, err := store.GetProducts(ctx, service.ProductFilter{NeedsReview: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "review-1", pending[0].ID)

	tools, err := store.GetProducts(ctx, service.ProductFilter{CategoryID: "herramientas", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "prod-02", tools[0].ID)
}

func TestUpdateProductCategory(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.SaveProduct(ctx, &model.Product{ID: "p1", Name: "Foco LED", CategoryID: "general", NeedsReview: true, IsActive: true}))

	require.NoError(t, store.UpdateProductCategory(ctx, "p1", "electrico", false))
	got, err := store.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "electrico", got.CategoryID)
	assert.False(t, got.NeedsReview)

	err = store.UpdateProductCategory(ctx, "missing", "electrico", false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoadActiveProductSample(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.InsertCategoryIfAbsent(ctx, "herramientas", "Herramientas", "")
	require.NoError(t, err)

	for _, p := range createTestProducts(4, "herramientas") {
		require.NoError(t, store.SaveProduct(ctx, &p))
	}
	require.NoError(t, store.SaveProduct(ctx, &model.Product{ID: "rev", Name: "Revisar", CategoryID: "general", NeedsReview: true, IsActive: true}))
	require.NoError(t, store.SaveProduct(ctx, &model.Product{ID: "off", Name: "Inactivo", CategoryID: "herramientas", IsActive: false}))
	require.NoError(t, store.SaveProduct(ctx, &model.Product{ID: "bare", Name: "Sin categoria", IsActive: true}))

	samples, err := store.LoadActiveProductSample(ctx, 3)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, "prod-04", samples[0].ID, "newest first")
	for _, s := range samples {
		assert.Equal(t, "herramientas", s.CategoryID)
		assert.Equal(t, "Herramientas", s.CategoryName)
	}

	_, err = store.LoadActiveProductSample(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
