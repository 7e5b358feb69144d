package categories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/testutil"
	"github.com/Veraticus/stockroom/internal/testutil/categories"
)

func TestBuilder_WithCategory(t *testing.T) {
	db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.WithCategory(categories.CategoryScrews)
	})

	cat, err := db.Storage.GetCategoryByID(context.Background(), "screws-1")
	require.NoError(t, err)
	assert.Equal(t, "Tornillería", cat.Name)
	assert.True(t, cat.IsActive)
}

func TestBuilder_DeduplicatesAndOrders(t *testing.T) {
	cats := categories.NewBuilder(t).
		WithCategories(categories.CategoryTools, categories.CategoryElectrical).
		WithBasicCategories().
		Models()

	require.Len(t, cats, 3)
	assert.Equal(t, []string{"electrical-1", "screws-1", "tools-1"},
		[]string{cats[0].ID, cats[1].ID, cats[2].ID})
}

func TestBuilder_Fixtures(t *testing.T) {
	for _, fixture := range categories.AllFixtures() {
		t.Run(fixture.Name(), func(t *testing.T) {
			db := testutil.SetupTestDBWithBuilder(t, func(b categories.Builder) categories.Builder {
				return b.WithFixture(fixture)
			})

			stored, err := db.Storage.LoadActiveCategories(context.Background())
			require.NoError(t, err)
			assert.Len(t, stored, len(fixture.Categories()))
			for _, id := range fixture.Categories() {
				assert.NotNil(t, db.Categories.Find(id), "missing %s", id)
			}
		})
	}
}

func TestCategories_MustFind(t *testing.T) {
	cats := categories.NewBuilder(t).WithBasicCategories().Models()

	cat := cats.MustFind(t, categories.CategoryTools)
	assert.Equal(t, "Herramientas Manuales", cat.Name)
	assert.Nil(t, cats.Find(categories.CategoryPaint))
	assert.Contains(t, cats.Names(), "Material Eléctrico")
}
