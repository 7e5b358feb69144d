// Package categories provides test infrastructure for seeding catalog
// categories. It offers a fluent API over a fixed set of known hardware-store
// categories so tests refer to them by typed id rather than by string.
//
// Example usage:
//
//	cats, err := categories.NewBuilder(t).
//		WithBasicCategories().
//		WithCategory(categories.CategoryScrews).
//		Build(ctx, store)
package categories

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
)

// Builder provides a fluent interface for constructing test categories.
type Builder interface {
	// WithCategory adds a single category to the builder.
	WithCategory(id CategoryID) Builder

	// WithCategories adds multiple categories to the builder.
	WithCategories(ids ...CategoryID) Builder

	// WithBasicCategories adds the minimal set of categories commonly used in tests.
	WithBasicCategories() Builder

	// WithFixture adds categories from a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Models returns the categories without touching any store, ordered by id.
	Models() Categories

	// Build inserts the categories into the store and returns the stored rows.
	Build(ctx context.Context, store service.CategoryStore) (Categories, error)
}

// CategoryID is a strongly-typed id of a known test category.
type CategoryID string

// String returns the string representation of the category id.
func (c CategoryID) String() string {
	return string(c)
}

// Known category ids used across tests.
const (
	CategoryTools       CategoryID = "tools-1"
	CategoryScrews      CategoryID = "screws-1"
	CategoryElectrical  CategoryID = "electrical-1"
	CategoryPlumbing    CategoryID = "plumbing-1"
	CategoryPaint       CategoryID = "paint-1"
	CategoryGarden      CategoryID = "garden-1"
	CategoryPowerTools  CategoryID = "power-tools-1"
	CategoryConstruct   CategoryID = "construction-1"
	CategorySafetyGear  CategoryID = "safety-1"
	CategoryAdhesiveSet CategoryID = "adhesives-1"
)

var known = map[CategoryID]model.Category{
	CategoryTools:       {ID: "tools-1", Name: "Herramientas Manuales", Description: "Martillos, pinzas y desarmadores"},
	CategoryScrews:      {ID: "screws-1", Name: "Tornillería", Description: "Tornillos y tuercas"},
	CategoryElectrical:  {ID: "electrical-1", Name: "Material Eléctrico", Description: "Cable, contactos y apagadores"},
	CategoryPlumbing:    {ID: "plumbing-1", Name: "Plomería", Description: "Tubería y conexiones"},
	CategoryPaint:       {ID: "paint-1", Name: "Pinturas", Description: "Pinturas y esmaltes"},
	CategoryGarden:      {ID: "garden-1", Name: "Jardín", Description: "Mangueras y riego"},
	CategoryPowerTools:  {ID: "power-tools-1", Name: "Herramientas Eléctricas", Description: "Taladros y esmeriladoras"},
	CategoryConstruct:   {ID: "construction-1", Name: "Construcción", Description: "Cemento, varilla y block"},
	CategorySafetyGear:  {ID: "safety-1", Name: "Seguridad Industrial", Description: "Equipo de protección"},
	CategoryAdhesiveSet: {ID: "adhesives-1", Name: "Adhesivos y Selladores", Description: "Pegamentos y siliconas"},
}

// Lookup returns the known category for id.
func Lookup(id CategoryID) (model.Category, bool) {
	cat, ok := known[id]
	if ok {
		cat.IsActive = true
	}
	return cat, ok
}

// Categories represents a collection of test categories.
type Categories []model.Category

// Find returns the category with the given id, or nil if not found.
func (c Categories) Find(id CategoryID) *model.Category {
	for i := range c {
		if c[i].ID == id.String() {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the category with the given id, or fails the test if not found.
func (c Categories) MustFind(t *testing.T, id CategoryID) model.Category {
	t.Helper()
	cat := c.Find(id)
	if cat == nil {
		t.Fatalf("category %q not found in test data", id)
	}
	return *cat
}

// Names returns all category names as a slice of strings.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}

type categoryBuilder struct {
	t          *testing.T
	categories map[CategoryID]struct{}
}

// NewBuilder creates a new category builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &categoryBuilder{
		t:          t,
		categories: make(map[CategoryID]struct{}),
	}
}

func (b *categoryBuilder) WithCategory(id CategoryID) Builder {
	b.t.Helper()
	if _, ok := known[id]; !ok {
		b.t.Fatalf("unknown test category %q", id)
	}
	b.categories[id] = struct{}{}
	return b
}

func (b *categoryBuilder) WithCategories(ids ...CategoryID) Builder {
	b.t.Helper()
	for _, id := range ids {
		b.WithCategory(id)
	}
	return b
}

func (b *categoryBuilder) WithBasicCategories() Builder {
	return b.WithFixture(FixtureMinimal)
}

func (b *categoryBuilder) WithFixture(fixture Fixture) Builder {
	return b.WithCategories(fixture.Categories()...)
}

func (b *categoryBuilder) Models() Categories {
	ids := make([]CategoryID, 0, len(b.categories))
	for id := range b.categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make(Categories, 0, len(ids))
	for _, id := range ids {
		cat, _ := Lookup(id)
		result = append(result, cat)
	}
	return result
}

func (b *categoryBuilder) Build(ctx context.Context, store service.CategoryStore) (Categories, error) {
	b.t.Helper()

	models := b.Models()
	result := make(Categories, 0, len(models))
	for _, cat := range models {
		created, err := store.InsertCategoryIfAbsent(ctx, cat.ID, cat.Name, cat.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", cat.ID, err)
		}
		result = append(result, *created)
	}
	return result, nil
}
