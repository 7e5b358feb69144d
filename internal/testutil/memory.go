package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
)

// MemoryCatalog is an in-memory service.Catalog for classifier tests. Setting
// one of the *Err fields makes the corresponding method fail.
type MemoryCatalog struct {
	categories map[string]model.Category
	products   []model.ProductSample

	LoadCategoriesErr error
	LoadProductsErr   error
	FindErr           error
	InsertErr         error

	mu      sync.Mutex
	inserts int
	finds   int
}

// NewMemoryCatalog returns a catalog holding cats and products.
func NewMemoryCatalog(cats []model.Category, products ...model.ProductSample) *MemoryCatalog {
	m := &MemoryCatalog{
		categories: make(map[string]model.Category, len(cats)),
		products:   products,
	}
	for _, cat := range cats {
		cat.IsActive = true
		m.categories[cat.ID] = cat
	}
	return m
}

// LoadActiveCategories returns the active categories ordered by id.
func (m *MemoryCatalog) LoadActiveCategories(_ context.Context) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadCategoriesErr != nil {
		return nil, m.LoadCategoriesErr
	}
	out := make([]model.Category, 0, len(m.categories))
	for _, cat := range m.categories {
		if cat.IsActive {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadActiveProductSample returns at most limit products.
func (m *MemoryCatalog) LoadActiveProductSample(_ context.Context, limit int) ([]model.ProductSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadProductsErr != nil {
		return nil, m.LoadProductsErr
	}
	n := min(limit, len(m.products))
	out := make([]model.ProductSample, n)
	copy(out, m.products[:n])
	return out, nil
}

// FindCategory matches id first, then name case-insensitively.
func (m *MemoryCatalog) FindCategory(_ context.Context, id, name string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.finds++
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	if cat, ok := m.categories[id]; ok && cat.IsActive {
		return &cat, nil
	}
	for _, cat := range m.categories {
		if cat.IsActive && strings.EqualFold(cat.Name, name) {
			return &cat, nil
		}
	}
	return nil, common.ErrNotFound
}

// InsertCategoryIfAbsent stores the category unless the id exists. An
// inactive category with the same name is reactivated and returned; an active
// one under another id reports common.ErrDuplicateEntry.
func (m *MemoryCatalog) InsertCategoryIfAbsent(_ context.Context, id, name, description string) (*model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	if cat, ok := m.categories[id]; ok {
		cat.IsActive = true
		m.categories[id] = cat
		return &cat, nil
	}
	for key, cat := range m.categories {
		if !strings.EqualFold(cat.Name, name) {
			continue
		}
		if cat.IsActive {
			return nil, common.ErrDuplicateEntry
		}
		cat.IsActive = true
		m.categories[key] = cat
		return &cat, nil
	}

	m.inserts++
	cat := model.Category{
		ID:          id,
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	m.categories[id] = cat
	return &cat, nil
}

// Deactivate marks the category inactive, as an operator retiring it would.
func (m *MemoryCatalog) Deactivate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cat, ok := m.categories[id]; ok {
		cat.IsActive = false
		m.categories[id] = cat
	}
}

// Inserts reports how many categories were created.
func (m *MemoryCatalog) Inserts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts
}

// Finds reports how many FindCategory calls were made.
func (m *MemoryCatalog) Finds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds
}

// Len reports the number of stored categories.
func (m *MemoryCatalog) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories)
}
