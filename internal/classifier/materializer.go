package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
)

// EnsureCategory makes sure the category exists in the catalog and in the
// cache, and returns the stored row. Calling it repeatedly with the same
// arguments never creates a second category. Concurrent calls for the same id
// share one store round-trip; the shared round-trip is not cancelled by any
// single caller, and each caller stops waiting when its own ctx is done.
func (c *Classifier) EnsureCategory(ctx context.Context, id, name, description string) (model.Category, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return model.Category{}, common.ErrInvalidCategory
	}

	if cat, ok := c.current().categories[id]; ok {
		return cat, nil
	}
	if err := ctx.Err(); err != nil {
		return model.Category{}, err
	}

	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(id, func() (any, error) {
		if cat, ok := c.current().categories[id]; ok {
			return cat, nil
		}
		cat, err := c.materialize(shared, id, name, description)
		if err != nil {
			return nil, err
		}
		c.remember(cat)
		return cat, nil
	})

	select {
	case <-ctx.Done():
		return model.Category{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Category{}, res.Err
		}
		return res.Val.(model.Category), nil
	}
}

// materialize resolves the category against the store, inserting it when no
// row matches the id or the name. A concurrent insert that wins the race is
// adopted.
func (c *Classifier) materialize(ctx context.Context, id, name, description string) (model.Category, error) {
	found, err := c.catalog.FindCategory(ctx, id, name)
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "adopted existing category", "id", found.ID, "requested_id", id)
		return *found, nil
	case !errors.Is(err, common.ErrNotFound):
		return model.Category{}, fmt.Errorf("ensure category %q: %w", id, err)
	}

	created, err := c.catalog.InsertCategoryIfAbsent(ctx, id, name, description)
	if err == nil {
		c.logger.DebugContext(ctx, "category materialized", "id", created.ID, "requested_id", id)
		return *created, nil
	}
	if !errors.Is(err, common.ErrDuplicateEntry) {
		return model.Category{}, fmt.Errorf("ensure category %q: %w", id, err)
	}

	found, err = c.catalog.FindCategory(ctx, id, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("ensure category %q after duplicate insert: %w", id, err)
	}
	c.logger.DebugContext(ctx, "adopted concurrently created category", "id", found.ID)
	return *found, nil
}

// remember adds cat to the cache.
func (c *Classifier) remember(cat model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = c.snap.with(cat)
}
