// Package classifier assigns free-text product descriptions to catalog
// categories. It runs several independent strategies (exact hint, keyword
// scoring, semantic hints, nearest-neighbor product similarity and regex
// patterns), fuses their candidates into a single decision and falls back to
// existing-category and broad-category searches when the fused result is not
// confident enough. A near-duplicate guard keeps it from proposing categories
// that are lexical variants of ones that already exist.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/knowledge"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
)

// DefaultSampleLimit bounds the product sample loaded for similarity checks.
const DefaultSampleLimit = 1000

// Option configures a Classifier.
type Option func(*Classifier)

// WithKnowledgeBase replaces the built-in knowledge base.
func WithKnowledgeBase(kb *knowledge.Compiled) Option {
	return func(c *Classifier) {
		if kb != nil {
			c.kb = kb
		}
	}
}

// WithSampleLimit sets how many existing products are loaded for similarity.
func WithSampleLimit(limit int) Option {
	return func(c *Classifier) {
		if limit > 0 {
			c.sampleLimit = limit
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Classifier holds the cached category and product snapshots for one catalog.
// Classify is safe for concurrent use; the cache only changes through Refresh
// and EnsureCategory.
type Classifier struct {
	catalog     service.Catalog
	kb          *knowledge.Compiled
	logger      *slog.Logger
	snap        *snapshot
	inflight    singleflight.Group
	strategies  []strategy
	sampleLimit int
	mu          sync.RWMutex
}

// snapshot is an immutable view of the caches. Updates replace it wholesale.
type snapshot struct {
	categories map[string]model.Category
	kb         *knowledge.Compiled
	ordered    []model.Category
	products   []model.ProductSample
}

// New builds a classifier over catalog and performs the initial load. Load
// failures leave the affected cache empty; the classifier still works with
// the rule-based strategies.
func New(ctx context.Context, catalog service.Catalog, opts ...Option) *Classifier {
	c := &Classifier{
		catalog:     catalog,
		logger:      slog.Default(),
		sampleLimit: DefaultSampleLimit,
		strategies: []strategy{
			keywordAnalysis{},
			semanticAnalysis{},
			productSimilarity{},
			patternMatching{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.kb == nil {
		c.kb = knowledge.MustCompile(knowledge.Default())
	}
	c.snap = newSnapshot(c.kb, nil, nil)

	_ = c.Refresh(ctx)
	return c
}

// Refresh reloads the category cache and product sample from the catalog.
// Each failed load is logged and leaves that cache empty; the returned error
// joins the failures for callers that want to surface them.
func (c *Classifier) Refresh(ctx context.Context) error {
	var errs []error

	categories, err := c.catalog.LoadActiveCategories(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load categories, continuing without category cache", "error", err)
		errs = append(errs, fmt.Errorf("load categories: %w", err))
		categories = nil
	}

	products, err := c.catalog.LoadActiveProductSample(ctx, c.sampleLimit)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load product sample, similarity strategy disabled", "error", err)
		errs = append(errs, fmt.Errorf("load product sample: %w", err))
		products = nil
	}

	next := newSnapshot(c.kb, categories, products)

	c.mu.Lock()
	c.snap = next
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "classifier cache refreshed",
		"categories", len(next.ordered),
		"products", len(next.products))

	return errors.Join(errs...)
}

// Categories returns the cached categories ordered by id.
func (c *Classifier) Categories() []model.Category {
	snap := c.current()
	out := make([]model.Category, len(snap.ordered))
	copy(out, snap.ordered)
	return out
}

// Classify picks a category for the product. It only fails on invalid input.
func (c *Classifier) Classify(ctx context.Context, in model.ProductInput) (model.Result, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Result{}, common.ErrEmptyName
	}

	snap := c.current()

	if cand := c.evaluate(ctx, exactMatch{}, in, snap); cand != nil {
		return c.finish(ctx, in, snap, *cand), nil
	}

	candidates := make([]model.Candidate, 0, len(c.strategies))
	for _, s := range c.strategies {
		if cand := c.evaluate(ctx, s, in, snap); cand != nil {
			candidates = append(candidates, *cand)
		}
	}

	if winner, ok := fuse(candidates); ok {
		return c.finish(ctx, in, snap, snap.guard(winner)), nil
	}

	return c.finish(ctx, in, snap, snap.fallback(in)), nil
}

// evaluate runs one strategy, turning errors and panics into "no candidate".
func (c *Classifier) evaluate(ctx context.Context, s strategy, in model.ProductInput, snap *snapshot) (cand *model.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.WarnContext(ctx, "classification strategy panicked", "strategy", s.Name(), "panic", r)
			cand = nil
		}
	}()

	cand, err := s.Evaluate(in, snap)
	if err != nil {
		c.logger.WarnContext(ctx, "classification strategy failed", "strategy", s.Name(), "error", err)
		return nil
	}
	if cand != nil {
		cand.Confidence = model.ClampConfidence(cand.Confidence)
	}
	return cand
}

func (c *Classifier) finish(ctx context.Context, in model.ProductInput, snap *snapshot, cand model.Candidate) model.Result {
	result := model.Result{
		CategoryID:    cand.CategoryID,
		CategoryName:  cand.CategoryName,
		Description:   snap.describe(cand.CategoryID),
		Strategy:      cand.Strategy,
		Reasoning:     cand.Reasoning,
		Confidence:    model.ClampConfidence(cand.Confidence),
		IsNewCategory: cand.IsNewCategory,
		NeedsReview:   cand.Strategy == model.StrategyFallbackGeneral,
	}

	c.logger.DebugContext(ctx, "product classified",
		"product", in.Name,
		"category_id", result.CategoryID,
		"strategy", result.Strategy,
		"confidence", result.Confidence,
		"new_category", result.IsNewCategory)

	return result
}

func (c *Classifier) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func newSnapshot(kb *knowledge.Compiled, categories []model.Category, products []model.ProductSample) *snapshot {
	s := &snapshot{
		categories: make(map[string]model.Category, len(categories)),
		kb:         kb,
		products:   products,
	}
	for _, cat := range categories {
		s.categories[cat.ID] = cat
	}
	s.ordered = make([]model.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		s.ordered = append(s.ordered, cat)
	}
	sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i].ID < s.ordered[j].ID })
	return s
}

// with returns a copy of s that also contains cat.
func (s *snapshot) with(cat model.Category) *snapshot {
	categories := make([]model.Category, 0, len(s.ordered)+1)
	for _, existing := range s.ordered {
		if existing.ID != cat.ID {
			categories = append(categories, existing)
		}
	}
	categories = append(categories, cat)
	return newSnapshot(s.kb, categories, s.products)
}

// name resolves the display name for a category key: the cached name when
// the category exists, otherwise the knowledge base name, otherwise the key.
func (s *snapshot) name(key string) (string, bool) {
	if cat, ok := s.categories[key]; ok {
		return cat.Name, true
	}
	if entry, ok := s.kb.Entry(key); ok {
		return entry.Name, false
	}
	return key, false
}

func (s *snapshot) describe(id string) string {
	if cat, ok := s.categories[id]; ok && cat.Description != "" {
		return cat.Description
	}
	if entry, ok := s.kb.Entry(id); ok && entry.Description != "" {
		return entry.Description
	}
	return "Categoría creada automáticamente por el clasificador de productos"
}
