package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/stockroom/internal/classifier"
	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/config"
	"github.com/Veraticus/stockroom/internal/knowledge"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
	"github.com/Veraticus/stockroom/internal/storage"
)

// ensureRetry covers transient SQLite busy errors while materializing categories.
var ensureRetry = service.RetryOptions{
	MaxAttempts:  4,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2,
}

func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	cfg := config.DefaultConfig()
	cfg.DatabasePath = config.ExpandPath(cfg.DatabasePath)
	return &cfg
}

// initStorage opens the catalog database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	cfg := currentConfig()

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, common.NewUserError("could not open the catalog database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newClassifier builds a classifier over store using the configured
// knowledge base and sample size.
func newClassifier(ctx context.Context, store service.Catalog) (*classifier.Classifier, error) {
	cfg := currentConfig()

	kb, err := knowledge.Load(cfg.KnowledgeBase)
	if err != nil {
		return nil, common.NewUserError("could not load the knowledge base", err)
	}

	c := classifier.New(ctx, store,
		classifier.WithKnowledgeBase(kb),
		classifier.WithSampleLimit(cfg.SampleLimit),
		classifier.WithLogger(slog.Default()),
	)
	return c, nil
}

// assignCategory materializes the category chosen by result and returns the
// category id to store on the product. When the category cannot be created
// the product is left unclassified and flagged for review.
func assignCategory(ctx context.Context, c *classifier.Classifier, result model.Result) (string, bool, error) {
	var cat model.Category
	err := common.WithRetry(ctx, func() error {
		var ensureErr error
		cat, ensureErr = c.EnsureCategory(ctx, result.CategoryID, result.CategoryName, result.Description)
		return ensureErr
	}, ensureRetry)
	if err == nil {
		return cat.ID, result.NeedsReview, nil
	}
	if errors.Is(err, context.Canceled) {
		return "", false, err
	}

	slog.Warn("Failed to materialize category, leaving product unclassified",
		"category_id", result.CategoryID,
		"error", err)
	return "", true, nil
}
