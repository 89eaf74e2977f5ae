package library

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
)

// Cached memoizes lookups of the wrapped library for a fixed TTL.
type Cached struct {
	next Library
	cache *otter.Cache[string, []models.LibraryExercise]
}

// NewCached wraps next with an in-memory TTL cache.
func NewCached(next Library, ttl time.Duration) *Cached {
	cache := otter.Must(&otter.Options[string, []models.LibraryExercise]{
		MaximumSize:      constants.LibraryCacheSize,
		InitialCapacity:  16,
		ExpiryCalculator: otter.ExpiryWriting[string, []models.LibraryExercise](ttl),
	})
	return &Cached{next: next, cache: cache}
}

func (c *Cached) Lookup(ctx context.Context, q models.LibraryQuery) ([]models.LibraryExercise, error) {
	key := q.Key()
	if exercises, ok := c.cache.GetIfPresent(key); ok {
		logger.Debug("library cache hit", "query", key, "count", len(exercises))
		return append([]models.LibraryExercise(nil), exercises...), nil
	}

	exercises, err := c.next.Lookup(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, exercises)
	return append([]models.LibraryExercise(nil), exercises...), nil
}

// Invalidate drops every cached lookup, e.g. after a library import.
func (c *Cached) Invalidate() {
	c.cache.InvalidateAll()
}

// Len returns the approximate number of cached queries.
func (c *Cached) Len() int {
	return c.cache.EstimatedSize()
}
