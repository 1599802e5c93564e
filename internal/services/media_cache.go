package services

import (
	"sync/atomic"
	"time"

	"github.com/stilessandgravel/backend/internal/models"
)

// IndexBuilder is the interface that wraps the BuildIndex method.
//
// BuildIndex must always return a complete, non-nil index.
type IndexBuilder interface {
	BuildIndex() *models.MediaIndex
}

type indexSnapshot struct {
	index   *models.MediaIndex
	builtAt time.Time
}

// IndexCache holds the latest media index and rebuilds it once it is older than its TTL.
//
// Readers always see a complete snapshot. Concurrent rebuilds may race; the last swap wins.
type IndexCache struct {
	builder IndexBuilder
	ttl     time.Duration
	now     func() time.Time
	current atomic.Pointer[indexSnapshot]
}

// CacheOption configures an IndexCache
type CacheOption func(*IndexCache)

// WithClock replaces the wall clock used for staleness checks
func WithClock(now func() time.Time) CacheOption {
	return func(c *IndexCache) {
		c.now = now
	}
}

// NewIndexCache creates an empty cache. Nothing is built until the first Get or Refresh.
func NewIndexCache(builder IndexBuilder, ttl time.Duration, opts ...CacheOption) *IndexCache {
	c := &IndexCache{
		builder: builder,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached index, rebuilding it first when absent or stale
func (c *IndexCache) Get() *models.MediaIndex {
	snapshot := c.current.Load()
	if snapshot == nil || c.now().Sub(snapshot.builtAt) > c.ttl {
		return c.Refresh()
	}
	return snapshot.index
}

// Refresh rebuilds the index unconditionally and replaces the cached snapshot
func (c *IndexCache) Refresh() *models.MediaIndex {
	index := c.builder.BuildIndex()
	c.current.Store(&indexSnapshot{
		index:   index,
		builtAt: c.now(),
	})
	return index
}

// Invalidate drops the cached snapshot so the next Get rebuilds
func (c *IndexCache) Invalidate() {
	c.current.Store(nil)
}
