package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/stockaigent/internal/domain/models"
	"github.com/guttosm/stockaigent/internal/logger"
	"github.com/guttosm/stockaigent/internal/storage"
	"github.com/guttosm/stockaigent/internal/upstream"
)

// SnapshotBuilder produces a new Snapshot from the upstream sources.
type SnapshotBuilder interface {
	Build(ctx context.Context) (*models.Snapshot, error)
}

// CacheConfig tunes a Cache.
type CacheConfig struct {
	TTL            time.Duration // how long a snapshot is served as-is
	RefreshTimeout time.Duration // upper bound for one refresh cycle
}

const (
	DefaultTTL            = 10 * time.Minute
	DefaultRefreshTimeout = 30 * time.Second

	refreshKey = "snapshot"
)

// Cache serves the current Snapshot and refreshes it once its TTL expired.
//
// Concurrent callers that find the snapshot stale share a single refresh.
// When that refresh fails, or a caller's context ends before it completes,
// the caller gets the previous snapshot if there is one.
type Cache struct {
	builder SnapshotBuilder
	store   storage.SnapshotStore
	cfg     CacheConfig
	now     func() time.Time
	group   singleflight.Group
}

// NewCache creates a Cache backed by store.
func NewCache(builder SnapshotBuilder, store storage.SnapshotStore, cfg CacheConfig) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}
	return &Cache{builder: builder, store: store, cfg: cfg, now: time.Now}
}

// Snapshot returns the current snapshot, refreshing it first when it is
// missing or older than the TTL.
//
// Returns:
//   - the cached snapshot while it is fresh (same instance every call);
//   - a newly built snapshot after a successful refresh;
//   - the previous snapshot when the refresh fails or ctx ends first;
//   - an error wrapping upstream.ErrSourceUnavailable when no snapshot
//     was ever built and the refresh fails or ctx ends before it completes.
func (c *Cache) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	prev, builtAt, ok := c.store.Load()
	if ok && c.fresh(builtAt) {
		return prev, nil
	}

	ch := c.group.DoChan(refreshKey, func() (any, error) {
		// A refresh may have completed while this caller was queued.
		if snap, at, ok := c.store.Load(); ok && c.fresh(at) {
			return snap, nil
		}
		return c.rebuild(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if ok {
				logger.Component("cache").Warn().Err(res.Err).Time("built_at", builtAt).Msg("refresh failed, serving stale snapshot")
				return prev, nil
			}
			return nil, asUnavailable(res.Err)
		}
		return res.Val.(*models.Snapshot), nil
	case <-ctx.Done():
		if ok {
			return prev, nil
		}
		// The refresh keeps running detached; this caller has nothing to serve.
		return nil, fmt.Errorf("%w: %w", upstream.ErrSourceUnavailable, ctx.Err())
	}
}

// Warm forces a refresh regardless of the snapshot's age. It joins a
// refresh that is already running instead of starting another one.
func (c *Cache) Warm(ctx context.Context) error {
	_, err, _ := c.group.Do(refreshKey, func() (any, error) {
		return c.rebuild(ctx)
	})
	return err
}

// Ready reports whether a snapshot has been built at least once.
func (c *Cache) Ready() bool {
	_, _, ok := c.store.Load()
	return ok
}

// rebuild runs one refresh cycle. It is detached from the caller's
// cancellation so that one client going away does not fail the refresh
// for everybody waiting on it; RefreshTimeout bounds it instead.
func (c *Cache) rebuild(ctx context.Context) (*models.Snapshot, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.RefreshTimeout)
	defer cancel()

	log := logger.Component("cache")
	start := c.now()

	snap, err := c.builder.Build(rctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", c.now().Sub(start)).Msg("snapshot refresh failed")
		return nil, err
	}

	c.store.Store(snap, c.now())
	log.Info().Str("updated_at", snap.UpdatedAt).Dur("elapsed", c.now().Sub(start)).Msg("snapshot refreshed")
	return snap, nil
}

func (c *Cache) fresh(builtAt time.Time) bool {
	return c.now().Sub(builtAt) < c.cfg.TTL
}

func asUnavailable(err error) error {
	if errors.Is(err, upstream.ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", upstream.ErrSourceUnavailable, err)
}
