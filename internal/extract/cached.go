package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/agentstation/eventmaster/internal/cache"
	"github.com/agentstation/eventmaster/pkg/constants"
	"github.com/agentstation/eventmaster/pkg/events"
	"github.com/agentstation/eventmaster/pkg/logging"
)

// Cached remembers successful extractions by source and text hash so that
// re-merging the same documents skips the model call. Failures are not cached.
type Cached struct {
	next  Extractor
	store *cache.Cache[[]events.CandidateEvent]
}

// NewCached wraps next with a cache of the given TTL.
func NewCached(next Extractor, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = constants.CacheTTL
	}
	return &Cached{
		next:  next,
		store: cache.New[[]events.CandidateEvent](ttl, constants.CacheCleanupInterval),
	}
}

// Extract implements Extractor.
func (c *Cached) Extract(ctx context.Context, text string, source events.Source) ([]events.CandidateEvent, error) {
	key := Key(source, text)
	if hit, ok := c.store.Get(key); ok {
		logging.FromContext(ctx).Debug().
			Str("source", source.String()).
			Int("count", len(hit)).
			Msg("Using cached extraction")
		return slices.Clone(hit), nil
	}

	candidates, err := c.next.Extract(ctx, text, source)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, slices.Clone(candidates))
	return candidates, nil
}

// Len returns the number of cached extractions.
func (c *Cached) Len() int {
	return c.store.ItemCount()
}

// Clear drops every cached extraction.
func (c *Cached) Clear() {
	c.store.Clear()
}

// Key returns the cache key of one document text.
func Key(source events.Source, text string) string {
	sum := sha256.Sum256([]byte(source.String() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
