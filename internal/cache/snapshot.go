package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshot cache for upstream reads. Entries are considered fresh for
// FreshFor after fetch and are evicted RetainFor after their last write; in
// between, a stale entry may still be served when a refresh fetch fails, so
// transient upstream trouble degrades to slightly old data instead of an
// error page.
const (
	FreshFor  = 5 * time.Minute
	RetainFor = 10 * time.Minute
)

// Cache keys used by the gateway.
const (
	KeyVenues     = "holidaze:venues:snapshot"
	ProfilePrefix = "holidaze:profile:"
)

var errMiss = errors.New("cache: miss")

// store is the keyspace the snapshot layer runs over. Redis in production; a
// map fake in tests.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisStore struct {
	rdb *redis.Client
}

func (r redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return raw, err
}

func (r redisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, val, ttl).Err()
}

func (r redisStore) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (e entry) fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < FreshFor
}

// Snapshots coordinates cached upstream fetches. A nil Redis client disables
// caching entirely; every Fetch then loads straight from upstream.
type Snapshots struct {
	store store
	now   func() time.Time
}

func New(rdb *redis.Client) *Snapshots {
	s := &Snapshots{now: time.Now}
	if rdb != nil {
		s.store = redisStore{rdb: rdb}
	}
	return s
}

// Fetch fills dest with the cached value for key when fresh, otherwise loads
// from upstream, caches the result and fills dest with it. Cache transport
// errors are treated as misses: the cache must never make a working upstream
// unreachable.
func (s *Snapshots) Fetch(ctx context.Context, key string, dest any, load func(context.Context) (any, error)) error {
	if s.store == nil {
		v, err := load(ctx)
		if err != nil {
			return err
		}
		return assign(v, dest)
	}

	var cached *entry
	if raw, err := s.store.Get(ctx, key); err == nil {
		var e entry
		if err := json.Unmarshal(raw, &e); err == nil {
			cached = &e
		}
	}

	if cached != nil && cached.fresh(s.now()) {
		return json.Unmarshal(cached.Payload, dest)
	}

	v, err := load(ctx)
	if err != nil {
		// Serve the stale copy while it is still retained.
		if cached != nil {
			return json.Unmarshal(cached.Payload, dest)
		}
		return err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	e := entry{FetchedAt: s.now(), Payload: payload}
	if raw, err := json.Marshal(e); err == nil {
		// Best effort; a failed write only costs the next request a fetch.
		_ = s.store.Set(ctx, key, raw, RetainFor)
	}

	return json.Unmarshal(payload, dest)
}

// assign moves a loaded value into the caller's destination through the same
// JSON round-trip the cached path uses, so both paths decode identically.
func assign(v, dest any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode loaded value: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

// Invalidate drops a key after a write that made its snapshot lie, e.g. a
// venue edit feeding the list pipeline.
func (s *Snapshots) Invalidate(ctx context.Context, key string) {
	if s.store == nil {
		return
	}
	_ = s.store.Del(ctx, key)
}
