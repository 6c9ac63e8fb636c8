package localcache

import (
	"context"
	"time"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// DefaultLocalTTL replaces a non-positive local TTL, which ristretto would
// read as "never expire".
const DefaultLocalTTL = 30 * time.Second

// Tiered checks the local tier before the shared one. Local copies live for
// at most localTTL, which callers keep at or below the write TTL.
type Tiered struct {
	local    ports.Cache
	shared   ports.Cache
	localTTL time.Duration
}

func NewTiered(local, shared ports.Cache, localTTL time.Duration) *Tiered {
	if localTTL <= 0 {
		localTTL = DefaultLocalTTL
	}
	return &Tiered{local: local, shared: shared, localTTL: localTTL}
}

// LocalTTL returns the lifetime of promoted entries.
func (t *Tiered) LocalTTL() time.Duration { return t.localTTL }

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok, err := t.local.Get(ctx, key); err == nil && ok {
		return v, true, nil
	}
	v, ok, err := t.shared.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.local.Set(ctx, key, v, t.localTTL)
	return v, true, nil
}

// Set writes the shared tier first; the local tier is written even when the
// shared write fails and the shared error is returned.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := t.shared.Set(ctx, key, value, ttl)
	localTTL := t.localTTL
	if ttl > 0 {
		localTTL = min(ttl, localTTL)
	}
	_ = t.local.Set(ctx, key, value, localTTL)
	return err
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	_ = t.local.Delete(ctx, key)
	return t.shared.Delete(ctx, key)
}
