// Package localcache provides an in-process cache tier backed by ristretto
// that can sit in front of the shared Redis cache.
package localcache

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Local is an in-process ports.Cache. Every entry has a cost of 1, so
// maxItems bounds the number of entries.
type Local struct {
	rc *ristretto.Cache[string, []byte]
}

func NewLocal(maxItems int64) (*Local, error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Local{rc: rc}, nil
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := l.rc.Get(key)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

// Set stores value for ttl. A non-positive ttl stores nothing, since
// ristretto would keep the entry forever.
func (l *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.rc.SetWithTTL(key, bytes.Clone(value), 1, ttl)
	l.rc.Wait()
	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	l.rc.Del(key)
	return nil
}

func (l *Local) Close() {
	l.rc.Close()
}
