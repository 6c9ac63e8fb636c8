package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

const tracerName = "github.com/avatarctic/film-catalog-api/internal/application/services"

var cacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "item_cache_lookups_total",
		Help: "Cache lookups of single items by index and outcome (hit, miss, error)",
	},
	[]string{"index", "outcome"},
)

func init() {
	prometheus.MustRegister(cacheLookups)
}

// FetcherDeps groups the collaborators shared by every ItemFetcher.
type FetcherDeps struct {
	Cache   ports.Cache
	Backend ports.SearchBackend
	Codec   ports.Codec
	TTL     time.Duration
	// CacheTimeout bounds each cache call; zero leaves the request deadline alone.
	CacheTimeout time.Duration
	Logger       *logrus.Logger
}

// ItemFetcher reads single entities of type T from one index, cache first.
// Binding the index at construction keeps T and the index paired at every
// call site.
type ItemFetcher[T any] struct {
	index string
	deps  FetcherDeps
	group singleflight.Group
}

func NewItemFetcher[T any](index string, deps FetcherDeps) *ItemFetcher[T] {
	return &ItemFetcher[T]{index: index, deps: deps}
}

// Index returns the index this fetcher reads from.
func (f *ItemFetcher[T]) Index() string { return f.index }

// cacheKey namespaces ids per index so equal ids of different kinds never collide.
func (f *ItemFetcher[T]) cacheKey(id string) string {
	return f.index + ":" + id
}

// FetchByID returns the entity with id. Absent ids yield ports.ErrNotFound
// and leave the cache untouched. Cache failures degrade to a backend read.
func (f *ItemFetcher[T]) FetchByID(ctx context.Context, id string) (*T, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ItemFetcher.FetchByID")
	defer span.End()
	span.SetAttributes(attribute.String("item.index", f.index), attribute.String("item.id", id))

	key := f.cacheKey(id)
	if item, ok := f.fromCache(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return item, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// Concurrent misses on one key share a single backend read and cache write.
	// The shared read is detached from the caller that started it so one
	// caller going away does not fail the others; the backend bounds it with
	// its own request timeout.
	ch := f.group.DoChan(key, func() (any, error) {
		return f.fromBackend(context.WithoutCancel(ctx), id, key)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		err := fmt.Errorf("%s/%s: %w", f.index, id, ctx.Err())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	v, err := res.Val, res.Err
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}
	shared := v.(*T)
	item := *shared
	return &item, nil
}

func (f *ItemFetcher[T]) fromCache(ctx context.Context, key string) (*T, bool) {
	if f.deps.Cache == nil {
		return nil, false
	}
	cctx, cancel := f.cacheCtx(ctx)
	defer cancel()

	data, ok, err := f.deps.Cache.Get(cctx, key)
	if err != nil {
		cacheLookups.WithLabelValues(f.index, "error").Inc()
		f.log().WithFields(logrus.Fields{"index": f.index, "key": key}).WithError(err).Warn("cache read failed; falling back to search backend")
		return nil, false
	}
	if !ok {
		cacheLookups.WithLabelValues(f.index, "miss").Inc()
		return nil, false
	}

	var item T
	if err := f.deps.Codec.Unmarshal(data, &item); err != nil {
		cacheLookups.WithLabelValues(f.index, "error").Inc()
		f.log().WithFields(logrus.Fields{"index": f.index, "key": key, "codec": f.deps.Codec.Name()}).WithError(err).Warn("undecodable cache entry; treating as miss")
		return nil, false
	}
	cacheLookups.WithLabelValues(f.index, "hit").Inc()
	return &item, true
}

func (f *ItemFetcher[T]) fromBackend(ctx context.Context, id, key string) (*T, error) {
	doc, err := f.deps.Backend.GetByID(ctx, f.index, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			f.log().WithFields(logrus.Fields{"index": f.index, "id": id}).Debug("item not found")
		}
		return nil, err
	}

	var item T
	if err := json.Unmarshal(doc.Source, &item); err != nil {
		f.log().WithFields(logrus.Fields{"index": f.index, "id": id}).WithError(err).Error("search backend returned a document that does not decode")
		return nil, fmt.Errorf("%s/%s: %w: %w", f.index, id, ports.ErrMalformedDocument, err)
	}

	f.store(ctx, key, &item)
	return &item, nil
}

// store writes the snapshot back; failures are logged and never fail the read.
func (f *ItemFetcher[T]) store(ctx context.Context, key string, item *T) {
	if f.deps.Cache == nil {
		return
	}
	data, err := f.deps.Codec.Marshal(item)
	if err != nil {
		f.log().WithFields(logrus.Fields{"index": f.index, "key": key}).WithError(err).Warn("failed to encode cache entry")
		return
	}
	cctx, cancel := f.cacheCtx(ctx)
	defer cancel()
	if err := f.deps.Cache.Set(cctx, key, data, f.deps.TTL); err != nil {
		f.log().WithFields(logrus.Fields{"index": f.index, "key": key}).WithError(err).Warn("cache write failed")
	}
}

func (f *ItemFetcher[T]) cacheCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.deps.CacheTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.deps.CacheTimeout)
}

func (f *ItemFetcher[T]) log() logrus.FieldLogger {
	if f.deps.Logger == nil {
		return logrus.StandardLogger()
	}
	return f.deps.Logger
}
