package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

const tracerName = "github.com/avatarctic/film-catalog-api/internal/infrastructure/elastic"

// SearchBackend implements ports.SearchBackend over the Elasticsearch REST API.
type SearchBackend struct {
	es      *elasticsearch.Client
	timeout time.Duration
	logger  *logrus.Logger
}

// NewSearchBackend wraps es. timeout bounds every call; a call that runs
// past it fails with ports.ErrBackendUnavailable.
func NewSearchBackend(es *elasticsearch.Client, timeout time.Duration, logger *logrus.Logger) *SearchBackend {
	return &SearchBackend{es: es, timeout: timeout, logger: logger}
}

type getEnvelope struct {
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

type searchEnvelope struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type errorEnvelope struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// GetByID implements SearchBackend.GetByID.
func (b *SearchBackend) GetByID(ctx context.Context, index, id string) (*ports.Document, error) {
	ctx, span := b.startSpan(ctx, "elasticsearch.get", index)
	defer span.End()
	ctx, cancel := b.callCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := b.es.Get(index, id, b.es.Get.WithContext(ctx))
	if err != nil {
		b.observe("get", "unavailable", start)
		return nil, b.fail(span, fmt.Errorf("elasticsearch get %s/%s: %w: %w", index, id, ports.ErrBackendUnavailable, err))
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		// A missing index also answers 404 but is a deployment fault, not an absent id.
		if e := decodeError(res.Body); e.Error.Type == "index_not_found_exception" {
			b.observe("get", "unavailable", start)
			return nil, b.fail(span, fmt.Errorf("elasticsearch get %s/%s: %w: %s", index, id, ports.ErrBackendUnavailable, e.Error.Reason))
		}
		b.observe("get", "not_found", start)
		return nil, fmt.Errorf("%s/%s: %w", index, id, ports.ErrNotFound)
	}
	if res.IsError() {
		b.observe("get", "error", start)
		return nil, b.fail(span, statusError("get", index, res))
	}

	var env getEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		b.observe("get", "malformed", start)
		return nil, b.fail(span, fmt.Errorf("elasticsearch get %s/%s: %w: %w", index, id, ports.ErrMalformedDocument, err))
	}
	if !env.Found {
		b.observe("get", "not_found", start)
		return nil, fmt.Errorf("%s/%s: %w", index, id, ports.ErrNotFound)
	}
	b.observe("get", "ok", start)
	return &ports.Document{ID: env.ID, Source: env.Source}, nil
}

// Search implements SearchBackend.Search.
func (b *SearchBackend) Search(ctx context.Context, req *ports.SearchRequest) (*ports.SearchResponse, error) {
	ctx, span := b.startSpan(ctx, "elasticsearch.search", req.Index)
	defer span.End()
	span.SetAttributes(attribute.Int("search.size", req.Size), attribute.Int("search.from", req.From))

	body, err := searchBody(req)
	if err != nil {
		return nil, b.fail(span, err)
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, b.fail(span, fmt.Errorf("encode search body: %w", err))
	}

	ctx, cancel := b.callCtx(ctx)
	defer cancel()

	start := time.Now()
	res, err := b.es.Search(
		b.es.Search.WithContext(ctx),
		b.es.Search.WithIndex(req.Index),
		b.es.Search.WithBody(&buf),
	)
	if err != nil {
		b.observe("search", "unavailable", start)
		return nil, b.fail(span, fmt.Errorf("elasticsearch search %s: %w: %w", req.Index, ports.ErrBackendUnavailable, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		b.observe("search", "error", start)
		return nil, b.fail(span, statusError("search", req.Index, res))
	}

	var env searchEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		b.observe("search", "malformed", start)
		return nil, b.fail(span, fmt.Errorf("elasticsearch search %s: %w: %w", req.Index, ports.ErrMalformedDocument, err))
	}
	b.observe("search", "ok", start)

	out := &ports.SearchResponse{
		Total:     env.Hits.Total.Value,
		Documents: make([]ports.Document, 0, len(env.Hits.Hits)),
	}
	for _, h := range env.Hits.Hits {
		out.Documents = append(out.Documents, ports.Document{ID: h.ID, Source: h.Source})
	}
	span.SetAttributes(attribute.Int("search.total", out.Total))

	if b.logger != nil {
		b.logger.WithFields(logrus.Fields{"index": req.Index, "total": out.Total, "returned": len(out.Documents)}).Debug("search completed")
	}
	return out, nil
}

func (b *SearchBackend) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *SearchBackend) startSpan(ctx context.Context, name, index string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "elasticsearch"),
			attribute.String("db.elasticsearch.index", index),
		),
	)
}

func (b *SearchBackend) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (b *SearchBackend) observe(op, outcome string, start time.Time) {
	requestDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// statusError classifies a non-2xx answer. Throttling and server errors
// mean the backend is unavailable; other client errors are plain faults.
func statusError(op, index string, res *esapi.Response) error {
	e := decodeError(res.Body)
	reason := e.Error.Reason
	if reason == "" {
		reason = res.Status()
	}
	if res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("elasticsearch %s %s: %w: status %d: %s", op, index, ports.ErrBackendUnavailable, res.StatusCode, reason)
	}
	return fmt.Errorf("elasticsearch %s %s: status %d: %s", op, index, res.StatusCode, reason)
}

func decodeError(body io.Reader) errorEnvelope {
	var e errorEnvelope
	_ = json.NewDecoder(body).Decode(&e)
	return e
}
