package health

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/film-catalog-api/internal/core/ports"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client redis.Cmdable }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// elasticHealthChecker pings the search cluster.
type elasticHealthChecker struct{ es *elasticsearch.Client }

func (e *elasticHealthChecker) Name() string { return "elasticsearch" }
func (e *elasticHealthChecker) Check(ctx context.Context) error {
	res, err := e.es.Ping(e.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewElasticHealthChecker creates a health checker for Elasticsearch.
func NewElasticHealthChecker(es *elasticsearch.Client) ports.HealthChecker {
	return &elasticHealthChecker{es: es}
}
