package infra_redis_catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/watchnext/internal/model"
)

type Fetcher interface {
	FetchTitlesForPerson(ctx context.Context, personID string) ([]model.Title, error)
}

// Cache memoizes filmographies in redis. Any cache failure degrades to
// a direct upstream call.
type Cache struct {
	client   *redis.Client
	upstream Fetcher
	key      string
	ttl      time.Duration
	logger   *slog.Logger
}

type CacheOption func(*Cache)

func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

func New(
	client *redis.Client,
	upstream Fetcher,
	key string,
	ttl time.Duration,
	opts ...CacheOption,
) *Cache {
	c := &Cache{
		client:   client,
		upstream: upstream,
		key:      key,
		ttl:      ttl,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) FetchTitlesForPerson(ctx context.Context, personID string) ([]model.Title, error) {
	fullKey := c.getFullKey(personID)

	raw, err := c.client.WithContext(ctx).Get(fullKey).Bytes()
	switch {
	case err == nil:
		var titles []model.Title
		if err := json.Unmarshal(raw, &titles); err == nil {
			return titles, nil
		}
		c.logger.Warn("corrupted catalog cache entry", slog.String("key", fullKey))
	case err != redis.Nil:
		c.logger.Warn("catalog cache read failed",
			slog.String("key", fullKey),
			slog.String("error", err.Error()))
	}

	titles, err := c.upstream.FetchTitlesForPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(titles)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", slog.String("error", err.Error()))
		return titles, nil
	}
	if err := c.client.WithContext(ctx).Set(fullKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed",
			slog.String("key", fullKey),
			slog.String("error", err.Error()))
	}

	return titles, nil
}

func (c *Cache) getFullKey(personID string) string {
	if c.key != "" {
		return c.key + ":person:" + personID
	}
	return "person:" + personID
}
