package infra_redis_watchlist

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/watchnext/internal/model"
)

var ErrCorruptedSnapshot = errors.New("corrupted watchlist snapshot")

// Driver keeps the whole watchlist as one JSON document.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Save(ctx context.Context, titles []model.Title) error {
	if titles == nil {
		titles = []model.Title{}
	}
	payload, err := json.Marshal(titles)
	if err != nil {
		return err
	}

	return d.client.WithContext(ctx).Set(d.key, payload, 0).Err()
}

func (d *Driver) Load(ctx context.Context) ([]model.Title, error) {
	raw, err := d.client.WithContext(ctx).Get(d.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var titles []model.Title
	if err := json.Unmarshal(raw, &titles); err != nil {
		return nil, errors.Join(ErrCorruptedSnapshot, err)
	}

	return titles, nil
}
