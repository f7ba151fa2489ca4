package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tableflip.dev/devo/pkg/entry"
)

type redisPersistence struct {
	client *redis.Client
	key    string
}

func newRedis(url, key string) (*redisPersistence, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}

	opt.PoolSize = 4
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: connect redis: %w", err)
	}
	return &redisPersistence{client: client, key: key}, nil
}

func (p *redisPersistence) Load(ctx context.Context) ([]*entry.Entry, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: redis get %s: %w", p.key, err)
	}
	return decode(data)
}

func (p *redisPersistence) Save(ctx context.Context, entries []*entry.Entry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set %s: %w", p.key, err)
	}
	return nil
}

func (p *redisPersistence) Watch(_ context.Context) (<-chan Event, error) {
	return closedEvents(), nil
}

func (p *redisPersistence) Close() error {
	return p.client.Close()
}
