package cache

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/orderflow-io/orderflow/internal/adapter/config"
)

const scanBatch = 100

// Redis implements cache invalidation on top of rueidis. Removing an
// absent key succeeds, which is exactly what an at-least-once consumer
// needs.
type Redis struct {
	client rueidis.Client
}

func NewRedis(conf *config.Redis) (*Redis, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{conf.Addr},
	})
	if err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(key).Build()
	return r.client.Do(ctx, cmd).Error()
}

// RemoveByPattern walks the keyspace with SCAN and deletes every match.
func (r *Redis) RemoveByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(pattern).Count(scanBatch).Build()
		entry, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return err
		}

		if len(entry.Elements) > 0 {
			del := r.client.B().Del().Key(entry.Elements...).Build()
			if err := r.client.Do(ctx, del).Error(); err != nil {
				return err
			}
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (r *Redis) Flush(ctx context.Context) error {
	cmd := r.client.B().Flushdb().Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *Redis) Close() {
	r.client.Close()
}
