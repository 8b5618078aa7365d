package jobs

import (
	"context"
	"time"

	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

// RedisQueue pushes jobs onto a Redis list.
type RedisQueue struct {
	client redis.UniversalClient
	key    string
}

// NewRedisQueue creates a queue on the list named key.
func NewRedisQueue(client redis.UniversalClient, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

// Enqueue appends payload to the list.
func (q *RedisQueue) Enqueue(ctx context.Context, payload []byte) error {
	return q.client.RPush(ctx, q.key, payload).Err()
}

// NewRedisDispatcher connects to Redis at url and builds a dispatcher whose
// ledger and queue share the connection. The returned storage must be closed
// on shutdown.
func NewRedisDispatcher(url, queueKey, eta string, ttl time.Duration) (*Dispatcher, *redisstorage.Storage) {
	store := redisstorage.New(redisstorage.Config{
		URL: url,
	})
	queue := NewRedisQueue(store.Conn(), queueKey)
	return NewDispatcher(store, queue, eta, ttl), store
}
