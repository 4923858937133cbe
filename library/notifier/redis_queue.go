package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisQueueKey  = "library:notifications"
	defaultRedisPollAfter = time.Second
)

// RedisQueueOption defines a functional option for configuring the RedisQueue.
type RedisQueueOption func(*RedisQueue)

// WithKey sets the redis list the messages are kept in.
func WithKey(key string) RedisQueueOption {
	return func(q *RedisQueue) {
		q.key = key
	}
}

// WithPollTimeout sets how long one blocking pop waits before Dequeue checks for Close again.
func WithPollTimeout(timeout time.Duration) RedisQueueOption {
	return func(q *RedisQueue) {
		q.pollTimeout = timeout
	}
}

// RedisQueue is a Queue on a redis list: LPUSH to enqueue, BRPOP to dequeue, JSON envelopes.
// Messages left in the list at Close stay there for the next process.
type RedisQueue struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
	closed      atomic.Bool
}

var _ Queue = (*RedisQueue)(nil)

// NewRedisQueue creates a RedisQueue. The client stays owned by the caller.
func NewRedisQueue(client *redis.Client, options ...RedisQueueOption) *RedisQueue {
	q := &RedisQueue{
		client:      client,
		key:         defaultRedisQueueKey,
		pollTimeout: defaultRedisPollAfter,
	}

	for _, option := range options {
		option(q)
	}

	return q
}

// Enqueue pushes the message onto the list.
func (q *RedisQueue) Enqueue(ctx context.Context, message Message) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}

	data, err := message.marshal()
	if err != nil {
		return errors.Join(ErrMalformedMessage, err)
	}

	return q.client.LPush(ctx, q.key, data).Err()
}

// Dequeue pops the oldest message, polling until one arrives, the queue is closed, or ctx is done.
func (q *RedisQueue) Dequeue(ctx context.Context) (Message, error) {
	for {
		if q.closed.Load() {
			return Message{}, ErrQueueClosed
		}

		if err := ctx.Err(); err != nil {
			return Message{}, err
		}

		result, err := q.client.BRPop(ctx, q.pollTimeout, q.key).Result()

		switch {
		case errors.Is(err, redis.Nil):
			continue

		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Message{}, ctxErr
			}

			return Message{}, err
		}

		// BRPOP answers with [key, value].
		return unmarshalMessage([]byte(result[1]))
	}
}

// Close stops accepting and handing out messages.
func (q *RedisQueue) Close() error {
	q.closed.Store(true)

	return nil
}

// Len returns the number of messages in the list.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
