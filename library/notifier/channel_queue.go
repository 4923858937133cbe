package notifier

import (
	"context"
	"sync"
)

// ChannelQueue is an in-process Queue over a buffered channel.
// Messages still buffered at Close are handed out before Dequeue reports ErrQueueClosed.
type ChannelQueue struct {
	mu       sync.RWMutex
	messages chan Message
	closed   bool
}

var _ Queue = (*ChannelQueue)(nil)

// NewChannelQueue creates a ChannelQueue holding at most capacity messages.
func NewChannelQueue(capacity int) *ChannelQueue {
	return &ChannelQueue{messages: make(chan Message, capacity)}
}

// Enqueue adds the message, or fails with ErrQueueFull if the buffer is full.
func (q *ChannelQueue) Enqueue(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.messages <- message:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue waits for the next message.
func (q *ChannelQueue) Dequeue(ctx context.Context) (Message, error) {
	select {
	case message, ok := <-q.messages:
		if !ok {
			return Message{}, ErrQueueClosed
		}

		return message, nil

	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Close stops accepting messages. Closing twice is a no-op.
func (q *ChannelQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.messages)
	}

	return nil
}

// Len returns the number of buffered messages.
func (q *ChannelQueue) Len() int {
	return len(q.messages)
}
