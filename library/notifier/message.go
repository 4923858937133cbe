package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrQueueClosed is returned by a Queue after Close, once no message is left to hand out.
	ErrQueueClosed = errors.New("notification queue is closed")

	// ErrQueueFull is returned when a bounded Queue cannot take another message.
	ErrQueueFull = errors.New("notification queue is full")

	// ErrMalformedMessage is returned when a queued message cannot be decoded.
	ErrMalformedMessage = errors.New("malformed notification message")
)

// Message is one notification waiting for delivery.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewMessage creates a Message with a fresh id.
func NewMessage(text string) Message {
	return Message{
		ID:         uuid.NewString(),
		Text:       text,
		EnqueuedAt: time.Now().UTC(),
	}
}

func (m Message) marshal() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(m)
}

func unmarshalMessage(data []byte) (Message, error) {
	var m Message
	if err := jsoniter.ConfigFastest.Unmarshal(data, &m); err != nil {
		return Message{}, errors.Join(ErrMalformedMessage, err)
	}

	return m, nil
}

// Queue buffers messages between Notify and the delivery workers.
type Queue interface {
	// Enqueue adds a message without waiting for a worker.
	Enqueue(ctx context.Context, message Message) error

	// Dequeue blocks until a message is available, the queue is closed (ErrQueueClosed), or ctx is done.
	Dequeue(ctx context.Context) (Message, error)

	// Close stops accepting messages. Workers receive ErrQueueClosed once the queue has nothing left for them.
	Close() error
}

// Sender delivers a text to its destination.
type Sender interface {
	Send(ctx context.Context, text string) error
}
