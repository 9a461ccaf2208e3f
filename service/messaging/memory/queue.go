package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/rtk/internal/idgen"
	"github.com/viant/rtk/service/messaging"
)

// Config for the in-process queue
type Config struct {
	// MaxRetries bounds how many times a nacked message is redelivered
	MaxRetries int

	// RetryDelay is the pause before a nacked message is requeued
	RetryDelay time.Duration

	// DeadLetter retains messages that exhausted their retries
	DeadLetter bool

	// Buffer is the channel capacity; publishers block when it is full
	Buffer int
}

// DefaultConfig returns a standard configuration for the in-process queue
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 50 * time.Millisecond,
		DeadLetter: true,
		Buffer:     256,
	}
}

// Message implements messaging.Message for the in-process queue
type Message[T any] struct {
	id        string
	payload   T
	queue     *Queue[T]
	retries   int
	mu        sync.Mutex
	processed bool
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %v already processed", m.id)
	}
	m.processed = true
	return nil
}

// Nack schedules the message for redelivery, or parks it in the dead
// letter buffer once retries are exhausted.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %v already processed", m.id)
	}
	m.processed = true
	m.retries++

	if m.retries <= m.queue.config.MaxRetries {
		go m.queue.requeue(m)
		return nil
	}
	if m.queue.config.DeadLetter {
		m.queue.dlqMu.Lock()
		m.queue.dlq = append(m.queue.dlq, m)
		m.queue.dlqMu.Unlock()
	}
	return nil
}

// Queue implements an in-process messaging.Queue backed by a channel
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	dlq      []*Message[T]
	dlqMu    sync.Mutex
}

// New creates a new in-process queue
func New[T any](config Config) *Queue[T] {
	if config.Buffer <= 0 {
		config.Buffer = DefaultConfig().Buffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.Buffer),
		config:   config,
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{
		id:      idgen.New(),
		payload: *t,
		queue:   q,
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *Queue[T]) requeue(m *Message[T]) {
	time.Sleep(q.config.RetryDelay)
	q.messages <- &Message[T]{
		id:      m.id,
		payload: m.payload,
		queue:   q,
		retries: m.retries,
	}
}

// Size returns the current number of queued messages
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of dead lettered messages
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
