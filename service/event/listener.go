package event

import (
	"context"
	"log"
	"time"
)

// Listener drains a publisher's queue and hands each event to a handler
// on a dedicated goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Stop terminates the consume loop
func (l *Listener[T]) Stop() {
	l.cancel()
}

func (l *Listener[T]) Start() {
	go func() {
		for {
			event, err := l.publisher.Consume(l.ctx)
			if l.ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("error consuming event: %v", err)
				continue
			}
			if event == nil {
				// empty poll-based queue
				time.Sleep(10 * time.Millisecond)
				continue
			}
			l.handler(event)
		}
	}()
}
