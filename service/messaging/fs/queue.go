// Package fs implements a filesystem backed queue. Each message lives as a
// JSON document whose directory encodes its state, so a crashed consumer
// leaves an inspectable trail and unacked messages survive restarts.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"

	"github.com/viant/rtk/internal/clock"
	"github.com/viant/rtk/internal/idgen"
	"github.com/viant/rtk/service/messaging"
)

// Message implements messaging.Message for the filesystem queue
type Message[T any] struct {
	ID        string    `json:"id"`
	Data      T         `json:"data"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Retries   int       `json:"retries"`

	queue     *Queue[T]
	processed bool
	mu        sync.Mutex
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.Data
}

// Ack removes the message from the processing directory
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %v already processed", m.ID)
	}
	m.processed = true
	return m.queue.complete(context.Background(), m)
}

// Nack requeues the message for another delivery, or parks it in the
// failed directory once retries are exhausted.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message %v already processed", m.ID)
	}
	m.processed = true
	if err != nil {
		m.Error = err.Error()
	}
	m.Retries++
	return m.queue.fail(context.Background(), m)
}

// Config holds configuration for the filesystem queue
type Config struct {
	// BasePath is the root directory holding the queue state
	BasePath string

	// MaxRetries bounds how many times a nacked message is redelivered
	MaxRetries int
}

// DefaultConfig returns a default filesystem queue configuration
func DefaultConfig() Config {
	return Config{
		BasePath:   "/tmp/rtk/queue",
		MaxRetries: 3,
	}
}

// Queue implements a filesystem based messaging.Queue
type Queue[T any] struct {
	fs            afs.Service
	config        Config
	pendingDir    string
	processingDir string
	failedDir     string
	mu            sync.Mutex
}

// New creates a filesystem queue rooted at config.BasePath
func New[T any](fs afs.Service, config Config) (*Queue[T], error) {
	if config.BasePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	q := &Queue[T]{
		fs:            fs,
		config:        config,
		pendingDir:    path.Join(config.BasePath, "pending"),
		processingDir: path.Join(config.BasePath, "processing"),
		failedDir:     path.Join(config.BasePath, "failed"),
	}
	ctx := context.Background()
	for _, dir := range []string{q.pendingDir, q.processingDir, q.failedDir} {
		if exists, _ := fs.Exists(ctx, dir); !exists {
			if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return q, nil
}

// Publish writes a new message into the pending directory
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	message := &Message[T]{
		ID:        idgen.New(),
		Data:      *t,
		CreatedAt: clock.Now(),
		queue:     q,
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	location := path.Join(q.pendingDir, q.filename(message))
	return q.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data))
}

// Consume claims the oldest pending message by moving it into the
// processing directory. It returns (nil, nil) when the queue is empty.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending messages: %w", err)
	}
	oldest := q.oldest(objects)
	if oldest == nil {
		return nil, nil
	}

	data, err := q.fs.DownloadWithURL(ctx, oldest.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", oldest.Name(), err)
	}
	message := &Message[T]{queue: q}
	if err := json.Unmarshal(data, message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", oldest.Name(), err)
	}

	claimed := path.Join(q.processingDir, oldest.Name())
	if err := q.fs.Upload(ctx, claimed, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to claim message %s: %w", oldest.Name(), err)
	}
	if err := q.fs.Delete(ctx, oldest.URL()); err != nil {
		return nil, fmt.Errorf("failed to remove pending message %s: %w", oldest.Name(), err)
	}
	return message, nil
}

// Size returns the number of pending messages
func (q *Queue[T]) Size(ctx context.Context) (int, error) {
	objects, err := q.fs.List(ctx, q.pendingDir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, object := range objects {
		if !object.IsDir() && strings.HasSuffix(object.Name(), ".json") {
			count++
		}
	}
	return count, nil
}

func (q *Queue[T]) complete(ctx context.Context, m *Message[T]) error {
	return q.fs.Delete(ctx, path.Join(q.processingDir, q.filename(m)))
}

func (q *Queue[T]) fail(ctx context.Context, m *Message[T]) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	target := q.pendingDir
	if m.Retries > q.config.MaxRetries {
		target = q.failedDir
	}
	if err := q.fs.Upload(ctx, path.Join(target, q.filename(m)), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return err
	}
	return q.fs.Delete(ctx, path.Join(q.processingDir, q.filename(m)))
}

// filename prefixes the id with the creation timestamp so lexical order
// matches arrival order.
func (q *Queue[T]) filename(m *Message[T]) string {
	return fmt.Sprintf("%020d_%s.json", m.CreatedAt.UnixNano(), m.ID)
}

func (q *Queue[T]) oldest(objects []storage.Object) storage.Object {
	var oldest storage.Object
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		if oldest == nil || object.Name() < oldest.Name() {
			oldest = object
		}
	}
	return oldest
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
