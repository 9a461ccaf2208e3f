package event

import (
	"time"

	"github.com/viant/rtk/internal/clock"
)

// Context carries the kernel coordinates of an event
type Context struct {
	KernelID  string `json:"kernelID"`
	TaskID    uint64 `json:"taskID,omitempty"`
	Tick      uint64 `json:"tick"`
	EventType string `json:"eventType"`
}

// Event pairs a typed payload with its kernel context
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event stamped with the current wall clock time
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
