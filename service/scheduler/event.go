package scheduler

// EventType identifies a scheduler state change.
type EventType string

const (
	EventTaskCreated   EventType = "taskCreated"
	EventTaskDeleted   EventType = "taskDeleted"
	EventContextSwitch EventType = "contextSwitch"
	EventTaskWoken     EventType = "taskWoken"
)

// Event describes a single scheduler state change. Events are emitted inside
// the kernel critical section; consumers bridge them onto a queue.
type Event struct {
	Type   EventType `json:"type"`
	TaskID uint64    `json:"taskID"`
	Tick   uint64    `json:"tick"`
}
