package task

// Entry is a task entry point. The kernel never invokes it directly – it only
// arranges for the saved context to resume there; the platform switcher owns
// the actual resumption.
type Entry func(arg interface{})

// NoSlot marks an unused arena slot or ring link.
const NoSlot = -1

// NameLimit bounds the display name kept in a task record.
const NameLimit = 16

// Ring identifies which collection currently links a task. A task is a member
// of at most one ring at any instant.
type Ring int

const (
	RingNone Ring = iota
	RingReady
	RingWait
)

// Task is the task control block. It is owned exclusively by the registry
// while alive; ready and wait rings reference it by its arena slot.
type Task struct {
	// identity
	ID   uint64
	Name string

	// scheduling attributes
	Priority       int
	State          State
	SliceRemaining int
	TotalRuntime   uint64
	LastRunTick    uint64
	// WakeTick is meaningful only while blocked on a sleep timer; tasks
	// blocked on a primitive keep it zero.
	WakeTick uint64

	// execution context
	Stack   []byte
	Context Context
	Entry   Entry
	Arg     interface{}

	// arena and ring bookkeeping
	Slot int
	Next int
	Prev int
	Ring Ring
	// WaitID indexes the wait queue holding the task when Ring == RingWait.
	WaitID int
}

// Snapshot is a read-only copy of the observable task attributes.
type Snapshot struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Priority       int    `json:"priority"`
	State          State  `json:"state"`
	SliceRemaining int    `json:"sliceRemaining"`
	TotalRuntime   uint64 `json:"totalRuntime"`
	LastRunTick    uint64 `json:"lastRunTick"`
	WakeTick       uint64 `json:"wakeTick,omitempty"`
	StackSize      int    `json:"stackSize"`
}

// Snapshot returns a copy of the task's observable attributes.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:             t.ID,
		Name:           t.Name,
		Priority:       t.Priority,
		State:          t.State,
		SliceRemaining: t.SliceRemaining,
		TotalRuntime:   t.TotalRuntime,
		LastRunTick:    t.LastRunTick,
		WakeTick:       t.WakeTick,
		StackSize:      len(t.Stack),
	}
}

// Unlink clears the ring links without touching any ring head; callers fix the
// ring structure first.
func (t *Task) Unlink() {
	t.Next = NoSlot
	t.Prev = NoSlot
	t.Ring = RingNone
	t.WaitID = NoSlot
}
