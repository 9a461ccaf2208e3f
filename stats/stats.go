// Package stats provides a lightweight tracker that keeps aggregated
// scheduler counters (ticks, context switches, idle ticks, …) for a single
// kernel instance. Components update the counters atomically via the Delta
// helper; readers take point-in-time snapshots.
package stats

import (
	"fmt"
	"sync"
	"time"
)

// Stats is a read-only snapshot of the aggregate scheduler counters.
type Stats struct {
	TotalTicks      uint64 `json:"totalTicks"`
	ContextSwitches uint64 `json:"contextSwitches"`
	IdleTicks       uint64 `json:"idleTicks"`
	TasksCreated    uint64 `json:"tasksCreated"`
	TasksDeleted    uint64 `json:"tasksDeleted"`
}

// CPUUtilization returns the busy share of elapsed ticks as a percentage,
// 0 when no ticks have elapsed.
func (s Stats) CPUUtilization() int {
	if s.TotalTicks == 0 {
		return 0
	}
	busy := s.TotalTicks - s.IdleTicks
	return int(busy * 100 / s.TotalTicks)
}

// String renders the counters in a single line suitable for logs.
func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d switches=%d idle=%d created=%d deleted=%d cpu=%d%%",
		s.TotalTicks, s.ContextSwitches, s.IdleTicks, s.TasksCreated, s.TasksDeleted, s.CPUUtilization())
}

// Delta represents an incremental counter change emitted by the tick engine,
// dispatcher or registry operations.
type Delta struct {
	Ticks           int
	ContextSwitches int
	IdleTicks       int
	TasksCreated    int
	TasksDeleted    int
}

// Tracker accumulates scheduler counters. It is safe for concurrent use.
type Tracker struct {
	// Identification – informative only.
	KernelID  string
	StartedAt time.Time

	stats Stats

	mu       sync.Mutex
	onChange func(Stats)
}

// NewTracker returns a tracker for the given kernel instance.
func NewTracker(kernelID string) *Tracker {
	return &Tracker{KernelID: kernelID, StartedAt: time.Now()}
}

// Update applies the supplied delta. If an onChange callback has been
// registered it is invoked with a copy of the updated counters outside the
// critical section so that slow consumers cannot block the tick engine.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.stats.TotalTicks += uint64(d.Ticks)
	t.stats.ContextSwitches += uint64(d.ContextSwitches)
	t.stats.IdleTicks += uint64(d.IdleTicks)
	t.stats.TasksCreated += uint64(d.TasksCreated)
	t.stats.TasksDeleted += uint64(d.TasksDeleted)
	snapshot := t.stats
	callback := t.onChange
	t.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() Stats {
	if t == nil {
		return Stats{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// OnChange registers a callback invoked after every update.
func (t *Tracker) OnChange(fn func(Stats)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}
