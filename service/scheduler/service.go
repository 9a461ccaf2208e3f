// Package scheduler implements the kernel core: a fixed-priority, preemptive,
// round-robin dispatcher for a single logical processor, driven by an
// external periodic tick. Priority 0 is the highest level; within a level
// tasks rotate round-robin on time-slice exhaustion. A single mutex guards
// all queue and registry mutation – the single-processor analog of masking
// the tick interrupt for the duration of a critical section.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/rtk/model/task"
	"github.com/viant/rtk/platform"
	"github.com/viant/rtk/service/registry"
	"github.com/viant/rtk/stats"
)

// Config represents scheduler configuration
type Config struct {
	// TimeSlice is the tick budget granted to a task per dispatch
	TimeSlice int

	// TickPeriod is the nominal wall-clock duration of one tick
	TickPeriod time.Duration
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		TimeSlice:  10,
		TickPeriod: time.Millisecond,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c.TimeSlice <= 0 {
		return fmt.Errorf("timeSlice must be > 0")
	}
	if c.TickPeriod <= 0 {
		return fmt.Errorf("tickPeriod must be > 0")
	}
	return nil
}

// Service holds the process-wide scheduler state: the ready-queue set, the
// current and idle tasks, the tick counter and aggregate statistics.
type Service struct {
	mu       sync.Mutex
	config   Config
	registry *registry.Service
	switcher platform.Switcher
	tracker  *stats.Tracker
	notifier func(Event)

	ready   []int
	waits   []*WaitQueue
	current int
	idle    int
	idleID  uint64
	tick    uint64
	running bool
}

// New creates a scheduler bound to the supplied registry and creates the
// always-present idle task at the lowest priority level.
func New(reg *registry.Service, config Config, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	levels := reg.Config().PriorityLevels
	if levels <= 0 {
		return nil, fmt.Errorf("priorityLevels must be > 0")
	}
	s := &Service{
		config:   config,
		registry: reg,
		ready:    make([]int, levels),
		current:  task.NoSlot,
		idle:     task.NoSlot,
	}
	for i := range s.ready {
		s.ready[i] = task.NoSlot
	}
	for _, opt := range options {
		opt(s)
	}
	if s.switcher == nil {
		s.switcher = platform.Noop{}
	}
	if s.tracker == nil {
		s.tracker = stats.NewTracker("")
	}
	idle, err := reg.Create("idle", s.idleEntry(), nil, levels-1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create idle task: %w", err)
	}
	s.idle = idle.Slot
	s.idleID = idle.ID
	idle.SliceRemaining = config.TimeSlice
	s.enqueueLocked(idle)
	s.tracker.Update(stats.Delta{TasksCreated: 1})
	s.switcher.Created(idle)
	return s, nil
}

// idleEntry returns the idle task body: park when preempted, otherwise stand
// by for one tick period. It only ever runs under a platform switcher that
// resumes task code.
func (s *Service) idleEntry() task.Entry {
	return func(interface{}) {
		for {
			s.Checkpoint(s.idleID)
			time.Sleep(s.config.TickPeriod)
		}
	}
}

// Config returns the scheduler configuration.
func (s *Service) Config() Config { return s.config }

// Start marks the scheduler running and performs the initial dispatch. The
// periodic tick source is external; Start arms nothing and returns
// immediately.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	next := s.selectNextLocked()
	s.switchLocked(nil, next)
	return nil
}

// Running reports whether Start has been called.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CurrentTaskID returns the id of the running task, 0 before the first
// dispatch.
func (s *Service) CurrentTaskID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIDLocked()
}

// IdleTaskID returns the id of the always-present idle task.
func (s *Service) IdleTaskID() uint64 { return s.idleID }

// Uptime returns the number of elapsed ticks.
func (s *Service) Uptime() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Stats returns a snapshot of the aggregate scheduler counters.
func (s *Service) Stats() stats.Stats {
	return s.tracker.Snapshot()
}

// TaskInfo returns a snapshot of the task with the given id.
func (s *Service) TaskInfo(id uint64) (task.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Lookup(id)
	if err != nil {
		return task.Snapshot{}, false
	}
	return t.Snapshot(), true
}

// TaskList returns snapshots of every live task in slot order.
func (s *Service) TaskList() []task.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []task.Snapshot
	s.registry.Each(func(t *task.Task) {
		out = append(out, t.Snapshot())
	})
	return out
}

// Checkpoint is a voluntary preemption point: when the task with the given id
// has been preempted, the calling execution unit parks until the task is
// dispatched again; otherwise the call returns immediately.
func (s *Service) Checkpoint(id uint64) {
	s.parkIfPreempted(id)
}

func (s *Service) currentIDLocked() uint64 {
	if t := s.registry.At(s.current); t != nil {
		return t.ID
	}
	return 0
}

// parkIfPreempted realises a suspension through the platform switcher when
// the given task is no longer current. No-op for the simulation switcher.
func (s *Service) parkIfPreempted(id uint64) {
	if id == 0 {
		return
	}
	s.mu.Lock()
	cur := s.currentIDLocked()
	s.mu.Unlock()
	if cur != id {
		s.switcher.Park(id)
	}
}

func (s *Service) notifyLocked(kind EventType, taskID uint64) {
	if s.notifier == nil {
		return
	}
	s.notifier(Event{Type: kind, TaskID: taskID, Tick: s.tick})
}
