// Package registry manages the fixed-capacity pool of task records and their
// owned stack regions. It allocates and releases identity slots; all
// scheduling decisions belong to the scheduler service.
//
// The registry is deliberately not safe for concurrent use on its own – every
// call happens inside the scheduler's critical section, the single-processor
// analog of running with the tick interrupt masked.
package registry

import (
	"fmt"

	"github.com/viant/rtk/model/task"
)

// Config represents registry configuration
type Config struct {
	// MaxTasks is the fixed capacity of the task pool
	MaxTasks int

	// StackSize is the per-task stack allocation quantum in bytes
	StackSize int

	// PriorityLevels is the number of priority levels (0 = highest)
	PriorityLevels int
}

// DefaultConfig returns the default registry configuration
func DefaultConfig() Config {
	return Config{
		MaxTasks:       8,
		StackSize:      1024,
		PriorityLevels: 4,
	}
}

// Service owns the task pool. Task ids are monotonically increasing and never
// reused while the kernel runs; slots are reused as tasks terminate.
type Service struct {
	config    Config
	allocator Allocator
	slots     []*task.Task
	nextID    uint64
}

// New creates a registry with the supplied configuration.
func New(config Config, options ...Option) *Service {
	s := &Service{
		config: config,
		slots:  make([]*task.Task, config.MaxTasks),
		nextID: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.allocator == nil {
		s.allocator = NewHeapAllocator()
	}
	return s
}

// Config returns the registry configuration.
func (s *Service) Config() Config { return s.config }

// Create builds a task record in the first free slot: initial saved context
// pointing at the entry, stack pointer at the top of the owned region, state
// Ready. Queue registration is the caller's concern.
func (s *Service) Create(name string, entry task.Entry, arg interface{}, priority, stackSize int) (*task.Task, error) {
	if priority < 0 || priority >= s.config.PriorityLevels {
		return nil, fmt.Errorf("%w: %d (levels: %d)", ErrInvalidPriority, priority, s.config.PriorityLevels)
	}
	if stackSize <= 0 {
		stackSize = s.config.StackSize
	}
	if stackSize > s.config.StackSize {
		return nil, fmt.Errorf("%w: %d (quantum: %d)", ErrStackTooLarge, stackSize, s.config.StackSize)
	}
	slot := task.NoSlot
	for i := range s.slots {
		if s.slots[i] == nil {
			slot = i
			break
		}
	}
	if slot == task.NoSlot {
		return nil, fmt.Errorf("%w (capacity: %d)", ErrPoolExhausted, s.config.MaxTasks)
	}
	stack, err := s.allocator.Allocate(stackSize)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate stack: %w", err)
	}
	if len(name) > task.NameLimit {
		name = name[:task.NameLimit]
	}
	t := &task.Task{
		ID:       s.nextID,
		Name:     name,
		Priority: priority,
		State:    task.StateReady,
		Stack:    stack,
		Context:  task.NewContext(entry, stackSize),
		Entry:    entry,
		Arg:      arg,
		Slot:     slot,
	}
	t.Unlink()
	s.nextID++
	s.slots[slot] = t
	return t, nil
}

// Release marks a task Terminated and reclaims its slot and stack region. The
// caller must have unlinked it from any ring first.
func (s *Service) Release(t *task.Task) {
	if t == nil || t.Slot == task.NoSlot {
		return
	}
	t.State = task.StateTerminated
	t.Unlink()
	s.allocator.Release(t.Stack)
	t.Stack = nil
	s.slots[t.Slot] = nil
	t.Slot = task.NoSlot
}

// Lookup returns the live task with the given id.
func (s *Service) Lookup(id uint64) (*task.Task, error) {
	for _, t := range s.slots {
		if t != nil && t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// At returns the task occupying the given slot, or nil.
func (s *Service) At(slot int) *task.Task {
	if slot < 0 || slot >= len(s.slots) {
		return nil
	}
	return s.slots[slot]
}

// Each invokes fn for every live task, in slot order.
func (s *Service) Each(fn func(*task.Task)) {
	for _, t := range s.slots {
		if t != nil {
			fn(t)
		}
	}
}

// Len returns the number of live tasks.
func (s *Service) Len() int {
	n := 0
	for _, t := range s.slots {
		if t != nil {
			n++
		}
	}
	return n
}
