package scheduler

import (
	"fmt"

	"github.com/viant/rtk/model/task"
	"github.com/viant/rtk/service/registry"
	"github.com/viant/rtk/stats"
)

// CreateTask registers a new task at the tail of its priority's ready queue
// and returns its id. A freshly created higher-priority task preempts at the
// next tick, not within this call.
func (s *Service) CreateTask(name string, entry task.Entry, arg interface{}, priority, stackSize int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Create(name, entry, arg, priority, stackSize)
	if err != nil {
		return 0, err
	}
	t.SliceRemaining = s.config.TimeSlice
	s.enqueueLocked(t)
	s.tracker.Update(stats.Delta{TasksCreated: 1})
	s.notifyLocked(EventTaskCreated, t.ID)
	s.switcher.Created(t)
	return t.ID, nil
}

// DeleteTask removes the task from whichever queue holds it, marks it
// Terminated and reclaims its slot and stack. Deleting the running task
// dispatches the next ready task before the call returns, so a Terminated
// context is never resumed.
func (s *Service) DeleteTask(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Lookup(id)
	if err != nil {
		return err
	}
	if t.Slot == s.idle {
		return fmt.Errorf("idle task cannot be deleted")
	}
	s.unlinkLocked(t)
	t.State = task.StateTerminated
	if t.Slot == s.current {
		s.dispatchLocked()
	}
	s.registry.Release(t)
	s.tracker.Update(stats.Delta{TasksDeleted: 1})
	s.notifyLocked(EventTaskDeleted, id)
	s.switcher.Exited(id)
	return nil
}

// SuspendTask moves a task to Suspended without altering its priority or
// saved context. Suspending the running task triggers an immediate
// reschedule.
func (s *Service) SuspendTask(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Lookup(id)
	if err != nil {
		return err
	}
	if t.Slot == s.idle {
		return fmt.Errorf("idle task cannot be suspended")
	}
	if t.State == task.StateSuspended {
		return nil
	}
	s.unlinkLocked(t)
	t.WakeTick = 0
	t.State = task.StateSuspended
	if t.Slot == s.current {
		s.dispatchLocked()
	}
	return nil
}

// ResumeTask moves a Suspended task back to the tail of its priority's ready
// queue. Resuming a task in any other state is a no-op.
func (s *Service) ResumeTask(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.registry.Lookup(id)
	if err != nil {
		return err
	}
	if t.State != task.StateSuspended {
		return nil
	}
	s.enqueueLocked(t)
	return nil
}

// SetPriority changes a task's priority level. A Ready task is re-inserted
// at the new level's tail, resetting its round-robin position; lowering the
// running task below a ready task dispatches that task before the call
// returns.
func (s *Service) SetPriority(id uint64, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if priority < 0 || priority >= len(s.ready) {
		return fmt.Errorf("%w: %d (levels: %d)", registry.ErrInvalidPriority, priority, len(s.ready))
	}
	t, err := s.registry.Lookup(id)
	if err != nil {
		return err
	}
	if t.Slot == s.idle {
		return fmt.Errorf("idle task priority cannot be changed")
	}
	switch {
	case t.State == task.StateReady:
		s.unlinkLocked(t)
		t.Priority = priority
		s.enqueueLocked(t)
	case t.Slot == s.current:
		t.Priority = priority
		if s.higherReadyLocked(priority) {
			s.rescheduleLocked()
		}
	default:
		t.Priority = priority
	}
	return nil
}
