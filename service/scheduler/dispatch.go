package scheduler

import (
	"github.com/viant/rtk/model/task"
	"github.com/viant/rtk/stats"
)

// selectNextLocked scans priority levels from highest to lowest and dequeues
// the head of the first non-empty queue, rotating that level. It falls back
// to the idle task when every level is empty. Zero runnable tasks including
// the idle task is a kernel misconfiguration, not a runtime error.
func (s *Service) selectNextLocked() *task.Task {
	for p := 0; p < len(s.ready); p++ {
		if t := s.dequeueFrontLocked(p); t != nil {
			return t
		}
	}
	if t := s.registry.At(s.idle); t != nil && t.State.IsSchedulable() {
		return t
	}
	panic("rtk: no runnable task, idle task missing")
}

// switchLocked performs the context switch bookkeeping from one task to
// another. A switch to the same task is a no-op. The actual register and
// stack restoration is delegated to the platform switcher.
func (s *Service) switchLocked(from, to *task.Task) {
	if from == to || to == nil {
		return
	}
	var fromID uint64
	if from != nil {
		fromID = from.ID
		from.LastRunTick = s.tick
		if from.State == task.StateRunning {
			s.enqueueLocked(from)
		}
	}
	s.unlinkLocked(to)
	to.State = task.StateRunning
	to.SliceRemaining = s.config.TimeSlice
	s.current = to.Slot
	s.tracker.Update(stats.Delta{ContextSwitches: 1})
	s.notifyLocked(EventContextSwitch, to.ID)
	s.switcher.Switch(fromID, to.ID)
}

// rescheduleLocked re-evaluates which task should run: the still-eligible
// current task is first returned to the tail of its level, so selection sees
// every ready task. Selecting the current task back only refreshes its slice.
func (s *Service) rescheduleLocked() {
	cur := s.registry.At(s.current)
	if cur != nil && cur.State == task.StateRunning {
		s.enqueueLocked(cur)
	}
	next := s.selectNextLocked()
	if next == cur {
		cur.State = task.StateRunning
		cur.SliceRemaining = s.config.TimeSlice
		return
	}
	s.switchLocked(cur, next)
}

// dispatchLocked hands the processor to the next ready task after the current
// task became ineligible (blocked, suspended or terminated).
func (s *Service) dispatchLocked() {
	cur := s.registry.At(s.current)
	next := s.selectNextLocked()
	s.switchLocked(cur, next)
}
