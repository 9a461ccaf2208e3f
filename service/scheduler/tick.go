package scheduler

import (
	"time"

	"github.com/viant/rtk/model/task"
	"github.com/viant/rtk/stats"
)

// Tick is the periodic driver entry point, expected to be invoked once per
// configured tick period. Each tick advances the global counter, charges the
// current task one tick of runtime and slice budget, wakes expired sleepers
// and dispatches when the slice is exhausted or a strictly higher-priority
// task became ready. Equal-priority tasks never preempt before slice
// exhaustion.
func (s *Service) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
}

func (s *Service) tickLocked() {
	s.tick++
	delta := stats.Delta{Ticks: 1}
	cur := s.registry.At(s.current)
	if !s.running || cur == nil {
		s.tracker.Update(delta)
		return
	}
	cur.TotalRuntime++
	if cur.Slot == s.idle {
		delta.IdleTicks = 1
	}
	s.tracker.Update(delta)
	if cur.SliceRemaining > 0 {
		cur.SliceRemaining--
	}
	s.sweepLocked()
	if cur.SliceRemaining == 0 || s.higherReadyLocked(cur.Priority) {
		s.rescheduleLocked()
	}
}

// sweepLocked promotes every blocked task whose sleep timer expired back to
// its priority's tail. Tasks blocked on a primitive keep a zero wake tick and
// are never touched here.
func (s *Service) sweepLocked() {
	s.registry.Each(func(t *task.Task) {
		if t.State != task.StateBlocked || t.WakeTick == 0 || s.tick < t.WakeTick {
			return
		}
		t.WakeTick = 0
		s.enqueueLocked(t)
		s.notifyLocked(EventTaskWoken, t.ID)
	})
}

// Yield voluntarily surrenders the remainder of the current task's slice and
// runs one tick, forcing an immediate reschedule evaluation.
func (s *Service) Yield() {
	s.mu.Lock()
	cur := s.registry.At(s.current)
	if !s.running || cur == nil {
		s.mu.Unlock()
		return
	}
	cur.SliceRemaining = 0
	id := cur.ID
	s.tickLocked()
	s.mu.Unlock()
	s.parkIfPreempted(id)
}

// Sleep blocks the current task for at least the given duration, converted to
// ticks by rounding up to the tick period, and immediately hands the
// processor to the next ready task.
func (s *Service) Sleep(d time.Duration) {
	s.mu.Lock()
	cur := s.registry.At(s.current)
	if !s.running || cur == nil || cur.Slot == s.idle {
		s.mu.Unlock()
		return
	}
	ticks := uint64((d + s.config.TickPeriod - 1) / s.config.TickPeriod)
	if ticks == 0 {
		ticks = 1
	}
	cur.WakeTick = s.tick + ticks
	cur.State = task.StateBlocked
	id := cur.ID
	s.dispatchLocked()
	s.mu.Unlock()
	s.parkIfPreempted(id)
}
