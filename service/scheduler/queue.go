package scheduler

import "github.com/viant/rtk/model/task"

// Ready queues and wait queues are circular doubly linked rings threaded
// through the registry arena: rings store slot handles, never raw references,
// so a reclaimed slot can never dangle. A single-element ring points to
// itself on both links; an empty ring has a NoSlot head.

// ringPush appends t at the tail of the ring anchored at head.
func (s *Service) ringPush(head *int, t *task.Task) {
	if *head == task.NoSlot {
		*head = t.Slot
		t.Next = t.Slot
		t.Prev = t.Slot
		return
	}
	first := s.registry.At(*head)
	last := s.registry.At(first.Prev)
	t.Next = first.Slot
	t.Prev = last.Slot
	last.Next = t.Slot
	first.Prev = t.Slot
}

// ringRemove unlinks t from the ring anchored at head.
func (s *Service) ringRemove(head *int, t *task.Task) {
	if *head == task.NoSlot {
		return
	}
	if t.Next == t.Slot {
		*head = task.NoSlot
	} else {
		prev := s.registry.At(t.Prev)
		next := s.registry.At(t.Next)
		prev.Next = t.Next
		next.Prev = t.Prev
		if *head == t.Slot {
			*head = t.Next
		}
	}
	t.Next = task.NoSlot
	t.Prev = task.NoSlot
}

// unlinkLocked removes t from whichever collection currently holds it,
// maintaining the single-membership invariant. Operations that would violate
// the invariant unlink before relinking rather than asserting.
func (s *Service) unlinkLocked(t *task.Task) {
	switch t.Ring {
	case task.RingReady:
		s.ringRemove(&s.ready[t.Priority], t)
	case task.RingWait:
		if q := s.waitQueue(t.WaitID); q != nil {
			s.ringRemove(&q.head, t)
			q.count--
		}
	}
	t.Unlink()
}

// enqueueLocked appends t at the tail of its priority's ready queue, setting
// state Ready. An already linked task is first unlinked.
func (s *Service) enqueueLocked(t *task.Task) {
	s.unlinkLocked(t)
	t.State = task.StateReady
	s.ringPush(&s.ready[t.Priority], t)
	t.Ring = task.RingReady
}

// dequeueFrontLocked removes and returns the head of the given priority's
// ready queue, advancing the ring so the former second element becomes head.
func (s *Service) dequeueFrontLocked(priority int) *task.Task {
	head := s.ready[priority]
	if head == task.NoSlot {
		return nil
	}
	t := s.registry.At(head)
	s.ready[priority] = t.Next
	s.ringRemove(&s.ready[priority], t)
	t.Unlink()
	return t
}

// highestNonemptyLocked returns the highest priority with a ready task, or
// PriorityLevels when every queue is empty.
func (s *Service) highestNonemptyLocked() int {
	for p := 0; p < len(s.ready); p++ {
		if s.ready[p] != task.NoSlot {
			return p
		}
	}
	return len(s.ready)
}

// higherReadyLocked reports whether a ready task exists with priority
// strictly higher (numerically lower) than p.
func (s *Service) higherReadyLocked(p int) bool {
	for q := 0; q < p; q++ {
		if s.ready[q] != task.NoSlot {
			return true
		}
	}
	return false
}
