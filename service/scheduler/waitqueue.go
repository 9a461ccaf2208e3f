package scheduler

import "github.com/viant/rtk/model/task"

// WaitQueue is a FIFO collection of tasks blocked on a synchronization
// primitive. Queues are created through the scheduler so that deleting a
// blocked task also removes it from its wait queue – a deleted waiter is
// never woken.
type WaitQueue struct {
	s     *Service
	id    int
	head  int
	count int
}

// NewWaitQueue registers a new, empty wait queue with the scheduler.
func (s *Service) NewWaitQueue() *WaitQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := &WaitQueue{s: s, id: len(s.waits), head: task.NoSlot}
	s.waits = append(s.waits, q)
	return q
}

func (s *Service) waitQueue(id int) *WaitQueue {
	if id < 0 || id >= len(s.waits) {
		return nil
	}
	return s.waits[id]
}

// Enqueue blocks the current task on the queue's tail and hands the
// processor to the next ready task. It returns the blocked task's id, or 0
// when no task is current. The caller completes the suspension with Await
// once it released its own locks.
func (q *WaitQueue) Enqueue() uint64 {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.registry.At(s.current)
	if !s.running || cur == nil || cur.Slot == s.idle {
		return 0
	}
	cur.State = task.StateBlocked
	cur.WakeTick = 0
	s.ringPush(&q.head, cur)
	cur.Ring = task.RingWait
	cur.WaitID = q.id
	q.count++
	id := cur.ID
	s.dispatchLocked()
	return id
}

// Dequeue pops the queue's head (FIFO) and moves it to the tail of its
// priority's ready queue. It reports whether a waiter was present.
func (q *WaitQueue) Dequeue() (uint64, bool) {
	s := q.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.head == task.NoSlot {
		return 0, false
	}
	t := s.registry.At(q.head)
	s.enqueueLocked(t)
	return t.ID, true
}

// Await realises the suspension of a previously enqueued task through the
// platform switcher. No-op under the simulation switcher or when id is 0.
func (q *WaitQueue) Await(id uint64) {
	if id == 0 {
		return
	}
	q.s.parkIfPreempted(id)
}

// Len returns the number of blocked waiters.
func (q *WaitQueue) Len() int {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return q.count
}
