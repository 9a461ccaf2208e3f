package ipc

import (
	"sync"

	"github.com/viant/rtk/service/scheduler"
)

// Semaphore is a counting semaphore with FIFO wakeup order.
type Semaphore struct {
	mu      sync.Mutex
	kernel  *scheduler.Service
	count   int
	waiters *scheduler.WaitQueue
}

// NewSemaphore creates a semaphore with the given initial count.
func NewSemaphore(kernel *scheduler.Service, initial int) *Semaphore {
	return &Semaphore{
		kernel:  kernel,
		count:   initial,
		waiters: kernel.NewWaitQueue(),
	}
}

// Wait decrements the count; when the result is negative the current task
// blocks on the FIFO waiter queue until signalled.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	s.count--
	if s.count >= 0 {
		s.mu.Unlock()
		return
	}
	id := s.waiters.Enqueue()
	s.mu.Unlock()
	s.waiters.Await(id)
}

// Signal increments the count and, when a waiter is present, moves the head
// of the FIFO queue back to its priority's ready tail.
func (s *Semaphore) Signal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	s.waiters.Dequeue()
}

// Count returns the current semaphore count; a negative value is the number
// of blocked waiters.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
