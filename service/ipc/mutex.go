// Package ipc provides the kernel's synchronization primitives: a mutex with
// FIFO ownership hand-off and a counting semaphore. Both block tasks through
// scheduler wait queues, so the engine itself is never stalled – a blocked
// task merely leaves scheduling eligibility.
//
// No priority inheritance or priority-ceiling protocol is provided: a
// low-priority owner can block a high-priority waiter indefinitely. This is a
// documented limitation of the contract, not an accident. Likewise, deleting
// a task blocked on a semaphore does not re-adjust the semaphore count.
package ipc

import (
	"errors"
	"sync"

	"github.com/viant/rtk/service/scheduler"
)

// ErrNotOwner rejects an unlock attempted by a task that does not own the
// mutex.
var ErrNotOwner = errors.New("mutex not owned by calling task")

// Mutex is a kernel mutex. The zero value is not usable; obtain instances
// through NewMutex.
type Mutex struct {
	mu      sync.Mutex
	kernel  *scheduler.Service
	locked  bool
	owner   uint64
	waiters *scheduler.WaitQueue
}

// NewMutex creates an unlocked mutex bound to the given kernel.
func NewMutex(kernel *scheduler.Service) *Mutex {
	return &Mutex{
		kernel:  kernel,
		waiters: kernel.NewWaitQueue(),
	}
}

// Lock acquires the mutex for the current task. When the mutex is held the
// current task joins the FIFO waiter queue and blocks; ownership is handed
// over by the releasing task, so the call returns only after the waiter has
// been granted the mutex and re-dispatched.
func (m *Mutex) Lock() {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.owner = m.kernel.CurrentTaskID()
		m.mu.Unlock()
		return
	}
	id := m.waiters.Enqueue()
	m.mu.Unlock()
	m.waiters.Await(id)
}

// Unlock releases the mutex. When waiters are present the head of the FIFO
// queue becomes the new owner and returns to the ready state; otherwise the
// mutex is cleared.
func (m *Mutex) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.locked || m.kernel.CurrentTaskID() != m.owner {
		return ErrNotOwner
	}
	if id, ok := m.waiters.Dequeue(); ok {
		m.owner = id
		return nil
	}
	m.locked = false
	m.owner = 0
	return nil
}

// Locked reports whether the mutex is currently held.
func (m *Mutex) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// Owner returns the id of the owning task, 0 when unlocked.
func (m *Mutex) Owner() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}
