package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rtk/model/task"
)

func readyOrder(s *Service, priority int) []uint64 {
	var out []uint64
	head := s.ready[priority]
	if head == task.NoSlot {
		return out
	}
	slot := head
	for {
		t := s.registry.At(slot)
		out = append(out, t.ID)
		slot = t.Next
		if slot == head {
			return out
		}
	}
}

// TestRingRotation verifies enqueue appends at the tail and dequeue advances
// the ring head.
func TestRingRotation(t *testing.T) {
	s := newKernel(t)
	a, _ := s.CreateTask("a", entry, nil, 1, 0)
	b, _ := s.CreateTask("b", entry, nil, 1, 0)
	c, _ := s.CreateTask("c", entry, nil, 1, 0)

	assert.Equal(t, []uint64{a, b, c}, readyOrder(s, 1))

	s.mu.Lock()
	front := s.dequeueFrontLocked(1)
	s.mu.Unlock()
	require.NotNil(t, front)
	assert.Equal(t, a, front.ID)
	assert.Equal(t, []uint64{b, c}, readyOrder(s, 1))

	s.mu.Lock()
	s.enqueueLocked(front)
	s.mu.Unlock()
	assert.Equal(t, []uint64{b, c, a}, readyOrder(s, 1))
}

// TestSingleMembership verifies re-enqueueing a linked task never leaves a
// second link behind.
func TestSingleMembership(t *testing.T) {
	s := newKernel(t)
	a, _ := s.CreateTask("a", entry, nil, 1, 0)
	b, _ := s.CreateTask("b", entry, nil, 1, 0)

	ta, err := s.registry.Lookup(a)
	require.NoError(t, err)

	// moving a linked task to another level must not duplicate it
	s.mu.Lock()
	s.unlinkLocked(ta)
	ta.Priority = 2
	s.enqueueLocked(ta)
	s.mu.Unlock()

	assert.Equal(t, []uint64{b}, readyOrder(s, 1))
	assert.Equal(t, []uint64{a}, readyOrder(s, 2))

	// enqueueLocked on an already linked task unlinks first
	s.mu.Lock()
	s.enqueueLocked(ta)
	s.mu.Unlock()
	assert.Equal(t, []uint64{a}, readyOrder(s, 2))
}

// TestSingleElementRing verifies a lone element links to itself and empties
// cleanly.
func TestSingleElementRing(t *testing.T) {
	s := newKernel(t)
	a, _ := s.CreateTask("a", entry, nil, 0, 0)

	ta, err := s.registry.Lookup(a)
	require.NoError(t, err)
	assert.Equal(t, ta.Slot, ta.Next)
	assert.Equal(t, ta.Slot, ta.Prev)

	s.mu.Lock()
	s.unlinkLocked(ta)
	s.mu.Unlock()
	assert.Equal(t, task.NoSlot, s.ready[0])
	assert.Equal(t, task.RingNone, ta.Ring)
}

func TestHigherReady(t *testing.T) {
	s := newKernel(t)
	_, err := s.CreateTask("a", entry, nil, 2, 0)
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.False(t, s.higherReadyLocked(2))
	assert.True(t, s.higherReadyLocked(3))
	assert.Equal(t, 2, s.highestNonemptyLocked())
}
