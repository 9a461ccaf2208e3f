package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rtk/model/task"
)

// TestWaitQueueFIFO verifies waiters block in arrival order and wake in the
// same order.
func TestWaitQueueFIFO(t *testing.T) {
	s := newKernel(t)
	a, err := s.CreateTask("a", entry, nil, 1, 0)
	require.NoError(t, err)
	b, err := s.CreateTask("b", entry, nil, 1, 0)
	require.NoError(t, err)
	_, err = s.CreateTask("c", entry, nil, 1, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	q := s.NewWaitQueue()

	// a blocks, b becomes current and blocks too
	got := q.Enqueue()
	assert.Equal(t, a, got)
	assert.Equal(t, b, s.CurrentTaskID())
	got = q.Enqueue()
	assert.Equal(t, b, got)
	assert.Equal(t, 2, q.Len())

	info, ok := s.TaskInfo(a)
	require.True(t, ok)
	assert.Equal(t, task.StateBlocked, info.State)

	id, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, a, id)
	id, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, b, id)

	_, ok = q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())

	info, _ = s.TaskInfo(a)
	assert.Equal(t, task.StateReady, info.State)
}

// TestWaitQueueIdleNeverBlocks verifies the idle task refuses to block on a
// primitive.
func TestWaitQueueIdleNeverBlocks(t *testing.T) {
	s := newKernel(t)
	require.NoError(t, s.Start())
	q := s.NewWaitQueue()

	assert.EqualValues(t, 0, q.Enqueue())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, s.IdleTaskID(), s.CurrentTaskID())
}

// TestDeleteBlockedWaiter verifies a deleted task is removed from its wait
// queue and is never woken in its place.
func TestDeleteBlockedWaiter(t *testing.T) {
	s := newKernel(t)
	a, err := s.CreateTask("a", entry, nil, 1, 0)
	require.NoError(t, err)
	b, err := s.CreateTask("b", entry, nil, 1, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	q := s.NewWaitQueue()
	require.Equal(t, a, q.Enqueue())
	require.Equal(t, b, s.CurrentTaskID())
	require.Equal(t, 1, q.Len())

	require.NoError(t, s.DeleteTask(a))
	assert.Equal(t, 0, q.Len())

	_, ok := q.Dequeue()
	assert.False(t, ok)
}

// TestSweepIgnoresPrimitiveWaiters verifies tasks blocked on a wait queue
// carry no wake tick and are never promoted by the sleep sweep.
func TestSweepIgnoresPrimitiveWaiters(t *testing.T) {
	s := newKernel(t)
	a, err := s.CreateTask("a", entry, nil, 1, 0)
	require.NoError(t, err)
	_, err = s.CreateTask("b", entry, nil, 1, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	q := s.NewWaitQueue()
	require.Equal(t, a, q.Enqueue())

	tickN(s, 50)
	info, ok := s.TaskInfo(a)
	require.True(t, ok)
	assert.Equal(t, task.StateBlocked, info.State)
	assert.EqualValues(t, 0, info.WakeTick)
	assert.Equal(t, 1, q.Len())
}
