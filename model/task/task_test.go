package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePredicates(t *testing.T) {
	assert.True(t, StateReady.IsSchedulable())
	assert.True(t, StateRunning.IsSchedulable())
	assert.False(t, StateBlocked.IsSchedulable())
	assert.False(t, StateSuspended.IsSchedulable())
	assert.False(t, StateTerminated.IsSchedulable())

	assert.True(t, StateBlocked.IsBlocked())
	assert.False(t, StateReady.IsBlocked())
}

func TestNewContext(t *testing.T) {
	entry := func(interface{}) {}
	ctx := NewContext(entry, 1024)

	assert.EqualValues(t, 1024, ctx.SP)
	assert.EqualValues(t, 1024, ctx.Registers[13])
	assert.EqualValues(t, 0xFFFFFFFD, ctx.Registers[14])
	assert.NotZero(t, ctx.Registers[15])
	assert.Zero(t, ctx.Registers[0])

	empty := NewContext(nil, 64)
	assert.Zero(t, empty.Registers[15])
}

func TestSnapshot(t *testing.T) {
	tk := &Task{
		ID:           3,
		Name:         "worker",
		Priority:     2,
		State:        StateReady,
		TotalRuntime: 42,
		WakeTick:     7,
		Stack:        make([]byte, 512),
	}
	got := tk.Snapshot()
	assert.EqualValues(t, 3, got.ID)
	assert.Equal(t, "worker", got.Name)
	assert.Equal(t, 2, got.Priority)
	assert.Equal(t, StateReady, got.State)
	assert.EqualValues(t, 42, got.TotalRuntime)
	assert.EqualValues(t, 7, got.WakeTick)
	assert.Equal(t, 512, got.StackSize)
}

func TestUnlink(t *testing.T) {
	tk := &Task{Slot: 1, Next: 2, Prev: 0, Ring: RingWait, WaitID: 3}
	tk.Unlink()
	assert.Equal(t, NoSlot, tk.Next)
	assert.Equal(t, NoSlot, tk.Prev)
	assert.Equal(t, RingNone, tk.Ring)
	assert.Equal(t, NoSlot, tk.WaitID)
	assert.Equal(t, 1, tk.Slot)
}
