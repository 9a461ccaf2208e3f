package coop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rtk/model/task"
)

func wait(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}
}

func quiet(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected signal")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestParkResume verifies a unit parks at Park and continues after the next
// dispatch, and that entry return reaches the exit callback.
func TestParkResume(t *testing.T) {
	r := New()
	exited := make(chan struct{})
	r.OnExit(func(id uint64) {
		assert.EqualValues(t, 1, id)
		close(exited)
	})

	started := make(chan struct{})
	resumed := make(chan struct{})
	r.Created(&task.Task{ID: 1, Entry: func(interface{}) {
		close(started)
		r.Park(1)
		close(resumed)
	}})

	r.Switch(0, 1)
	wait(t, started)
	quiet(t, resumed)

	r.Switch(0, 1)
	wait(t, resumed)
	wait(t, exited)
}

// TestDeferredResume verifies the incoming unit is not resumed while the
// outgoing unit is still executing, only once it parks.
func TestDeferredResume(t *testing.T) {
	r := New()
	started1 := make(chan struct{})
	proceed1 := make(chan struct{})
	started2 := make(chan struct{})

	r.Created(&task.Task{ID: 1, Entry: func(interface{}) {
		close(started1)
		<-proceed1
		r.Park(1)
	}})
	r.Created(&task.Task{ID: 2, Entry: func(interface{}) {
		close(started2)
		r.Park(2)
	}})

	r.Switch(0, 1)
	wait(t, started1)

	// unit 1 still runs, so the dispatch of unit 2 must wait
	r.Switch(1, 2)
	quiet(t, started2)

	close(proceed1)
	wait(t, started2)
}

// TestExitedWhileParked verifies a removed task's goroutine terminates
// without re-entering task code.
func TestExitedWhileParked(t *testing.T) {
	r := New()
	started := make(chan struct{})
	resumed := make(chan struct{})

	r.Created(&task.Task{ID: 1, Entry: func(interface{}) {
		close(started)
		r.Park(1)
		close(resumed)
	}})

	r.Switch(0, 1)
	wait(t, started)

	r.Exited(1)
	quiet(t, resumed)

	// dispatching a removed unit is a no-op
	r.Switch(0, 1)
	quiet(t, resumed)
}

// TestLatestDispatchWins verifies dispatch decisions taken while a unit is
// still running coalesce into the most recent one.
func TestLatestDispatchWins(t *testing.T) {
	r := New()
	started1 := make(chan struct{})
	proceed1 := make(chan struct{})
	started2 := make(chan struct{})
	started3 := make(chan struct{})

	r.Created(&task.Task{ID: 1, Entry: func(interface{}) {
		close(started1)
		<-proceed1
		r.Park(1)
	}})
	r.Created(&task.Task{ID: 2, Entry: func(interface{}) {
		close(started2)
		r.Park(2)
	}})
	r.Created(&task.Task{ID: 3, Entry: func(interface{}) {
		close(started3)
		r.Park(3)
	}})

	r.Switch(0, 1)
	wait(t, started1)

	r.Switch(1, 2)
	r.Switch(1, 3)
	close(proceed1)

	wait(t, started3)
	quiet(t, started2)
}

// TestCounterProgress drives two units alternately and verifies both make
// progress under repeated dispatch.
func TestCounterProgress(t *testing.T) {
	r := New()
	var count1, count2 int64

	r.Created(&task.Task{ID: 1, Entry: func(interface{}) {
		for {
			atomic.AddInt64(&count1, 1)
			r.Park(1)
		}
	}})
	r.Created(&task.Task{ID: 2, Entry: func(interface{}) {
		for {
			atomic.AddInt64(&count2, 1)
			r.Park(2)
		}
	}})

	waitFor := func(counter *int64, n int64) {
		require.Eventually(t, func() bool {
			return atomic.LoadInt64(counter) >= n
		}, time.Second, time.Millisecond)
	}

	from := uint64(0)
	for i := 0; i < 6; i++ {
		to := uint64(i%2 + 1)
		r.Switch(from, to)
		if to == 1 {
			waitFor(&count1, int64(i/2+1))
		} else {
			waitFor(&count2, int64(i/2+1))
		}
		from = to
	}

	assert.GreaterOrEqual(t, atomic.LoadInt64(&count1), int64(3))
	assert.GreaterOrEqual(t, atomic.LoadInt64(&count2), int64(3))

	r.Exited(1)
	r.Exited(2)
}
