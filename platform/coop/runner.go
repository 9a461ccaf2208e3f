// Package coop realises tasks as cooperative execution units: each task entry
// runs on its own goroutine, parked on a gate channel whenever the task is
// not dispatched. The kernel reports dispatch decisions through the
// platform.Switcher interface; the runner resumes exactly one unit at a time.
//
// Preemption is honoured at kernel entry points: a unit that was switched
// away from keeps executing until its next call into the kernel, where it
// parks. The resume of the incoming unit is deferred until then, so at most
// one unit is ever unparked. Dispatch decisions taken between two entry
// points of the same unit coalesce into the latest one.
package coop

import (
	"runtime"
	"sync"

	"github.com/viant/rtk/model/task"
)

// Runner implements platform.Switcher over goroutine-backed units.
type Runner struct {
	mu      sync.Mutex
	units   map[uint64]*unit
	pending uint64
	exit    func(id uint64)
}

type unit struct {
	id      uint64
	entry   task.Entry
	arg     interface{}
	gate    chan struct{}
	started bool
	parked  bool
	exited  bool
}

// New creates an empty runner.
func New() *Runner {
	return &Runner{units: make(map[uint64]*unit)}
}

// OnExit registers the callback invoked when a task entry returns; the
// kernel wires it to task deletion.
func (r *Runner) OnExit(fn func(id uint64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exit = fn
}

// Created registers an execution unit for a new task. The goroutine is
// spawned lazily on first dispatch.
func (r *Runner) Created(t *task.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[t.ID] = &unit{id: t.ID, entry: t.Entry, arg: t.Arg, gate: make(chan struct{}, 1)}
}

// Switch resumes the incoming unit, or defers the resume until the outgoing
// unit reaches its next kernel entry point.
func (r *Runner) Switch(from, to uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = 0
	u := r.units[to]
	if u == nil || u.exited {
		return
	}
	if f := r.units[from]; from != to && f != nil && f.started && !f.parked && !f.exited {
		r.pending = to
		return
	}
	r.resumeLocked(u)
}

// Park blocks the calling unit until it is resumed. A unit whose task was
// removed never returns to task code.
func (r *Runner) Park(id uint64) {
	r.mu.Lock()
	u := r.units[id]
	if u == nil {
		r.mu.Unlock()
		runtime.Goexit()
	}
	u.parked = true
	r.releasePendingLocked()
	gate := u.gate
	r.mu.Unlock()

	<-gate

	r.mu.Lock()
	exited := u.exited
	u.parked = false
	r.mu.Unlock()
	if exited {
		runtime.Goexit()
	}
}

// Exited removes a unit; a parked goroutine of the removed task is released
// and terminates without re-entering task code.
func (r *Runner) Exited(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.units[id]
	if u == nil {
		return
	}
	u.exited = true
	delete(r.units, id)
	if u.parked {
		select {
		case u.gate <- struct{}{}:
		default:
		}
	}
	if r.pending == id {
		r.pending = 0
	}
	r.releasePendingLocked()
}

func (r *Runner) resumeLocked(u *unit) {
	if !u.started {
		u.started = true
		go r.run(u)
		return
	}
	select {
	case u.gate <- struct{}{}:
	default:
	}
}

func (r *Runner) releasePendingLocked() {
	if r.pending == 0 {
		return
	}
	u := r.units[r.pending]
	r.pending = 0
	if u != nil && !u.exited {
		r.resumeLocked(u)
	}
}

func (r *Runner) run(u *unit) {
	if u.entry != nil {
		u.entry(u.arg)
	}
	r.mu.Lock()
	u.exited = true
	r.releasePendingLocked()
	exit := r.exit
	r.mu.Unlock()
	if exit != nil {
		exit(u.id)
	}
}
