// Package platform defines the context-switch hook between the kernel's
// bookkeeping and whatever mechanism actually resumes task code. The kernel
// never calls a task entry point directly – it only reports dispatch
// decisions through a Switcher. The default Noop switcher keeps the kernel a
// pure, tick-driven simulation; platform/coop realises tasks as cooperative
// goroutines; embedded targets can plug a trap-level implementation.
package platform

import "github.com/viant/rtk/model/task"

// Switcher receives dispatch decisions from the kernel.
type Switcher interface {
	// Created registers a new task with the platform.
	Created(t *task.Task)

	// Switch is invoked once per context switch, after the kernel finished
	// its bookkeeping. from is zero for the initial dispatch.
	Switch(from, to uint64)

	// Park blocks the calling execution unit until the task with the given
	// id is dispatched again. Simulation switchers return immediately.
	Park(id uint64)

	// Exited tells the platform a task was removed; its execution unit must
	// never be resumed again.
	Exited(id uint64)
}

// Noop is the simulation switcher: the kernel updates its bookkeeping and no
// task code ever runs.
type Noop struct{}

func (Noop) Created(*task.Task) {}

func (Noop) Switch(from, to uint64) {}

func (Noop) Park(uint64) {}

func (Noop) Exited(uint64) {}
