package rtk

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/rtk/model/task"
	"github.com/viant/rtk/stats"
	"github.com/viant/rtk/tracing"
)

// Runtime is the kernel façade handed to applications: task lifecycle,
// voluntary scheduling calls and introspection. All methods are safe for
// concurrent use.
type Runtime struct {
	service *Service
}

// Start performs the initial dispatch and arms the periodic tick driver.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.service.scheduler.Start(); err != nil {
		return err
	}
	if r.service.eventService != nil {
		go r.service.forwardEvents(ctx)
	}
	go r.service.driver.Start(ctx)
	return nil
}

// Shutdown stops the tick driver. Kernel state stays inspectable afterwards.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.service.driver.Shutdown()
	return nil
}

// Tick advances the kernel clock by one tick. It is the manual alternative to
// the periodic driver, used by simulations and tests.
func (r *Runtime) Tick() {
	r.service.scheduler.Tick()
}

// CreateTask registers a new task and returns its id.
func (r *Runtime) CreateTask(ctx context.Context, name string, entry task.Entry, arg interface{}, priority int) (uint64, error) {
	_, span := tracing.StartSpan(ctx, "kernel.createTask", "INTERNAL")
	id, err := r.service.scheduler.CreateTask(name, entry, arg, priority, r.service.config.Kernel.StackSize)
	span.WithAttributes(map[string]string{"task.name": name, "task.id": fmt.Sprintf("%d", id)})
	tracing.EndSpan(span, err)
	return id, err
}

// DeleteTask terminates a task and reclaims its slot and stack.
func (r *Runtime) DeleteTask(ctx context.Context, id uint64) error {
	_, span := tracing.StartSpan(ctx, "kernel.deleteTask", "INTERNAL")
	span.WithAttributes(map[string]string{"task.id": fmt.Sprintf("%d", id)})
	err := r.service.scheduler.DeleteTask(id)
	tracing.EndSpan(span, err)
	return err
}

// SuspendTask takes a task out of scheduling until it is resumed.
func (r *Runtime) SuspendTask(ctx context.Context, id uint64) error {
	_, span := tracing.StartSpan(ctx, "kernel.suspendTask", "INTERNAL")
	span.WithAttributes(map[string]string{"task.id": fmt.Sprintf("%d", id)})
	err := r.service.scheduler.SuspendTask(id)
	tracing.EndSpan(span, err)
	return err
}

// ResumeTask returns a suspended task to its priority's ready queue.
func (r *Runtime) ResumeTask(ctx context.Context, id uint64) error {
	_, span := tracing.StartSpan(ctx, "kernel.resumeTask", "INTERNAL")
	span.WithAttributes(map[string]string{"task.id": fmt.Sprintf("%d", id)})
	err := r.service.scheduler.ResumeTask(id)
	tracing.EndSpan(span, err)
	return err
}

// SetPriority moves a task to another priority level.
func (r *Runtime) SetPriority(ctx context.Context, id uint64, priority int) error {
	_, span := tracing.StartSpan(ctx, "kernel.setPriority", "INTERNAL")
	span.WithAttributes(map[string]string{"task.id": fmt.Sprintf("%d", id), "task.priority": fmt.Sprintf("%d", priority)})
	err := r.service.scheduler.SetPriority(id, priority)
	tracing.EndSpan(span, err)
	return err
}

// Yield surrenders the remainder of the current task's time slice.
func (r *Runtime) Yield() {
	r.service.scheduler.Yield()
}

// Sleep blocks the current task for at least the given duration.
func (r *Runtime) Sleep(d time.Duration) {
	r.service.scheduler.Sleep(d)
}

// Checkpoint is a voluntary preemption point for goroutine-backed tasks.
func (r *Runtime) Checkpoint(id uint64) {
	r.service.scheduler.Checkpoint(id)
}

// CurrentTaskID returns the id of the running task, 0 before the first
// dispatch.
func (r *Runtime) CurrentTaskID() uint64 {
	return r.service.scheduler.CurrentTaskID()
}

// IdleTaskID returns the id of the always-present idle task.
func (r *Runtime) IdleTaskID() uint64 {
	return r.service.scheduler.IdleTaskID()
}

// TaskInfo returns a snapshot of the task with the given id.
func (r *Runtime) TaskInfo(id uint64) (task.Snapshot, bool) {
	return r.service.scheduler.TaskInfo(id)
}

// TaskList returns snapshots of every live task.
func (r *Runtime) TaskList() []task.Snapshot {
	return r.service.scheduler.TaskList()
}

// Stats returns a snapshot of the aggregate kernel counters.
func (r *Runtime) Stats() stats.Stats {
	return r.service.scheduler.Stats()
}

// Uptime returns the number of elapsed ticks.
func (r *Runtime) Uptime() uint64 {
	return r.service.scheduler.Uptime()
}

// UptimeDuration estimates elapsed wall time from the tick count and the
// configured timer period.
func (r *Runtime) UptimeDuration() time.Duration {
	return time.Duration(r.service.scheduler.Uptime()) * r.service.config.Timer.Period
}
