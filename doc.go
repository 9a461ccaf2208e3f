// Package rtk provides a fixed-priority, preemptive, round-robin task
// scheduler: the core of a minimal real-time kernel running on a single
// logical processor.
//
// The kernel is assembled from pluggable service layers:
//
//   - registry  – fixed-capacity task pool and stack allocation
//   - scheduler – ready queues, dispatcher, tick engine and sleep timers
//   - ipc       – mutex and counting semaphore with FIFO wait queues
//   - timer     – periodic tick driver
//   - event     – queue-backed distribution of scheduler events
//
// Applications interact with the kernel through the Runtime façade exposed
// by the root package:
//
//	srv, _ := rtk.New(rtk.WithCoop())
//	rt := srv.Runtime()
//	rt.CreateTask(ctx, "worker", workerEntry, nil, 1)
//	_ = rt.Start(ctx)
//
// Without a platform switcher the kernel runs in pure simulation mode: ticks
// move tasks through their states but entry functions never execute, which is
// the mode the test suites use.
package rtk
