// Package timer supplies the periodic tick source. The kernel core never
// sleeps the host thread; this driver owns the ticker and invokes the tick
// entry point at the configured period until shut down. Tests bypass it and
// tick the kernel by hand.
package timer

import (
	"context"
	"time"
)

// Config represents timer driver configuration
type Config struct {
	// Period is the interval between tick invocations
	Period time.Duration
}

// DefaultConfig returns the default driver configuration
func DefaultConfig() Config {
	return Config{Period: time.Millisecond}
}

// Driver invokes a tick function at a fixed period.
type Driver struct {
	config     Config
	tick       func()
	shutdownCh chan struct{}
}

// New creates a driver for the supplied tick function.
func New(config Config, tick func()) *Driver {
	if config.Period <= 0 {
		config.Period = DefaultConfig().Period
	}
	return &Driver{
		config:     config,
		tick:       tick,
		shutdownCh: make(chan struct{}),
	}
}

// Start runs the tick loop until the context is cancelled or Shutdown is
// called. It blocks the calling goroutine.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.config.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.shutdownCh:
			return nil
		case <-ticker.C:
			d.tick()
		}
	}
}

// Shutdown stops the tick loop.
func (d *Driver) Shutdown() {
	select {
	case <-d.shutdownCh:
	default:
		close(d.shutdownCh)
	}
}
