package scheduler

import (
	"github.com/viant/rtk/platform"
	"github.com/viant/rtk/stats"
)

// Option customises the scheduler service
type Option func(s *Service)

// WithSwitcher sets the platform context-switch hook
func WithSwitcher(switcher platform.Switcher) Option {
	return func(s *Service) {
		s.switcher = switcher
	}
}

// WithTracker sets the statistics tracker
func WithTracker(tracker *stats.Tracker) Option {
	return func(s *Service) {
		s.tracker = tracker
	}
}

// WithNotifier registers a scheduler event callback. The callback runs inside
// the kernel critical section and must neither block nor call back into the
// scheduler.
func WithNotifier(notifier func(Event)) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}
