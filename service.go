package rtk

import (
	"context"
	"log"

	"github.com/viant/rtk/internal/idgen"
	"github.com/viant/rtk/platform"
	"github.com/viant/rtk/platform/coop"
	"github.com/viant/rtk/service/event"
	"github.com/viant/rtk/service/registry"
	"github.com/viant/rtk/service/scheduler"
	"github.com/viant/rtk/service/timer"
	"github.com/viant/rtk/stats"
)

// eventBuffer bounds the scheduler-to-publisher bridge; the scheduler never
// blocks on observers, so events beyond the buffer are dropped.
const eventBuffer = 256

// Service assembles the kernel: the task registry, the scheduler core, the
// periodic tick driver and the optional event and platform layers.
type Service struct {
	config        *Config
	kernelID      string
	registry      *registry.Service
	scheduler     *scheduler.Service
	driver        *timer.Driver
	switcher      platform.Switcher
	allocator     registry.Allocator
	tracker       *stats.Tracker
	eventService  *event.Service
	statsListener func(stats.Stats)
	events        chan scheduler.Event
	runtime       *Runtime
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	if err := s.config.Validate(); err != nil {
		return err
	}

	var regOptions []registry.Option
	if s.allocator != nil {
		regOptions = append(regOptions, registry.WithAllocator(s.allocator))
	}
	s.registry = registry.New(s.config.registryConfig(), regOptions...)

	schedOptions := []scheduler.Option{
		scheduler.WithSwitcher(s.switcher),
		scheduler.WithTracker(s.tracker),
	}
	if s.eventService != nil {
		s.events = make(chan scheduler.Event, eventBuffer)
		schedOptions = append(schedOptions, scheduler.WithNotifier(func(ev scheduler.Event) {
			select {
			case s.events <- ev:
			default:
			}
		}))
	}
	core, err := scheduler.New(s.registry, s.config.schedulerConfig(), schedOptions...)
	if err != nil {
		return err
	}
	s.scheduler = core

	// A terminated goroutine-backed task leaves the kernel through the
	// regular delete path.
	if runner, ok := s.switcher.(*coop.Runner); ok {
		runner.OnExit(func(id uint64) {
			_ = s.scheduler.DeleteTask(id)
		})
	}

	s.driver = timer.New(s.config.timerConfig(), s.scheduler.Tick)
	s.runtime = &Runtime{service: s}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.kernelID == "" {
		s.kernelID = idgen.New()
	}
	if s.tracker == nil {
		s.tracker = stats.NewTracker(s.kernelID)
	}
	if s.statsListener != nil {
		s.tracker.OnChange(s.statsListener)
	}
	if s.switcher == nil {
		s.switcher = platform.Noop{}
	}
}

// KernelID returns the kernel instance identifier.
func (s *Service) KernelID() string {
	return s.kernelID
}

// Runtime returns the kernel runtime façade.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// forwardEvents drains the scheduler event bridge onto the event service
// until the context is cancelled.
func (s *Service) forwardEvents(ctx context.Context) {
	publisher, err := event.PublisherOf[scheduler.Event](s.eventService)
	if err != nil {
		log.Printf("failed to create event publisher: %v", err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			evt := event.NewEvent(&event.Context{
				KernelID:  s.kernelID,
				TaskID:    ev.TaskID,
				Tick:      ev.Tick,
				EventType: string(ev.Type),
			}, ev)
			if err := publisher.Publish(ctx, evt); err != nil {
				log.Printf("failed to publish kernel event: %v", err)
			}
		}
	}
}

// New assembles a kernel service with the supplied options.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
