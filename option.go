package rtk

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/rtk/platform"
	"github.com/viant/rtk/platform/coop"
	"github.com/viant/rtk/service/event"
	"github.com/viant/rtk/service/registry"
	"github.com/viant/rtk/stats"
	"github.com/viant/rtk/tracing"
)

// Option customises the kernel service
type Option func(s *Service)

// WithConfig sets the kernel configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithKernelID sets the kernel instance identifier
func WithKernelID(id string) Option {
	return func(s *Service) {
		s.kernelID = id
	}
}

// WithSwitcher sets the platform context-switch hook
func WithSwitcher(switcher platform.Switcher) Option {
	return func(s *Service) {
		s.switcher = switcher
	}
}

// WithCoop backs every task with a goroutine managed by the cooperative
// runner, so task entry functions actually execute.
func WithCoop() Option {
	return func(s *Service) {
		s.switcher = coop.New()
	}
}

// WithAllocator sets the task stack allocator
func WithAllocator(allocator registry.Allocator) Option {
	return func(s *Service) {
		s.allocator = allocator
	}
}

// WithEventService publishes scheduler events to the supplied event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithStatsListener registers a callback invoked after every statistics
// update with a snapshot of the aggregate counters
func WithStatsListener(listener func(stats.Stats)) Option {
	return func(s *Service) {
		s.statsListener = listener
	}
}

// WithTracker sets the statistics tracker
func WithTracker(tracker *stats.Tracker) Option {
	return func(s *Service) {
		s.tracker = tracker
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise traces are written to the
// supplied file path. Safe to call multiple times; the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin. Safe to call multiple
// times; the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
