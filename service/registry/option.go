package registry

// Option customises the registry service
type Option func(s *Service)

// WithAllocator sets the stack memory allocator
func WithAllocator(allocator Allocator) Option {
	return func(s *Service) {
		s.allocator = allocator
	}
}
