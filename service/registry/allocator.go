package registry

// Allocator supplies stack memory for task control structures. The default
// implementation draws from the Go heap; embedded integrations can plug a
// first-fit pool allocator with the same contract.
type Allocator interface {
	// Allocate returns a region of at least size bytes.
	Allocate(size int) ([]byte, error)

	// Release returns a previously allocated region.
	Release(region []byte)
}

type heapAllocator struct{}

func (heapAllocator) Allocate(size int) ([]byte, error) { return make([]byte, size), nil }

func (heapAllocator) Release([]byte) {}

// NewHeapAllocator returns the default heap-backed stack allocator.
func NewHeapAllocator() Allocator { return heapAllocator{} }
