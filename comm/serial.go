package comm

// Serial is the single-process model: rank 0 is both the only rank and the
// coordinator, and collectives only validate their arguments.
type Serial struct{}

// NewSerial returns the no-op communicator.
func NewSerial() *Serial {
	return &Serial{}
}

func (*Serial) Rank() int { return CoordinatorRank }
func (*Serial) Size() int { return 1 }

func (*Serial) IsCoordinator(rank int) bool {
	return rank == CoordinatorRank
}

func (*Serial) Broadcast(buf any, kind Kind) error {
	_, err := bufferLen(buf, kind)
	return err
}

func (*Serial) Barrier() error { return nil }

// Shared is the shared-memory model: a single rank whose kernels may fan out
// to a pool of worker goroutines.
type Shared struct {
	Serial

	workers int
}

// NewShared returns a single-rank communicator with the given worker count.
// workers <= 0 selects GOMAXPROCS.
func NewShared(workers int) *Shared {
	return &Shared{workers: defaultWorkers(workers)}
}

// Workers returns the worker pool size.
func (s *Shared) Workers() int {
	return s.workers
}
