package comm

import (
	"fmt"
	"sync"
)

// group is the in-process transport shared by the ranks of a distributed or
// hybrid launch. Collectives rendezvous on a generation barrier; a broadcast
// publishes the coordinator's buffer between two barrier phases so that no
// rank can observe the slot of a different collective.
type group struct {
	size int

	mu         sync.Mutex
	cond       *sync.Cond
	arrived    int
	generation uint64
	aborted    error

	slot     any
	slotLen  int
	slotKind Kind
	slotOK   bool
}

func newGroup(size int) *group {
	g := &group{size: size}
	g.cond = sync.NewCond(&g.mu)

	return g
}

// barrier blocks until all size ranks have arrived, or the group aborts.
func (g *group) barrier() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted != nil {
		return g.aborted
	}

	gen := g.generation

	g.arrived++
	if g.arrived == g.size {
		g.arrived = 0
		g.generation++
		g.cond.Broadcast()

		return nil
	}

	for gen == g.generation && g.aborted == nil {
		g.cond.Wait()
	}

	if gen == g.generation {
		return g.aborted
	}

	return nil
}

// abort releases every rank blocked in a collective. Later collectives fail
// immediately with err.
func (g *group) abort(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted == nil {
		g.aborted = fmt.Errorf("%w: %w", ErrAborted, err)
	}

	g.cond.Broadcast()
}

func (g *group) broadcast(rank int, buf any, kind Kind) error {
	n, kindErr := bufferLen(buf, kind)

	if rank == CoordinatorRank {
		g.mu.Lock()
		g.slot, g.slotLen, g.slotKind, g.slotOK = buf, n, kind, kindErr == nil
		g.mu.Unlock()
	}

	// Phase 1: the coordinator's buffer is published.
	if err := g.barrier(); err != nil {
		return err
	}

	var copyErr error

	if rank != CoordinatorRank && kindErr == nil {
		g.mu.Lock()
		src, srcLen, srcKind, ok := g.slot, g.slotLen, g.slotKind, g.slotOK
		g.mu.Unlock()

		switch {
		case !ok || srcKind != kind:
			copyErr = fmt.Errorf("%w: rank %d broadcasts %s, coordinator %s",
				ErrCollectiveMismatch, rank, kind, srcKind)
		case srcLen != n:
			copyErr = fmt.Errorf("%w: rank %d buffer length %d, coordinator %d",
				ErrCollectiveMismatch, rank, n, srcLen)
		default:
			copyBuffer(buf, src)
		}
	}

	// Phase 2: every rank has copied, the coordinator may reuse its buffer.
	if err := g.barrier(); err != nil {
		return err
	}

	if kindErr != nil {
		return kindErr
	}

	return copyErr
}

// Peer is one rank of a distributed or hybrid group.
type Peer struct {
	group   *group
	rank    int
	workers int
}

// NewGroup returns the size ranks of a new in-process group. Each Peer must
// be driven by its own goroutine. workers is the per-rank worker pool size;
// 1 gives the distributed model, more gives the hybrid model.
func NewGroup(size, workers int) ([]*Peer, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: group size %d", ErrInvalidLaunch, size)
	}

	if workers < 1 {
		workers = 1
	}

	g := newGroup(size)

	peers := make([]*Peer, size)
	for rank := range peers {
		peers[rank] = &Peer{group: g, rank: rank, workers: workers}
	}

	return peers, nil
}

func (p *Peer) Rank() int    { return p.rank }
func (p *Peer) Size() int    { return p.group.size }
func (p *Peer) Workers() int { return p.workers }

func (p *Peer) IsCoordinator(rank int) bool {
	return rank == CoordinatorRank
}

func (p *Peer) Broadcast(buf any, kind Kind) error {
	return p.group.broadcast(p.rank, buf, kind)
}

func (p *Peer) Barrier() error {
	return p.group.barrier()
}

// Abort releases all ranks of p's group that are blocked in a collective.
func (p *Peer) Abort(err error) {
	p.group.abort(err)
}
