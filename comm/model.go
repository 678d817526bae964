package comm

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Model describes an execution model and how to build its communicators.
type Model struct {
	Name        string
	Aliases     []string
	Description string
	// MultiRank models run one goroutine per rank over the in-process
	// transport.
	MultiRank bool
	// Threaded models give each rank a worker pool.
	Threaded bool
}

// Built-in execution model names.
const (
	ModelSerial      = "serial"
	ModelShared      = "shared"
	ModelDistributed = "distributed"
	ModelHybrid      = "hybrid"
)

var models = []Model{
	{
		Name:        ModelSerial,
		Aliases:     []string{"none"},
		Description: "single process, single thread",
	},
	{
		Name:        ModelShared,
		Aliases:     []string{"omp"},
		Description: "single process with a shared-memory worker pool",
		Threaded:    true,
	},
	{
		Name:        ModelDistributed,
		Aliases:     []string{"mpi"},
		Description: "lock-step ranks exchanging data through collectives",
		MultiRank:   true,
	},
	{
		Name:        ModelHybrid,
		Aliases:     []string{"mpi+omp"},
		Description: "lock-step ranks, each with a shared-memory worker pool",
		MultiRank:   true,
		Threaded:    true,
	},
}

// Models returns the registered execution models.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)

	return out
}

// LookupModel resolves a model by name or alias, case-insensitively.
func LookupModel(name string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	for _, m := range models {
		if m.Name == key {
			return m, nil
		}

		for _, alias := range m.Aliases {
			if alias == key {
				return m, nil
			}
		}
	}

	return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// LaunchConfig selects a model and its shape, mirroring one entry of a
// launch configuration file.
type LaunchConfig struct {
	Model   string `yaml:"model" json:"model" validate:"required"`
	Ranks   int    `yaml:"ranks" json:"ranks" validate:"gte=0"`
	Threads int    `yaml:"threads" json:"threads" validate:"gte=0"`
}

// Communicators builds one communicator per rank for cfg. Single-rank models
// reject Ranks > 1. Ranks == 0 means one rank; Threads == 0 means GOMAXPROCS
// for threaded models.
func (m Model) Communicators(cfg LaunchConfig) ([]Communicator, error) {
	ranks := cfg.Ranks
	if ranks == 0 {
		ranks = 1
	}

	if ranks < 0 || cfg.Threads < 0 {
		return nil, fmt.Errorf("%w: ranks=%d threads=%d", ErrInvalidLaunch, cfg.Ranks, cfg.Threads)
	}

	if !m.MultiRank && ranks != 1 {
		return nil, fmt.Errorf("%w: model %s runs a single rank, got %d", ErrInvalidLaunch, m.Name, ranks)
	}

	workers := 1
	if m.Threaded {
		workers = defaultWorkers(cfg.Threads)
	}

	switch {
	case !m.MultiRank && !m.Threaded:
		return []Communicator{NewSerial()}, nil
	case !m.MultiRank:
		return []Communicator{NewShared(workers)}, nil
	}

	peers, err := NewGroup(ranks, workers)
	if err != nil {
		return nil, err
	}

	out := make([]Communicator, len(peers))
	for i, p := range peers {
		out[i] = p
	}

	return out, nil
}

// Launch runs fn once per rank of cfg's model, concurrently and in lock-step
// through the returned communicators, and waits for all ranks. The first
// error is returned; it also aborts the group so ranks blocked in a
// collective are released instead of hanging.
func Launch(cfg LaunchConfig, fn func(Communicator) error) error {
	model, err := LookupModel(cfg.Model)
	if err != nil {
		return err
	}

	comms, err := model.Communicators(cfg)
	if err != nil {
		return err
	}

	var g errgroup.Group

	errs := make([]error, len(comms))

	for i, c := range comms {
		g.Go(func() error {
			err := fn(c)
			if err != nil {
				errs[i] = err

				if p, ok := c.(*Peer); ok {
					p.Abort(fmt.Errorf("rank %d: %w", p.Rank(), err))
				}
			}

			return err
		})
	}

	if err := g.Wait(); err == nil {
		return nil
	}

	// Prefer the failure that caused the abort over the ranks it released.
	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrAborted) {
			return err
		}
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
