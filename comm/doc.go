// Package comm provides the execution models the validation harness runs
// under.
//
// A Communicator is the capability set a cooperating process needs: its rank,
// a coordinator predicate, a blocking broadcast from the coordinator and a
// barrier. Serial and shared-memory models are single-rank and their
// collectives are no-ops. Distributed and hybrid models run a fixed group of
// ranks in lock-step, one goroutine per rank, over an in-process transport.
// All models are observably identical to code written against Communicator.
package comm
