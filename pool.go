// pool.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// Persistent worker pool (C9). The submit/collect channel shape is
// carried over from riddle.go's GenerateRiddle (buffered-channel
// fan-out, a wg.Wait-then-close fan-in goroutine); bounded concurrent
// dispatch itself uses golang.org/x/sync/errgroup rather than
// riddle.go's raw WaitGroup, since the pool needs a fixed worker count
// (CPU_threads - reserve) rather than one goroutine per unit of work.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package crossplay

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// PoolReserve is the number of CPU threads withheld from the default
// worker count (§4.8: "W = CPU_threads - reserve; default reserve 3").
const PoolReserve = 3

// Task is one unit of work submitted to the pool: a plain function
// closing over its own immutable inputs (board snapshot, candidate,
// unseen pool, seed), per §6's worker task payload contract. Task
// bodies run to completion without yielding (§5: "no intra-task
// concurrency").
type Task func() any

// Future is the handle returned by Submit; Result blocks until the
// task has completed.
type Future struct {
	result chan any
}

// Result blocks until the task's value is available.
func (f *Future) Result() any {
	return <-f.result
}

// Pool is a persistent, fixed-size worker pool that fans tasks out
// over a bounded number of goroutines. It holds no engine resources
// itself: the tasks it runs close over the shared, immutable ones (the
// packed GADDAG, dictionary, premium table, and tile values, all
// loaded once per process). It is created once and reused across
// moves, games, and matches (§4.8: "not shut down at end of game").
type Pool struct {
	tasks      chan poolJob
	wg         sync.WaitGroup
	sequential bool // true if worker startup failed; Submit runs inline
}

type poolJob struct {
	task   Task
	result chan any
}

// NewPool starts a pool of workers goroutines, defaulting to
// runtime.NumCPU()-PoolReserve (minimum 1) when workers <= 0. If
// startWorkers reports failure, the pool falls back to synchronous
// in-process execution; startWorkers fails only for a non-positive
// count, which the defaulting above never passes it (§4.8: "A fallback to
// sequential in-process execution must exist if worker startup
// fails").
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU() - PoolReserve
		if workers < 1 {
			workers = 1
		}
	}
	p := &Pool{tasks: make(chan poolJob, workers*4)}
	if !p.startWorkers(workers) {
		log.Warn().Msg("worker pool startup failed, falling back to sequential execution")
		p.sequential = true
	}
	return p
}

// startWorkers launches workers goroutines draining p.tasks. Returns
// false (and leaves the pool unusable) if workers <= 0, which is the
// only startup failure mode this process model can encounter.
func (p *Pool) startWorkers(workers int) bool {
	if workers <= 0 {
		return false
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.tasks {
				job.result <- job.task()
			}
		}()
	}
	return true
}

// Submit enqueues task and returns a Future for its result. In
// sequential-fallback mode the task runs synchronously before Submit
// returns, and the returned Future is already resolved.
func (p *Pool) Submit(task Task) *Future {
	result := make(chan any, 1)
	if p.sequential {
		result <- task()
		return &Future{result: result}
	}
	p.tasks <- poolJob{task: task, result: result}
	return &Future{result: result}
}

// SubmitAll dispatches tasks concurrently (bounded by the pool's
// worker count via p.Submit's shared channel) and collects their
// results in input order, joining by index rather than arrival order
// (§5: "the controller joins by index, not by order of arrival").
// ctx governs the overall wait: if ctx is cancelled before every
// future resolves, results not yet ready are left as nil.
func (p *Pool) SubmitAll(ctx context.Context, tasks []Task) []any {
	futures := make([]*Future, len(tasks))
	for i, t := range tasks {
		futures[i] = p.Submit(t)
	}
	results := make([]any, len(tasks))
	for i, f := range futures {
		select {
		case <-ctx.Done():
			return results
		case r := <-f.result:
			results[i] = r
		}
	}
	return results
}

// Shutdown stops accepting new tasks. If wait is true, it blocks
// until every already-submitted task has completed; the pool is not
// expected to be reused after Shutdown (§4.8 notes the pool normally
// lives for the process, so Shutdown is only exercised by tests and
// clean process exit).
func (p *Pool) Shutdown(wait bool) {
	if p.sequential {
		return
	}
	close(p.tasks)
	if wait {
		p.wg.Wait()
	}
}

// RunIndexed runs fn(i) for every i in [0, n) through an
// errgroup.Group, at most runtime.NumCPU()-PoolReserve (minimum 1)
// calls at a time; a worker count passed to NewPool does not change
// this cap. Each call receives a context that is cancelled when ctx
// is cancelled or any call returns an error; RunIndexed still starts
// every call, waits for all of them to return, and returns the first
// error. This is the concurrent-controller-side
// counterpart to SubmitAll for callers (C7/C8's candidate evaluation)
// that want bounded fan-out without constructing one poolJob per
// call. Grounded on the errgroup.WithContext bounded-fan-out idiom
// used for controller-side dispatch in the endgame negamax solver
// example, adapted here to cap concurrency at the CPU-derived default
// worker count instead of that example's lazy-SMP thread count.
func (p *Pool) RunIndexed(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	limit := p.concurrency()
	sem := make(chan struct{}, limit)
	for i := 0; i < n; i++ {
		i := i
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

func (p *Pool) concurrency() int {
	limit := runtime.NumCPU() - PoolReserve
	if limit < 1 {
		limit = 1
	}
	return limit
}
