// pool_test.go
//
// Copyright (C) 2024 Vilhjálmur Þorsteinsson / Miðeind ehf.

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
	"reflect"
	"sync"
	"testing"
)

// Property 10: the sequential fallback (exercised directly here since
// goroutine startup cannot be made to fail from a test) must produce
// results identical to the pooled, concurrent path for the same pure
// tasks, joined by index.
func TestPoolSequentialFallbackEquivalence(t *testing.T) {
	makeTasks := func() []Task {
		tasks := make([]Task, 20)
		for i := 0; i < 20; i++ {
			i := i
			tasks[i] = func() any { return i * i }
		}
		return tasks
	}

	real := NewPool(4)
	defer real.Shutdown(true)
	seq := &Pool{sequential: true}

	gotReal := real.SubmitAll(context.Background(), makeTasks())
	gotSeq := seq.SubmitAll(context.Background(), makeTasks())

	if !reflect.DeepEqual(gotReal, gotSeq) {
		t.Errorf("pooled result %v differs from sequential-fallback result %v", gotReal, gotSeq)
	}
}

func TestPoolSubmitAllJoinsByIndex(t *testing.T) {
	p := NewPool(3)
	defer p.Shutdown(true)
	tasks := make([]Task, 10)
	for i := 0; i < 10; i++ {
		i := i
		tasks[i] = func() any { return i }
	}
	got := p.SubmitAll(context.Background(), tasks)
	for i, v := range got {
		if v.(int) != i {
			t.Errorf("result[%d] = %v, want %d", i, v, i)
		}
	}
}

// RunIndexed must invoke fn exactly once for every index in [0, n),
// regardless of completion order.
func TestPoolRunIndexedCoversEveryIndex(t *testing.T) {
	p := NewPool(4)
	defer p.Shutdown(true)

	const n = 50
	var mu sync.Mutex
	seen := make([]int, n)
	err := p.RunIndexed(context.Background(), n, func(ctx context.Context, i int) error {
		mu.Lock()
		seen[i]++
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("RunIndexed returned error: %v", err)
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("index %d visited %d times, want 1", i, count)
		}
	}
}

// A pool that falls back to sequential execution still serves
// Submit/SubmitAll synchronously, never blocking on a worker that
// does not exist.
func TestPoolSequentialSubmitResolvesImmediately(t *testing.T) {
	p := &Pool{sequential: true}
	f := p.Submit(func() any { return "done" })
	if got := f.Result(); got != "done" {
		t.Errorf("sequential Submit result = %v, want \"done\"", got)
	}
}

func TestPoolShutdownIsIdempotentForSequentialPool(t *testing.T) {
	p := &Pool{sequential: true}
	p.Shutdown(true) // must not panic on a pool with no worker goroutines
	p.Shutdown(true) // nor when called a second time
}
