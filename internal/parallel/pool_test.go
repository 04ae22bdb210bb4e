package parallel

import (
	"sync/atomic"
	"testing"
)

// TestPool_ExecuteAll verifies every job runs exactly once and ExecuteAll
// does not return before the last one finishes.
func TestPool_ExecuteAll(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		t.Run("", func(t *testing.T) {
			p := NewPool(workers)
			defer p.Close()

			const n = 200
			var ran [n]atomic.Int32
			jobs := make([]func(), n)
			for i := range jobs {
				i := i
				jobs[i] = func() { ran[i].Add(1) }
			}
			p.ExecuteAll(jobs)

			for i := range ran {
				if got := ran[i].Load(); got != 1 {
					t.Fatalf("job %d ran %d times, want 1", i, got)
				}
			}
		})
	}
}

// TestPool_DefaultWorkers verifies workers <= 0 selects GOMAXPROCS.
func TestPool_DefaultWorkers(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}

// TestPool_ExecuteAllEmpty verifies a nil job list is a no-op.
func TestPool_ExecuteAllEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	p.ExecuteAll(nil)
}

// TestPool_CloseIdempotent verifies Close may be called repeatedly and that
// a closed pool ignores new work instead of wedging the caller.
func TestPool_CloseIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	var ran atomic.Int32
	p.ExecuteAll([]func(){func() { ran.Add(1) }})
	if ran.Load() != 0 {
		t.Error("closed pool executed work")
	}
}

// TestPool_UnevenJobs verifies completion with strongly imbalanced job
// costs, the case the stealing path exists for.
func TestPool_UnevenJobs(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var total atomic.Int64
	jobs := make([]func(), 32)
	for i := range jobs {
		i := i
		jobs[i] = func() {
			work := 1
			if i == 0 {
				work = 1 << 20 // one job dwarfs the rest
			}
			sum := 0
			for j := 0; j < work; j++ {
				sum += j
			}
			total.Add(int64(sum & 1))
		}
	}
	p.ExecuteAll(jobs)
	// Reaching here without deadlock is the assertion; the sum just keeps
	// the loop from being optimized away.
	_ = total.Load()
}
