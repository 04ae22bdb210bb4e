package mandel

import "fmt"

// PassDescriptor describes one sweep of a progressive render: how sparsely
// the viewport is sampled and how many iterations each sample may spend.
type PassDescriptor struct {
	// Stride is the sample spacing in pixels. Stride 4 computes one sample
	// per 4x4 block and replicates its color across the block.
	Stride int

	// MaxIter is the iteration budget for this pass.
	MaxIter int
}

// ScheduleFunc produces the ordered pass sequence for a render request.
// The engine validates the result with ValidateSchedule before use.
type ScheduleFunc func(maxIter int) []PassDescriptor

// DefaultSchedule halves the sample stride each pass from 16 down to 1 while
// ramping the iteration budget up to maxIter: early passes are cheap twice
// over (few samples, shallow orbits), the final pass computes every pixel at
// the full budget.
func DefaultSchedule(maxIter int) []PassDescriptor {
	const maxStride = 16
	const minPassIter = 32

	var passes []PassDescriptor
	for stride := maxStride; stride >= 1; stride /= 2 {
		passes = append(passes, PassDescriptor{Stride: stride})
	}
	n := len(passes)
	for i := range passes {
		budget := maxIter >> (n - 1 - i)
		if budget < minPassIter {
			budget = minPassIter
		}
		if budget > maxIter {
			budget = maxIter
		}
		passes[i].MaxIter = budget
	}
	passes[n-1].MaxIter = maxIter
	return passes
}

// SinglePassSchedule renders one full-resolution, full-budget pass with no
// progressive preview. Useful for offline rendering and tests.
func SinglePassSchedule(maxIter int) []PassDescriptor {
	return []PassDescriptor{{Stride: 1, MaxIter: maxIter}}
}

// ValidateSchedule checks the refinement invariants: at least one pass,
// positive strides, strides non-increasing, iteration budgets non-decreasing
// and within maxIter, and a final pass at stride 1 with the full budget.
// Anything else could regress already-displayed fidelity between passes.
func ValidateSchedule(passes []PassDescriptor, maxIter int) error {
	if len(passes) == 0 {
		return fmt.Errorf("mandel: empty pass schedule")
	}
	for i, p := range passes {
		if p.Stride < 1 {
			return fmt.Errorf("mandel: pass %d: stride %d < 1", i, p.Stride)
		}
		if p.MaxIter < 1 || p.MaxIter > maxIter {
			return fmt.Errorf("mandel: pass %d: budget %d outside [1, %d]", i, p.MaxIter, maxIter)
		}
		if i > 0 {
			if p.Stride > passes[i-1].Stride {
				return fmt.Errorf("mandel: pass %d: stride grows %d -> %d", i, passes[i-1].Stride, p.Stride)
			}
			if p.MaxIter < passes[i-1].MaxIter {
				return fmt.Errorf("mandel: pass %d: budget shrinks %d -> %d", i, passes[i-1].MaxIter, p.MaxIter)
			}
		}
	}
	last := passes[len(passes)-1]
	if last.Stride != 1 || last.MaxIter != maxIter {
		return fmt.Errorf("mandel: final pass must be stride 1 at the full budget, got stride %d budget %d",
			last.Stride, last.MaxIter)
	}
	return nil
}
