package mandel

// Option configures an Engine during creation.
//
// Example:
//
//	// Default engine: GOMAXPROCS workers, sine palette, 16→1 schedule.
//	eng := mandel.NewEngine(mandel.WithOnFrame(show))
//
//	// Two workers and the classic triangle-wave colormap:
//	eng := mandel.NewEngine(
//	    mandel.WithWorkers(2),
//	    mandel.WithPalette(mandel.NewTrianglePalette()),
//	    mandel.WithOnFrame(show),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers  int
	palette  Palette
	schedule ScheduleFunc
	onFrame  FrameFunc
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		workers:  0, // pool picks GOMAXPROCS
		palette:  DefaultPalette,
		schedule: DefaultSchedule,
	}
}

// WithWorkers sets the number of parallel workers.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithPalette sets the coloring function for escape values.
// The palette must be safe for concurrent use; both bundled palettes are.
func WithPalette(p Palette) Option {
	return func(o *engineOptions) {
		if p != nil {
			o.palette = p
		}
	}
}

// WithPassSchedule sets the coarse-to-fine pass policy.
// The default halves the stride from 16 to 1 while ramping the iteration
// budget; see DefaultSchedule. Schedules that violate the refinement
// invariants are rejected at Submit time.
func WithPassSchedule(s ScheduleFunc) Option {
	return func(o *engineOptions) {
		if s != nil {
			o.schedule = s
		}
	}
}

// WithOnFrame sets the frame-ready callback, invoked by the render
// coordinator after each completed pass of a current (non-superseded)
// request. The callback runs on the coordinator goroutine: a slow callback
// delays the next pass, never corrupts it.
func WithOnFrame(fn FrameFunc) Option {
	return func(o *engineOptions) {
		o.onFrame = fn
	}
}
