package mandel

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/mandel/internal/deep"
	"github.com/gogpu/mandel/internal/parallel"
)

var (
	// ErrEngineClosed is returned by Submit after Close.
	ErrEngineClosed = errors.New("mandel: engine closed")

	// ErrSuperseded reports that a request was replaced by a newer View
	// before it completed. It is a terminal outcome, not a failure: the
	// caller's display keeps whatever frame it showed last.
	ErrSuperseded = errors.New("mandel: request superseded")
)

// Frame is one completed refinement pass, delivered to the frame callback.
type Frame struct {
	// Generation identifies the request this frame belongs to.
	Generation uint64

	// Pass is the index of the completed pass, Passes the schedule length.
	Pass, Passes int

	// Final is true for the last pass: full resolution, full budget.
	Final bool

	// Image is an independent snapshot; the caller may keep it.
	Image *image.RGBA
}

// FrameFunc receives completed frames. See WithOnFrame.
type FrameFunc func(Frame)

// Request is the caller's handle to one submitted View.
type Request struct {
	gen  uint64
	done chan struct{}
	once sync.Once
	err  error
}

// Generation returns the request's generation number. Generations increase
// monotonically with each Submit; a frame carries the generation of the
// request that produced it.
func (r *Request) Generation() uint64 { return r.gen }

// Done returns a channel closed when the request reaches a terminal state
// (completed, superseded, or failed).
func (r *Request) Done() <-chan struct{} { return r.done }

// Err returns nil for a completed render, ErrSuperseded for a cancelled
// one, or the failure that stopped refinement. Valid after Done is closed.
func (r *Request) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

func (r *Request) finish(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Engine renders Views into progressively refined frames.
//
// One coordinator goroutine issues passes sequentially and is the only
// writer of the image buffer; a fixed worker pool computes the pixel samples
// of each pass in parallel. Submitting a new View supersedes the in-flight
// request: workers for a stale generation may finish their current unit, but
// their pass is never merged.
type Engine struct {
	opts engineOptions
	pool *parallel.Pool

	// submit is a single-slot channel with newest-wins semantics: an
	// unstarted older request is displaced, which coalesces bursts of
	// pan/zoom/resize events the way a redraw debounce would.
	submit chan *renderRequest

	gen       atomic.Uint64
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type renderRequest struct {
	view   View
	prec   Precision
	passes []PassDescriptor
	handle *Request
}

// NewEngine creates an engine and starts its coordinator and worker pool.
// The engine renders nothing until Submit is called. Call Close to release
// the goroutines.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:   o,
		pool:   parallel.NewPool(o.workers),
		submit: make(chan *renderRequest, 1),
		closed: make(chan struct{}),
	}

	e.wg.Add(1)
	go e.run()
	return e
}

// Submit requests a render of v, superseding any in-flight or pending
// request. It never blocks on rendering: the returned handle reports the
// request's outcome. The frame callback delivers a frame after every
// completed pass of the newest generation.
func (e *Engine) Submit(v View) (*Request, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	passes := e.opts.schedule(v.MaxIter)
	if err := ValidateSchedule(passes, v.MaxIter); err != nil {
		return nil, err
	}

	select {
	case <-e.closed:
		return nil, ErrEngineClosed
	default:
	}

	req := &renderRequest{
		view:   v,
		prec:   Resolve(v),
		passes: passes,
		handle: &Request{gen: e.gen.Add(1), done: make(chan struct{})},
	}

	Logger().Info("render submitted",
		slog.Uint64("generation", req.handle.gen),
		slog.String("mode", v.Mode.String()),
		slog.Uint64("precision_bits", uint64(req.prec.Bits)),
		slog.Float64("zoom", v.Zoom))

	// Newest wins: displace a pending request rather than queue behind it.
	for {
		select {
		case e.submit <- req:
			return req.handle, nil
		default:
		}
		select {
		case old := <-e.submit:
			old.handle.finish(ErrSuperseded)
			rendersSuperseded.Inc()
		default:
		}
	}
}

// Close stops the engine. A pending request finishes with ErrEngineClosed;
// an in-flight one stops at its next staleness check with ErrSuperseded
// semantics. Close is safe to call multiple times and waits for the
// coordinator and workers to exit.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.closed)
	})
	e.wg.Wait()
	select {
	case old := <-e.submit:
		old.handle.finish(ErrEngineClosed)
	default:
	}
	e.pool.Close()
}

// stale reports whether generation gen has been superseded or the engine is
// closing. Checked before each pass is computed and again before each pass
// is merged, so a torn frame can never reach the buffer.
func (e *Engine) stale(gen uint64) bool {
	select {
	case <-e.closed:
		return true
	default:
	}
	return e.gen.Load() != gen
}

// run is the coordinator loop: one request at a time, passes in order.
func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.closed:
			return
		case req := <-e.submit:
			e.render(req)
		}
	}
}

// render drives one request through its pass schedule.
func (e *Engine) render(req *renderRequest) {
	gen := req.handle.gen
	view := req.view
	start := time.Now()

	buffer := NewPixmap(view.Width, view.Height)
	if req.prec.Arithmetic == BigFloat {
		deepRenders.Inc()
	}

	var prev *passResult
	for i, pass := range req.passes {
		if e.stale(gen) {
			Logger().Debug("render superseded",
				slog.Uint64("generation", gen), slog.Int("pass", i))
			passesStale.Inc()
			req.handle.finish(ErrSuperseded)
			return
		}

		passStart := time.Now()
		result, err := e.renderPass(view, req.prec, pass, prev)
		if err != nil {
			Logger().Warn("render failed",
				slog.Uint64("generation", gen), slog.Int("pass", i),
				slog.String("error", err.Error()))
			req.handle.finish(err)
			return
		}

		// The generation check is the cancellation mechanism: a stale
		// pass is discarded whole, never merged.
		if e.stale(gen) {
			Logger().Debug("pass discarded",
				slog.Uint64("generation", gen), slog.Int("pass", i))
			passesStale.Inc()
			req.handle.finish(ErrSuperseded)
			return
		}

		result.mergeInto(buffer)
		passesCompleted.Inc()
		samplesComputed.Add(float64(result.computed))

		Logger().Debug("pass completed",
			slog.Uint64("generation", gen),
			slog.Int("pass", i),
			slog.Int("stride", pass.Stride),
			slog.Int("budget", pass.MaxIter),
			slog.Duration("elapsed", time.Since(passStart)))

		if e.opts.onFrame != nil {
			e.opts.onFrame(Frame{
				Generation: gen,
				Pass:       i,
				Passes:     len(req.passes),
				Final:      i == len(req.passes)-1,
				Image:      buffer.Snapshot(),
			})
		}
		prev = result
	}

	renderDuration.Observe(time.Since(start).Seconds())
	Logger().Info("render completed",
		slog.Uint64("generation", gen),
		slog.Duration("elapsed", time.Since(start)))
	req.handle.finish(nil)
}

// passResult holds one pass's sample grid until the coordinator merges it.
type passResult struct {
	stride   int
	maxIter  int
	samples  *image.RGBA // one pixel per sample, gridW x gridH
	computed int         // samples actually iterated (excludes reused ones)
}

// mergeInto applies the pass to the image buffer. A stride-1 pass overwrites
// pixels one for one; a coarse pass replicates each sample across its block
// by nearest-neighbour scaling the sample grid over the full viewport.
func (r *passResult) mergeInto(buffer *Pixmap) {
	dst := buffer.Image()
	if r.stride == 1 {
		xdraw.Draw(dst, dst.Bounds(), r.samples, image.Point{}, xdraw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), r.samples, r.samples.Bounds(), xdraw.Src, nil)
}

// renderPass computes one pass's sample grid on the worker pool and returns
// it unmerged. Row bands are disjoint, so workers write distinct rows of the
// grid; the pool's completion barrier publishes them to the coordinator.
//
// When the previous pass sampled the same orbit budget at twice the stride,
// its samples are copied instead of recomputed; they correspond to the same
// pixel centers, so the copy is exact, not an approximation.
func (e *Engine) renderPass(view View, prec Precision, pass PassDescriptor, prev *passResult) (*passResult, error) {
	gridW := (view.Width + pass.Stride - 1) / pass.Stride
	gridH := (view.Height + pass.Stride - 1) / pass.Stride

	result := &passResult{
		stride:  pass.Stride,
		maxIter: pass.MaxIter,
		samples: image.NewRGBA(image.Rect(0, 0, gridW, gridH)),
	}

	reuse := prev != nil && prev.maxIter == pass.MaxIter && prev.stride == 2*pass.Stride

	bands := parallel.Split(gridH, e.pool.Workers()*4)
	jobs := make([]func(), len(bands))
	computed := make([]int, len(bands))
	for i, band := range bands {
		i, band := i, band
		jobs[i] = func() {
			var reusePrev *image.RGBA
			if reuse {
				reusePrev = prev.samples
			}
			computed[i] = e.renderBand(view, prec, pass, band, result.samples, reusePrev)
		}
	}
	e.pool.ExecuteAll(jobs)

	for _, n := range computed {
		result.computed += n
	}
	return result, nil
}

// renderBand computes rows [band.Y0, band.Y1) of the sample grid.
// Runs on a worker goroutine; writes only to its own rows of samples.
func (e *Engine) renderBand(view View, prec Precision, pass PassDescriptor, band parallel.Band, samples *image.RGBA, reusePrev *image.RGBA) int {
	gridW := samples.Rect.Dx()
	palette := e.opts.palette

	if prec.Arithmetic == BigFloat {
		return e.renderBandDeep(view, prec, pass, band, samples, reusePrev)
	}

	pm := PlaneMapFor(view)
	computed := 0
	for y := band.Y0; y < band.Y1; y++ {
		for x := 0; x < gridW; x++ {
			if reusePrev != nil && x%2 == 0 && y%2 == 0 {
				samples.SetRGBA(x, y, reusePrev.RGBAAt(x/2, y/2))
				continue
			}
			c := pm.At(x*pass.Stride, y*pass.Stride)
			mu, escaped := EscapeTime(c, pass.MaxIter)
			samples.SetRGBA(x, y, shade(palette, mu, escaped))
			computed++
		}
	}
	return computed
}

// renderBandDeep is renderBand on the arbitrary-precision path. Mapper and
// Iterator carry per-call scratch, so each band builds its own.
func (e *Engine) renderBandDeep(view View, prec Precision, pass PassDescriptor, band parallel.Band, samples *image.RGBA, reusePrev *image.RGBA) int {
	gridW := samples.Rect.Dx()
	palette := e.opts.palette

	mapper := deep.NewMapper(real(view.Center), imag(view.Center), view.Zoom,
		planeSpan, view.Width, view.Height, prec.Bits)
	iter := deep.NewIterator(prec.Bits, pass.MaxIter, escapeRadiusSq)

	computed := 0
	for y := band.Y0; y < band.Y1; y++ {
		for x := 0; x < gridW; x++ {
			if reusePrev != nil && x%2 == 0 && y%2 == 0 {
				samples.SetRGBA(x, y, reusePrev.RGBAAt(x/2, y/2))
				continue
			}
			re, im := mapper.At(x*pass.Stride, y*pass.Stride)
			n, magSq, escaped := iter.EscapeTime(re, im)
			var mu float64
			if escaped {
				mu = Smooth(n, magSq, pass.MaxIter)
			}
			samples.SetRGBA(x, y, shade(palette, mu, escaped))
			computed++
		}
	}
	return computed
}

// shade maps a classification outcome to a color.
func shade(p Palette, mu float64, escaped bool) color.RGBA {
	if !escaped {
		return p.Interior()
	}
	return p.At(mu)
}
