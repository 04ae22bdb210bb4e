// Package mandel renders the Mandelbrot set through parallel, progressively
// refined escape-time computation.
//
// The engine receives immutable Views (center, zoom, viewport, iteration
// budget, precision mode) and produces a sequence of increasingly accurate
// frames per View: early passes sample the viewport coarsely with a reduced
// iteration budget for a fast preview, later passes refine down to one
// sample per pixel at the full budget. Submitting a new View supersedes the
// in-flight one at its next pass boundary, which keeps panning and zooming
// responsive without cooperative cancellation inside the iteration loop.
//
// At extreme zoom, float64 pixel coordinates collapse onto each other; the
// engine then switches to arbitrary-precision arithmetic (math/big) at a
// working precision derived from the zoom. Mode selection is automatic by
// default and can be forced either way per View.
//
// The package deliberately ends at the raster: windowing, input handling,
// and presentation belong to the caller, which submits Views and receives
// frame snapshots.
//
//	eng := mandel.NewEngine(mandel.WithOnFrame(func(f mandel.Frame) {
//	    display(f.Image) // refresh after every pass
//	}))
//	defer eng.Close()
//
//	req, err := eng.Submit(mandel.View{
//	    Center: complex(-0.5, 0), Zoom: 1,
//	    Width: 800, Height: 600, MaxIter: 1000,
//	})
package mandel
