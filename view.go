package mandel

import (
	"errors"
	"fmt"
)

// ErrInvalidView is returned by Engine.Submit for a View that violates its
// invariants (non-positive viewport, zoom, or iteration budget).
var ErrInvalidView = errors.New("mandel: invalid view")

// Mode selects the arithmetic used for escape-time iteration.
type Mode int

const (
	// ModeAuto picks fixed or arbitrary precision from the view's zoom.
	ModeAuto Mode = iota

	// ModeFixed forces float64 arithmetic regardless of zoom.
	ModeFixed

	// ModeArbitrary forces big.Float arithmetic regardless of zoom.
	ModeArbitrary
)

// String returns the mode name for logging and CLI flags.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeFixed:
		return "fixed"
	case ModeArbitrary:
		return "arbitrary"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name ("auto", "fixed", "arbitrary") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto":
		return ModeAuto, nil
	case "fixed":
		return ModeFixed, nil
	case "arbitrary":
		return ModeArbitrary, nil
	default:
		return ModeAuto, fmt.Errorf("mandel: unknown precision mode %q", s)
	}
}

// View describes one render request: where to look and how hard to work.
//
// A View is immutable once submitted. Pan, zoom, resize and iteration-budget
// changes all arrive as a fresh View; the engine never mutates a View in
// place. Zoom 1 shows the full set (a plane span of 4 across the larger
// viewport dimension); larger values magnify around Center.
type View struct {
	// Center is the complex coordinate at the middle of the viewport.
	Center complex128

	// Zoom is the magnification factor. Must be > 0.
	Zoom float64

	// Width and Height are the viewport dimensions in pixels.
	Width, Height int

	// MaxIter is the iteration budget for the final pass. Must be >= 1.
	MaxIter int

	// Mode selects fixed, arbitrary, or automatic precision.
	Mode Mode
}

// Validate reports whether the view satisfies its invariants.
func (v View) Validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidView, v.Width, v.Height)
	case !(v.Zoom > 0): // also rejects NaN
		return fmt.Errorf("%w: zoom %v", ErrInvalidView, v.Zoom)
	case v.MaxIter < 1:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidView, v.MaxIter)
	default:
		return nil
	}
}

// planeSpan is the width of the complex plane shown at zoom 1,
// measured across the larger viewport dimension.
const planeSpan = 4.0

// PlaneMap is the affine transform from pixel coordinates to the complex
// plane. Keeping it as an explicit value (rather than arithmetic scattered
// across call sites) lets the precision selector and the deep-iteration path
// derive their contexts from the same three numbers.
type PlaneMap struct {
	// OriginX, OriginY is the plane coordinate of pixel (0, 0).
	OriginX, OriginY float64

	// Delta is the plane distance between adjacent pixel centers.
	// The vertical axis points up: row y maps to OriginY - y*Delta.
	Delta float64
}

// PlaneMapFor returns the pixel-to-plane transform for a view.
func PlaneMapFor(v View) PlaneMap {
	maxDim := v.Width
	if v.Height > maxDim {
		maxDim = v.Height
	}
	delta := planeSpan / (v.Zoom * float64(maxDim))
	return PlaneMap{
		OriginX: real(v.Center) - delta*float64(v.Width)/2,
		OriginY: imag(v.Center) + delta*float64(v.Height)/2,
		Delta:   delta,
	}
}

// At returns the complex coordinate of the center of pixel (x, y).
func (m PlaneMap) At(x, y int) complex128 {
	return complex(
		m.OriginX+(float64(x)+0.5)*m.Delta,
		m.OriginY-(float64(y)+0.5)*m.Delta,
	)
}
