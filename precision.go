package mandel

import (
	"log/slog"
	"math"
)

// Arithmetic is the resolved precision mode of one render request.
// Unlike Mode it has no automatic variant; resolution happens exactly once,
// when the request is submitted.
type Arithmetic int

const (
	// Float64 runs the iteration on hardware doubles.
	Float64 Arithmetic = iota

	// BigFloat runs the iteration on math/big floats at Precision.Bits.
	BigFloat
)

const (
	// float64MantissaBits is the significand width of IEEE 754 doubles.
	float64MantissaBits = 53

	// guardBits is headroom beyond the bits strictly needed to separate
	// adjacent pixel coordinates, covering rounding across ~maxIter
	// squarings near the boundary.
	guardBits = 8

	// maxPrecBits caps the working precision of the big.Float path.
	// Deeper zooms clamp here and may show artifacts; that is an accepted
	// degradation, not a failure.
	maxPrecBits = 1024
)

// Precision is the arithmetic configuration derived from a View: which
// numeric type runs the iteration and, for BigFloat, at how many mantissa
// bits. It is recomputed whenever the view's zoom or mode changes, never
// mutated.
type Precision struct {
	Arithmetic Arithmetic

	// Bits is the working mantissa width. Set for BigFloat;
	// float64MantissaBits for Float64.
	Bits uint
}

// Resolve fixes the precision context for a view.
//
// Explicit modes pass through. ModeAuto compares the bits required to
// separate adjacent pixel coordinates — log₂ of the ratio between the
// coordinate magnitude (the plane span at zoom 1) and the pixel spacing,
// plus guard bits — against the float64 mantissa. Pure function of the view.
func Resolve(v View) Precision {
	need := requiredBits(v)

	var arith Arithmetic
	switch v.Mode {
	case ModeFixed:
		arith = Float64
	case ModeArbitrary:
		arith = BigFloat
	default:
		if need > float64MantissaBits {
			arith = BigFloat
		} else {
			arith = Float64
		}
	}

	if arith == Float64 {
		return Precision{Arithmetic: Float64, Bits: float64MantissaBits}
	}

	bits := need
	if bits < 2*float64MantissaBits {
		// Not worth spinning up big.Float below this; keeps shallow
		// ModeArbitrary renders from running at a useless 53 bits.
		bits = 2 * float64MantissaBits
	}
	if bits > maxPrecBits {
		Logger().Warn("working precision clamped",
			slog.Uint64("requested", uint64(bits)),
			slog.Int("cap", maxPrecBits))
		bits = maxPrecBits
	}
	return Precision{Arithmetic: BigFloat, Bits: bits}
}

// requiredBits estimates the mantissa width needed so that adjacent pixel
// centers map to distinct coordinates with room to spare.
func requiredBits(v View) uint {
	maxDim := v.Width
	if v.Height > maxDim {
		maxDim = v.Height
	}
	// Pixel spacing is planeSpan / (zoom · maxDim); coordinates are O(2).
	// Separating them needs log₂(zoom · maxDim) bits plus guard.
	b := math.Log2(v.Zoom*float64(maxDim)) + guardBits
	if b < 1 || math.IsNaN(b) {
		return 1
	}
	if b > 1<<20 {
		// Absurd zoom values would overflow the uint conversion below;
		// the cap in Resolve clamps far earlier anyway.
		return 1 << 20
	}
	return uint(math.Ceil(b))
}
