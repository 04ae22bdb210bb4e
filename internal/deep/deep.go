// Package deep runs the escape-time recurrence on math/big floats for zoom
// levels where float64 pixel coordinates collapse onto each other.
//
// The recurrence is the same one the float64 path runs; only the numeric
// type changes. All state is per-value scratch storage, so one Iterator and
// one Mapper per worker gives allocation-free inner loops with no sharing.
package deep

import "math/big"

// Mapper converts sample-grid coordinates to complex plane coordinates at a
// fixed working precision. The origin and pixel delta are computed once in
// big arithmetic, so adjacent pixels stay distinct at zooms where the same
// computation in float64 would round them together.
//
// Not safe for concurrent use: At reuses internal scratch values.
type Mapper struct {
	originX *big.Float // plane x of pixel column 0
	originY *big.Float // plane y of pixel row 0 (axis points up)
	delta   *big.Float // plane distance between adjacent pixel centers

	re, im, t *big.Float // scratch for At
}

// NewMapper builds the pixel-to-plane transform for a viewport centered on
// (centerRe, centerIm) at the given magnification, with prec mantissa bits.
// span is the plane width at zoom 1 across the larger viewport dimension.
func NewMapper(centerRe, centerIm, zoom, span float64, width, height int, prec uint) *Mapper {
	newF := func() *big.Float { return new(big.Float).SetPrec(prec) }

	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	// delta = span / (zoom * maxDim)
	delta := newF().SetFloat64(zoom)
	delta.Mul(delta, newF().SetFloat64(float64(maxDim)))
	delta.Quo(newF().SetFloat64(span), delta)

	// originX = centerRe - delta*width/2
	t := newF().SetFloat64(float64(width) / 2)
	t.Mul(t, delta)
	originX := newF().SetFloat64(centerRe)
	originX.Sub(originX, t)

	// originY = centerIm + delta*height/2
	t2 := newF().SetFloat64(float64(height) / 2)
	t2.Mul(t2, delta)
	originY := newF().SetFloat64(centerIm)
	originY.Add(originY, t2)

	return &Mapper{
		originX: originX,
		originY: originY,
		delta:   delta,
		re:      newF(),
		im:      newF(),
		t:       newF(),
	}
}

// At returns the plane coordinate of the center of pixel (x, y).
// The returned values are scratch storage owned by the Mapper; they are
// valid until the next At call and must not be mutated.
func (m *Mapper) At(x, y int) (re, im *big.Float) {
	m.t.SetFloat64(float64(x) + 0.5)
	m.t.Mul(m.t, m.delta)
	m.re.Add(m.originX, m.t)

	m.t.SetFloat64(float64(y) + 0.5)
	m.t.Mul(m.t, m.delta)
	m.im.Sub(m.originY, m.t)

	return m.re, m.im
}

// Iterator evaluates escape times in big arithmetic at a fixed precision.
//
// Not safe for concurrent use: each worker gets its own Iterator.
type Iterator struct {
	maxIter int

	boundSq                    *big.Float // escape radius squared
	zr, zi, zr2, zi2, magSq, t *big.Float
}

// NewIterator creates an iterator with prec mantissa bits and the given
// iteration budget. boundSq is the squared escape radius (4 for radius 2).
func NewIterator(prec uint, maxIter int, boundSq float64) *Iterator {
	newF := func() *big.Float { return new(big.Float).SetPrec(prec) }
	return &Iterator{
		maxIter: maxIter,
		boundSq: newF().SetFloat64(boundSq),
		zr:      newF(),
		zi:      newF(),
		zr2:     newF(),
		zi2:     newF(),
		magSq:   newF(),
		t:       newF(),
	}
}

// EscapeTime iterates z ← z² + c from z = 0.
//
// On escape it returns the escape step and the squared magnitude at escape
// (as float64 — the magnitude at escape is order 4, far inside float64
// range), for the caller to convert into a smoothed iteration count.
// If the orbit stays bounded for the whole budget, escaped is false: the
// point is classified interior, which is an outcome, not an error.
func (it *Iterator) EscapeTime(cre, cim *big.Float) (n int, magSq float64, escaped bool) {
	it.zr.SetInt64(0)
	it.zi.SetInt64(0)

	for n := 0; n < it.maxIter; n++ {
		it.zr2.Mul(it.zr, it.zr)
		it.zi2.Mul(it.zi, it.zi)
		it.magSq.Add(it.zr2, it.zi2)
		if it.magSq.Cmp(it.boundSq) > 0 {
			m, _ := it.magSq.Float64()
			return n, m, true
		}

		// zi = 2·zr·zi + ci, zr = zr² - zi² + cr
		it.t.Mul(it.zr, it.zi)
		it.zi.Add(it.t, it.t)
		it.zi.Add(it.zi, cim)
		it.zr.Sub(it.zr2, it.zi2)
		it.zr.Add(it.zr, cre)
	}
	return 0, 0, false
}
