package mandel

import "math"

// Escape-time iteration constants. The bailout check compares the squared
// magnitude against escapeRadius² so the inner loop never takes a square
// root; radius 2 is the smallest value for which escape is unambiguous.
const (
	escapeRadius   = 2.0
	escapeRadiusSq = escapeRadius * escapeRadius
)

const invLog2 = 1.4426950408889634 // 1 / ln 2

// EscapeTime iterates z ← z² + c from z = 0 in float64 arithmetic.
//
// If the orbit escapes within maxIter steps, it returns the smoothed
// (continuous) iteration count and escaped = true. The smoothed value
// n + 1 - log₂(log|z|) removes the integer banding a raw step count
// produces in color gradients. If the orbit stays bounded for the whole
// budget the point is classified interior and escaped = false; there is no
// error case, only classification.
func EscapeTime(c complex128, maxIter int) (mu float64, escaped bool) {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	for n := 0; n < maxIter; n++ {
		zr2 := zr * zr
		zi2 := zi * zi
		if zr2+zi2 > escapeRadiusSq {
			return Smooth(n, zr2+zi2, maxIter), true
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
	}
	return 0, false
}

// Smooth converts a raw escape step and the squared magnitude at escape into
// the continuous iteration count, clamped to [0, maxIter]. log|z| = log(|z|²)/2,
// so the sqrt is folded into the log rather than taken explicitly. The deep
// iteration path reports its raw escape step and magnitude and is smoothed
// through this same function, so both arithmetic modes color identically.
func Smooth(n int, magSq float64, maxIter int) float64 {
	mu := float64(n) + 1 - math.Log(0.5*math.Log(magSq))*invLog2
	if mu < 0 {
		return 0
	}
	if mu > float64(maxIter) {
		return float64(maxIter)
	}
	return mu
}
