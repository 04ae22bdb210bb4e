package mandel

import (
	"errors"
	"math"
	"testing"
)

// TestView_Validate exercises the view invariants.
func TestView_Validate(t *testing.T) {
	valid := View{Center: -0.5, Zoom: 1, Width: 800, Height: 600, MaxIter: 100}

	tests := []struct {
		name   string
		mutate func(*View)
		ok     bool
	}{
		{"valid", func(*View) {}, true},
		{"zero_width", func(v *View) { v.Width = 0 }, false},
		{"negative_height", func(v *View) { v.Height = -1 }, false},
		{"zero_zoom", func(v *View) { v.Zoom = 0 }, false},
		{"negative_zoom", func(v *View) { v.Zoom = -2 }, false},
		{"nan_zoom", func(v *View) { v.Zoom = math.NaN() }, false},
		{"zero_iterations", func(v *View) { v.MaxIter = 0 }, false},
		{"one_iteration", func(v *View) { v.MaxIter = 1 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := valid
			tc.mutate(&v)
			err := v.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidView) {
					t.Errorf("Validate() = %v, want ErrInvalidView", err)
				}
			}
		})
	}
}

// TestPlaneMap verifies the pixel-to-plane transform: the viewport center
// maps near View.Center and the plane span matches the zoom.
func TestPlaneMap(t *testing.T) {
	v := View{Center: complex(-0.5, 0.25), Zoom: 2, Width: 800, Height: 600, MaxIter: 100}
	m := PlaneMapFor(v)

	// delta = 4 / (zoom * maxDim) = 4 / 1600
	if want := 0.0025; math.Abs(m.Delta-want) > 1e-15 {
		t.Errorf("Delta = %v, want %v", m.Delta, want)
	}

	// The point between the two central pixels is the view center.
	c := m.At(v.Width/2, v.Height/2)
	if math.Abs(real(c)-real(v.Center)) > m.Delta || math.Abs(imag(c)-imag(v.Center)) > m.Delta {
		t.Errorf("center pixel maps to %v, want within one pixel of %v", c, v.Center)
	}

	// The vertical axis points up: larger y means smaller imaginary part.
	top := m.At(400, 0)
	bottom := m.At(400, 599)
	if imag(top) <= imag(bottom) {
		t.Errorf("axis flipped: imag(top)=%v <= imag(bottom)=%v", imag(top), imag(bottom))
	}

	// Horizontal neighbors are exactly one delta apart.
	d := real(m.At(11, 7)) - real(m.At(10, 7))
	if math.Abs(d-m.Delta) > 1e-15 {
		t.Errorf("pixel spacing = %v, want %v", d, m.Delta)
	}
}

// TestPlaneMap_ZoomHalvesSpan verifies doubling the zoom halves the plane
// distance covered by the viewport.
func TestPlaneMap_ZoomHalvesSpan(t *testing.T) {
	base := View{Center: 0, Zoom: 1, Width: 400, Height: 400, MaxIter: 10}
	zoomed := base
	zoomed.Zoom = 2

	m1 := PlaneMapFor(base)
	m2 := PlaneMapFor(zoomed)
	if math.Abs(m1.Delta-2*m2.Delta) > 1e-15 {
		t.Errorf("Delta at zoom 1 = %v, at zoom 2 = %v; want exact halving", m1.Delta, m2.Delta)
	}
}

// TestParseMode covers the CLI-facing mode names.
func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeAuto, ModeFixed, ModeArbitrary} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, nil", m.String(), got, err, m)
		}
	}
	if _, err := ParseMode("quantum"); err == nil {
		t.Error("ParseMode(quantum) = nil error, want failure")
	}
}
