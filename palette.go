package mandel

import (
	"image/color"
	"math"
)

// A Palette maps smoothed escape values to colors. Implementations must be
// pure: workers call At concurrently with no synchronization.
type Palette interface {
	// At returns the color for a smoothed escape value.
	At(mu float64) color.RGBA

	// Interior returns the color for points that never escape.
	Interior() color.RGBA
}

// SinePalette colors escape values through phase-shifted sine waves, one per
// channel. The waves are continuous in mu, so smoothed escape values render
// without banding. Interior points are black.
//
// The zero value is not useful; use NewSinePalette or DefaultPalette.
type SinePalette struct {
	// Freq scales mu before the phase offsets are applied. Smaller values
	// stretch the gradient over more iterations.
	Freq float64

	// Phase holds the per-channel (R, G, B) offsets in radians.
	Phase [3]float64
}

// DefaultPalette is the palette used when no WithPalette option is given.
var DefaultPalette Palette = NewSinePalette()

// NewSinePalette returns a sine palette with the stock frequency and phases.
func NewSinePalette() *SinePalette {
	return &SinePalette{Freq: 0.1, Phase: [3]float64{0, 2, 4}}
}

// At implements Palette.
func (p *SinePalette) At(mu float64) color.RGBA {
	x := mu * p.Freq
	return color.RGBA{
		R: waveByte(math.Sin(x + p.Phase[0])),
		G: waveByte(math.Sin(x + p.Phase[1])),
		B: waveByte(math.Sin(x + p.Phase[2])),
		A: 0xff,
	}
}

// Interior implements Palette.
func (p *SinePalette) Interior() color.RGBA {
	return color.RGBA{A: 0xff}
}

// waveByte maps a wave sample in [-1, 1] to a byte in [0, 255].
func waveByte(s float64) uint8 {
	v := s*127 + 128
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// TrianglePalette is the colormap of the original viewer: each channel is a
// triangle wave over mu with its own period, giving fast red cycling, slower
// green, and slow blue. Interior points are black.
type TrianglePalette struct {
	// Periods holds the per-channel (R, G, B) wave periods in iterations.
	Periods [3]float64
}

// NewTrianglePalette returns the triangle palette with the classic
// 30/100/400 channel periods.
func NewTrianglePalette() *TrianglePalette {
	return &TrianglePalette{Periods: [3]float64{30, 100, 400}}
}

// At implements Palette.
func (p *TrianglePalette) At(mu float64) color.RGBA {
	return color.RGBA{
		R: uint8(triangle(mu, p.Periods[0]) * 255),
		G: uint8(triangle(mu, p.Periods[1]) * 255),
		B: uint8(triangle(mu, p.Periods[2]) * 255),
		A: 0xff,
	}
}

// Interior implements Palette.
func (p *TrianglePalette) Interior() color.RGBA {
	return color.RGBA{A: 0xff}
}

// triangle is a triangle wave with range [0, 1] and the given period.
func triangle(x, period float64) float64 {
	t := x / period
	return 2 * math.Abs(t-math.Round(t))
}
