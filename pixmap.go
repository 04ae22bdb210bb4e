package mandel

import (
	"image"
	"image/color"
)

// Pixmap is the engine's image buffer: one RGBA color per viewport pixel.
//
// It is owned by the render coordinator, which is the only writer. Workers
// never touch it; they return sample results that the coordinator merges.
// Callers receive read-only copies via Snapshot.
type Pixmap struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel, row-major
}

// NewPixmap creates a pixmap with the given dimensions, cleared to
// transparent black.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// SetRGBA sets the color of a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (p *Pixmap) SetRGBA(x, y int, c color.RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.pix[i+0] = c.R
	p.pix[i+1] = c.G
	p.pix[i+2] = c.B
	p.pix[i+3] = c.A
}

// At returns the color of a single pixel.
// Out-of-bounds coordinates return the zero color.
func (p *Pixmap) At(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.pix[i+0], G: p.pix[i+1], B: p.pix[i+2], A: p.pix[i+3]}
}

// Image returns an *image.RGBA sharing the pixmap's storage. Drawing into
// the returned image writes through to the pixmap; only the coordinator may
// do so.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pix,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// Snapshot returns an independent copy of the current contents, safe to read
// while the coordinator keeps rendering.
func (p *Pixmap) Snapshot() *image.RGBA {
	pix := make([]uint8, len(p.pix))
	copy(pix, p.pix)
	return &image.RGBA{
		Pix:    pix,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}
