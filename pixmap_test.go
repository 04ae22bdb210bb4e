package mandel

import (
	"image/color"
	"testing"
)

// TestPixmap_SetAt round-trips a pixel through SetRGBA/At.
func TestPixmap_SetAt(t *testing.T) {
	pm := NewPixmap(10, 10)
	want := color.RGBA{R: 128, G: 64, B: 32, A: 255}
	pm.SetRGBA(5, 5, want)
	if got := pm.At(5, 5); got != want {
		t.Errorf("At(5,5) = %v, want %v", got, want)
	}
}

// TestPixmap_OutOfBounds verifies out-of-bounds access is silently ignored.
func TestPixmap_OutOfBounds(t *testing.T) {
	pm := NewPixmap(10, 10)
	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10}, {-100, -100}, {100, 100},
	}
	for _, c := range oob {
		pm.SetRGBA(c.x, c.y, color.RGBA{R: 255, A: 255})
		if got := pm.At(c.x, c.y); got != (color.RGBA{}) {
			t.Errorf("At(%d,%d) = %v, want zero color", c.x, c.y, got)
		}
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := pm.At(x, y); got != (color.RGBA{}) {
				t.Fatalf("out-of-bounds write leaked into (%d,%d): %v", x, y, got)
			}
		}
	}
}

// TestPixmap_ImageAliases verifies Image shares storage (the coordinator
// draws pass results through it) while Snapshot does not.
func TestPixmap_ImageAliases(t *testing.T) {
	pm := NewPixmap(4, 4)
	want := color.RGBA{R: 7, G: 8, B: 9, A: 255}

	img := pm.Image()
	img.SetRGBA(1, 2, want)
	if got := pm.At(1, 2); got != want {
		t.Errorf("write through Image not visible: At(1,2) = %v, want %v", got, want)
	}

	snap := pm.Snapshot()
	pm.SetRGBA(1, 2, color.RGBA{A: 255})
	if got := snap.RGBAAt(1, 2); got != want {
		t.Errorf("snapshot mutated by later write: %v, want %v", got, want)
	}
}
