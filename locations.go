package mandel

// Location is a named (center, zoom) bookmark. The viewer this engine grew
// out of let users save and revisit locations; these are the classic
// landmarks, expressed as Views waiting for a viewport and budget.
type Location struct {
	Name   string
	Center complex128
	Zoom   float64
}

// View builds a View at the location with the given viewport and budget.
// The precision mode is left at ModeAuto.
func (l Location) View(width, height, maxIter int) View {
	return View{
		Center:  l.Center,
		Zoom:    l.Zoom,
		Width:   width,
		Height:  height,
		MaxIter: maxIter,
	}
}

// Classic regions / landmarks in the Mandelbrot set.
var (
	// Home frames the entire set.
	Home = Location{Name: "home", Center: complex(-0.5, 0), Zoom: 1}

	// SeahorseValley shows dense filaments and repeating seahorse curls.
	SeahorseValley = Location{Name: "seahorse-valley", Center: complex(-0.75, 0.1), Zoom: 40}

	// ElephantValley is the large bulb with trunk-like tendrils.
	ElephantValley = Location{Name: "elephant-valley", Center: complex(-1.8, -0.06), Zoom: 40}

	// SpiralMinibrot is a small Mandelbrot copy with tight spiral arms.
	SpiralMinibrot = Location{Name: "spiral-minibrot", Center: complex(-0.74275, 0.13175), Zoom: 2600}

	// TripleSpiral is a threefold symmetric spiral structure.
	TripleSpiral = Location{Name: "triple-spiral", Center: complex(-0.7465, 0.0965), Zoom: 1300}

	// ValleyOfTheDragon holds deep, highly detailed spiral filaments.
	ValleyOfTheDragon = Location{Name: "valley-of-the-dragon", Center: complex(-0.7375, 0.1825), Zoom: 800}

	// MinibrotInMiniSpiral is a self-similar copy inside a spiral arm.
	MinibrotInMiniSpiral = Location{Name: "minibrot-in-mini-spiral", Center: complex(-1.73825, -0.02275), Zoom: 2600}
)

// Locations returns the built-in bookmarks in display order.
func Locations() []Location {
	return []Location{
		Home,
		SeahorseValley,
		ElephantValley,
		SpiralMinibrot,
		TripleSpiral,
		ValleyOfTheDragon,
		MinibrotInMiniSpiral,
	}
}
