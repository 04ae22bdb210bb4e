package parallel

// Band is a half-open range of sample-grid rows [Y0, Y1) forming one
// independent work unit. Bands from one Split are disjoint and their union
// covers the whole grid, so any assignment to workers is valid.
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Split partitions rows [0, height) into at most n bands of near-equal
// size. More bands than workers keeps the pool busy when row costs are
// uneven, so callers typically pass a small multiple of Pool.Workers.
func Split(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([]Band, 0, n)
	size := height / n
	extra := height % n // first `extra` bands get one more row
	y := 0
	for i := 0; i < n; i++ {
		rows := size
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}
