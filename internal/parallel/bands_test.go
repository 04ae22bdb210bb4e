package parallel

import "testing"

// TestSplit verifies the partition invariants: bands are non-empty,
// disjoint, ordered, and cover [0, height) exactly.
func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		height, n int
		wantBands int
	}{
		{"even", 100, 4, 4},
		{"uneven", 103, 4, 4},
		{"more_bands_than_rows", 3, 16, 3},
		{"single", 50, 1, 1},
		{"zero_n", 10, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bands := Split(tc.height, tc.n)
			if len(bands) != tc.wantBands {
				t.Fatalf("Split(%d, %d): %d bands, want %d", tc.height, tc.n, len(bands), tc.wantBands)
			}
			y := 0
			for i, b := range bands {
				if b.Y0 != y {
					t.Fatalf("band %d starts at %d, want %d (gap or overlap)", i, b.Y0, y)
				}
				if b.Rows() < 1 {
					t.Fatalf("band %d is empty", i)
				}
				y = b.Y1
			}
			if y != tc.height {
				t.Fatalf("bands cover [0, %d), want [0, %d)", y, tc.height)
			}
		})
	}
}

// TestSplit_Balanced verifies band sizes differ by at most one row.
func TestSplit_Balanced(t *testing.T) {
	bands := Split(103, 8)
	minRows, maxRows := bands[0].Rows(), bands[0].Rows()
	for _, b := range bands[1:] {
		if r := b.Rows(); r < minRows {
			minRows = r
		} else if r > maxRows {
			maxRows = r
		}
	}
	if maxRows-minRows > 1 {
		t.Errorf("band sizes range %d..%d, want spread <= 1", minRows, maxRows)
	}
}

// TestSplit_Empty verifies degenerate heights produce no bands.
func TestSplit_Empty(t *testing.T) {
	if got := Split(0, 4); got != nil {
		t.Errorf("Split(0, 4) = %v, want nil", got)
	}
	if got := Split(-5, 4); got != nil {
		t.Errorf("Split(-5, 4) = %v, want nil", got)
	}
}
