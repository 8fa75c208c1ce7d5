package task

import (
	"mandelbrot/mandelbrot"
	"testing"
)

func options(width int, height int) mandelbrot.Options {
	return mandelbrot.Options{
		Bounds:     mandelbrot.Bounds{Width: width, Height: height},
		UpperLeft:  complex(-2, 1.5),
		LowerRight: complex(2, -1.5),
	}
}

func TestPartitionCoversEveryRowOnce(t *testing.T) {
	for height := 1; height <= 40; height++ {
		for count := 1; count <= 48; count++ {
			bands := Partition(options(3, height), count)
			if len(bands) != count {
				t.Fatalf("height %d count %d: expected %d bands but got %d", height, count, count, len(bands))
			}

			seen := make([]int, height)
			next := 0
			for i, band := range bands {
				if band.ID != i {
					t.Fatalf("height %d count %d: band %d has ID %d", height, count, i, band.ID)
				}
				if band.Top != next {
					t.Fatalf("height %d count %d: band %d starts at row %d, expected %d", height, count, i, band.Top, next)
				}
				if band.Height < 0 || band.Height > RowsPerBand(height, count) {
					t.Fatalf("height %d count %d: band %d has height %d", height, count, i, band.Height)
				}
				for row := band.Top; row < band.Top+band.Height; row++ {
					seen[row]++
				}
				next = band.Top + band.Height
			}
			if next != height {
				t.Fatalf("height %d count %d: bands end at row %d", height, count, next)
			}
			for row, n := range seen {
				if n != 1 {
					t.Fatalf("height %d count %d: row %d covered %d times", height, count, row, n)
				}
			}
		}
	}
}

func TestPartitionByteRangesAreDisjoint(t *testing.T) {
	bands := Partition(options(7, 10), 4)
	previous := 0
	for _, band := range bands {
		if band.Start() != previous {
			t.Errorf("band %d starts at byte %d, expected %d", band.ID, band.Start(), previous)
		}
		if band.End()-band.Start() != band.Bounds().Pixels() {
			t.Errorf("band %d spans %d bytes for bounds %s", band.ID, band.End()-band.Start(), band.Bounds())
		}
		previous = band.End()
	}
	if previous != 70 {
		t.Errorf("expected the bands to end at byte 70 but got %d", previous)
	}
}

func TestPartitionTrailingEmptyBands(t *testing.T) {
	// 2 rows over 4 bands gives 1 row per band and two empty bands at the end.
	bands := Partition(options(5, 2), 4)
	heights := []int{1, 1, 0, 0}
	for i, band := range bands {
		if band.Height != heights[i] {
			t.Errorf("band %d expected height %d but got %d", i, heights[i], band.Height)
		}
	}
	if !bands[3].Empty() || bands[3].Start() != bands[3].End() {
		t.Errorf("expected band 3 to be empty: %s", bands[3].String())
	}

	// 8 rows over 4 bands: 3 rows per band, the last one gets nothing.
	bands = Partition(options(5, 8), 4)
	heights = []int{3, 3, 2, 0}
	for i, band := range bands {
		if band.Height != heights[i] {
			t.Errorf("band %d expected height %d but got %d", i, heights[i], band.Height)
		}
	}
}

func TestPartitionSubViewports(t *testing.T) {
	o := options(64, 48)
	bands := Partition(o, 3)

	if bands[0].UpperLeft != o.UpperLeft {
		t.Errorf("first band expected upper left %v but got %v", o.UpperLeft, bands[0].UpperLeft)
	}
	if last := bands[len(bands)-1]; last.LowerRight != o.LowerRight {
		t.Errorf("last band expected lower right %v but got %v", o.LowerRight, last.LowerRight)
	}
	for i := 1; i < len(bands); i++ {
		if imag(bands[i].UpperLeft) != imag(bands[i-1].LowerRight) {
			t.Errorf("band %d does not start where band %d ends: %v vs %v", i, i-1, bands[i].UpperLeft, bands[i-1].LowerRight)
		}
	}
	for _, band := range bands {
		if real(band.UpperLeft) != real(o.UpperLeft) || real(band.LowerRight) != real(o.LowerRight) {
			t.Errorf("band %d should span the full real range: %s", band.ID, band.String())
		}
		if band.Empty() {
			continue
		}
		if p := band.Point(0, 0); p != band.UpperLeft {
			t.Errorf("band %d top left pixel expected %v but got %v", band.ID, band.UpperLeft, p)
		}
	}
}

func TestPartitionCountBelowOne(t *testing.T) {
	bands := Partition(options(4, 4), 0)
	if len(bands) != 1 || bands[0].Height != 4 {
		t.Errorf("expected a single band covering the image but got %d bands", len(bands))
	}
}
