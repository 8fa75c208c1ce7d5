package mandelbrot

import (
	"errors"
	"math/cmplx"
	"testing"
)

func TestPixelToPointCorners(t *testing.T) {
	bounds := Bounds{Width: 100, Height: 200}
	upperLeft := complex(-1.0, 1.0)
	lowerRight := complex(1.0, -1.0)

	if got := PixelToPoint(bounds, Pixel{0, 0}, upperLeft, lowerRight); got != upperLeft {
		t.Errorf("pixel (0,0) expected %v but got %v", upperLeft, got)
	}
	if got := PixelToPoint(bounds, Pixel{bounds.Width, bounds.Height}, upperLeft, lowerRight); got != lowerRight {
		t.Errorf("pixel (width,height) expected %v but got %v", lowerRight, got)
	}

	got := PixelToPoint(bounds, Pixel{50, 100}, upperLeft, lowerRight)
	if got != 0 {
		t.Errorf("pixel (50,100) expected the origin but got %v", got)
	}

	got = PixelToPoint(bounds, Pixel{25, 175}, upperLeft, lowerRight)
	if want := complex(-0.5, -0.75); got != want {
		t.Errorf("pixel (25,175) expected %v but got %v", want, got)
	}
}

func TestPixelToPointStaysInsideViewport(t *testing.T) {
	upperLeft := complex(-2.0, 1.25)
	lowerRight := complex(0.5, -1.25)

	for _, bounds := range []Bounds{{1, 1}, {3, 7}, {64, 48}, {101, 13}} {
		for row := 0; row < bounds.Height; row++ {
			for column := 0; column < bounds.Width; column++ {
				p := PixelToPoint(bounds, Pixel{column, row}, upperLeft, lowerRight)
				if real(p) < real(upperLeft) || real(p) > real(lowerRight) || imag(p) > imag(upperLeft) || imag(p) < imag(lowerRight) {
					t.Fatalf("bounds %s pixel (%d,%d) mapped outside the viewport: %v", bounds, column, row, p)
				}
			}
		}
	}
}

func TestPixelToPointApproachesLowerRight(t *testing.T) {
	upperLeft := complex(-1.0, 1.0)
	lowerRight := complex(1.0, -1.0)

	previous := 1.0
	for _, width := range []int{10, 100, 1000, 10000} {
		p := PixelToPoint(Bounds{width, 1}, Pixel{width - 1, 0}, upperLeft, lowerRight)
		gap := real(lowerRight) - real(p)
		if gap <= 0 || gap >= previous {
			t.Errorf("width %d: expected the last column to close in on %v, gap %v previous gap %v", width, real(lowerRight), gap, previous)
		}
		previous = gap
	}
}

func TestEscapeTime(t *testing.T) {
	tests := []struct {
		name    string
		c       complex128
		limit   uint
		count   uint
		escaped bool
	}{
		{name: "origin", c: 0, limit: 255, escaped: false},
		{name: "origin limit 1", c: 0, limit: 1, escaped: false},
		{name: "minus one cycles", c: -1, limit: 255, escaped: false},
		{name: "three escapes immediately", c: 3, limit: 255, count: 0, escaped: true},
		{name: "one escapes on third", c: 1, limit: 255, count: 2, escaped: true},
		{name: "one not yet", c: 1, limit: 2, escaped: false},
		{name: "upper left corner", c: complex(-1, 1), limit: 255, count: 2, escaped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, escaped := EscapeTime(tt.c, tt.limit)
			if escaped != tt.escaped {
				t.Fatalf("expected escaped=%t but got %t (count %d)", tt.escaped, escaped, count)
			}
			if escaped && count != tt.count {
				t.Errorf("expected escape on iteration %d but got %d", tt.count, count)
			}
		})
	}
}

func TestEscapeTimeOutsideRadiusTwo(t *testing.T) {
	for _, c := range []complex128{2.01, -2.5, complex(0, 3), complex(1.5, 1.5), cmplx.Rect(2.0001, 1.1)} {
		count, escaped := EscapeTime(c, Limit)
		if !escaped || count >= Limit {
			t.Errorf("%v: expected an escape before %d but got count %d escaped %t", c, Limit, count, escaped)
		}
	}
}

func TestIntensity(t *testing.T) {
	if got := Intensity(0, false); got != 0 {
		t.Errorf("bounded point expected 0 but got %d", got)
	}
	if got := Intensity(0, true); got != 255 {
		t.Errorf("immediate escape expected 255 but got %d", got)
	}
	if got := Intensity(254, true); got != 1 {
		t.Errorf("late escape expected 1 but got %d", got)
	}
	if got := PixelIntensity(complex(-1, 1)); got != 253 {
		t.Errorf("(-1,1) expected 253 but got %d", got)
	}
	if got := PixelIntensity(0); got != 0 {
		t.Errorf("origin expected 0 but got %d", got)
	}
}

func TestParseOptions(t *testing.T) {
	options, err := ParseOptions("1000x750", "-1.2,0.35", "-1.0,0.2")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := Options{Bounds: Bounds{1000, 750}, UpperLeft: complex(-1.2, 0.35), LowerRight: complex(-1.0, 0.2)}
	if options != want {
		t.Errorf("expected %s but got %s", want.String(), options.String())
	}

	failures := []struct {
		pixels, upperLeft, lowerRight, message string
	}{
		{"1000", "-1.2,0.35", "-1.0,0.2", "could not parse image dimensions"},
		{"10x-5", "-1.2,0.35", "-1.0,0.2", "could not parse image dimensions"},
		{"axb", "-1.2,0.35", "-1.0,0.2", "could not parse image dimensions"},
		{"10x10", "-1.2", "-1.0,0.2", "could not parse upper left corner point"},
		{"10x10", "-1.2,0.35", "-1.0;0.2", "could not parse lower right corner point"},
	}
	for _, f := range failures {
		_, err := ParseOptions(f.pixels, f.upperLeft, f.lowerRight)
		if err == nil || err.Error() != f.message {
			t.Errorf("%q %q %q: expected %q but got %v", f.pixels, f.upperLeft, f.lowerRight, f.message, err)
		}
	}

	_, err = ParseOptions("0x10", "-1,1", "1,-1")
	if !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds but got %v", err)
	}
}

func TestParsePairSplitsAtFirstSeparator(t *testing.T) {
	_, _, ok := ParsePair("1x2x3", 'x', func(s string) (string, error) { return s, nil })
	if !ok {
		t.Fatal("expected the pair to parse")
	}
	l, r, _ := ParsePair("1x2x3", 'x', func(s string) (string, error) { return s, nil })
	if l != "1" || r != "2x3" {
		t.Errorf("expected (1, 2x3) but got (%s, %s)", l, r)
	}
}
