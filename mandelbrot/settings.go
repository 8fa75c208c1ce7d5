package mandelbrot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidBounds = errors.New("image dimensions must be positive")

// Bounds is the size of the output image in pixels.
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Pixels is the number of bytes a grayscale image with these bounds occupies.
func (b Bounds) Pixels() int {
	return b.Width * b.Height
}

func (b Bounds) Verify() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidBounds, b)
	}
	return nil
}

type Pixel struct {
	Column int
	Row    int
}

// Options describe one render: the output grid and the viewport corners it covers.
type Options struct {
	Bounds     Bounds
	UpperLeft  complex128
	LowerRight complex128
}

func (o *Options) String() string {
	output := "{Options "
	output += fmt.Sprintf("Bounds: %s ", o.Bounds)
	output += fmt.Sprintf("UpperLeft: %s ", FormatComplex(o.UpperLeft))
	output += fmt.Sprintf("LowerRight: %s}", FormatComplex(o.LowerRight))
	return output
}

// Verify only checks the bounds. A degenerate viewport still renders, just not usefully.
func (o *Options) Verify() error {
	return o.Bounds.Verify()
}

// ParseOptions builds Options from the textual PIXELS, UPPERLEFT and LOWERRIGHT arguments.
func ParseOptions(pixels string, upperLeft string, lowerRight string) (Options, error) {
	bounds, err := ParseBounds(pixels)
	if err != nil {
		return Options{}, err
	}
	ul, ok := ParseComplex(upperLeft)
	if !ok {
		return Options{}, errors.New("could not parse upper left corner point")
	}
	lr, ok := ParseComplex(lowerRight)
	if !ok {
		return Options{}, errors.New("could not parse lower right corner point")
	}
	return Options{Bounds: bounds, UpperLeft: ul, LowerRight: lr}, nil
}

// ParseBounds parses dimensions such as "1000x750".
func ParseBounds(s string) (Bounds, error) {
	width, height, ok := ParsePair(s, 'x', func(v string) (int, error) {
		n, err := strconv.ParseUint(v, 10, 0)
		return int(n), err
	})
	if !ok {
		return Bounds{}, errors.New("could not parse image dimensions")
	}
	bounds := Bounds{Width: width, Height: height}
	if err := bounds.Verify(); err != nil {
		return Bounds{}, err
	}
	return bounds, nil
}

// ParseComplex parses a point such as "-1.2,0.35".
func ParseComplex(s string) (complex128, bool) {
	re, im, ok := ParsePair(s, ',', func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

// ParsePair splits s at the first separator and parses both halves with parse.
func ParsePair[T any](s string, separator rune, parse func(string) (T, error)) (T, T, bool) {
	var zero T
	left, right, found := strings.Cut(s, string(separator))
	if !found {
		return zero, zero, false
	}
	l, err := parse(left)
	if err != nil {
		return zero, zero, false
	}
	r, err := parse(right)
	if err != nil {
		return zero, zero, false
	}
	return l, r, true
}

func FormatComplex(c complex128) string {
	return strconv.FormatFloat(real(c), 'g', -1, 64) + "," + strconv.FormatFloat(imag(c), 'g', -1, 64)
}
