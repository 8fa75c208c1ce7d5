package misc

import (
	"fmt"
	"image"
	"mandelbrot/mandelbrot"
)

// GrayImage wraps a row major grayscale buffer without copying it.
func GrayImage(pixels []byte, bounds mandelbrot.Bounds) (*image.Gray, error) {
	if len(pixels) != bounds.Pixels() {
		return nil, fmt.Errorf("buffer holds %d pixels but %s needs %d", len(pixels), bounds, bounds.Pixels())
	}
	return &image.Gray{
		Pix:    pixels,
		Stride: bounds.Width,
		Rect:   image.Rect(0, 0, bounds.Width, bounds.Height),
	}, nil
}
