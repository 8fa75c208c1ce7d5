package render

import (
	"fmt"
	"image"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// Supersample renders options at factor times the resolution over the same viewport and scales the result back down
// to options.Bounds, smoothing the edges of the set. A factor of 1 is a plain Render.
func (r *Renderer) Supersample(options mandelbrot.Options, factor int) ([]byte, error) {
	if factor < 1 {
		return nil, fmt.Errorf("supersampling factor must be at least 1, got %d", factor)
	}
	if factor == 1 {
		return r.Render(options)
	}

	large := options
	large.Bounds = mandelbrot.Bounds{Width: options.Bounds.Width * factor, Height: options.Bounds.Height * factor}
	pixels, err := r.Render(large)
	if err != nil {
		return nil, err
	}
	img, err := misc.GrayImage(pixels, large.Bounds)
	if err != nil {
		return nil, err
	}

	scaled := resize.Resize(uint(options.Bounds.Width), uint(options.Bounds.Height), img, resize.Bilinear)
	gray := image.NewGray(image.Rect(0, 0, options.Bounds.Width, options.Bounds.Height))
	xdraw.Draw(gray, gray.Bounds(), scaled, scaled.Bounds().Min, xdraw.Src)

	r.logger.Debugf("Scaled %s down to %s", large.Bounds, options.Bounds)
	return gray.Pix, nil
}
