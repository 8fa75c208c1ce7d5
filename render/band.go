package render

import (
	"fmt"
	"mandelbrot/mandelbrot"
	"mandelbrot/task"
)

// Band fills pixels, the band's own slice of the image buffer, with the intensity of every pixel in the band.
// Nothing outside pixels is touched.
func Band(pixels []byte, band task.Band) {
	bounds := band.Bounds()
	if len(pixels) != bounds.Pixels() {
		panic(fmt.Sprintf("band %d owns %d bytes but covers %s pixels", band.ID, len(pixels), bounds))
	}

	for row := 0; row < bounds.Height; row++ {
		line := pixels[row*bounds.Width : (row+1)*bounds.Width]
		for column := range line {
			line[column] = mandelbrot.PixelIntensity(band.Point(column, row))
		}
	}
}
