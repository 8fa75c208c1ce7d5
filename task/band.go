package task

import (
	"fmt"
	"mandelbrot/mandelbrot"
)

// Band is a run of consecutive image rows [Top, Top+Height) rendered as one unit of work.
//
// Options describes the whole image the band belongs to. UpperLeft and LowerRight are the corners of the band's own
// slice of the viewport. They describe the band for logs and callers but rendering does not read them: pixels are
// mapped through the whole image with Point so every partition of an image renders the same bytes.
type Band struct {
	ID         int
	Height     int
	LowerRight complex128
	Options    mandelbrot.Options
	Top        int
	UpperLeft  complex128
}

func (b *Band) String() string {
	output := "{Band "
	output += fmt.Sprintf("ID: %d ", b.ID)
	output += fmt.Sprintf("Rows: [%d, %d) ", b.Top, b.Top+b.Height)
	output += fmt.Sprintf("UpperLeft: %s ", mandelbrot.FormatComplex(b.UpperLeft))
	output += fmt.Sprintf("LowerRight: %s}", mandelbrot.FormatComplex(b.LowerRight))
	return output
}

// Bounds is the pixel size of the band.
func (b *Band) Bounds() mandelbrot.Bounds {
	return mandelbrot.Bounds{Width: b.Options.Bounds.Width, Height: b.Height}
}

// Start is the offset of the band's first byte in the image buffer.
func (b *Band) Start() int {
	return b.Top * b.Options.Bounds.Width
}

// End is the offset one past the band's last byte in the image buffer.
func (b *Band) End() int {
	return (b.Top + b.Height) * b.Options.Bounds.Width
}

func (b *Band) Empty() bool {
	return b.Height == 0
}

// Point maps a pixel given relative to the band's top row onto the complex plane.
//
// The mapping runs through the frame of the whole image so a pixel lands on the same point no matter how the image
// was split into bands.
func (b *Band) Point(column int, row int) complex128 {
	return mandelbrot.PixelToPoint(b.Options.Bounds, mandelbrot.Pixel{Column: column, Row: b.Top + row}, b.Options.UpperLeft, b.Options.LowerRight)
}

// RowsPerBand is the number of rows each of count bands gets when splitting height rows.
//
// The split is biased upward so count bands always cover every row. The trailing bands may come up short or empty.
func RowsPerBand(height int, count int) int {
	return height/count + 1
}

// Partition splits the image described by options into count bands of RowsPerBand rows.
//
// The bands are returned in order, cover [0, height) exactly once and are derived here, before any of them is handed
// out, so no two bands can ever claim the same row. Bands past the last row have a height of zero.
func Partition(options mandelbrot.Options, count int) []Band {
	if count < 1 {
		count = 1
	}
	bounds := options.Bounds
	rows := RowsPerBand(bounds.Height, count)

	bands := make([]Band, count)
	for i := range bands {
		top := min(i*rows, bounds.Height)
		height := min(rows, bounds.Height-top)
		bands[i] = Band{
			ID:         i,
			Height:     height,
			LowerRight: mandelbrot.PixelToPoint(bounds, mandelbrot.Pixel{Column: bounds.Width, Row: top + height}, options.UpperLeft, options.LowerRight),
			Options:    options,
			Top:        top,
			UpperLeft:  mandelbrot.PixelToPoint(bounds, mandelbrot.Pixel{Column: 0, Row: top}, options.UpperLeft, options.LowerRight),
		}
	}
	return bands
}
