package mandelbrot

// Limit is the number of iterations run before a point is considered bounded.
const Limit uint = 255

// PixelToPoint converts the (column, row) pixel of an image with the given bounds to its point on the complex plane.
//
// The viewport spanned by upperLeft and lowerRight is spread evenly over bounds.Width columns and bounds.Height rows.
// Rows grow downward while the imaginary part shrinks, so the row offset is subtracted.
func PixelToPoint(bounds Bounds, pixel Pixel, upperLeft complex128, lowerRight complex128) complex128 {
	width := real(lowerRight) - real(upperLeft)
	height := imag(upperLeft) - imag(lowerRight)

	return complex(
		real(upperLeft)+float64(pixel.Column)*width/float64(bounds.Width),
		imag(upperLeft)-float64(pixel.Row)*height/float64(bounds.Height),
	)
}

// EscapeTime iterates z = z*z + c from z = 0 for at most limit iterations.
//
// When |z|^2 exceeds 4 the 0 based iteration it happened on is returned along with true. A point whose orbit stays
// bounded for all limit iterations returns false.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Unoptimized_na%C3%AFve_escape_time_algorithm
func EscapeTime(c complex128, limit uint) (uint, bool) {
	var z complex128
	for i := uint(0); i < limit; i++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4.0 {
			return i, true
		}
	}
	return 0, false
}
