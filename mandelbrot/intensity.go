package mandelbrot

// Intensity is the grayscale value of a pixel given the result of EscapeTime.
//
// Bounded points are black. A point escaping on iteration i gets 255 - i: escaping on the first iteration is white
// and the slower an orbit escapes the darker it gets. count must not exceed 255.
func Intensity(count uint, escaped bool) uint8 {
	if !escaped {
		return 0
	}
	return uint8(255 - count)
}

// PixelIntensity maps a point to its grayscale value using the default iteration limit.
func PixelIntensity(c complex128) uint8 {
	return Intensity(EscapeTime(c, Limit))
}
