package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrWriteImage        = errors.New("failed to write image")
)

type encoder func(io.Writer, image.Image) error

var encoders = map[string]encoder{
	"":      png.Encode,
	".png":  png.Encode,
	".jpg":  encodeJpeg,
	".jpeg": encodeJpeg,
	".tif":  encodeTiff,
	".tiff": encodeTiff,
	".bmp":  bmp.Encode,
}

func encodeJpeg(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeTiff(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Format reports the format name used for fileName, picked from its extension.
func Format(fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := encoders[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if ext == "" {
		return "png", nil
	}
	return strings.TrimPrefix(ext, "."), nil
}

// WriteImage encodes pixels as an 8 bit grayscale image of the given bounds and saves it to fileName.
//
// The encoder is chosen from the file extension; a name without one is written as PNG. An unknown extension fails
// before the file is created.
func WriteImage(fileName string, pixels []byte, bounds mandelbrot.Bounds) error {
	encode, ok := encoders[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}

	img, err := misc.GrayImage(pixels, bounds)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteImage, err)
	}

	var buffer bytes.Buffer
	if err := encode(&buffer, img); err != nil {
		return fmt.Errorf("%w: encoding %s: %w", ErrWriteImage, fileName, err)
	}
	if _, err := misc.WriteFile(fileName, buffer.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteImage, err)
	}
	return nil
}
