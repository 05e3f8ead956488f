package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrInvalidSize is returned for a non-positive target size.
	ErrInvalidSize = errors.New("imageio: size must be positive")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("imageio: image has no pixels")
)

// bilevel is the palette used for dithering.
var bilevel = color.Palette{color.Black, color.White}

// Load decodes the image file at path, detecting the format from content.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// DecodeBytes decodes an image from a byte slice.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, detecting the format from content.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// CropSquare returns the largest centered square of img, copied into a
// new RGBA image with its origin at (0, 0).
func CropSquare(img image.Image) *image.RGBA {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	sp := image.Pt(b.Min.X+(b.Dx()-side)/2, b.Min.Y+(b.Dy()-side)/2)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, sp, draw.Src)
	return dst
}

// Resize scales img to size x size pixels with a CatmullRom filter.
func Resize(img image.Image, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Dither converts img to luma and diffuses it to pure black and white.
func Dither(img image.Image) *image.Paletted {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	dst := image.NewPaletted(gray.Bounds(), bilevel)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), gray, image.Point{})
	return dst
}

// Prepare loads the image at path, crops it to a centered square and
// resizes it to size. When bilevel is set the result is dithered to
// black and white.
func Prepare(path string, size int, bilevel bool) (image.Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	resized, err := Resize(CropSquare(img), size)
	if err != nil {
		return nil, err
	}
	if bilevel {
		return Dither(resized), nil
	}
	return resized, nil
}

// SavePNG encodes img as a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: encode PNG: %w", err)
	}
	return f.Close()
}
