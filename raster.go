package stringart

import (
	"image"
	"image/color"
)

// Raster coordinates.
//
// GrayMap and Canvas store rows top to bottom like any image.Image, but the
// optimizer addresses them in pin space, where y grows upward. Pin-space
// pixel (x, y) lives in image row height-1-y. Pixels outside the raster are
// ignored by every pin-space accessor.

// GrayMap is an 8-bit single channel raster.
//
// It serves both as the immutable grayscale reference and as the mutable
// "remaining darkness" working copy, where 0 is ink still to be covered and
// 255 means nothing left to draw.
type GrayMap struct {
	width  int
	height int
	data   []uint8 // row-major, top row first
}

// NewGrayMap creates a gray map with every pixel set to v.
func NewGrayMap(width, height int, v uint8) *GrayMap {
	g := &GrayMap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
	if v != 0 {
		for i := range g.data {
			g.data[i] = v
		}
	}
	return g
}

// GrayFromImage converts img to a gray map using Rec. 601 luma.
func GrayFromImage(img image.Image) *GrayMap {
	if g, ok := img.(*GrayMap); ok {
		return g.Clone()
	}
	bounds := img.Bounds()
	g := NewGrayMap(bounds.Dx(), bounds.Dy(), 0)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			g.data[y*g.width+x] = c.Y
		}
	}
	return g
}

// Width returns the width of the gray map.
func (g *GrayMap) Width() int {
	return g.width
}

// Height returns the height of the gray map.
func (g *GrayMap) Height() int {
	return g.height
}

// index maps a pin-space pixel to its offset in data.
func (g *GrayMap) index(p image.Point) (int, bool) {
	row := g.height - 1 - p.Y
	if p.X < 0 || p.X >= g.width || row < 0 || row >= g.height {
		return 0, false
	}
	return row*g.width + p.X, true
}

// Value returns the intensity at pin-space pixel p.
func (g *GrayMap) Value(p image.Point) (uint8, bool) {
	i, ok := g.index(p)
	if !ok {
		return 0, false
	}
	return g.data[i], true
}

// GrayAt returns the intensity at image coordinates (x, y).
func (g *GrayMap) GrayAt(x, y int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.data[y*g.width+x]
}

// SetGray sets the intensity at image coordinates (x, y).
func (g *GrayMap) SetGray(x, y int, v uint8) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.data[y*g.width+x] = v
}

// Clone returns a deep copy of g.
func (g *GrayMap) Clone() *GrayMap {
	c := &GrayMap{width: g.width, height: g.height, data: make([]uint8, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Lighten raises every in-bounds pixel of line by amount, saturating at 255.
func (g *GrayMap) Lighten(line Line, amount uint8) {
	for _, p := range line {
		i, ok := g.index(p)
		if !ok {
			continue
		}
		v := int(g.data[i]) + int(amount)
		if v > 255 {
			v = 255
		}
		g.data[i] = uint8(v)
	}
}

// Darkness returns the total remaining darkness Σ(255 - v).
func (g *GrayMap) Darkness() int64 {
	var sum int64
	for _, v := range g.data {
		sum += int64(255 - v)
	}
	return sum
}

// Equal reports whether g and o have the same size and pixels.
func (g *GrayMap) Equal(o *GrayMap) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// At implements the image.Image interface.
func (g *GrayMap) At(x, y int) color.Color {
	return color.Gray{Y: g.GrayAt(x, y)}
}

// Bounds implements the image.Image interface.
func (g *GrayMap) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// ColorModel implements the image.Image interface.
func (g *GrayMap) ColorModel() color.Model {
	return color.GrayModel
}

// Canvas is an opaque 8-bit RGB raster.
//
// In color mode it holds the rendering built so far: it starts white and
// every accepted line is alpha-blended onto it. It also holds the immutable
// color reference image.
type Canvas struct {
	width  int
	height int
	data   []uint8 // RGB, 3 bytes per pixel, top row first
}

// NewCanvas creates a canvas filled with c.
func NewCanvas(width, height int, c Color) *Canvas {
	cv := &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}
	cv.Clear(c)
	return cv
}

// CanvasFromImage converts img to a canvas, discarding alpha.
func CanvasFromImage(img image.Image) *Canvas {
	if cv, ok := img.(*Canvas); ok {
		return cv.Clone()
	}
	bounds := img.Bounds()
	cv := &Canvas{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		data:   make([]uint8, bounds.Dx()*bounds.Dy()*3),
	}
	for y := 0; y < cv.height; y++ {
		for x := 0; x < cv.width; x++ {
			cv.SetRGB(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return cv
}

// Width returns the width of the canvas.
func (cv *Canvas) Width() int {
	return cv.width
}

// Height returns the height of the canvas.
func (cv *Canvas) Height() int {
	return cv.height
}

// index maps a pin-space pixel to its byte offset in data.
func (cv *Canvas) index(p image.Point) (int, bool) {
	row := cv.height - 1 - p.Y
	if p.X < 0 || p.X >= cv.width || row < 0 || row >= cv.height {
		return 0, false
	}
	return (row*cv.width + p.X) * 3, true
}

func (cv *Canvas) load(i int) Color {
	return Color{R: cv.data[i], G: cv.data[i+1], B: cv.data[i+2]}
}

func (cv *Canvas) store(i int, c Color) {
	cv.data[i] = c.R
	cv.data[i+1] = c.G
	cv.data[i+2] = c.B
}

// Pixel returns the color at pin-space pixel p.
func (cv *Canvas) Pixel(p image.Point) (Color, bool) {
	i, ok := cv.index(p)
	if !ok {
		return Color{}, false
	}
	return cv.load(i), true
}

// RGBAt returns the color at image coordinates (x, y).
func (cv *Canvas) RGBAt(x, y int) Color {
	if x < 0 || x >= cv.width || y < 0 || y >= cv.height {
		return Color{}
	}
	return cv.load((y*cv.width + x) * 3)
}

// SetRGB sets the color at image coordinates (x, y).
func (cv *Canvas) SetRGB(x, y int, c Color) {
	if x < 0 || x >= cv.width || y < 0 || y >= cv.height {
		return
	}
	cv.store((y*cv.width+x)*3, c)
}

// Clear fills the entire canvas with a color.
func (cv *Canvas) Clear(c Color) {
	for i := 0; i < len(cv.data); i += 3 {
		cv.store(i, c)
	}
}

// Stroke blends c at the given opacity onto every in-bounds pixel of line.
func (cv *Canvas) Stroke(line Line, c Color, opacity float64) {
	for _, p := range line {
		i, ok := cv.index(p)
		if !ok {
			continue
		}
		cv.store(i, Blend(cv.load(i), c, opacity))
	}
}

// Clone returns a deep copy of cv.
func (cv *Canvas) Clone() *Canvas {
	c := &Canvas{width: cv.width, height: cv.height, data: make([]uint8, len(cv.data))}
	copy(c.data, cv.data)
	return c
}

// Equal reports whether cv and o have the same size and pixels.
func (cv *Canvas) Equal(o *Canvas) bool {
	if cv.width != o.width || cv.height != o.height {
		return false
	}
	for i := range cv.data {
		if cv.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Gray returns the luma of the canvas as a gray map.
func (cv *Canvas) Gray() *GrayMap {
	g := NewGrayMap(cv.width, cv.height, 0)
	for i := range g.data {
		g.data[i] = cv.load(i * 3).Luma()
	}
	return g
}

// At implements the image.Image interface.
func (cv *Canvas) At(x, y int) color.Color {
	return cv.RGBAt(x, y)
}

// Bounds implements the image.Image interface.
func (cv *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, cv.width, cv.height)
}

// ColorModel implements the image.Image interface.
func (cv *Canvas) ColorModel() color.Model {
	return ColorModel
}

// ColorModel converts any color to an opaque Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// ToImage converts the canvas to an image.RGBA.
func (cv *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cv.width, cv.height))
	for i, j := 0, 0; i < len(cv.data); i, j = i+3, j+4 {
		img.Pix[j+0] = cv.data[i+0]
		img.Pix[j+1] = cv.data[i+1]
		img.Pix[j+2] = cv.data[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
