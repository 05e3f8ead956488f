package stringart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Color is an opaque 8-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// FromColor converts a standard color.Color to Color, discarding alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ErrInvalidHex is returned by ParseHex for malformed input.
var ErrInvalidHex = errors.New("stringart: invalid hex color")

// ParseHex parses a color from a hex string.
// Supports formats: "RGB", "RRGGBB", with or without a leading '#'.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")

	var r, g, b uint32
	switch len(hex) {
	case 3: // RGB
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Luma returns the Rec. 601 luma of c in [0, 255].
func (c Color) Luma() uint8 {
	// Same weights as image/color.GrayModel.
	y := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
	return uint8(y)
}

// DistanceSq returns the squared Euclidean distance between a and b in RGB space.
func DistanceSq(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// Blend composites a stroke of color over dst at the given opacity.
// Each channel is computed as round(dst*(1-opacity) + stroke*opacity).
// opacity must be in [0, 1]; the result then stays within channel range.
func Blend(dst, stroke Color, opacity float64) Color {
	return Color{
		R: blendChannel(dst.R, stroke.R, opacity),
		G: blendChannel(dst.G, stroke.G, opacity),
		B: blendChannel(dst.B, stroke.B, opacity),
	}
}

func blendChannel(dst, src uint8, opacity float64) uint8 {
	return uint8(math.Round(float64(dst)*(1-opacity) + float64(src)*opacity))
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Palette is an ordered, duplicate-free set of stroke colors.
// Each palette entry owns one path during optimization.
type Palette []Color

// Unique reports whether the palette contains no repeated colors.
func (p Palette) Unique() bool {
	seen := make(map[Color]struct{}, len(p))
	for _, c := range p {
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return true
}
