package main

import (
	"image"
	"image/color"
	"math"
)

// Pixel is an RGBA color value with integer color channels (0..255) and a
// continuous alpha channel (0..1). This is the value the tree averages and
// compares; it round-trips to color.RGBA only at the raster boundary.
type Pixel struct {
	R, G, B int
	A       float64
}

// DistanceTo returns the Euclidean distance between two pixels, with the
// alpha difference scaled back into the 0..255 channel range so that all
// four channels weigh comparably. Symmetric, non-negative, zero iff equal.
func (p Pixel) DistanceTo(o Pixel) float64 {
	dr := float64(p.R - o.R)
	dg := float64(p.G - o.G)
	db := float64(p.B - o.B)
	da := (p.A - o.A) * 255
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

// RGBA converts the pixel to an 8-bit stdlib color.
func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clampChannel(p.R)),
		G: uint8(clampChannel(p.G)),
		B: uint8(clampChannel(p.B)),
		A: uint8(math.Round(clampAlpha(p.A) * 255)),
	}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// pixelAt reads the pixel at (x, y). The coordinates must be inside the
// image bounds; the raster is assumed to be anchored at (0,0).
func pixelAt(img *image.RGBA, x, y int) Pixel {
	c := img.RGBAAt(x, y)
	return Pixel{
		R: int(c.R),
		G: int(c.G),
		B: int(c.B),
		A: float64(c.A) / 255,
	}
}

// setPixel writes p at (x, y), clamping channels into range.
func setPixel(img *image.RGBA, x, y int, p Pixel) {
	img.SetRGBA(x, y, p.RGBA())
}
