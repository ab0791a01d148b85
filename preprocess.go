package main

import (
	"image"
	"image/draw"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// Input conditioning before tree construction. A light blur and/or a
// downscale smooths local noise, which lets Prune collapse much larger
// regions at the same tolerance.

// toRGBA copies any image.Image into an *image.RGBA anchored at (0,0).
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// blurImage applies a Gaussian blur with the given sigma. Sigma zero or
// negative returns the input unchanged.
func blurImage(src *image.RGBA, sigma float64) *image.RGBA {
	if sigma <= 0 {
		return src
	}
	g := gift.New(gift.GaussianBlur(float32(sigma)))
	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// resizeImage resamples src to w×h with Lanczos. Either dimension may be
// zero to preserve the aspect ratio; both zero returns the input unchanged.
func resizeImage(src *image.RGBA, w, h int) *image.RGBA {
	if w <= 0 && h <= 0 {
		return src
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return toRGBA(imaging.Resize(src, w, h, imaging.Lanczos))
}
